package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flake-freshness/internal/app"
	"flake-freshness/internal/types"
)

var (
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleAccent   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleEqual    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleOutdated = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleLatest   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

func printInfo(message string) {
	fmt.Println(styleInfo.Render(message))
}

func printError(message string) {
	fmt.Fprintln(os.Stderr, styleError.Render("Error: "+message))
}

// renderJSON dumps the display rows as an indented array.
func renderJSON(w io.Writer, result app.CheckResult) error {
	rows := result.Rows
	if rows == nil {
		rows = []types.ReportRow{}
	}
	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

// renderReport prints warnings, the comparison table, and the summary.
func renderReport(w io.Writer, result app.CheckResult) {
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, styleWarning.Render("Warning: "+warning))
	}
	if len(result.Rows) > 0 {
		fmt.Fprintln(w)
		renderTable(w, result.Rows)
	}
	renderSummary(w, result)
}

var tableColumns = []string{"package", "input", "current", "latest", "status"}

func renderTable(w io.Writer, rows []types.ReportRow) {
	// Outdated rows first so the actionable entries top the table.
	ordered := append([]types.ReportRow(nil), rows...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Status == types.StatusOutdated && ordered[j].Status != types.StatusOutdated
	})

	widths := columnWidths(ordered)
	header := make([]string, len(tableColumns))
	for i, name := range tableColumns {
		header[i] = styleHeader.Render(pad(name, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(header, "  "))

	for _, row := range ordered {
		cells := []string{
			pad(row.Package, widths[0]),
			pad(row.Input, widths[1]),
			styleCurrent(row).Render(pad(row.Current, widths[2])),
			styleLatestCell(row).Render(pad(row.Latest, widths[3])),
			statusCell(row.Status, widths[4]),
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

func renderSummary(w io.Writer, result app.CheckResult) {
	if result.OutdatedCount == 0 {
		if len(result.Rows) > 0 || len(result.Warnings) == 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, styleEqual.Render("✓ All packages are up to date!"))
		}
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styleAccent.Render("Summary:"))
	fmt.Fprintf(w, "  • %d packages with updates available\n", result.OutdatedCount)
	fmt.Fprintf(w, "  • Inputs to update: %s\n", strings.Join(describeInputs(result), ", "))

	fmt.Fprintln(w)
	fmt.Fprintln(w, styleInfo.Render("Next steps:"))
	for _, input := range result.InputsToUpdate {
		fmt.Fprintf(w, "  %s\n", app.UpdateCommand(input))
	}
}

// describeInputs annotates each outdated input with the age of its
// locked revision when known.
func describeInputs(result app.CheckResult) []string {
	described := make([]string, 0, len(result.InputsToUpdate))
	for _, input := range result.InputsToUpdate {
		if age, ok := result.InputAges[input]; ok && age != "N/A" {
			described = append(described, fmt.Sprintf("%s (locked %s)", input, age))
			continue
		}
		described = append(described, input)
	}
	return described
}

func styleCurrent(row types.ReportRow) lipgloss.Style {
	switch row.Status {
	case types.StatusOutdated:
		return styleOutdated
	case types.StatusEqual:
		return styleEqual
	default:
		return lipgloss.NewStyle()
	}
}

func styleLatestCell(row types.ReportRow) lipgloss.Style {
	if row.Status == types.StatusOutdated {
		return styleLatest
	}
	return lipgloss.NewStyle()
}

func statusCell(status types.Status, width int) string {
	switch status {
	case types.StatusEqual:
		return styleEqual.Render(pad("✓ up to date", width))
	case types.StatusOutdated:
		return styleWarning.Render(pad("⚠ update available", width))
	default:
		return pad("?", width)
	}
}

func columnWidths(rows []types.ReportRow) []int {
	widths := make([]int, len(tableColumns))
	for i, name := range tableColumns {
		widths[i] = lipgloss.Width(name)
	}
	statusWidth := lipgloss.Width("⚠ update available")
	for _, row := range rows {
		widths[0] = max(widths[0], lipgloss.Width(row.Package))
		widths[1] = max(widths[1], lipgloss.Width(row.Input))
		widths[2] = max(widths[2], lipgloss.Width(row.Current))
		widths[3] = max(widths[3], lipgloss.Width(row.Latest))
	}
	widths[4] = max(widths[4], statusWidth)
	return widths
}

// pad right-fills value to width display columns. Status cells carry
// multibyte glyphs, so the measure is terminal cells, not bytes.
func pad(value string, width int) string {
	current := lipgloss.Width(value)
	if current >= width {
		return value
	}
	return value + strings.Repeat(" ", width-current)
}
