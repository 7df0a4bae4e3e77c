package app

import "flake-freshness/internal/types"

type CheckRequest struct {
	FlakePath   string
	ConfigPath  string
	InputFilter string
	UpdatesOnly bool
	NoCache     bool
}

// OutcomeKind tags the per-package result of a check run. Per-item
// failures are collected instead of terminating the run so the reporter
// can render partial output.
type OutcomeKind string

const (
	OutcomeResolved     OutcomeKind = "resolved"
	OutcomeMissingInput OutcomeKind = "missing-input"
)

type CheckOutcome struct {
	Tracked types.TrackedPackage
	Kind    OutcomeKind
	Row     types.ReportRow // valid when Kind == OutcomeResolved
	Reason  string          // set when Kind != OutcomeResolved
}

type CheckResult struct {
	ConfigPath string
	Outcomes   []CheckOutcome

	// Rows are the resolved report rows after the updates-only filter,
	// in check order. This is what both renderers display.
	Rows []types.ReportRow

	// Summary data, computed over all resolved rows regardless of the
	// updates-only filter.
	OutdatedCount  int
	InputsToUpdate []string
	InputAges      map[string]string

	Warnings []string
}
