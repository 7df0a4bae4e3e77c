// Package shared provides common utility functions used across multiple
// packages in the flake-freshness codebase.
package shared

import (
	"fmt"
	"strings"
	"time"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// FormatAge renders the distance between a unix-seconds timestamp and
// now as a short human string ("today", "1 day ago", "12 days ago").
// Returns "N/A" for a zero or future timestamp.
func FormatAge(unixSeconds int64, now time.Time) string {
	if unixSeconds <= 0 {
		return "N/A"
	}
	modified := time.Unix(unixSeconds, 0)
	if modified.After(now) {
		return "N/A"
	}
	days := int(now.Sub(modified).Hours() / 24)
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
