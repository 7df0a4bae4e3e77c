package core

import "flake-freshness/internal/types"

// Compare classifies a current/latest version pair. Either side being a
// sentinel ("not found", "no lock") means the pair cannot be judged and
// yields unknown; equal requires two real, identical version strings.
func Compare(current string, latest string) types.Status {
	if types.IsSentinel(current) || types.IsSentinel(latest) {
		return types.StatusUnknown
	}
	if current == latest {
		return types.StatusEqual
	}
	return types.StatusOutdated
}
