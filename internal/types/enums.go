package types

// Status classifies a tracked package after both version lookups.
type Status string

const (
	StatusEqual    Status = "equal"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown"
)

// Sentinel version strings. They stand in for an unresolved version and
// are distinct from any real version string nix would print.
const (
	VersionNotFound = "not found"
	VersionNoLock   = "no lock"
)

// IsSentinel reports whether value is one of the reserved non-version
// strings.
func IsSentinel(value string) bool {
	return value == VersionNotFound || value == VersionNoLock
}
