package types

// TrackedPackage declares that a package should be monitored under a
// logical input grouping. Duplicates in the config are kept as-is and
// produce duplicate report rows.
type TrackedPackage struct {
	Package string
	Input   string
}

// InputBinding is the per-input view of the flake: the upstream branch
// the input tracks and the revision currently pinned in the lock graph.
// LockedRev is empty when the lock graph has no revision for the input.
// LastModified is the lock node's timestamp in unix seconds, zero when
// unavailable.
type InputBinding struct {
	Input        string
	Branch       string
	LockedRev    string
	LastModified int64
}

// ReportRow is one comparison result, computed per tracked package per
// run and never persisted.
type ReportRow struct {
	Package string `json:"package"`
	Input   string `json:"input"`
	Branch  string `json:"branch"`
	Current string `json:"current"`
	Latest  string `json:"latest"`
	Status  Status `json:"status"`
}
