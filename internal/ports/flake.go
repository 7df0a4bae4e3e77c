package ports

import "context"

// LockedNode is the subset of a flake lock graph node the checker needs.
type LockedNode struct {
	Rev          string
	LastModified int64
}

// FlakeMetadataPort queries the resolved lock graph for a flake.
// Implementations are scoped to the flake's directory.
type FlakeMetadataPort interface {
	LockedNodes(ctx context.Context, flakeDir string) (map[string]LockedNode, error)
}
