package adapters

import (
	"context"
	"encoding/json"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/shared"
)

// NixMetadataAdapter reads the resolved lock graph via
// `nix flake metadata --json`, run inside the flake's directory.
type NixMetadataAdapter struct{}

func NewNixMetadataAdapter() NixMetadataAdapter {
	return NixMetadataAdapter{}
}

// flakeMetadata mirrors the slice of the nix flake metadata JSON the
// checker consumes: locks.nodes.<input>.locked.{rev,lastModified}.
type flakeMetadata struct {
	Locks struct {
		Nodes map[string]struct {
			Locked struct {
				Rev          string `json:"rev"`
				LastModified int64  `json:"lastModified"`
			} `json:"locked"`
		} `json:"nodes"`
	} `json:"locks"`
}

func (a NixMetadataAdapter) LockedNodes(ctx context.Context, flakeDir string) (map[string]ports.LockedNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, "nix", "flake", "metadata", "--json")
	cmd.Dir = flakeDir
	output, err := cmd.Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query flake metadata").
			WithCause(shared.CommandError(output, err))
	}
	return ParseLockedNodes(output)
}

// ParseLockedNodes decodes the metadata JSON into per-input lock nodes.
func ParseLockedNodes(data []byte) (map[string]ports.LockedNode, error) {
	var metadata flakeMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("invalid flake metadata json").
			WithCause(err)
	}
	nodes := make(map[string]ports.LockedNode, len(metadata.Locks.Nodes))
	for name, node := range metadata.Locks.Nodes {
		nodes[name] = ports.LockedNode{
			Rev:          node.Locked.Rev,
			LastModified: node.Locked.LastModified,
		}
	}
	return nodes, nil
}

var _ ports.FlakeMetadataPort = NixMetadataAdapter{}
