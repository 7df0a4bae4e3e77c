package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/types"
)

// ---------------------------------------------------------------------------
// ParseInputLine / ParseInputDecls
// ---------------------------------------------------------------------------

func TestParseInputLine(t *testing.T) {
	decl, ok := ParseInputLine(`    pkgs-stable.url = "github:nixos/nixpkgs/nixos-24.05";`)
	require.True(t, ok)
	assert.Equal(t, "pkgs-stable", decl.Input)
	assert.Equal(t, "nixos-24.05", decl.Branch)
}

func TestParseInputLineNoMatch(t *testing.T) {
	lines := []string{
		``,
		`description = "my flake";`,
		`home-manager.url = "github:nix-community/home-manager";`,
		`nixpkgs.url = "github:nixos/nixpkgs/nixos-unstable";`,
		`pkgs-ai.url = "github:someone-else/nixpkgs/master";`,
	}
	for _, line := range lines {
		_, ok := ParseInputLine(line)
		assert.False(t, ok, "unexpected match: %q", line)
	}
}

func TestParseInputLineStripsQueryAndFragment(t *testing.T) {
	// The branch capture stops at quote, '?' and '#'.
	decl, ok := ParseInputLine(`pkgs-ai.url = "github:nixos/nixpkgs/nixos-unstable?shallow=1";`)
	require.True(t, ok)
	assert.Equal(t, "nixos-unstable", decl.Branch)
}

func TestParseInputDecls(t *testing.T) {
	content := `{
  inputs = {
    pkgs-stable.url = "github:nixos/nixpkgs/nixos-24.05";
    pkgs-ai.url = "github:nixos/nixpkgs/nixos-unstable";
    flake-utils.url = "github:numtide/flake-utils";
  };
}`
	decls := ParseInputDecls(content)
	expected := []InputDecl{
		{Input: "pkgs-stable", Branch: "nixos-24.05"},
		{Input: "pkgs-ai", Branch: "nixos-unstable"},
	}
	if diff := cmp.Diff(expected, decls); diff != "" {
		t.Fatalf("decls mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// InputExtractor
// ---------------------------------------------------------------------------

type fakeMetadata struct {
	nodes map[string]ports.LockedNode
	err   error
	calls int
}

func (f *fakeMetadata) LockedNodes(_ context.Context, _ string) (map[string]ports.LockedNode, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.nodes, nil
}

func writeFlake(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flake.nix")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractJoinsLockGraph(t *testing.T) {
	path := writeFlake(t, `pkgs-stable.url = "github:nixos/nixpkgs/nixos-24.05";`)
	metadata := &fakeMetadata{nodes: map[string]ports.LockedNode{
		"pkgs-stable": {Rev: "abc123", LastModified: 1700000000},
	}}

	bindings, err := NewInputExtractor(metadata).Extract(t.Context(), path)
	require.NoError(t, err)

	expected := map[string]types.InputBinding{
		"pkgs-stable": {
			Input:        "pkgs-stable",
			Branch:       "nixos-24.05",
			LockedRev:    "abc123",
			LastModified: 1700000000,
		},
	}
	if diff := cmp.Diff(expected, bindings); diff != "" {
		t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractInputWithoutLockNode(t *testing.T) {
	path := writeFlake(t, `pkgs-ai.url = "github:nixos/nixpkgs/nixos-unstable";`)
	metadata := &fakeMetadata{nodes: map[string]ports.LockedNode{}}

	bindings, err := NewInputExtractor(metadata).Extract(t.Context(), path)
	require.NoError(t, err)
	require.Contains(t, bindings, "pkgs-ai")
	assert.Empty(t, bindings["pkgs-ai"].LockedRev)
}

func TestExtractMetadataFailureDegradesToEmpty(t *testing.T) {
	path := writeFlake(t, `pkgs-stable.url = "github:nixos/nixpkgs/nixos-24.05";`)
	metadata := &fakeMetadata{err: errors.New("metadata query exploded")}

	bindings, err := NewInputExtractor(metadata).Extract(t.Context(), path)
	require.NoError(t, err)
	assert.Empty(t, bindings)
}

func TestExtractMetadataFailureWarningIsWritten(t *testing.T) {
	path := writeFlake(t, `pkgs-stable.url = "github:nixos/nixpkgs/nixos-24.05";`)
	metadata := &fakeMetadata{err: errors.New("metadata query exploded")}

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	_, err := NewInputExtractor(metadata).Extract(ctx, path)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "flake metadata query failed")
}

func TestExtractNoDeclaredInputsSkipsMetadata(t *testing.T) {
	path := writeFlake(t, `description = "no tracked inputs here";`)
	metadata := &fakeMetadata{}

	bindings, err := NewInputExtractor(metadata).Extract(t.Context(), path)
	require.NoError(t, err)
	assert.Empty(t, bindings)
	assert.Zero(t, metadata.calls)
}

func TestExtractMissingFlakeFails(t *testing.T) {
	_, err := NewInputExtractor(&fakeMetadata{}).Extract(t.Context(), filepath.Join(t.TempDir(), "missing.nix"))
	require.Error(t, err)
}
