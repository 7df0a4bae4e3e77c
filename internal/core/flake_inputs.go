package core

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/types"
)

// InputDecl is one `pkgs-<suffix>.url = "github:nixos/nixpkgs/<branch>"`
// line from a flake.nix, before the lock graph is consulted.
type InputDecl struct {
	Input  string
	Branch string
}

// inputLine matches the synthetic nixpkgs input declarations this tool
// tracks. The textual format of flake.nix is not guaranteed; anything
// that does not match is ignored rather than treated as an error.
var inputLine = regexp.MustCompile(`^\s*(pkgs-[A-Za-z0-9_-]+)\.url\s*=\s*"github:nixos/nixpkgs/([^"?#]+)"`)

// ParseInputLine extracts an input declaration from a single flake.nix
// line. The second return is false when the line does not declare a
// tracked nixpkgs input.
func ParseInputLine(line string) (InputDecl, bool) {
	match := inputLine.FindStringSubmatch(line)
	if match == nil {
		return InputDecl{}, false
	}
	return InputDecl{Input: match[1], Branch: match[2]}, true
}

// ParseInputDecls scans full flake.nix content for tracked input
// declarations, in file order.
func ParseInputDecls(content string) []InputDecl {
	var decls []InputDecl
	for _, line := range strings.Split(content, "\n") {
		if decl, ok := ParseInputLine(line); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

// InputExtractor joins flake.nix input declarations with the resolved
// lock graph to produce per-input bindings.
type InputExtractor struct {
	Metadata ports.FlakeMetadataPort
}

func NewInputExtractor(metadata ports.FlakeMetadataPort) InputExtractor {
	return InputExtractor{Metadata: metadata}
}

// Extract returns one binding per declared input. A failing metadata
// query degrades to an empty map rather than an error: downstream the
// affected packages report "no lock" instead of aborting the run.
// Reading the flake file itself is still fatal.
func (e InputExtractor) Extract(ctx context.Context, flakePath string) (map[string]types.InputBinding, error) {
	content, err := os.ReadFile(flakePath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("flake file not found").
			WithCause(err)
	}
	decls := ParseInputDecls(string(content))
	if len(decls) == 0 {
		return map[string]types.InputBinding{}, nil
	}

	nodes, err := e.Metadata.LockedNodes(ctx, filepath.Dir(flakePath))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("flake metadata query failed, continuing without lock data")
		return map[string]types.InputBinding{}, nil
	}

	bindings := make(map[string]types.InputBinding, len(decls))
	for _, decl := range decls {
		binding := types.InputBinding{Input: decl.Input, Branch: decl.Branch}
		if node, ok := nodes[decl.Input]; ok {
			binding.LockedRev = node.Rev
			binding.LastModified = node.LastModified
		}
		bindings[decl.Input] = binding
	}
	log.Ctx(ctx).Debug().Int("inputs", len(bindings)).Msg("input bindings extracted")
	return bindings, nil
}
