package adapters

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/shared"
)

// NixEvalAdapter shells out to the nix evaluator. Calls are blocking and
// inherit whatever deadline the context carries; no retries are made.
type NixEvalAdapter struct{}

func NewNixEvalAdapter() NixEvalAdapter {
	return NixEvalAdapter{}
}

// Version evaluates <flakeRef>#<attrPath>.<pkg>.version with --raw and
// returns stdout. A non-zero exit is returned as an error wrapping the
// evaluator's combined output.
func (a NixEvalAdapter) Version(ctx context.Context, flakeRef string, attrPath string, pkg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	attr := fmt.Sprintf("%s#%s.%s.version", flakeRef, attrPath, pkg)
	cmd := exec.CommandContext(ctx, "nix", "eval", attr, "--raw")
	output, err := cmd.Output()
	if err != nil {
		return "", shared.CommandError(output, err)
	}
	return string(output), nil
}

// CurrentSystem returns builtins.currentSystem from the evaluator.
func (a NixEvalAdapter) CurrentSystem(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, "nix", "eval", "--impure", "--expr", "builtins.currentSystem", "--raw")
	output, err := cmd.Output()
	if err != nil {
		return "", shared.CommandError(output, err)
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.EvaluatorPort = NixEvalAdapter{}
