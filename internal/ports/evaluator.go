package ports

import "context"

// EvaluatorPort invokes the external nix evaluator. Calls are blocking
// and can take seconds; callers decide whether to consult a cache first.
type EvaluatorPort interface {
	// Version evaluates <flakeRef>#<attrPath>.<pkg>.version and returns
	// the raw string. A non-zero exit from the evaluator is returned as
	// an error, never as a panic or abort.
	Version(ctx context.Context, flakeRef string, attrPath string, pkg string) (string, error)

	// CurrentSystem returns the evaluator's builtins.currentSystem.
	CurrentSystem(ctx context.Context) (string, error)
}
