package ports

import "flake-freshness/internal/types"

// ConfigSourcePort locates and loads the freshness package declaration.
type ConfigSourcePort interface {
	// Find returns the config path to use. A non-empty override must
	// exist or an error is returned; otherwise default locations are
	// probed in priority order.
	Find(override string) (string, error)

	// Load parses the config and returns the flattened input x package
	// cross-product.
	Load(path string) ([]types.TrackedPackage, error)
}
