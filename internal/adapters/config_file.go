package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/types"
)

const appDirName = "flake-freshness"

// freshnessConfig is the on-disk shape of freshness.toml (or .yaml): a
// packages table mapping input names to package name lists.
type freshnessConfig struct {
	Packages map[string][]string `toml:"packages" yaml:"packages"`
}

// ConfigFileAdapter discovers and parses the freshness package config.
type ConfigFileAdapter struct {
	// WorkDir anchors the relative probe locations; empty means the
	// process working directory.
	WorkDir string
	// ConfigHome overrides the user config directory, for tests.
	ConfigHome string
}

func NewConfigFileAdapter() ConfigFileAdapter {
	return ConfigFileAdapter{}
}

// Find returns the config path to use. An explicit override must exist;
// otherwise the project-local file, the user config directory, and the
// repo-relative scripts location are probed in that order.
func (a ConfigFileAdapter) Find(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		if _, err := os.Stat(override); err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("packages config not found: %s", override)).
				WithCause(err)
		}
		return override, nil
	}
	for _, candidate := range a.defaultPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no config found. Create freshness.toml in your project root or ~/.config/flake-freshness/freshness.toml")
}

// Load parses the config and flattens it into the inputs x packages
// cross-product. Inputs are ordered by name so repeated runs produce
// identical row order; duplicate package entries are kept.
func (a ConfigFileAdapter) Load(path string) ([]types.TrackedPackage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("packages config not readable").
			WithCause(err)
	}
	var config freshnessConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse packages config").
			WithCause(err)
	}
	if config.Packages == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("freshness config must contain a [packages] section")
	}

	inputs := make([]string, 0, len(config.Packages))
	for input := range config.Packages {
		inputs = append(inputs, input)
	}
	sort.Strings(inputs)

	var packages []types.TrackedPackage
	for _, input := range inputs {
		for _, pkg := range config.Packages[input] {
			packages = append(packages, types.TrackedPackage{Package: pkg, Input: input})
		}
	}
	return packages, nil
}

func (a ConfigFileAdapter) defaultPaths() []string {
	configHome := a.ConfigHome
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return []string{
		filepath.Join(a.WorkDir, "freshness.toml"),
		filepath.Join(configHome, appDirName, "freshness.toml"),
		filepath.Join(a.WorkDir, "scripts", appDirName, "freshness.toml"),
	}
}

var _ ports.ConfigSourcePort = ConfigFileAdapter{}
