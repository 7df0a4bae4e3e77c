package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flake-freshness/internal/app"
)

type checkOptions struct {
	Flake       string
	Pkgs        string
	Input       string
	UpdatesOnly bool
	NoCache     bool
	JSON        bool
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().StringVar(&opts.Flake, "flake", "flake.nix", "Path to flake.nix")
	cmd.Flags().StringVar(&opts.Pkgs, "pkgs", "", "Path to freshness.toml config")
	cmd.Flags().StringVar(&opts.Input, "input", "", "Filter by specific input (e.g. pkgs-ai)")
	cmd.Flags().BoolVar(&opts.UpdatesOnly, "updates-only", false, "Only show packages with updates available")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Skip cache, force fresh lookups")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	_ = viper.BindPFlag("flake", cmd.Flags().Lookup("flake"))
	_ = viper.BindPFlag("pkgs", cmd.Flags().Lookup("pkgs"))
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("updates_only", cmd.Flags().Lookup("updates-only"))
	_ = viper.BindPFlag("no_cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("json", cmd.Flags().Lookup("json"))
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	jsonOutput := resolveBool(cmd, opts.JSON, "json", "json")

	service := app.NewService()
	if !jsonOutput {
		service.Progress = printInfo
	}

	result, err := service.Check(ctx, app.CheckRequest{
		FlakePath:   resolveString(cmd, opts.Flake, "flake", "flake"),
		ConfigPath:  resolveString(cmd, opts.Pkgs, "pkgs", "pkgs"),
		InputFilter: resolveString(cmd, opts.Input, "input", "input"),
		UpdatesOnly: resolveBool(cmd, opts.UpdatesOnly, "updates_only", "updates-only"),
		NoCache:     resolveBool(cmd, opts.NoCache, "no_cache", "no-cache"),
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	renderReport(cmd.OutOrStdout(), result)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
