package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"flake-freshness/internal/core"
	"flake-freshness/internal/shared"
	"flake-freshness/internal/types"
)

// fallbackSystem is used when the evaluator cannot report the current
// system; it keeps the run going with the most common architecture.
const fallbackSystem = "x86_64-linux"

const nixpkgsRefPrefix = "github:nixos/nixpkgs/"

// Check runs the whole freshness pipeline: config discovery, input
// extraction, per-package version resolution, and classification.
// Structural failures (missing flake, missing or malformed config)
// abort with an error; everything downstream degrades per item and is
// reported through outcomes and warnings.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	assert.NotEmpty(ctx, req.FlakePath, "flake path must be set")

	if _, err := os.Stat(req.FlakePath); err != nil {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("flake.nix not found at %s", req.FlakePath)).
			WithCause(err)
	}

	configPath, err := s.Config.Find(req.ConfigPath)
	if err != nil {
		return CheckResult{}, err
	}
	s.progress(fmt.Sprintf("Loading packages from: %s", configPath))
	packages, err := s.Config.Load(configPath)
	if err != nil {
		return CheckResult{}, err
	}

	s.progress(fmt.Sprintf("Extracting inputs from: %s", req.FlakePath))
	extractor := core.NewInputExtractor(s.Metadata)
	bindings, err := extractor.Extract(ctx, req.FlakePath)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{ConfigPath: configPath}

	if req.InputFilter != "" {
		filtered := packages[:0]
		for _, pkg := range packages {
			if pkg.Input == req.InputFilter {
				filtered = append(filtered, pkg)
			}
		}
		packages = filtered
	}
	if len(packages) == 0 {
		result.Warnings = append(result.Warnings, "no packages found to check")
		return result, nil
	}

	system, err := s.Evaluator.CurrentSystem(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("could not detect current system")
		system = fallbackSystem
	}
	attrPath := fmt.Sprintf("legacyPackages.%s", system)

	s.progress(fmt.Sprintf("Checking %d packages...", len(packages)))

	resolver := core.NewVersionResolver(s.Evaluator, s.Cache)
	useCache := !req.NoCache

	for _, pkg := range packages {
		binding, ok := bindings[pkg.Input]
		if !ok {
			reason := fmt.Sprintf("no info found for input %s", pkg.Input)
			result.Warnings = append(result.Warnings, reason)
			result.Outcomes = append(result.Outcomes, CheckOutcome{
				Tracked: pkg,
				Kind:    OutcomeMissingInput,
				Reason:  reason,
			})
			continue
		}

		s.progress(fmt.Sprintf("  Checking %s from %s...", pkg.Package, pkg.Input))

		current := types.VersionNoLock
		if binding.LockedRev != "" {
			current = resolver.Resolve(ctx, nixpkgsRefPrefix+binding.LockedRev, attrPath, pkg.Package, useCache)
		}
		latest := resolver.Resolve(ctx, nixpkgsRefPrefix+binding.Branch, attrPath, pkg.Package, useCache)

		row := types.ReportRow{
			Package: pkg.Package,
			Input:   pkg.Input,
			Branch:  binding.Branch,
			Current: current,
			Latest:  latest,
			Status:  core.Compare(current, latest),
		}
		result.Outcomes = append(result.Outcomes, CheckOutcome{
			Tracked: pkg,
			Kind:    OutcomeResolved,
			Row:     row,
		})
	}

	s.summarize(&result, bindings, req.UpdatesOnly)
	return result, nil
}

// summarize fills the display rows and the outdated-input summary from
// the collected outcomes.
func (s Service) summarize(result *CheckResult, bindings map[string]types.InputBinding, updatesOnly bool) {
	inputs := map[string]struct{}{}
	for _, outcome := range result.Outcomes {
		if outcome.Kind != OutcomeResolved {
			continue
		}
		row := outcome.Row
		if row.Status == types.StatusOutdated {
			result.OutdatedCount++
			inputs[row.Input] = struct{}{}
		}
		if updatesOnly && row.Status != types.StatusOutdated {
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}
	result.InputAges = map[string]string{}
	for input := range inputs {
		result.InputsToUpdate = append(result.InputsToUpdate, input)
		if binding, ok := bindings[input]; ok {
			result.InputAges[input] = shared.FormatAge(binding.LastModified, now)
		}
	}
	sort.Strings(result.InputsToUpdate)
}

// UpdateCommand is the suggested remediation for an outdated input.
func UpdateCommand(input string) string {
	return fmt.Sprintf("nix flake lock --update-input %s", input)
}
