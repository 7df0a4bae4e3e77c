package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"flake-freshness/internal/ports"
	"flake-freshness/internal/types"
)

// VersionResolver resolves a package's version under a flake reference,
// consulting the on-disk cache before shelling out to the evaluator. A
// single nix eval typically takes seconds, so a fresh cache entry
// short-circuits the call entirely.
type VersionResolver struct {
	Evaluator ports.EvaluatorPort
	Cache     ports.VersionCachePort
}

func NewVersionResolver(evaluator ports.EvaluatorPort, cache ports.VersionCachePort) VersionResolver {
	return VersionResolver{Evaluator: evaluator, Cache: cache}
}

// CacheKey builds the composite cache key for a (reference, input
// attribute, package) triple.
func CacheKey(flakeRef string, attrPath string, pkg string) string {
	return fmt.Sprintf("%s-%s-%s", flakeRef, attrPath, pkg)
}

// Resolve returns the package's version string, or the "not found"
// sentinel when evaluation fails. Failures are isolated: the evaluator's
// exit status never aborts the caller, and sentinel results are never
// written to the cache so a transient failure is retried next run.
func (r VersionResolver) Resolve(ctx context.Context, flakeRef string, attrPath string, pkg string, useCache bool) string {
	key := CacheKey(flakeRef, attrPath, pkg)

	if useCache {
		if cached, ok := r.Cache.Get(key); ok {
			log.Ctx(ctx).Debug().Str("key", key).Msg("version cache hit")
			return cached
		}
	}

	raw, err := r.Evaluator.Version(ctx, flakeRef, attrPath, pkg)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("package", pkg).Str("ref", flakeRef).Msg("version evaluation failed")
		return types.VersionNotFound
	}
	version := strings.TrimSpace(raw)
	if version == "" {
		return types.VersionNotFound
	}

	if useCache {
		if err := r.Cache.Put(key, version); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("version cache write failed")
		}
	}
	return version
}
