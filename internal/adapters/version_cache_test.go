package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *FileCacheAdapter {
	t.Helper()
	return &FileCacheAdapter{
		Dir:   filepath.Join(t.TempDir(), "cache"),
		TTL:   DefaultCacheTTL,
		Clock: time.Now,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	key := "github:nixos/nixpkgs/abc123-legacyPackages.x86_64-linux-ripgrep"

	require.NoError(t, cache.Put(key, "14.1.0"))
	value, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "14.1.0", value)
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	cache := newTestCache(t)
	_, ok := cache.Get("never-written")
	assert.False(t, ok)
}

func TestCacheExpiryWithInjectedClock(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("key", "1.0"))

	// Advance the clock past the TTL instead of sleeping.
	cache.Clock = func() time.Time { return time.Now().Add(DefaultCacheTTL + time.Second) }
	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestCacheStaleFileIsIgnoredNotDeleted(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("key", "1.0"))

	cache.Clock = func() time.Time { return time.Now().Add(2 * DefaultCacheTTL) }
	_, ok := cache.Get("key")
	require.False(t, ok)

	entries, err := os.ReadDir(cache.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "stale entry stays on disk")
}

func TestCachePutOverwrites(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("key", "1.0"))
	require.NoError(t, cache.Put("key", "2.0"))

	value, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "2.0", value)
}

func TestCacheCreatesDirectoryLazily(t *testing.T) {
	cache := newTestCache(t)
	_, err := os.Stat(cache.Dir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, cache.Put("key", "1.0"))
	_, err = os.Stat(cache.Dir)
	require.NoError(t, err)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t,
		"github_nixos_nixpkgs_abc123-legacyPackages.x86_64-linux-ripgrep",
		SanitizeKey("github:nixos/nixpkgs/abc123-legacyPackages.x86_64-linux-ripgrep"))
}

func TestSanitizeKeyDistinctForRealisticTriples(t *testing.T) {
	// Distinct (reference, attr, package) triples over the realistic
	// character set must map to distinct file names.
	keys := []string{
		"github:nixos/nixpkgs/abc123-legacyPackages.x86_64-linux-ripgrep",
		"github:nixos/nixpkgs/abc123-legacyPackages.x86_64-linux-fd",
		"github:nixos/nixpkgs/nixos-24.05-legacyPackages.x86_64-linux-ripgrep",
		"github:nixos/nixpkgs/nixos-unstable-legacyPackages.aarch64-linux-ripgrep",
	}
	seen := map[string]string{}
	for _, key := range keys {
		sanitized := SanitizeKey(key)
		previous, collision := seen[sanitized]
		require.False(t, collision, "%q and %q collide at %q", key, previous, sanitized)
		seen[sanitized] = key
	}
}
