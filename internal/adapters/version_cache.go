package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/adrg/xdg"

	"flake-freshness/internal/ports"
)

// DefaultCacheTTL is how long a resolved version stays fresh.
const DefaultCacheTTL = 3600 * time.Second

// keySanitizer maps path-unsafe key characters to underscores before a
// key becomes a file name.
var keySanitizer = strings.NewReplacer("/", "_", ":", "_")

// FileCacheAdapter stores one file per cache key under the per-user
// cache directory. The file's mtime is the staleness reference and its
// content is the raw version string. There is no eviction beyond
// read-time TTL checks and no cross-process locking; concurrent writers
// race last-write-wins, which is benign because the same key always
// resolves to the same version for an immutable reference.
type FileCacheAdapter struct {
	Dir   string
	TTL   time.Duration
	Clock func() time.Time
}

func NewFileCacheAdapter() *FileCacheAdapter {
	return &FileCacheAdapter{
		Dir:   filepath.Join(xdg.CacheHome, appDirName),
		TTL:   DefaultCacheTTL,
		Clock: time.Now,
	}
}

// Get returns the cached value for key. A missing file or one older
// than the TTL counts as absent; stale files are left in place.
func (c *FileCacheAdapter) Get(key string) (string, bool) {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if c.Clock().Sub(info.ModTime()) >= c.TTL {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put overwrites the entry for key, creating the cache directory on
// first use.
func (c *FileCacheAdapter) Put(key string, value string) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	if err := os.WriteFile(c.path(key), []byte(value), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cache entry").
			WithCause(err)
	}
	return nil
}

// SanitizeKey replaces path-unsafe characters so a composite key can be
// used as a file name.
func SanitizeKey(key string) string {
	return keySanitizer.Replace(key)
}

func (c *FileCacheAdapter) path(key string) string {
	return filepath.Join(c.Dir, SanitizeKey(key)+".json")
}

var _ ports.VersionCachePort = (*FileCacheAdapter)(nil)
