package ports

// VersionCachePort is a time-bounded key/value store for resolved
// version strings. Entries past their TTL are reported as absent.
type VersionCachePort interface {
	Get(key string) (string, bool)
	Put(key string, value string) error
}
