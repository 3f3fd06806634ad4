// Package cache provides the key/value stores behind phpgen's session state
// and Packagist responses.
//
// Every backend implements [Cache]: [MemoryCache] for a single server
// process, [RedisCache] for deployments with several instances, [FileCache]
// for CLI runs, and [NullCache] when caching is disabled. Entries carry an
// optional TTL; a zero TTL keeps them until deleted.
//
// Keys are built by a [Keyer] so that all components agree on the layout:
//
//	k := cache.NewDefaultKeyer()
//	k.SessionKey(id)                 // "session:<id>"
//	k.HTTPKey("packagist:", "a/b")   // "http:packagist::a/b"
//
// [NewScopedKeyer] prefixes every key, which lets several deployments share
// one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key for a cached HTTP response body.
	HTTPKey(namespace, key string) string

	// SessionKey is the key for the form state of a browser session.
	SessionKey(id string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) SessionKey(id string) string {
	return "session:" + id
}

// ScopedKeyer prefixes the keys of another Keyer, e.g. "phpgen:" when
// several applications share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) SessionKey(id string) string {
	return k.prefix + k.inner.SessionKey(id)
}

// NullCache stores nothing; every Get misses. It backs --no-cache and
// --no-save runs.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache {
	return &NullCache{}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
