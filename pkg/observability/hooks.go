// Package observability lets the CLI and server observe library events
// without the libraries depending on a logging or metrics backend.
//
// Hooks exist for catalog searches, generation requests, cache traffic and
// outgoing registry calls. All default to no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCatalogHooks(&myCatalogHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Catalog().OnSearch(ctx, framework, query, len(results))
package observability

import (
	"context"
	"sync"
	"time"
)

// CatalogHooks receives events from the dependency catalog.
type CatalogHooks interface {
	// OnSearch records a dependency search and the number of matches.
	OnSearch(ctx context.Context, framework, query string, results int)
}

// GenerateHooks receives events from project generation requests.
type GenerateHooks interface {
	// OnGenerate records a generation request; err is nil on success.
	OnGenerate(ctx context.Context, framework string, dependencies int, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopCatalogHooks is a no-op implementation of CatalogHooks.
type NoopCatalogHooks struct{}

func (NoopCatalogHooks) OnSearch(context.Context, string, string, int) {}

// NoopGenerateHooks is a no-op implementation of GenerateHooks.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnGenerate(context.Context, string, int, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds the registered implementation of one hook interface.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

func (s *slot[T]) reset() {
	s.set(s.noop)
}

var (
	catalogHooks  = newSlot[CatalogHooks](NoopCatalogHooks{})
	generateHooks = newSlot[GenerateHooks](NoopGenerateHooks{})
	cacheHooks    = newSlot[CacheHooks](NoopCacheHooks{})
	httpHooks     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetCatalogHooks registers catalog hooks. Nil is ignored, as it is for
// the other setters.
func SetCatalogHooks(h CatalogHooks) {
	if h != nil {
		catalogHooks.set(h)
	}
}

// SetGenerateHooks registers generation hooks.
func SetGenerateHooks(h GenerateHooks) {
	if h != nil {
		generateHooks.set(h)
	}
}

// SetCacheHooks registers cache hooks.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetHTTPHooks registers hooks for outgoing registry requests.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.set(h)
	}
}

// Catalog returns the registered catalog hooks.
func Catalog() CatalogHooks { return catalogHooks.get() }

// Generate returns the registered generation hooks.
func Generate() GenerateHooks { return generateHooks.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op defaults. Tests call it in t.Cleanup.
func Reset() {
	catalogHooks.reset()
	generateHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
