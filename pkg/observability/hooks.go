// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about navigation, region focus, autoplay state, cache
// operations, and catalog fetches.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are observability plumbing only. The engine's own components are
// owned by an exhibit.App and never looked up through this registry.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExhibitHooks(&myExhibitHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Components call hooks to emit events:
//
//	observability.Exhibit().OnFocus(regionID, "auto")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Exhibit Hooks
// =============================================================================

// ExhibitHooks receives events from a running exhibit.
// Calls happen synchronously on the host loop and must not block.
type ExhibitHooks interface {
	// OnNavigate records a change of the current artwork.
	OnNavigate(index int, artworkID string)

	// OnFocus records a region gaining focus; source is "auto" or "manual".
	OnFocus(regionID, source string)

	// OnAutoPlay records autoplay being enabled or disabled.
	OnAutoPlay(enabled bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExhibitHooks is a no-op implementation of ExhibitHooks.
type NoopExhibitHooks struct{}

func (NoopExhibitHooks) OnNavigate(int, string) {}
func (NoopExhibitHooks) OnFocus(string, string) {}
func (NoopExhibitHooks) OnAutoPlay(bool)        {}

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

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exhibitHooks ExhibitHooks = NoopExhibitHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetExhibitHooks registers custom exhibit hooks.
// This should be called once at application startup before an exhibit runs.
func SetExhibitHooks(h ExhibitHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exhibitHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Exhibit returns the registered exhibit hooks.
func Exhibit() ExhibitHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exhibitHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exhibitHooks = NoopExhibitHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
