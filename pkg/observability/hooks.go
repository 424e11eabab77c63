// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about enumerations and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The generators in pkg/permute never call hooks themselves; the code that
// drives an enumeration (CLI commands, the HTTP server) reports on it.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEnumerationHooks(&myEnumerationHooks{})
//	    // ... run application
//	}
//
// Drivers call hooks to emit events:
//
//	observability.Enumeration().OnEnumerateStart(ctx, "combinations", n, k)
//	// ... drain the generator ...
//	observability.Enumeration().OnEnumerateComplete(ctx, "combinations", count, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Enumeration Hooks
// =============================================================================

// EnumerationHooks receives events about enumerations being driven.
type EnumerationHooks interface {
	// OnEnumerateStart records the start of an enumeration over n elements.
	OnEnumerateStart(ctx context.Context, kind string, n, k int)

	// OnEnumerateComplete records how many items were produced.
	OnEnumerateComplete(ctx context.Context, kind string, items int64, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, requestID, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEnumerationHooks is a no-op implementation of EnumerationHooks.
type NoopEnumerationHooks struct{}

func (NoopEnumerationHooks) OnEnumerateStart(context.Context, string, int, int) {}
func (NoopEnumerationHooks) OnEnumerateComplete(context.Context, string, int64, time.Duration, error) {
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	enumerationHooks EnumerationHooks = NoopEnumerationHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetEnumerationHooks registers custom enumeration hooks.
// This should be called once at application startup before any enumeration.
func SetEnumerationHooks(h EnumerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		enumerationHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Enumeration returns the registered enumeration hooks.
func Enumeration() EnumerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return enumerationHooks
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
	enumerationHooks = NoopEnumerationHooks{}
	httpHooks = NoopHTTPHooks{}
}
