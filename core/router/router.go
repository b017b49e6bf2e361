package router

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Router is the main routing interface for handling HTTP requests.
// It keeps one routing trie per HTTP method plus one for WebSocket routes,
// and runs every request through the before/after middleware pipeline.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])
	Connect(pattern string, h handler.HandlerFunc[C])
	Trace(pattern string, h handler.HandlerFunc[C])

	// Generic handlers
	On(method, pattern string, h handler.HandlerFunc[C])
	Any(pattern string, h handler.HandlerFunc[C])

	// WS registers WebSocket callbacks for pattern.
	WS(pattern string, h WSHandlers[C])

	// Middleware. Each call returns the new length of the list.
	Before(mws ...handler.Middleware[C]) int
	After(mws ...handler.Middleware[C]) int
	Use(pos Position, mws ...handler.Middleware[C]) int

	// Find looks up the handler for method and path without running it.
	Find(method, path string) Match[C]
	// Allowed lists the methods that have a route matching path.
	Allowed(path string) []string

	// Dispatch runs the full pipeline for ctx and returns the final context,
	// whose Response is the one to send.
	Dispatch(ctx C) (C, error)
}

// Routes provides route introspection capabilities for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single route in the router with its HTTP method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// Match is the result of a route lookup. The zero Match means "not found".
type Match[C handler.Context] struct {
	Handler handler.HandlerFunc[C]
	Pattern string
	Params  map[string]string
}

// Found reports whether the lookup matched a route.
func (m Match[C]) Found() bool {
	return m.Handler != nil
}

// New creates a new router with the given options.
// The router supports generic context types for type-safe request handling.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
