package router

import (
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// standardMethods is the fixed set Any registers against.
var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	trees        map[string]*node[handler.HandlerFunc[C]]
	wsTree       *node[*WSHandlers[C]]
	chain        chain[C]
	errorHandler handler.ErrorHandler[C]
	notFound     handler.NotFoundHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	upgrader     *websocket.Upgrader
	wsReadLimit  int64

	// set on the first request; registration afterwards panics
	sealed atomic.Bool
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		trees:  make(map[string]*node[handler.HandlerFunc[C]]),
		wsTree: &node[*WSHandlers[C]]{},
		logger: logger.Discard(),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.errorHandler == nil {
		m.errorHandler = defaultErrorHandler[C](m.logger)
	}
	if m.notFound == nil {
		m.notFound = m.defaultNotFound
	}

	// If no context factory provided, require it for non-default contexts
	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.sealed.Store(true)

	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			m.fail(ww, ctx, &panicError{value: p, stack: debug.Stack()})
		}
	}()

	if websocket.IsWebSocketUpgrade(r) && m.serveWebSocket(ww, ctx) {
		return
	}

	ctx, err := m.Dispatch(ctx)
	if err != nil {
		m.fail(ww, ctx, err)
		return
	}

	m.send(ww, ctx)
}

// send renders the context's response. A context locked without a response
// sends an empty reply.
func (m *mux[C]) send(ww *responseWriter, ctx C) {
	resp := ctx.Response()
	if resp == nil {
		return
	}
	if err := resp.Render(ww, ctx.Request()); err != nil {
		m.fail(ww, ctx, err)
	}
}

// Dispatch runs the before stages, the matched handler and the after stages.
// Every step is skipped once the context is locked. An unlocked context that
// ends without a response, or with a 404 one, gets the not-found response.
func (m *mux[C]) Dispatch(ctx C) (C, error) {
	ctx, err := m.chain.runBefore(ctx)
	if err != nil {
		return ctx, err
	}

	if !ctx.Locked() {
		r := ctx.Request()
		match := m.Find(r.Method, requestPath(r))
		if match.Found() {
			ctx.SetParams(unescapeParams(r, match.Params))
			ctx.SetResponse(match.Handler(ctx))
		}
	}

	if !ctx.Locked() {
		ctx, err = m.chain.runAfter(ctx)
		if err != nil {
			return ctx, err
		}
	}

	if !ctx.Locked() {
		if resp := ctx.Response(); resp == nil || handler.StatusOf(resp) == http.StatusNotFound {
			ctx.SetResponse(m.notFound(ctx))
		}
	}

	return ctx, nil
}

// fail hands err to the error handler unless the response is already on the wire.
// A nil fallback response drops the connection.
func (m *mux[C]) fail(ww *responseWriter, ctx C, err error) {
	r := ctx.Request()
	if ww.Written() {
		m.logger.ErrorContext(r.Context(), "request failed after response was written",
			logger.Error(err),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(ww.Status()),
		)
		return
	}

	resp := m.errorHandler(ctx, err)
	if resp == nil {
		panic(http.ErrAbortHandler)
	}
	if rerr := resp.Render(ww, r); rerr != nil {
		m.logger.ErrorContext(r.Context(), "error response render failed",
			logger.Errors(err, rerr),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
	}
}

// defaultNotFound answers 405 with an Allow header when the request method has
// no route for the path but another method does, and 404 otherwise. A 404 from
// a matched handler stays a 404.
func (m *mux[C]) defaultNotFound(ctx C) handler.Response {
	r := ctx.Request()
	path := requestPath(r)
	if m.Find(r.Method, path).Found() {
		return response.StringWithStatus(http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
	if allowed := m.Allowed(path); len(allowed) > 0 {
		return response.WithHeader(
			response.StringWithStatus(http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed),
			"Allow", strings.Join(allowed, ", "),
		)
	}
	return response.StringWithStatus(http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, h)
}

// Connect registers a handler for CONNECT requests.
func (m *mux[C]) Connect(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodConnect, pattern, h)
}

// Trace registers a handler for TRACE requests.
func (m *mux[C]) Trace(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodTrace, pattern, h)
}

// On registers a handler for an arbitrary method. The method is upper-cased.
func (m *mux[C]) On(method, pattern string, h handler.HandlerFunc[C]) {
	method = strings.ToUpper(method)
	if !validMethod(method) {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidMethod, method))
	}
	m.handle(method, pattern, h)
}

// Any registers a handler for every standard HTTP method.
func (m *mux[C]) Any(pattern string, h handler.HandlerFunc[C]) {
	for _, method := range standardMethods {
		m.handle(method, pattern, h)
	}
}

// Before appends stages that run ahead of route lookup.
func (m *mux[C]) Before(mws ...handler.Middleware[C]) int {
	return m.Use(Before, mws...)
}

// After appends stages that run after the handler.
func (m *mux[C]) After(mws ...handler.Middleware[C]) int {
	return m.Use(After, mws...)
}

// Use appends stages to the list selected by pos and returns its new length.
func (m *mux[C]) Use(pos Position, mws ...handler.Middleware[C]) int {
	m.checkSealed()
	for _, mw := range mws {
		if mw == nil {
			panic(fmt.Errorf("%w: middleware", ErrNilHandler))
		}
	}
	return m.chain.register(pos, mws...)
}

// Find looks up the handler registered for method and path.
func (m *mux[C]) Find(method, path string) Match[C] {
	t, ok := m.trees[strings.ToUpper(method)]
	if !ok {
		return Match[C]{}
	}
	ep, params := t.findRoute(path)
	if ep == nil {
		return Match[C]{}
	}
	return Match[C]{Handler: ep.value, Pattern: ep.pattern, Params: params}
}

// Allowed lists, in sorted order, the methods with a route matching path.
func (m *mux[C]) Allowed(path string) []string {
	var allowed []string
	for method, t := range m.trees {
		if ep, _ := t.findRoute(path); ep != nil {
			allowed = append(allowed, method)
		}
	}
	slices.Sort(allowed)
	return allowed
}

// Routes returns all registered routes sorted by pattern, then method.
// WebSocket routes are reported with the method "WS".
func (m *mux[C]) Routes() []Route {
	rts := []Route{}
	for method, t := range m.trees {
		t.walk(func(ep *endpoint[handler.HandlerFunc[C]]) {
			rts = append(rts, Route{Method: method, Pattern: ep.pattern})
		})
	}
	m.wsTree.walk(func(ep *endpoint[*WSHandlers[C]]) {
		rts = append(rts, Route{Method: "WS", Pattern: ep.pattern})
	})

	slices.SortFunc(rts, func(a, b Route) int {
		return cmp.Or(cmp.Compare(a.Pattern, b.Pattern), cmp.Compare(a.Method, b.Method))
	})
	return rts
}

// handle registers a handler in the routing tree for method.
func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	m.checkSealed()
	if h == nil {
		panic(fmt.Errorf("%w on '%s %s'", ErrNilHandler, method, pattern))
	}

	t, ok := m.trees[method]
	if !ok {
		t = &node[handler.HandlerFunc[C]]{}
		m.trees[method] = t
	}
	if err := t.insertRoute(pattern, h); err != nil {
		panic(err)
	}
}

func (m *mux[C]) checkSealed() {
	if m.sealed.Load() {
		panic(ErrSealed)
	}
}

// requestPath returns the path used for routing, preserving URL encoding
// when the request carries a raw path.
func requestPath(r *http.Request) string {
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}
	return path
}

// unescapeParams decodes captured values when routing used the raw path.
func unescapeParams(r *http.Request, params map[string]string) map[string]string {
	if r.URL.RawPath == "" {
		return params
	}
	for k, v := range params {
		if u, err := url.PathUnescape(v); err == nil {
			params[k] = u
		}
	}
	return params
}

// validMethod reports whether method is a non-empty HTTP token.
func validMethod(method string) bool {
	if method == "" {
		return false
	}
	return strings.IndexFunc(method, func(r rune) bool {
		return r <= ' ' || r >= 0x7f || strings.ContainsRune(`()<>@,;:\"/[]?={}`, r)
	}) < 0
}
