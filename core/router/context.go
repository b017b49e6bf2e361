package router

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Context is the default request context. It delegates all context.Context
// methods to the request's context and carries the per-request pipeline
// state: captured params, stage-to-stage values, the attached response and
// the one-way lock.
//
// Embed *Context in an application type and register a factory with
// WithContextFactory to add typed fields.
type Context struct {
	w        http.ResponseWriter
	r        *http.Request
	params   map[string]string
	values   map[any]any
	response handler.Response
	locked   bool
}

// NewContext creates a Context for the given writer and request.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

// Deadline delegates to the request context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns a value stored with SetValue, falling back to the request context.
func (c *Context) Value(key any) any {
	if val, ok := c.values[key]; ok {
		return val
	}
	return c.r.Context().Value(key)
}

// SetValue stores a request-scoped value.
func (c *Context) SetValue(key, val any) {
	if c.locked {
		return
	}
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the URL parameter by key.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// Params returns all captured URL parameters.
func (c *Context) Params() map[string]string {
	return c.params
}

// SetParams replaces the captured URL parameters.
func (c *Context) SetParams(params map[string]string) {
	if c.locked {
		return
	}
	c.params = params
}

// Response returns the attached response.
func (c *Context) Response() handler.Response {
	return c.response
}

// SetResponse attaches a response.
func (c *Context) SetResponse(resp handler.Response) {
	if c.locked {
		return
	}
	c.response = resp
}

// ForceSend locks the context. It is idempotent.
func (c *Context) ForceSend() {
	c.locked = true
}

// Locked reports whether the context has been locked.
func (c *Context) Locked() bool {
	return c.locked
}
