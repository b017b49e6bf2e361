package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Use router.Context for the default implementation, or embed it in an
// application-specific struct to add typed fields.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter

	// Param returns a path parameter captured by the matched route.
	Param(key string) string
	// Params returns all captured path parameters.
	Params() map[string]string
	// SetParams replaces the captured path parameters. Ignored once locked.
	SetParams(params map[string]string)

	// SetValue stores a request-scoped value. Ignored once locked.
	SetValue(key, val any)

	// Response returns the response attached so far, or nil.
	Response() Response
	// SetResponse attaches a response. Ignored once locked.
	SetResponse(resp Response)

	// ForceSend locks the context: no further middleware or handler runs and
	// the currently attached response is sent as-is. Calling it again is a no-op.
	ForceSend()
	// Locked reports whether ForceSend has been called.
	Locked() bool
}
