package app

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/middleware"
)

// Context is the request context handed to application handlers.
type Context struct {
	*router.Context
	log *slog.Logger
}

// Log returns the application logger tagged with the request ID when one is set.
func (c *Context) Log() *slog.Logger {
	if id, ok := middleware.GetRequestID(c); ok {
		return c.log.With(logger.RequestID(id))
	}
	return c.log
}

// contextFactory binds new contexts to log.
func contextFactory(log *slog.Logger) func(http.ResponseWriter, *http.Request) *Context {
	return func(w http.ResponseWriter, r *http.Request) *Context {
		return &Context{Context: router.NewContext(w, r), log: log}
	}
}
