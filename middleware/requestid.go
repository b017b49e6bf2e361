package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// requestIDKey stores the request ID in the request context.
var requestIDKey = handler.NewKey[string]("request_id")

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting determines whether to use an existing request ID from the incoming request
	UseExisting bool
}

// RequestID creates a before stage that reuses an incoming X-Request-ID or
// generates a UUID v4, stores it in the context and echoes it in the response.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{UseExisting: true})
}

// RequestIDWithConfig creates a request ID before stage with custom configuration.
// The header is set on the response writer right away, so it survives any
// response a later stage or the handler attaches.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(ctx C) (handler.Result[C], error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Continue(ctx), nil
		}

		var requestID string
		if cfg.UseExisting {
			requestID = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		handler.Set(ctx, requestIDKey, requestID)
		ctx.ResponseWriter().Header().Set(cfg.HeaderName, requestID)

		return handler.Continue(ctx), nil
	}
}

// GetRequestID retrieves the request ID from the request context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx handler.Context) (string, bool) {
	return handler.Get(ctx, requestIDKey)
}
