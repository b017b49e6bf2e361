package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
)

var requestStartKey = handler.NewKey[time.Time]("request_start")

// LoggingConfig configures the request logging stages.
type LoggingConfig struct {
	// Skip defines a function to skip logging for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// Level for completed requests; the zero value is slog.LevelInfo
	Level slog.Level

	// SlowRequestThreshold logs slower requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// RequestLogger returns a before stage that records the start time and an
// after stage that logs the completed request. Register them with
// Router.Before and Router.After. Requests halted by an earlier before stage
// never reach the after stage and are not logged.
func RequestLogger[C handler.Context](cfg LoggingConfig) (before, after handler.Middleware[C]) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	before = func(ctx C) (handler.Result[C], error) {
		if cfg.Skip == nil || !cfg.Skip(ctx) {
			handler.Set(ctx, requestStartKey, time.Now())
		}
		return handler.Continue(ctx), nil
	}

	after = func(ctx C) (handler.Result[C], error) {
		start, ok := handler.Get(ctx, requestStartKey)
		if !ok {
			return handler.Continue(ctx), nil
		}

		req := ctx.Request()
		latency := time.Since(start)

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request"),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.Latency(latency),
		}

		// without a response the router picks the not-found reply later,
		// so only a known status is logged
		var status int
		if resp := ctx.Response(); resp != nil {
			status = handler.StatusOf(resp)
			attrs = append(attrs, logger.StatusCode(status))
		} else {
			attrs = append(attrs, slog.Bool("matched", false))
		}

		if id, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip, ok := GetClientIP(ctx); ok {
			attrs = append(attrs, logger.ClientIP(ip))
		}

		level := cfg.Level
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case latency > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
		}

		cfg.Logger.LogAttrs(ctx, level, "http request", attrs...)
		return handler.Continue(ctx), nil
	}

	return before, after
}
