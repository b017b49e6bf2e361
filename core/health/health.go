package health

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Liveness indicates the process is running. Always returns "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns 204 without a body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}

// Readiness runs every check and returns "READY" when all pass. Otherwise it
// logs the joined failures and answers 503 listing the failed check names.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var (
			errs   []error
			failed []string
		)
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				errs = append(errs, err)
				failed = append(failed, c.Name)
			}
		}

		if len(errs) > 0 {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component("health"),
				logger.Error(errors.Join(errs...)),
				slog.Any("checks", failed),
			)
			return response.ErrServiceUnavailable.WithDetails(map[string]any{"failed": failed})
		}

		return response.String("READY")
	}
}
