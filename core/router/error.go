package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

var (
	// Mux errors
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("nil handler")
	ErrSealed           = errors.New("router is already serving requests")

	// Tree errors
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrWildcardPosition = errors.New("wildcard position must be last")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrParamConflict    = errors.New("conflicting parameter name")
)

// defaultErrorHandler logs err and converts it into a plain-text response.
// Errors that are themselves responses render as-is; errors implementing
// handler.StatusCoder choose the status. Server errors never expose the message.
func defaultErrorHandler[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) handler.Response {
		r := ctx.Request()
		attrs := []any{logger.Error(err), logger.Method(r.Method), logger.Path(r.URL.Path)}
		var pe PanicError
		if errors.As(err, &pe) {
			attrs = append(attrs, logger.Stack(pe.Stack()))
		}
		log.ErrorContext(r.Context(), "request failed", attrs...)

		var resp handler.Response
		if errors.As(err, &resp) {
			return resp
		}

		status := http.StatusInternalServerError
		var sc handler.StatusCoder
		if errors.As(err, &sc) {
			status = sc.StatusCode()
		}

		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		return response.StringWithStatus(msg, status)
	}
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError interface.
type panicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *panicError) Value() any {
	return e.value
}

// Stack returns the stack trace.
func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
