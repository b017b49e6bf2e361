package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type errorResponse struct {
	err error
}

// StatusCode reports the status declared by the error, or 500.
func (e errorResponse) StatusCode() int {
	var sc handler.StatusCoder
	if errors.As(e.err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// Render returns the wrapped error so the router's error handler deals with it.
func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.err
}

// Error returns a response that propagates err to the router's error handler.
func Error(err error) handler.Response {
	return errorResponse{err: err}
}
