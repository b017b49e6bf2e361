package response

import (
	"encoding/json"
	"net/http"
)

// HTTPError represents a structured error response that implements the error interface.
// It can be returned as an error (the router's error handler picks up its status)
// or rendered directly as a JSON response.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error with a custom message and 500 status.
func NewHTTPError(message string) HTTPError {
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// Render writes the error as a JSON body.
func (e HTTPError) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	return json.NewEncoder(w).Encode(e)
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func httpError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest          = httpError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized        = httpError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = httpError(http.StatusForbidden, "forbidden")
	ErrNotFound            = httpError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = httpError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict            = httpError(http.StatusConflict, "conflict")
	ErrUpgradeRequired     = httpError(http.StatusUpgradeRequired, "upgrade_required")
	ErrTooManyRequests     = httpError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError = httpError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable  = httpError(http.StatusServiceUnavailable, "service_unavailable")
)
