package handler

import "net/http"

// Response renders an HTTP response.
// Implementations set headers, status code and body.
// Rendering errors are handled by the router's error handler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts an ordinary function to the Response interface.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render calls f(w, r).
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// StatusCoder is implemented by responses and errors that know their HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// StatusOf returns the status code a response declares, or 0 when unknown.
func StatusOf(resp Response) int {
	if resp == nil {
		return 0
	}
	if sc, ok := resp.(StatusCoder); ok {
		return sc.StatusCode()
	}
	return 0
}

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// Middleware is a single pipeline stage run before or after the route handler.
// It returns Continue to pass a (possibly replaced) context on, Halt to stop
// the pipeline and send a response, or an error to abort the request.
type Middleware[C Context] func(ctx C) (Result[C], error)

// ErrorHandler converts a request-time failure into a fallback response.
// Returning nil asks the transport to drop the connection.
type ErrorHandler[C Context] func(ctx C, err error) Response

// NotFoundHandler produces the response for requests without a matching route.
type NotFoundHandler[C Context] func(ctx C) Response
