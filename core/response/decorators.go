package response

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type decorated struct {
	handler.Response
	apply func(w http.ResponseWriter)
}

// StatusCode forwards the status of the wrapped response.
func (d decorated) StatusCode() int {
	return handler.StatusOf(d.Response)
}

func (d decorated) Render(w http.ResponseWriter, r *http.Request) error {
	d.apply(w)
	return d.Response.Render(w, r)
}

// WithHeaders wraps a response with custom HTTP headers.
// Headers are set before the wrapped response is rendered.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return decorated{Response: resp, apply: func(w http.ResponseWriter) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
	}}
}

// WithHeader wraps a response with a single HTTP header.
func WithHeader(resp handler.Response, key, value string) handler.Response {
	return WithHeaders(resp, map[string]string{key: value})
}

// WithCookie wraps a response with an HTTP cookie.
// The cookie is set before the wrapped response is rendered.
func WithCookie(resp handler.Response, cookie *http.Cookie) handler.Response {
	if resp == nil || cookie == nil {
		return resp
	}
	return decorated{Response: resp, apply: func(w http.ResponseWriter) {
		http.SetCookie(w, cookie)
	}}
}
