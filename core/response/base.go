package response

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Content is a buffered response with a known status code.
// Its status is inspectable before rendering, which the router relies on to
// detect not-found responses.
type Content struct {
	status      int
	contentType string
	body        []byte
}

// StatusCode returns the HTTP status the response will be written with.
func (c *Content) StatusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}

// Body returns the response body.
func (c *Content) Body() []byte {
	return c.body
}

// Render writes the content type, status and body.
func (c *Content) Render(w http.ResponseWriter, r *http.Request) error {
	if c.contentType != "" {
		w.Header().Set("Content-Type", c.contentType)
	}
	w.WriteHeader(c.StatusCode())
	if len(c.body) > 0 && r.Method != http.MethodHead {
		_, err := w.Write(c.body)
		return err
	}
	return nil
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return &Content{status: status, contentType: "text/plain; charset=utf-8", body: []byte(content)}
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with custom status code.
func HTMLWithStatus(content string, status int) handler.Response {
	return &Content{status: status, contentType: "text/html; charset=utf-8", body: []byte(content)}
}

// Bytes creates a response with custom content type and 200 OK status.
func Bytes(content []byte, contentType string) handler.Response {
	return BytesWithStatus(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return &Content{status: status, contentType: contentType, body: content}
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Response {
	return &Content{status: code}
}
