package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type jsonResponse struct {
	status int
	data   any
}

func (j jsonResponse) StatusCode() int {
	return j.status
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)

	// No body for 204 or 304
	switch j.status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}
	return json.NewEncoder(w).Encode(j.data)
}

// JSON creates an application/json response with 200 OK status.
// Encoding happens at render time, directly into the response writer.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// A zero status becomes 204 for nil data and 200 otherwise.
func JSONWithStatus(v any, status int) handler.Response {
	if status == 0 {
		if v == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}
	return jsonResponse{status: status, data: v}
}
