package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/middleware"
)

func TestRequestIDDefaultConfiguration(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Before(middleware.RequestID[*router.Context]())

	var capturedID string
	r.Get("/test", func(ctx *router.Context) handler.Response {
		id, ok := middleware.GetRequestID(ctx)
		assert.True(t, ok, "Request ID should be present in context")
		capturedID = id
		return response.NoContent()
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"))

	_, err := uuid.Parse(capturedID)
	require.NoError(t, err, "default ID should be a UUID")
}

func TestRequestIDReusesIncoming(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Before(middleware.RequestID[*router.Context]())
	r.Get("/test", func(ctx *router.Context) handler.Response {
		id, _ := middleware.GetRequestID(ctx)
		return response.String(id)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", w.Body.String())
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestRequestIDCustomConfig(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Before(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		HeaderName: "X-Trace-ID",
		Generator:  func() string { return "custom-123" },
	}))
	r.Get("/test", func(ctx *router.Context) handler.Response {
		id, _ := middleware.GetRequestID(ctx)
		return response.String(id)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	// ignored: UseExisting is off
	req.Header.Set("X-Trace-ID", "incoming")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "custom-123", w.Body.String())
	assert.Equal(t, "custom-123", w.Header().Get("X-Trace-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDOnHaltedResponse(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Before(
		middleware.RequestID[*router.Context](),
		func(ctx *router.Context) (handler.Result[*router.Context], error) {
			return handler.Halt(ctx, response.ErrUnauthorized), nil
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Before(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Skip: func(ctx handler.Context) bool { return ctx.Request().URL.Path == "/health" },
	}))
	r.Get("/health", func(ctx *router.Context) handler.Response {
		_, ok := middleware.GetRequestID(ctx)
		if ok {
			return response.StringWithStatus("unexpected id", http.StatusInternalServerError)
		}
		return response.String("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func BenchmarkRequestID(b *testing.B) {
	r := router.New[*router.Context]()
	r.Before(middleware.RequestID[*router.Context]())
	r.Get("/test", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}
