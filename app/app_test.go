package app_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/app"
	"github.com/dmitrymomot/waypoint/core/config"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/health"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/server"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() app.Config {
	cfg := app.Config{
		Logger: logger.Config{AppName: "test", Env: "production"},
		Router: router.DefaultConfig(),
		Server: server.DefaultConfig(),
	}
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func TestAppDefaultPipeline(t *testing.T) {
	t.Parallel()

	var logs syncBuffer
	a, err := app.NewWithConfig(testConfig(),
		app.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	require.NoError(t, err)

	a.Router().Get("/users/:id", func(ctx *app.Context) handler.Response {
		ctx.Log().Info("fetching user")
		return response.JSON(map[string]string{"id": ctx.Param("id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"42"}`, w.Body.String())

	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	assert.Contains(t, logs.String(), `"msg":"fetching user"`)
	assert.Contains(t, logs.String(), `"msg":"http request"`)
	assert.Contains(t, logs.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, logs.String(), `"client_ip":"192.0.2.1"`)
}

func TestAppRun(t *testing.T) {
	t.Parallel()

	a, err := app.NewWithConfig(testConfig(), app.WithLogger(logger.Discard()))
	require.NoError(t, err)

	a.Router().Get("/ping", func(ctx *app.Context) handler.Response {
		return response.String("pong")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, a.Server().Running, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + a.Server().Addr() + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppOptions(t *testing.T) {
	t.Parallel()

	_, err := app.NewWithConfig(testConfig(), app.WithLogger(nil))
	assert.Error(t, err)

	_, err = app.NewWithConfig(testConfig(), app.WithRouter(nil))
	assert.Error(t, err)

	_, err = app.NewWithConfig(testConfig(), app.WithServer(nil))
	assert.Error(t, err)

	srv := server.New("127.0.0.1:0")
	a, err := app.NewWithConfig(testConfig(), app.WithServer(srv), app.WithLogger(logger.Discard()))
	require.NoError(t, err)
	assert.Same(t, srv, a.Server())

	cfg := testConfig()
	cfg.Server.Addr = ""
	_, err = app.NewWithConfig(cfg, app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, server.ErrMissingAddress)
}

func TestAppNewFromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "env-app")
	t.Setenv("SERVER_ADDR", "127.0.0.1:0")
	t.Setenv("ROUTER_WS_MAX_MESSAGE_SIZE", "2048")
	config.Reset()
	t.Cleanup(config.Reset)

	a, err := app.New(app.WithLogger(logger.Discard()))
	require.NoError(t, err)

	cfg := a.Config()
	assert.Equal(t, "env-app", cfg.Logger.AppName)
	assert.Equal(t, "127.0.0.1:0", cfg.Server.Addr)
	assert.EqualValues(t, 2048, cfg.Router.WSMaxMessageSize)
	assert.False(t, cfg.Router.WSAllowAnyOrigin)
}

func TestAppMountHealth(t *testing.T) {
	t.Parallel()

	a, err := app.NewWithConfig(testConfig(), app.WithLogger(logger.Discard()))
	require.NoError(t, err)
	a.MountHealth(health.Check{Name: "noop", Fn: func(context.Context) error { return nil }})

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// the server has not been started
	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"server"`)
}
