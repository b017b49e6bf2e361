package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/config"
	"github.com/dmitrymomot/waypoint/core/health"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/server"
	"github.com/dmitrymomot/waypoint/middleware"
)

// App wires the logger, router and server together.
type App struct {
	config Config
	router router.Router[*Context]
	server *server.Server
	logger *slog.Logger
}

var errServerNotRunning = errors.New("server is not running")

// Option configures an App.
type Option func(*App) error

// New loads the configuration from the environment and builds the components
// the options did not supply. The default router runs RequestID, ClientIP and
// the request logger on every request.
func New(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig is New with an explicit configuration.
func NewWithConfig(cfg Config, opts ...Option) (*App, error) {
	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.NewFromConfig(cfg.Logger)
	}

	if app.router == nil {
		app.router = defaultRouter(cfg.Router, app.logger)
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func defaultRouter(cfg router.Config, log *slog.Logger) router.Router[*Context] {
	before, after := middleware.RequestLogger[*Context](middleware.LoggingConfig{Logger: log})

	return router.NewFromConfig[*Context](cfg,
		router.WithContextFactory(contextFactory(log)),
		router.WithLogger[*Context](log),
		router.WithBefore(
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			before,
		),
		router.WithAfter(after),
	)
}

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

// WithRouter replaces the default router.
func WithRouter(router router.Router[*Context]) Option {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

// WithServer replaces the server built from configuration.
func WithServer(server *server.Server) Option {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

// Router returns the router for route registration.
func (a *App) Router() router.Router[*Context] {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config {
	return a.config
}

// Handler returns the router as an http.Handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Server returns the HTTP server.
func (a *App) Server() *server.Server {
	return a.server
}

// MountHealth registers GET /health/live and GET /health/ready. Readiness
// also fails while the server is not accepting connections.
func (a *App) MountHealth(checks ...health.Check) {
	running := health.Check{Name: "server", Fn: func(context.Context) error {
		if !a.server.Running() {
			return errServerNotRunning
		}
		return nil
	}}

	a.router.Get("/health/live", health.Liveness[*Context])
	a.router.Get("/health/ready", health.Readiness[*Context](a.logger, append([]health.Check{running}, checks...)...))
}

// Run serves the router until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "application starting",
		logger.Component("app"),
		slog.Int("routes", len(a.router.Routes())),
	)
	return a.server.Run(ctx, a.router)()
}
