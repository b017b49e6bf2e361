package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Config holds router settings loaded from the environment.
type Config struct {
	// WebSocket upgrader buffers
	WSReadBufferSize  int `env:"ROUTER_WS_READ_BUFFER" envDefault:"1024"`
	WSWriteBufferSize int `env:"ROUTER_WS_WRITE_BUFFER" envDefault:"1024"`

	WSHandshakeTimeout time.Duration `env:"ROUTER_WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`

	// Maximum size of an inbound WebSocket message in bytes, 0 for no limit
	WSMaxMessageSize int64 `env:"ROUTER_WS_MAX_MESSAGE_SIZE" envDefault:"0"`

	// Accept cross-origin WebSocket handshakes. The zero value rejects them.
	WSAllowAnyOrigin bool `env:"ROUTER_WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
}

// DefaultConfig returns a Config with the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		WSReadBufferSize:   1024,
		WSWriteBufferSize:  1024,
		WSHandshakeTimeout: 10 * time.Second,
	}
}

// NewFromConfig creates a router from configuration.
// Additional options are applied after the config.
func NewFromConfig[C handler.Context](cfg Config, opts ...Option[C]) Router[C] {
	return New(append([]Option[C]{WithConfig[C](cfg)}, opts...)...)
}

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithConfig applies router configuration.
func WithConfig[C handler.Context](cfg Config) Option[C] {
	return func(m *mux[C]) {
		m.upgrader.ReadBufferSize = cfg.WSReadBufferSize
		m.upgrader.WriteBufferSize = cfg.WSWriteBufferSize
		m.upgrader.HandshakeTimeout = cfg.WSHandshakeTimeout
		m.wsReadLimit = cfg.WSMaxMessageSize
		m.upgrader.CheckOrigin = nil
		if cfg.WSAllowAnyOrigin {
			m.upgrader.CheckOrigin = func(*http.Request) bool { return true }
		}
	}
}

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets the handler used when no route matches.
func WithNotFoundHandler[C handler.Context](h handler.NotFoundHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.notFound = h
		}
	}
}

// WithBefore registers before-stages at construction time.
func WithBefore[C handler.Context](mws ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.chain.register(Before, mws...)
	}
}

// WithAfter registers after-stages at construction time.
func WithAfter[C handler.Context](mws ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.chain.register(After, mws...)
	}
}

// WithContextFactory sets a custom context factory for the router.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
