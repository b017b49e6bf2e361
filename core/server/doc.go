// Package server wraps http.Server with graceful shutdown, environment-driven
// configuration and structured logging.
//
// Basic usage:
//
//	r := router.New[*router.Context]()
//	r.Get("/", func(ctx *router.Context) handler.Response {
//		return response.String("hello")
//	})
//
//	srv := server.New(":8080", server.WithLogger(log))
//	if err := srv.Run(ctx, r)(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a func() error so the server can join an errgroup; it shuts
// down gracefully, bounded by the shutdown timeout, once ctx is cancelled.
//
// Configuration from the environment:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
//
// TLS is enabled with WithTLS, or through SERVER_TLS_CERT_FILE and
// SERVER_TLS_KEY_FILE, which load the key pair into DefaultTLSConfig.
//
// Shutdown does not wait for hijacked connections such as WebSockets.
package server
