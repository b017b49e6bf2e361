// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging.
//
// Development loggers write coloured text through tint; production loggers
// write JSON:
//
//	log := logger.New(logger.WithDevelopment("api"))
//	log := logger.New(logger.WithProduction("api"), logger.WithOutput(os.Stderr))
//
// Attribute helpers return an empty slog.Attr for zero input, so they are
// safe to pass unconditionally:
//
//	log.Error("request failed", logger.Error(err), logger.Method(r.Method), logger.Path(r.URL.Path))
package logger
