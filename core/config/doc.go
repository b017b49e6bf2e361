// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (godotenv) and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
//	type RouterConfig struct {
//		ReadBuffer int `env:"ROUTER_WS_READ_BUFFER" envDefault:"1024"`
//	}
//
//	var cfg RouterConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// Different types are cached independently. Reset drops the cache, which is
// mostly useful in tests.
package config
