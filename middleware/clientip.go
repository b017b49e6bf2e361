package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

var clientIPKey = handler.NewKey[string]("client_ip")

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// TrustProxyHeaders enables CF-Connecting-IP, DO-Connecting-IP,
	// X-Forwarded-For and X-Real-IP. Leave it off unless a proxy sets them.
	TrustProxyHeaders bool
	// ValidateFunc rejects requests with a 403 when it returns an error
	ValidateFunc func(ctx handler.Context, ip string) error
}

// ClientIP creates a before stage that stores the client IP taken from the
// connection and from proxy headers.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return ClientIPWithConfig[C](ClientIPConfig{TrustProxyHeaders: true})
}

// ClientIPWithConfig creates a client IP before stage with custom configuration.
func ClientIPWithConfig[C handler.Context](cfg ClientIPConfig) handler.Middleware[C] {
	return func(ctx C) (handler.Result[C], error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Continue(ctx), nil
		}

		ip := clientIP(ctx.Request(), cfg.TrustProxyHeaders)
		handler.Set(ctx, clientIPKey, ip)

		if cfg.ValidateFunc != nil {
			if err := cfg.ValidateFunc(ctx, ip); err != nil {
				return handler.Halt(ctx, response.ErrForbidden.WithError(err)), nil
			}
		}

		return handler.Continue(ctx), nil
	}
}

// GetClientIP retrieves the client IP address from the request context.
func GetClientIP(ctx handler.Context) (string, bool) {
	return handler.Get(ctx, clientIPKey)
}

// proxyHeaders in priority order.
var proxyHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP returns the normalised client address, or "" when none is valid.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			v := r.Header.Get(h)
			if v == "" {
				continue
			}
			// X-Forwarded-For is "client, proxy1, proxy2"
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			if ip := parseIP(v); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return parseIP(host)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || addr.IsUnspecified() {
		return ""
	}
	return addr.Unmap().String()
}
