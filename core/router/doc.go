// Package router provides an HTTP request router with per-method routing
// tries, path parameters, a before/after middleware pipeline with
// short-circuiting, and WebSocket routes.
//
// # Patterns
//
// Patterns are '/'-separated. A segment starting with ':' captures exactly
// one path segment; a segment starting with '*' captures the rest of the
// path, slashes included, and must be the last segment:
//
//	r := router.New[*router.Context]()
//	r.Get("/users/:id", showUser)
//	r.Get("/files/*path", serveFile)
//
// At every level a static segment wins over a parameter, and a parameter
// wins over a catch-all, regardless of registration order. Registering the
// same pattern twice replaces the handler. Invalid patterns panic at
// registration time.
//
// # Pipeline
//
// Each request runs through:
//
//  1. before stages, in registration order
//  2. the matched handler
//  3. after stages, in registration order
//  4. the not-found handler, when no response (or a 404) was produced
//
// A stage returning handler.Halt, or calling ctx.ForceSend, locks the
// context: nothing else runs and the attached response is sent unchanged.
//
//	r.Before(func(ctx *router.Context) (handler.Result[*router.Context], error) {
//		if !authorized(ctx.Request()) {
//			return handler.Halt(ctx, response.StringWithStatus("forbidden", http.StatusForbidden)), nil
//		}
//		return handler.Continue(ctx), nil
//	})
//
// Errors returned by stages, errors returned while rendering, and panics
// go to the error handler (WithErrorHandler). The default logs the error,
// renders errors that are responses as-is and otherwise writes plain text with
// the status from handler.StatusCoder, or 500. Server error messages are hidden.
//
// # WebSocket
//
// WS registers per-connection callbacks. Upgrade requests are matched
// against WebSocket routes first. The router's before stages run, then the
// optional Upgrade hook; either may halt to reject the handshake. After
// stages do not run for WebSocket connections:
//
//	r.WS("/chat/:room", router.WSHandlers[*router.Context]{
//		Message: func(ctx *router.Context, conn *router.Conn, msg router.Message) {
//			_ = conn.Send(msg.Type, msg.Data)
//		},
//	})
//
// # Concurrency
//
// Register routes and middleware before serving. The first request seals
// the router; later registration panics with ErrSealed. Lookups afterwards
// are read-only and need no locking.
package router
