// Package handler provides the types shared by the router, middleware and
// applications: the request Context contract, handlers, pipeline stages and
// responses.
//
// # Handlers
//
// A handler receives the request context and returns a Response:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("Hello, " + ctx.Param("name"))
//	}
//
// # Pipeline stages
//
// Middleware runs before or after the matched handler. Each stage returns a
// Result: Continue hands the (possibly replaced) context to the next stage,
// Halt attaches a response and stops the pipeline. Once halted, no further
// middleware or handler runs and the attached response is sent unchanged.
//
//	func requireToken(ctx *router.Context) (handler.Result[*router.Context], error) {
//		if ctx.Request().Header.Get("Authorization") == "" {
//			return handler.Halt(ctx, response.StringWithStatus("unauthorized", http.StatusUnauthorized)), nil
//		}
//		return handler.Continue(ctx), nil
//	}
//
// Returning a non-nil error aborts the request and hands the error to the
// router's error handler.
//
// # Request-scoped values
//
// Key gives type-safe access to values that one stage stores for another:
//
//	var userKey = handler.NewKey[User]("user")
//
//	handler.Set(ctx, userKey, u)          // in an auth stage
//	u, ok := handler.Get(ctx, userKey)    // in the handler
//
// Applications that prefer plain struct fields can embed *router.Context in
// their own type and register a context factory with the router.
package handler
