// Package response provides ready-made handler.Response values.
//
// Every constructor returns a response whose status code is known before it
// is rendered (see handler.StatusOf). The router uses this to tell a handler's
// own 404 apart from a successful response.
//
//	r.Get("/", func(ctx *router.Context) handler.Response {
//		return response.String("hello")
//	})
//
//	r.Get("/users/:id", func(ctx *router.Context) handler.Response {
//		u, err := users.Find(ctx, ctx.Param("id"))
//		if err != nil {
//			return response.Error(response.ErrNotFound.WithError(err))
//		}
//		return response.JSON(u)
//	})
//
// Error defers to the router's error handler; HTTPError values can also be
// returned directly to render a JSON error body.
package response
