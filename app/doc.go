// Package app bootstraps a service: configuration from the environment, a
// logger, a router with request ID, client IP and request logging stages, and
// a gracefully stopping HTTP server.
//
//	a, err := app.New()
//	if err != nil {
//		return err
//	}
//	a.Router().Get("/users/:id", func(ctx *app.Context) handler.Response {
//		ctx.Log().Info("fetching user", "id", ctx.Param("id"))
//		return response.JSON(loadUser(ctx.Param("id")))
//	})
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	return a.Run(ctx)
package app
