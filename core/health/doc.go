// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*app.Context])
//	r.Get("/health/ready", health.Readiness[*app.Context](log,
//		health.Check{Name: "db", Fn: db.Ping},
//	))
//
// Checks follow the func(context.Context) error signature and receive the
// request context, so they are cancelled with the request.
package health
