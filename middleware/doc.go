// Package middleware provides before and after stages for the router pipeline.
//
// Every constructor is generic over the request context and returns a
// handler.Middleware, so stages plug straight into Router.Before and
// Router.After:
//
//	r := router.New[*router.Context]()
//	r.Before(middleware.RequestID[*router.Context](), middleware.ClientIP[*router.Context]())
//
//	before, after := middleware.RequestLogger[*router.Context](middleware.LoggingConfig{Logger: log})
//	r.Before(before)
//	r.After(after)
//
// Values stored by a stage are read back with the matching getter:
//
//	id, _ := middleware.GetRequestID(ctx)
//	ip, _ := middleware.GetClientIP(ctx)
package middleware
