// Package httpserver runs the operations HTTP endpoint of the mail worker.
//
// Server wraps net/http with functional options and shuts down gracefully
// when the Run context is cancelled. Errors from Run wrap ErrStart; errors
// from Shutdown wrap ErrShutdown.
//
// NewOpsRouter mounts the probes on a chi router:
//
//	router := httpserver.NewOpsRouter(
//	    httpserver.WithRouterLogger(log),
//	    httpserver.WithMount("/notifications", notifications.NewHTTPHandler(manager, log)),
//	    httpserver.WithMetrics(registry),
//	    httpserver.WithReadinessCheck("postgres", pg.Healthcheck(pool)),
//	    httpserver.WithStatus(func() any { return map[string]int{"queue_length": queue.Len()} }),
//	)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("ops server stopped", logger.Error(err))
//	}
package httpserver
