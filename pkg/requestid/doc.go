// Package requestid correlates the log lines of one notification as it
// travels from the HTTP ingress through the event bus and the email queue.
//
// Middleware attaches the ID to incoming requests. The bus and the queue keep
// the publisher's context values, so logging with the handler context and
// LoggerExtractor registered on the logger yields the same request_id on
// "Email sent" as on the original request.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	router.Use(requestid.Middleware)
package requestid
