// Package logger builds *slog.Logger instances for the mail pipeline and
// provides attribute helpers so every component names its fields the same way.
//
// New assembles a text or JSON slog.Handler, attaches static attributes and
// wraps it with LogHandlerDecorator, which runs the registered
// ContextExtractor callbacks on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "mailworker"),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "Email template not found: "+name,
//	    logger.Template(name),
//	    logger.JobType(jobType),
//	)
//
// # Error Handling
//
// Error and Errors only produce attributes for non-nil errors, so
//
//	log.Info("job done", logger.Error(err))
//
// needs no nil check.
package logger
