// Command mailworker turns notification events into emails.
//
// It accepts notifications over HTTP, publishes them on the in-process event
// bus, lets the admin, user and client listeners build email jobs and sends
// those one at a time through the configured mail provider. Health probes and
// Prometheus metrics are served on the same listener.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stakalivres/notifymail/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Default().Error("mailworker stopped", logger.Error(err))
		os.Exit(1)
	}
}
