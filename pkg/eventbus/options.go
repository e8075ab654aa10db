package eventbus

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a Bus.
type Option func(*options)

type options struct {
	maxPending      int
	shutdownTimeout time.Duration
	logger          *slog.Logger
	onDrop          func(topic string)
}

func defaultOptions() *options {
	return &options{
		shutdownTimeout: 30 * time.Second,
		logger:          slog.Default(),
	}
}

// WithMaxPending caps the events waiting on one subscription. Past the cap
// Publish drops the event for that subscription, logs it and calls the drop
// hook. The default, 0, keeps every event.
func WithMaxPending(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxPending = n
		}
	}
}

// WithShutdownTimeout bounds how long Close waits for consumers to drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger for the bus.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDropHook registers a callback invoked whenever an event is dropped
// for a subscription at its WithMaxPending cap.
func WithDropHook(fn func(topic string)) Option {
	return func(o *options) {
		o.onDrop = fn
	}
}
