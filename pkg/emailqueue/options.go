package emailqueue

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a Queue.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	metrics        Metrics
	location       *time.Location
	defaultSubject string
	jobTimeout     time.Duration
}

func defaultOptions() *options {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &options{
		logger:         slog.Default(),
		metrics:        noopMetrics{},
		location:       loc,
		defaultSubject: DefaultSubject,
	}
}

// WithLogger sets the logger for the queue.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLocation sets the timezone createdAt is displayed in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithDefaultSubject overrides DefaultSubject.
func WithDefaultSubject(subject string) Option {
	return func(o *options) {
		if subject != "" {
			o.defaultSubject = subject
		}
	}
}

// WithJobTimeout bounds each job. Zero, the default, means no timeout: a
// hung provider call then holds up every job behind it.
func WithJobTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.jobTimeout = d
		}
	}
}
