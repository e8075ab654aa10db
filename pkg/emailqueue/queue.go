package emailqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stakalivres/notifymail/pkg/email"
	"github.com/stakalivres/notifymail/pkg/email/templates"
	"github.com/stakalivres/notifymail/pkg/logger"
)

// Queue is an in-process FIFO of email jobs with a single consumer.
//
// Add never blocks on delivery. Jobs run one at a time in the order they were
// accepted, across all producers. A failed job is logged and dropped; there
// are no retries. The queue is unbounded.
type Queue struct {
	store    templates.Store
	renderer templates.Renderer
	sender   email.EmailSender
	opts     *options

	mu         sync.Mutex
	items      []entry
	processing bool
	closed     bool
	idle       chan struct{}
}

type entry struct {
	ctx      context.Context
	jobType  string
	job      Job
	queuedAt time.Time
}

// New creates a queue that renders templates from store with renderer and
// sends through sender.
func New(store templates.Store, renderer templates.Renderer, sender email.EmailSender, opts ...Option) *Queue {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	idle := make(chan struct{})
	close(idle)

	return &Queue{
		store:    store,
		renderer: renderer,
		sender:   sender,
		opts:     o,
		idle:     idle,
	}
}

// Add appends a job and starts the consumer if the queue is idle. Context
// values are kept for logging; its cancellation does not affect the job.
// Jobs added after Close are logged and dropped.
func (q *Queue) Add(ctx context.Context, jobType string, job Job) {
	job = job.clone()
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.opts.logger.LogAttrs(ctx, slog.LevelWarn, "Email job rejected",
			logger.JobID(job.ID),
			logger.JobType(jobType),
			logger.Template(job.Template),
			logger.Error(ErrQueueClosed),
		)
		q.opts.metrics.JobFinished(jobType, OutcomeRejected, 0)
		return
	}

	q.items = append(q.items, entry{
		ctx:      context.WithoutCancel(ctx),
		jobType:  jobType,
		job:      job,
		queuedAt: time.Now(),
	})
	length := len(q.items)
	start := !q.processing
	if start {
		q.processing = true
		q.idle = make(chan struct{})
	}
	q.mu.Unlock()

	q.opts.metrics.JobEnqueued(jobType)
	q.opts.metrics.QueueLength(length)
	q.opts.logger.LogAttrs(ctx, slog.LevelDebug, "Email job queued",
		logger.JobID(job.ID),
		logger.NotificationID(job.NotificationID),
		logger.JobType(jobType),
		logger.Template(job.Template),
		logger.Recipient(job.To),
		logger.QueueLength(length),
	)

	if start {
		go q.drain()
	}
}

// Len returns the number of jobs not yet started.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear discards every job not yet started and returns how many were dropped.
// A job already in progress is not affected.
func (q *Queue) Clear() int {
	q.mu.Lock()
	n := len(q.items)
	q.items = nil
	q.mu.Unlock()

	q.opts.metrics.QueueLength(0)
	return n
}

// Wait blocks until the queue is idle or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		if !q.processing && len(q.items) == 0 {
			q.mu.Unlock()
			return nil
		}
		idle := q.idle
		q.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting jobs and waits for accepted ones to finish.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return q.Wait(ctx)
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.processing = false
			close(q.idle)
			q.mu.Unlock()
			return
		}
		e := q.items[0]
		q.items[0] = entry{}
		q.items = q.items[1:]
		length := len(q.items)
		q.mu.Unlock()

		q.opts.metrics.QueueLength(length)
		q.run(e)
	}
}

func (q *Queue) run(e entry) {
	start := time.Now()
	log := q.opts.logger
	attrs := []slog.Attr{
		logger.JobID(e.job.ID),
		logger.NotificationID(e.job.NotificationID),
		logger.JobType(e.jobType),
		logger.Template(e.job.Template),
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrJobPanicked, r)
			log.LogAttrs(e.ctx, slog.LevelError, "Email job failed: "+err.Error(), append(attrs, logger.Error(err))...)
			q.opts.metrics.JobFinished(e.jobType, OutcomeFailed, time.Since(start))
		}
	}()

	ctx := e.ctx
	if q.opts.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.opts.jobTimeout)
		defer cancel()
	}

	outcome, err := q.process(ctx, e.jobType, e.job)
	took := time.Since(start)
	q.opts.metrics.JobFinished(e.jobType, outcome, took)

	switch {
	case err != nil:
		log.LogAttrs(ctx, slog.LevelError, "Email job failed: "+err.Error(), append(attrs, logger.Error(err))...)
	case outcome == OutcomeTemplateMissing:
		log.LogAttrs(ctx, slog.LevelWarn, "Email template not found: "+e.job.Template, attrs...)
	default:
		log.LogAttrs(ctx, slog.LevelInfo, "Email sent", append(attrs, logger.Duration(took))...)
	}
}

// process runs the per-job pipeline: resolve template, render, pick the
// subject and send.
func (q *Queue) process(ctx context.Context, jobType string, job Job) (Outcome, error) {
	exists, err := q.store.Exists(ctx, job.Template)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("check template %s: %w", job.Template, err)
	}
	if !exists {
		return OutcomeTemplateMissing, nil
	}

	source, err := q.store.Read(ctx, job.Template)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("read template %s: %w", job.Template, err)
	}

	vars := job.Variables
	if raw, ok := vars["createdAt"]; ok {
		if formatted, ok := formatDate(raw, q.opts.location); ok {
			vars["createdAt"] = formatted
		}
	}

	html, err := q.renderer.Render(ctx, source, vars)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("render template %s: %w", job.Template, err)
	}

	err = q.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   job.To,
		Subject:  q.subject(vars),
		BodyHTML: html,
		Tag:      jobType,
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("send %s: %w", job.Template, err)
	}
	return OutcomeSent, nil
}

func (q *Queue) subject(vars map[string]any) string {
	switch s := vars["subject"].(type) {
	case string:
		if s != "" {
			return s
		}
	case nil:
	default:
		return fmt.Sprint(s)
	}
	return q.opts.defaultSubject
}
