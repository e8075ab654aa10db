package mailnotify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stakalivres/notifymail/pkg/emailqueue"
	"github.com/stakalivres/notifymail/pkg/eventbus"
	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/notifications"
)

// Job types submitted to the email queue.
const (
	JobTypeAdmin  = "sendAdminNotifEmail"
	JobTypeUser   = "sendUserNotifEmail"
	JobTypeClient = "sendClientNotifEmail"
)

// Enqueuer accepts email jobs. *emailqueue.Queue implements it.
type Enqueuer interface {
	Add(ctx context.Context, jobType string, job emailqueue.Job)
}

// Listener turns notifications of one topic into email jobs.
type Listener interface {
	Topic() string
	Name() string
	// Handle never fails: every problem is logged.
	Handle(ctx context.Context, n notifications.Notification)
}

// Register subscribes each listener to its topic on bus.
func Register(bus *eventbus.Bus[notifications.Notification], listeners ...Listener) ([]*eventbus.Subscription[notifications.Notification], error) {
	subs := make([]*eventbus.Subscription[notifications.Notification], 0, len(listeners))
	for _, l := range listeners {
		if l == nil {
			return subs, ErrNilListener
		}
		sub, err := bus.Subscribe(l.Topic(), l.Name(), Handler(l))
		if err != nil {
			return subs, fmt.Errorf("subscribe %s to %s: %w", l.Name(), l.Topic(), err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Handler adapts a Listener to an event bus handler.
func Handler(l Listener) eventbus.Handler[notifications.Notification] {
	return func(ctx context.Context, msg eventbus.Message[notifications.Notification]) error {
		l.Handle(ctx, msg.Payload)
		return nil
	}
}

// base holds what the three listeners share.
type base struct {
	audience notifications.Audience
	cfg      Config
	catalog  *Catalog
	queue    Enqueuer
	log      *slog.Logger
}

func newBase(audience notifications.Audience, cfg Config, catalog *Catalog, queue Enqueuer, opts []Option) base {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return base{
		audience: audience,
		cfg:      cfg.withDefaults(),
		catalog:  catalog,
		queue:    queue,
		log: o.logger.With(
			logger.Component("mailnotify"),
			slog.String("audience", string(audience)),
		),
	}
}

func (b base) Topic() string { return b.audience.Topic() }

func (b base) Name() string { return string(b.audience) + "-email-listener" }

// recoverPanic logs a panic raised while handling n.
func (b base) recoverPanic(ctx context.Context, n notifications.Notification) {
	if r := recover(); r != nil {
		b.log.ErrorContext(ctx, "Failed to process notification email",
			logger.NotificationID(n.ID),
			logger.Error(fmt.Errorf("panic: %v", r)),
		)
	}
}

// template resolves the template for n.Type, logging when there is none.
func (b base) template(ctx context.Context, n notifications.Notification) (string, bool) {
	name, ok := b.catalog.Template(b.audience, n.Type)
	if !ok {
		b.log.InfoContext(ctx, "No email template configured for notification type: "+string(n.Type),
			logger.NotificationID(n.ID),
		)
	}
	return name, ok
}

// payload returns the notification data as a fresh map. Undecoded RawData
// is parsed here; when that fails a warning is logged and an empty payload
// is used.
func (b base) payload(ctx context.Context, n notifications.Notification) notifications.Payload {
	if n.RawData == nil {
		return n.Data.Clone()
	}
	parsed, err := notifications.ParseData(n.RawData)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to parse notification data",
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
		return notifications.Payload{}
	}
	out := n.Data.Clone()
	for k, v := range parsed {
		out[k] = v
	}
	return out
}

// variables builds the fields every template sees.
func (b base) variables(n notifications.Notification) map[string]any {
	vars := map[string]any{
		"notificationId": n.ID,
		"title":          n.Title,
		"message":        n.Message,
		"type":           string(n.Type),
		"priority":       string(n.Priority),
		"actionUrl":      n.ActionURL,
		"supportEmail":   b.cfg.SupportEmail,
	}
	if !n.CreatedAt.IsZero() {
		vars["createdAt"] = n.CreatedAt
	}
	return vars
}

func (b base) enqueue(ctx context.Context, jobType string, n notifications.Notification, to, template string, vars map[string]any) {
	b.queue.Add(ctx, jobType, emailqueue.Job{
		NotificationID: n.ID,
		To:             to,
		Template:       template,
		Variables:      vars,
	})
	b.log.DebugContext(ctx, "Notification email queued",
		logger.NotificationID(n.ID),
		logger.JobType(jobType),
		logger.Template(template),
	)
}

func spread(vars map[string]any, payload notifications.Payload) map[string]any {
	for k, v := range payload {
		vars[k] = v
	}
	return vars
}
