package mailnotify

import (
	"context"

	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/notifications"
	"github.com/stakalivres/notifymail/pkg/users"
)

// UserListener emails end users about their notifications, limited to the
// configured type allow-list and honouring their email opt-out.
type UserListener struct {
	base
	users   users.Directory
	allowed map[notifications.Type]struct{}
}

// NewUserListener creates the user listener.
func NewUserListener(cfg Config, catalog *Catalog, dir users.Directory, queue Enqueuer, opts ...Option) *UserListener {
	return &UserListener{
		base:    newBase(notifications.AudienceUser, cfg, catalog, queue, opts),
		users:   dir,
		allowed: cfg.userTypes(),
	}
}

// Allows reports whether notifications of type t may produce an email.
func (l *UserListener) Allows(t notifications.Type) bool {
	_, ok := l.allowed[t]
	return ok
}

func (l *UserListener) Handle(ctx context.Context, n notifications.Notification) {
	defer l.recoverPanic(ctx, n)

	if !l.Allows(n.Type) {
		l.log.DebugContext(ctx, "Notification type not emailed to users",
			logger.NotificationID(n.ID),
			logger.NotificationType(n.Type),
		)
		return
	}

	template, ok := l.template(ctx, n)
	if !ok {
		return
	}

	u := l.recipient(ctx, l.users, n)
	if u == nil {
		return
	}

	vars := l.variables(n)
	vars["userName"] = u.FirstName
	vars["userFullName"] = u.FullName()
	vars["dashboardUrl"] = l.cfg.FrontendURL + "/app/notifications"
	vars["supportUrl"] = l.cfg.FrontendURL + "/app/help"
	vars["subject"] = "[Staka Livres] " + n.Title

	l.enqueue(ctx, JobTypeUser, n, u.Email, template, spread(vars, l.payload(ctx, n)))
}
