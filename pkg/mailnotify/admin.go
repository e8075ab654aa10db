package mailnotify

import (
	"context"

	"github.com/stakalivres/notifymail/pkg/notifications"
)

// AdminListener emails the back-office address for every admin notification.
type AdminListener struct {
	base
}

// NewAdminListener creates the admin listener. A nil catalog means
// DefaultCatalog.
func NewAdminListener(cfg Config, catalog *Catalog, queue Enqueuer, opts ...Option) *AdminListener {
	return &AdminListener{base: newBase(notifications.AudienceAdmin, cfg, catalog, queue, opts)}
}

func (l *AdminListener) Handle(ctx context.Context, n notifications.Notification) {
	defer l.recoverPanic(ctx, n)

	template, ok := l.template(ctx, n)
	if !ok {
		return
	}

	vars := l.variables(n)
	vars["dashboardUrl"] = l.cfg.FrontendURL + "/admin/notifications"
	vars["subject"] = "[Admin] " + n.Title

	l.enqueue(ctx, JobTypeAdmin, n, l.cfg.AdminEmail, template, spread(vars, l.payload(ctx, n)))
}
