package mailnotify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stakalivres/notifymail/pkg/dedup"
	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/notifications"
	"github.com/stakalivres/notifymail/pkg/users"
)

// ClientListener emails clients and drops repeats of the same notification
// seen within the dedup window.
type ClientListener struct {
	base
	users users.Directory
	dedup dedup.Deduplicator
}

// NewClientListener creates the client listener. A nil dd means an
// in-memory deduplicator sized from cfg.
func NewClientListener(cfg Config, catalog *Catalog, dir users.Directory, queue Enqueuer, dd dedup.Deduplicator, opts ...Option) (*ClientListener, error) {
	b := newBase(notifications.AudienceClient, cfg, catalog, queue, opts)
	if dd == nil {
		mem, err := dedup.NewMemory(b.cfg.ClientDedupCapacity, b.cfg.ClientDedupWindow)
		if err != nil {
			return nil, fmt.Errorf("client listener: %w", err)
		}
		dd = mem
	}
	return &ClientListener{base: b, users: dir, dedup: dd}, nil
}

// DedupKey identifies a client notification for duplicate suppression.
func DedupKey(n notifications.Notification) string {
	return n.UserID + "|" + n.Title + "|" + strconv.FormatInt(n.CreatedAt.UnixMilli(), 10)
}

func (l *ClientListener) Handle(ctx context.Context, n notifications.Notification) {
	defer l.recoverPanic(ctx, n)

	key := DedupKey(n)
	seen, err := l.dedup.Seen(ctx, key)
	if err != nil {
		// treat as unseen
		l.log.WarnContext(ctx, "Client notification dedup check failed",
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
	}
	if seen {
		l.log.InfoContext(ctx, "Duplicate client notification skipped",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
			slog.String("dedup_key", key),
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

	name := u.FullName()
	if name == "" {
		name = u.Email
	}

	vars := l.variables(n)
	vars["customerName"] = name
	vars["firstName"] = u.FirstName
	vars["loginUrl"] = l.cfg.AppURL + "/login"
	vars["supportUrl"] = l.cfg.AppURL + "/app/help"
	vars["subject"] = n.Title

	l.enqueue(ctx, JobTypeClient, n, u.Email, template, spread(vars, l.payload(ctx, n)))
}
