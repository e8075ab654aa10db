package mailnotify

import (
	"context"
	"errors"
	"strings"

	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/notifications"
	"github.com/stakalivres/notifymail/pkg/users"
)

// recipient looks up the user n is addressed to. It returns nil, after
// logging why, when no email should be sent.
func (b base) recipient(ctx context.Context, dir users.Directory, n notifications.Notification) *users.User {
	if n.UserID == "" {
		b.log.WarnContext(ctx, "Notification has no recipient user",
			logger.NotificationID(n.ID),
		)
		return nil
	}

	u, err := dir.FindByID(ctx, n.UserID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		b.log.WarnContext(ctx, "Notification recipient not found",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
		)
		return nil
	case err != nil:
		b.log.ErrorContext(ctx, "Failed to look up notification recipient",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
			logger.Error(err),
		)
		return nil
	case u == nil || strings.TrimSpace(u.Email) == "":
		b.log.WarnContext(ctx, "Notification recipient has no email address",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
		)
		return nil
	}

	if u.EmailOptedOut() {
		b.log.InfoContext(ctx, "User opted out of email notifications",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
		)
		return nil
	}
	return u
}
