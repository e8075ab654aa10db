package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stakalivres/notifymail/pkg/logger"
)

// Manager orchestrates notification storage and delivery.
type Manager struct {
	storage   Storage
	deliverer Deliverer
	logger    *slog.Logger
	now       func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithManagerClock overrides the clock used for CreatedAt.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a new notification manager.
func NewManager(storage Storage, deliverer Deliverer, opts ...ManagerOption) *Manager {
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}

	m := &Manager{
		storage:   storage,
		deliverer: deliverer,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Send stores the notification and then hands it to the deliverer.
// Delivery is best effort: a failing deliverer is logged and Send still
// succeeds once the notification is stored.
func (m *Manager) Send(ctx context.Context, notif Notification) error {
	_, err := m.send(ctx, notif)
	return err
}

// send is Send returning the stored notification.
func (m *Manager) send(ctx context.Context, notif Notification) (Notification, error) {
	notif = m.prepare(ctx, notif)

	if err := m.storage.Create(ctx, notif); err != nil {
		return Notification{}, fmt.Errorf("failed to store notification: %w", err)
	}

	m.deliver(ctx, notif)
	return notif, nil
}

// SendToUsers stores one copy of tmpl per user and delivers each of them.
func (m *Manager) SendToUsers(ctx context.Context, userIDs []string, tmpl Notification) error {
	notifications := make([]Notification, 0, len(userIDs))

	for _, userID := range userIDs {
		notif := tmpl
		notif.ID = ""
		notif.UserID = userID
		notif.Data = tmpl.Data.Clone()
		notif = m.prepare(ctx, notif)

		if err := m.storage.Create(ctx, notif); err != nil {
			return fmt.Errorf("failed to store notification for user %s: %w", userID, err)
		}
		notifications = append(notifications, notif)
	}

	for _, notif := range notifications {
		m.deliver(ctx, notif)
	}
	return nil
}

// prepare fills the ID and creation time and decodes RawData into Data.
func (m *Manager) prepare(ctx context.Context, notif Notification) Notification {
	if notif.ID == "" {
		notif.ID = uuid.New().String()
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = m.now()
	}
	if notif.Priority == "" {
		notif.Priority = PriorityNormal
	}

	if notif.RawData != nil {
		data, err := ParseData(notif.RawData)
		if err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to parse notification data",
				logger.NotificationID(notif.ID),
				logger.NotificationType(notif.Type),
				logger.Error(err),
			)
		}
		merged := notif.Data.Clone()
		for k, v := range data {
			merged[k] = v
		}
		notif.Data = merged
		notif.RawData = nil
	}
	return notif
}

func (m *Manager) deliver(ctx context.Context, notif Notification) {
	if err := m.deliverer.Deliver(ctx, notif); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to deliver notification, but it was stored successfully",
			logger.NotificationID(notif.ID),
			logger.UserID(notif.UserID),
			logger.Error(err),
		)
	}
}

func (m *Manager) Get(ctx context.Context, userID, notifID string) (*Notification, error) {
	return m.storage.Get(ctx, userID, notifID)
}

func (m *Manager) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	return m.storage.List(ctx, userID, opts)
}

func (m *Manager) MarkRead(ctx context.Context, userID string, notifIDs ...string) error {
	return m.storage.MarkRead(ctx, userID, notifIDs...)
}

// MarkAllRead marks all notifications as read for a user.
func (m *Manager) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := m.storage.List(ctx, userID, ListOptions{OnlyUnread: true})
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		return nil
	}

	ids := make([]string, len(notifications))
	for i, n := range notifications {
		ids[i] = n.ID
	}
	return m.storage.MarkRead(ctx, userID, ids...)
}

func (m *Manager) Delete(ctx context.Context, userID string, notifIDs ...string) error {
	return m.storage.Delete(ctx, userID, notifIDs...)
}

func (m *Manager) CountUnread(ctx context.Context, userID string) (int, error) {
	return m.storage.CountUnread(ctx, userID)
}
