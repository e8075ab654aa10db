package notifications

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, notif Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, notif Notification) error {
	return m.Called(ctx, notif).Error(0)
}

func (m *MockStorage) Get(ctx context.Context, userID, notifID string) (*Notification, error) {
	args := m.Called(ctx, userID, notifID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Notification), args.Error(1)
}

func (m *MockStorage) MarkRead(ctx context.Context, userID string, notifIDs ...string) error {
	return m.Called(ctx, userID, notifIDs).Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, userID string, notifIDs ...string) error {
	return m.Called(ctx, userID, notifIDs).Error(0)
}

func (m *MockStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func TestManager_Send(t *testing.T) {
	t.Parallel()

	t.Run("stores then delivers with generated id and time", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := NewMemoryStorage()
		deliverer := &MockDeliverer{}
		fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

		deliverer.On("Deliver", ctx, mock.MatchedBy(func(n Notification) bool {
			return n.ID != "" && n.CreatedAt.Equal(fixed) && n.Priority == PriorityNormal
		})).Return(nil).Once()

		m := NewManager(storage, deliverer, WithManagerClock(func() time.Time { return fixed }))
		err := m.Send(ctx, Notification{UserID: "u1", Type: TypeOrder, Title: "Commande"})
		require.NoError(t, err)

		count, err := storage.CountUnread(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		deliverer.AssertExpectations(t)
	})

	t.Run("delivery failure does not fail send", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := NewMemoryStorage()
		deliverer := &MockDeliverer{}
		deliverer.On("Deliver", ctx, mock.Anything).Return(errors.New("bus down"))

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		m := NewManager(storage, deliverer, WithManagerLogger(log))
		require.NoError(t, m.Send(ctx, Notification{UserID: "u1", Type: TypeInfo}))

		count, _ := storage.CountUnread(ctx, "u1")
		assert.Equal(t, 1, count)
		assert.Contains(t, buf.String(), "Failed to deliver notification")
	})

	t.Run("storage failure is returned and nothing is delivered", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := &MockStorage{}
		storage.On("Create", ctx, mock.Anything).Return(errors.New("db down"))
		deliverer := &MockDeliverer{}

		m := NewManager(storage, deliverer)
		err := m.Send(ctx, Notification{UserID: "u1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store notification")
		deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("raw json data is decoded once", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		deliverer := &MockDeliverer{}
		deliverer.On("Deliver", ctx, mock.MatchedBy(func(n Notification) bool {
			return n.RawData == nil && n.Data["from"] == "John Doe"
		})).Return(nil).Once()

		m := NewManager(NewMemoryStorage(), deliverer)
		require.NoError(t, m.Send(ctx, Notification{Type: TypeMessage, RawData: `{"from":"John Doe"}`}))
		deliverer.AssertExpectations(t)
	})

	t.Run("malformed raw data is logged and dropped", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		deliverer := &MockDeliverer{}
		deliverer.On("Deliver", ctx, mock.MatchedBy(func(n Notification) bool {
			return n.RawData == nil && len(n.Data) == 0
		})).Return(nil).Once()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		m := NewManager(NewMemoryStorage(), deliverer, WithManagerLogger(log))
		require.NoError(t, m.Send(ctx, Notification{Type: TypeMessage, RawData: "{invalid json"}))
		assert.Contains(t, buf.String(), "Failed to parse notification data")
		deliverer.AssertExpectations(t)
	})
}

func TestManager_SendToUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()
	deliverer := &MockDeliverer{}
	deliverer.On("Deliver", ctx, mock.Anything).Return(nil).Times(2)

	m := NewManager(storage, deliverer)
	err := m.SendToUsers(ctx, []string{"u1", "u2"}, Notification{
		Type:  TypeSystem,
		Title: "Maintenance",
		Data:  Payload{"window": "2h"},
	})
	require.NoError(t, err)

	for _, id := range []string{"u1", "u2"} {
		list, err := storage.List(ctx, id, ListOptions{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, id, list[0].UserID)
		assert.Equal(t, "2h", list[0].Data["window"])
	}
	deliverer.AssertExpectations(t)
}

func TestManager_MarkAllRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("marks every unread notification", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("List", ctx, "u1", ListOptions{OnlyUnread: true}).
			Return([]Notification{{ID: "a"}, {ID: "b"}}, nil)
		storage.On("MarkRead", ctx, "u1", []string{"a", "b"}).Return(nil)

		m := NewManager(storage, nil)
		require.NoError(t, m.MarkAllRead(ctx, "u1"))
		storage.AssertExpectations(t)
	})

	t.Run("nothing unread", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("List", ctx, "u1", ListOptions{OnlyUnread: true}).Return([]Notification{}, nil)

		m := NewManager(storage, nil)
		require.NoError(t, m.MarkAllRead(ctx, "u1"))
		storage.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list error", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("List", ctx, "u1", ListOptions{OnlyUnread: true}).Return(nil, errors.New("boom"))

		m := NewManager(storage, nil)
		assert.Error(t, m.MarkAllRead(ctx, "u1"))
	})
}

func TestManager_Passthrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()
	m := NewManager(storage, nil)

	require.NoError(t, m.Send(ctx, Notification{ID: "n1", UserID: "u1"}))

	got, err := m.Get(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)

	require.NoError(t, m.MarkRead(ctx, "u1", "n1"))
	count, err := m.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, m.Delete(ctx, "u1", "n1"))
	_, err = m.Get(ctx, "u1", "n1")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
