package mailnotify_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stakalivres/notifymail/pkg/emailqueue"
	"github.com/stakalivres/notifymail/pkg/notifications"
	"github.com/stakalivres/notifymail/pkg/users"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// linesContaining counts log lines that mention s.
func (b *syncBuffer) linesContaining(s string) int {
	n := 0
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, s) {
			n++
		}
	}
	return n
}

func newLogger(buf *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type queuedJob struct {
	jobType string
	job     emailqueue.Job
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []queuedJob
}

func (q *recordingQueue) Add(_ context.Context, jobType string, job emailqueue.Job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, queuedJob{jobType: jobType, job: job})
}

func (q *recordingQueue) Jobs() []queuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queuedJob(nil), q.jobs...)
}

type panickingQueue struct{}

func (panickingQueue) Add(context.Context, string, emailqueue.Job) {
	panic("queue exploded")
}

var createdAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newDirectory() *users.MemoryDirectory {
	return users.NewMemoryDirectory(
		users.User{ID: "u1", Email: "marie@example.com", FirstName: "Marie", LastName: "Curie"},
		users.User{ID: "u-optout", Email: "out@example.com", FirstName: "Paul",
			Preferences: users.Preferences{EmailNotifications: ptr(false)}},
		users.User{ID: "u-optin", Email: "in@example.com",
			Preferences: users.Preferences{EmailNotifications: ptr(true)}},
		users.User{ID: "u-noemail", FirstName: "Ghost"},
	)
}

func notification(typ notifications.Type, userID, title string) notifications.Notification {
	return notifications.Notification{
		ID:        "n-" + strings.ToLower(string(typ)),
		UserID:    userID,
		Type:      typ,
		Priority:  notifications.PriorityNormal,
		Title:     title,
		Message:   "Bonjour",
		CreatedAt: createdAt,
	}
}
