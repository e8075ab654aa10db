package mailnotify_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakalivres/notifymail/pkg/email"
	"github.com/stakalivres/notifymail/pkg/email/templates"
	"github.com/stakalivres/notifymail/pkg/emailqueue"
	"github.com/stakalivres/notifymail/pkg/eventbus"
	"github.com/stakalivres/notifymail/pkg/mailnotify"
	"github.com/stakalivres/notifymail/pkg/notifications"
)

func newPipeline(t *testing.T, cfg mailnotify.Config, q mailnotify.Enqueuer) *eventbus.Bus[notifications.Notification] {
	t.Helper()

	bus := eventbus.New[notifications.Notification]()
	t.Cleanup(func() { _ = bus.Close() })

	dir := newDirectory()
	client, err := mailnotify.NewClientListener(cfg, nil, dir, q, nil)
	require.NoError(t, err)

	subs, err := mailnotify.Register(bus,
		mailnotify.NewAdminListener(cfg, nil, q),
		mailnotify.NewUserListener(cfg, nil, dir, q),
		client,
	)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	return bus
}

func drainBus(t *testing.T, bus *eventbus.Bus[notifications.Notification]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, bus.Drain(ctx))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	bus := newPipeline(t, mailnotify.Config{}, &recordingQueue{})
	assert.Equal(t, 1, bus.SubscriberCount(notifications.TopicAdminCreated))
	assert.Equal(t, 1, bus.SubscriberCount(notifications.TopicUserCreated))
	assert.Equal(t, 1, bus.SubscriberCount(notifications.TopicClientCreated))

	_, err := mailnotify.Register(bus, nil)
	assert.ErrorIs(t, err, mailnotify.ErrNilListener)
}

func TestPipeline_EveryMappedTypeEnqueuesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	allTypes := make([]string, 0, len(notifications.Types()))
	for _, typ := range notifications.Types() {
		allTypes = append(allTypes, string(typ))
	}

	topics := map[notifications.Audience]string{
		notifications.AudienceAdmin:  notifications.TopicAdminCreated,
		notifications.AudienceUser:   notifications.TopicUserCreated,
		notifications.AudienceClient: notifications.TopicClientCreated,
	}
	catalog := mailnotify.DefaultCatalog()

	for audience, topic := range topics {
		for _, typ := range notifications.Types() {
			t.Run(fmt.Sprintf("%s/%s", audience, typ), func(t *testing.T) {
				t.Parallel()

				queue := &recordingQueue{}
				bus := newPipeline(t, mailnotify.Config{UserEmailTypes: allTypes}, queue)

				require.NoError(t, bus.Publish(ctx, topic, notification(typ, "u1", "T")))
				drainBus(t, bus)

				want, ok := catalog.Template(audience, typ)
				require.True(t, ok)

				jobs := queue.Jobs()
				require.Len(t, jobs, 1)
				assert.Equal(t, want, jobs[0].job.Template)
			})
		}
	}
}

func TestPipeline_UnknownTypeOnEveryTopic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	queue := &recordingQueue{}
	bus := newPipeline(t, mailnotify.Config{UserEmailTypes: []string{"UNKNOWN_TYPE"}}, queue)

	for _, topic := range []string{
		notifications.TopicAdminCreated,
		notifications.TopicUserCreated,
		notifications.TopicClientCreated,
	} {
		require.NoError(t, bus.Publish(ctx, topic, notification("UNKNOWN_TYPE", "u1", "T")))
	}
	drainBus(t, bus)
	assert.Empty(t, queue.Jobs())
}

// sentMail records what reached the mail provider.
type sentMail struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (s *sentMail) SendEmail(_ context.Context, p email.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	return nil
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mail := &sentMail{}
	queue := emailqueue.New(
		templates.NewFSStore(templates.Embedded()),
		templates.NewHandlebarsRenderer(16),
		mail,
	)
	bus := newPipeline(t, mailnotify.Config{}, queue)

	n := notification(notifications.TypeMessage, "", "Nouveau message client")
	n.RawData = `{"from":"John Doe"}`
	require.NoError(t, bus.Publish(ctx, notifications.TopicAdminCreated, n))

	dup := notification(notifications.TypeOrder, "u1", "Commande")
	require.NoError(t, bus.Publish(ctx, notifications.TopicClientCreated, dup))
	require.NoError(t, bus.Publish(ctx, notifications.TopicClientCreated, dup))

	drainBus(t, bus)
	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, queue.Wait(waitCtx))

	mail.mu.Lock()
	defer mail.mu.Unlock()
	require.Len(t, mail.sent, 2)

	bySubject := map[string]email.SendEmailParams{}
	for _, m := range mail.sent {
		bySubject[m.Subject] = m
	}

	admin, ok := bySubject["[Admin] Nouveau message client"]
	require.True(t, ok)
	assert.Equal(t, "admin@staka-livres.fr", admin.SendTo)
	assert.Equal(t, "sendAdminNotifEmail", admin.Tag)
	assert.Contains(t, admin.BodyHTML, "Nouveau message client")
	assert.Contains(t, admin.BodyHTML, "01/03/2024 à 11:00")

	client, ok := bySubject["Commande"]
	require.True(t, ok)
	assert.Equal(t, "marie@example.com", client.SendTo)
	assert.Contains(t, client.BodyHTML, "Bonjour Marie Curie")
}
