package notifications

import (
	"context"
	"fmt"
)

// Publisher is the event bus side used to announce created notifications.
type Publisher interface {
	Publish(ctx context.Context, topic string, notif Notification) error
}

// EventDeliverer publishes each notification on the "created" topic of its
// audience. Listeners subscribed to that topic turn it into email jobs.
type EventDeliverer struct {
	publisher Publisher
}

// NewEventDeliverer creates a deliverer backed by the given publisher.
func NewEventDeliverer(p Publisher) *EventDeliverer {
	return &EventDeliverer{publisher: p}
}

func (d *EventDeliverer) Deliver(ctx context.Context, notif Notification) error {
	audience := notif.ResolveAudience()
	topic := audience.Topic()
	if topic == "" {
		return fmt.Errorf("%w: %q", ErrUnknownAudience, audience)
	}
	return d.publisher.Publish(ctx, topic, notif)
}
