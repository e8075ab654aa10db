// Package eventbus is an in-process, topic-keyed publish/subscribe bus.
//
// Publishers call Publish and return immediately, whatever the handlers are
// doing. Each subscription owns an unbounded pending list and a consumer
// goroutine that calls its Handler, so:
//
//   - events of one topic reach a given handler in publish order
//   - a failing or panicking handler is logged and does not affect other handlers
//   - handler errors never propagate to the publisher
//
// There is no persistence. An event published while nobody is subscribed is
// lost. WithMaxPending bounds memory per subscription at the cost of dropping
// events past the cap.
//
//	bus := eventbus.New[notifications.Notification](eventbus.WithLogger(log))
//	defer bus.Close()
//
//	_, err := bus.Subscribe(notifications.TopicAdminCreated, "admin-email",
//	    func(ctx context.Context, msg eventbus.Message[notifications.Notification]) error {
//	        return handle(ctx, msg.Payload)
//	    })
//
//	_ = bus.Publish(ctx, notifications.TopicAdminCreated, notif)
package eventbus
