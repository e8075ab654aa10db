// Package notifications defines the notification record and the path that
// creates it.
//
// A Notification is the source of truth. Manager stores it first and only
// then hands it to a Deliverer, so a failing delivery channel never loses or
// rolls back a notification:
//
//	storage := notifications.NewMemoryStorage()
//	manager := notifications.NewManager(storage, notifications.NewEventDeliverer(bus))
//
//	err := manager.Send(ctx, notifications.Notification{
//	    Type:    notifications.TypeMessage,
//	    Title:   "Nouveau message client",
//	    RawData: `{"from":"John Doe"}`,
//	})
//
// EventDeliverer publishes the stored notification on the topic of its
// Audience (see Audience.Topic). Notifications without a user and without an
// explicit audience go to the admin topic.
//
// Payloads arrive either decoded or as JSON text. ParseData normalises both
// forms into a Payload; Manager.Send does this once so downstream consumers
// receive Data already populated.
package notifications
