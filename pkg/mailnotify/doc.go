// Package mailnotify turns "notification created" events into email jobs.
//
// Three listeners each subscribe to one event bus topic:
//
//	AdminListener   admin.notification.created   -> ADMIN_EMAIL
//	UserListener    user.notification.created    -> the notification's user
//	ClientListener  client.notification.created  -> the notification's user, deduplicated
//
// Each looks up the template for (audience, type) in a shared Catalog,
// builds the template variables, spreads the notification data over them and
// submits one job to the email queue. Nothing is returned to the publisher:
// unmapped types, unknown users, opt-outs, malformed data and panics are
// logged and the notification is left as is.
//
//	bus := eventbus.New[notifications.Notification]()
//	queue := emailqueue.New(store, renderer, sender)
//
//	client, err := mailnotify.NewClientListener(cfg, catalog, dir, queue, nil)
//	if err != nil {
//	    return err
//	}
//	_, err = mailnotify.Register(bus,
//	    mailnotify.NewAdminListener(cfg, catalog, queue),
//	    mailnotify.NewUserListener(cfg, catalog, dir, queue),
//	    client,
//	)
package mailnotify
