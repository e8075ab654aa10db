package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/stakalivres/notifymail/pkg/dedup"
	"github.com/stakalivres/notifymail/pkg/email"
	"github.com/stakalivres/notifymail/pkg/email/templates"
	"github.com/stakalivres/notifymail/pkg/emailqueue"
	"github.com/stakalivres/notifymail/pkg/eventbus"
	"github.com/stakalivres/notifymail/pkg/httpserver"
	"github.com/stakalivres/notifymail/pkg/logger"
	"github.com/stakalivres/notifymail/pkg/mailnotify"
	"github.com/stakalivres/notifymail/pkg/notifications"
	"github.com/stakalivres/notifymail/pkg/redis"
	"github.com/stakalivres/notifymail/pkg/requestid"
)

func run(ctx context.Context) error {
	cfg, err := loadConfigs()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.App.Env, cfg.App.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var checks []httpserver.RouterOption

	dir, dirReady, closeDir, err := openDirectory(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDir()
	if dirReady != nil {
		checks = append(checks, httpserver.WithReadinessCheck("postgres", dirReady))
	}

	dd, rdb, err := openDeduplicator(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		checks = append(checks, httpserver.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
	}

	sender, err := email.NewSender(ctx, cfg.Mail)
	if err != nil {
		return fmt.Errorf("mail provider: %w", err)
	}

	store := templates.NewStore(cfg.Templates)
	catalog, err := mailnotify.LoadCatalog(cfg.Notify.TemplateCatalog)
	if err != nil {
		return err
	}
	checkTemplates(ctx, log, catalog, store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dropped := promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_events_dropped_total",
		Help: "Events dropped because a subscriber was too slow",
	}, []string{"topic"})

	queue := emailqueue.New(store, templates.NewHandlebarsRenderer(cfg.Templates.CacheSize), sender,
		emailqueue.WithLogger(log.With(logger.Component("emailqueue"))),
		emailqueue.WithMetrics(emailqueue.NewPrometheusMetrics(registry)),
		emailqueue.WithJobTimeout(cfg.App.JobTimeout),
	)

	bus := eventbus.New[notifications.Notification](
		eventbus.WithLogger(log.With(logger.Component("eventbus"))),
		eventbus.WithMaxPending(cfg.App.BusMaxPending),
		eventbus.WithDropHook(func(topic string) { dropped.WithLabelValues(topic).Inc() }),
	)

	client, err := mailnotify.NewClientListener(cfg.Notify, catalog, dir, queue, dd, mailnotify.WithLogger(log))
	if err != nil {
		return err
	}
	if _, err := mailnotify.Register(bus,
		mailnotify.NewAdminListener(cfg.Notify, catalog, queue, mailnotify.WithLogger(log)),
		mailnotify.NewUserListener(cfg.Notify, catalog, dir, queue, mailnotify.WithLogger(log)),
		client,
	); err != nil {
		return err
	}

	manager := notifications.NewManager(
		notifications.NewMemoryStorage(),
		notifications.NewEventDeliverer(bus),
		notifications.WithManagerLogger(log),
	)

	router := httpserver.NewOpsRouter(append(checks,
		httpserver.WithRouterLogger(log),
		httpserver.WithMetrics(registry),
		httpserver.WithMount("/notifications", notifications.NewHTTPHandler(manager, log)),
		httpserver.WithStatus(func() any {
			return map[string]any{
				"queue_length": queue.Len(),
				"topics":       bus.Topics(),
			}
		}),
	)...)
	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	log.InfoContext(ctx, "Mail worker started",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("mail_provider", cfg.Mail.Provider),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, router)
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(log, cfg, bus, queue)
	})
	return g.Wait()
}

// shutdown stops the bus first so listeners finish enqueueing, then waits
// for the queue to send what it accepted.
func shutdown(log *slog.Logger, cfg configs, bus *eventbus.Bus[notifications.Notification], queue *emailqueue.Queue) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.DrainTimeout)
	defer cancel()

	log.InfoContext(ctx, "Draining mail pipeline", logger.QueueLength(queue.Len()))

	var errs []error
	if err := bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus: %w", err))
	}
	if err := queue.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("email queue: %w (%d jobs dropped)", err, queue.Clear()))
	}
	return errors.Join(errs...)
}

func openDeduplicator(ctx context.Context, cfg configs, log *slog.Logger) (dedup.Deduplicator, *goredis.Client, error) {
	if !cfg.Redis.Enabled() {
		log.InfoContext(ctx, "REDIS_URL not set, client dedup is per process")
		return nil, nil, nil
	}
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	dd, err := dedup.NewRedis(client, cfg.Notify.ClientDedupWindow, cfg.Redis.KeyPrefix)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return dd, client, nil
}

func checkTemplates(ctx context.Context, log *slog.Logger, catalog *mailnotify.Catalog, store templates.Store) {
	for _, name := range catalog.Names() {
		ok, err := store.Exists(ctx, name)
		if err != nil || !ok {
			log.WarnContext(ctx, "Email template not found: "+name, logger.Error(err))
		}
	}
}
