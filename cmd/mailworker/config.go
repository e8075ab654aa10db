package main

import (
	"time"

	"github.com/stakalivres/notifymail/pkg/config"
	"github.com/stakalivres/notifymail/pkg/email"
	"github.com/stakalivres/notifymail/pkg/email/templates"
	"github.com/stakalivres/notifymail/pkg/httpserver"
	"github.com/stakalivres/notifymail/pkg/mailnotify"
	"github.com/stakalivres/notifymail/pkg/pg"
	"github.com/stakalivres/notifymail/pkg/redis"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Service       string        `env:"SERVICE_NAME" envDefault:"mailworker"`
	DrainTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	JobTimeout    time.Duration `env:"MAIL_JOB_TIMEOUT" envDefault:"0s"`
	BusMaxPending int           `env:"EVENT_BUS_MAX_PENDING" envDefault:"0"`
}

// configs gathers every package config; env parses nested structs.
type configs struct {
	App       appConfig
	Mail      email.Config
	Templates templates.Config
	Notify    mailnotify.Config
	Postgres  pg.Config
	Redis     redis.Config
	HTTP      httpserver.Config
}

func loadConfigs() (configs, error) {
	var c configs
	if err := config.Load(&c); err != nil {
		return configs{}, err
	}
	return c, nil
}
