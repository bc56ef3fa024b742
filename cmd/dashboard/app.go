package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
	"github.com/kekeqingke/Project-Dashboard/internal/core/service"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/config"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/file"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/memory"
	mongostore "github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/mongo"
	redisstore "github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/redis"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/events"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/queue"
)

// App is the composition root: one token store, one API client and the one
// session they share.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	tokens    ports.TokenStore
	fileStore *file.TokenStore // set when TOKEN_STORE=file
	client    *apiclient.Client
	session   *service.SessionStore

	dispatcher     *queue.Dispatcher
	stopDispatcher context.CancelFunc
	closers        []func(context.Context) error
}

// NewApp connects the configured token store and event sinks and wires the
// API client to the session. The session is still anonymous; call
// session.Initialize to rehydrate it.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{cfg: cfg, log: log}

	tokens, err := app.openTokenStore(ctx)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.tokens = tokens

	sinks := []ports.SessionEventSink{events.NewLogSink(log)}
	if cfg.NATS.URL != "" {
		nc, err := events.ConnectNATS(cfg.NATS.URL, "project-dashboard")
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error {
			return nc.Drain()
		})
		sinks = append(sinks, events.NewNATSPublisher(nc, cfg.NATS.Subject))
	}

	dispatchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	app.dispatcher = queue.NewDispatcher(0, log, sinks...)
	app.dispatcher.Start(dispatchCtx)
	app.stopDispatcher = cancel

	app.client = apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithTokenStore(tokens),
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
	)
	app.session = service.NewSessionStore(app.client.Auth, tokens,
		service.WithEventSink(app.dispatcher),
		service.WithDetailFunc(apiclient.Detail),
		service.WithSessionLogger(log.With().Str("component", "session").Logger()),
	)
	app.client.OnUnauthorized(func(ctx context.Context, err *apiclient.APIError) {
		app.session.HandleUnauthorized(ctx, err)
	})

	return app, nil
}

func (a *App) openTokenStore(ctx context.Context) (ports.TokenStore, error) {
	switch a.cfg.Token.Store {
	case config.TokenStoreMemory:
		return memory.NewTokenStore(""), nil

	case config.TokenStoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		return redisstore.NewTokenStore(client, a.cfg.Redis.Prefix, a.cfg.Token.Key, 0), nil

	case config.TokenStoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		return mongostore.NewTokenStore(db, a.cfg.Token.Key), nil

	default:
		path := a.cfg.Token.File
		if path == "" {
			p, err := file.DefaultPath(a.cfg.Token.Key)
			if err != nil {
				return nil, fmt.Errorf("resolve token file: %w", err)
			}
			path = p
		}
		a.fileStore = file.NewTokenStore(path)
		return a.fileStore, nil
	}
}

// Close stops event delivery and releases connections in reverse order.
func (a *App) Close(ctx context.Context) error {
	if a.stopDispatcher != nil {
		a.stopDispatcher()
		a.dispatcher.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
