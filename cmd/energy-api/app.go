package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/config"
	"github.com/JonnyWalker81/energy/backend/internal/events"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
	"github.com/JonnyWalker81/energy/backend/internal/service"
)

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	store     repository.Store
	publisher events.Publisher
	engine    *analytics.Engine
	activity  service.ActivityService
	insights  service.InsightsService
}

func newLogger(cfg *config.Config) logger.Logger {
	log := logger.NewSlogLogger(logger.Config{
		Level:     logger.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		AddSource: !cfg.IsProduction(),
	})
	logger.SetDefault(log)
	return log
}

func newPublisher(cfg *config.Config, log logger.Logger) (events.Publisher, error) {
	if len(cfg.Events.Brokers) == 0 {
		log.Info("activity events disabled: no brokers configured")
		return events.NoopPublisher{}, nil
	}
	p, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
	if err != nil {
		return nil, err
	}
	log.Info("publishing activity events",
		logger.Any("brokers", cfg.Events.Brokers),
		logger.String("topic", cfg.Events.Topic),
	)
	return p, nil
}

// newApp loads configuration and opens the store. With migrate set the
// schema is brought up to date before returning.
func newApp(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := newLogger(cfg)

	loc, err := analytics.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		return nil, err
	}
	engine := analytics.New(loc)

	store, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}
	if migrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	insightsCfg := service.InsightsConfig{
		RecentLimit:     cfg.Analytics.RecentLimit,
		HistoryPageSize: cfg.Analytics.HistoryPageSize,
		TopLimit:        cfg.Analytics.TopLimit,
	}

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		publisher: publisher,
		engine:    engine,
		activity:  service.NewActivityService(store, service.WithPublisher(publisher)),
		insights:  service.NewInsightsService(store, engine, insightsCfg),
	}, nil
}

func (a *app) Close() error {
	return errors.Join(a.publisher.Close(), a.store.Close())
}
