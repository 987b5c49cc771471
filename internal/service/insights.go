package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/metrics"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
)

// InsightsConfig holds the default sizes used when a caller does not ask for
// one explicitly.
type InsightsConfig struct {
	RecentLimit     int
	HistoryPageSize int
	TopLimit        int
}

func (c InsightsConfig) withDefaults() InsightsConfig {
	if c.RecentLimit <= 0 {
		c.RecentLimit = analytics.DefaultRecentLimit
	}
	if c.HistoryPageSize <= 0 {
		c.HistoryPageSize = analytics.DefaultPageSize
	}
	if c.TopLimit <= 0 {
		c.TopLimit = analytics.DefaultTopLimit
	}
	return c
}

type insightsService struct {
	store  repository.ActivityStore
	engine *analytics.Engine
	cfg    InsightsConfig
	options
}

// NewInsightsService creates a new insights service. Every view reads the
// owner's full activity set once and evaluates it with engine.
func NewInsightsService(store repository.ActivityStore, engine *analytics.Engine, cfg InsightsConfig, opts ...Option) InsightsService {
	return &insightsService{
		store:   store,
		engine:  engine,
		cfg:     cfg.withDefaults(),
		options: buildOptions(opts),
	}
}

func (s *insightsService) load(ctx context.Context, ownerID string) ([]models.Activity, time.Time, error) {
	activities, err := s.store.QueryByOwner(ctx, ownerID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load activities: %w", err)
	}
	return activities, s.now(), nil
}

func (s *insightsService) Dashboard(ctx context.Context, ownerID string) (*models.Dashboard, error) {
	defer metrics.ObserveAnalytics("dashboard", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	e := s.engine
	today := e.FilterByWindow(activities, analytics.WindowDay, now)
	week := e.FilterByWindow(activities, analytics.WindowWeek, now)
	month := e.FilterByWindow(activities, analytics.WindowMonth, now)

	dashboard := &models.Dashboard{
		GeneratedAt:         now.In(e.Location()),
		Timezone:            e.Location().String(),
		Today:               analytics.Summarize(today),
		Recent:              e.Recent(activities, now, s.cfg.RecentLimit),
		HourlyAverageEnergy: e.HourlyAverageEnergy(today),
		HoursPerCategory:    analytics.HoursPerCategory(week),
		TopDraining:         analytics.TopByCategory(month, models.DirectionDraining, s.cfg.TopLimit),
		TopEnergizing:       analytics.TopByCategory(month, models.DirectionEnergizing, s.cfg.TopLimit),
		WeeklyTrend:         e.WeeklyTrend(activities, now),
	}

	logger.Ctx(ctx).Debug("dashboard computed",
		logger.Int("activities", len(activities)),
		logger.Int("today", dashboard.Today.ActivityCount),
	)
	return dashboard, nil
}

func (s *insightsService) Recent(ctx context.Context, ownerID string, limit int) ([]models.Activity, error) {
	defer metrics.ObserveAnalytics("recent", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	return s.engine.Recent(activities, now, limit), nil
}

func (s *insightsService) History(ctx context.Context, ownerID string, q analytics.HistoryQuery) (*models.HistoryPage, error) {
	defer metrics.ObserveAnalytics("history", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if q.PageSize <= 0 {
		q.PageSize = s.cfg.HistoryPageSize
	}
	page := s.engine.History(activities, q, now)
	return &page, nil
}

func (s *insightsService) HoursPerCategory(ctx context.Context, ownerID string, window analytics.Window) (models.CategoryHours, error) {
	defer metrics.ObserveAnalytics("hours_per_category", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.HoursPerCategory(s.engine.FilterByWindow(activities, orDefault(window, analytics.WindowWeek), now)), nil
}

func (s *insightsService) HourlyAverageEnergy(ctx context.Context, ownerID string, window analytics.Window) (models.HourlyAverages, error) {
	defer metrics.ObserveAnalytics("hourly_average", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return models.HourlyAverages{}, err
	}
	return s.engine.HourlyAverageEnergy(s.engine.FilterByWindow(activities, orDefault(window, analytics.WindowDay), now)), nil
}

func (s *insightsService) TopByCategory(ctx context.Context, ownerID string, direction models.Direction, limit int, window analytics.Window) ([]models.NameSummary, error) {
	defer metrics.ObserveAnalytics("top_by_category", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.TopLimit
	}
	inWindow := s.engine.FilterByWindow(activities, orDefault(window, analytics.WindowMonth), now)
	return analytics.TopByCategory(inWindow, direction, limit), nil
}

func (s *insightsService) WeeklyTrend(ctx context.Context, ownerID string) ([]models.DayPoint, error) {
	defer metrics.ObserveAnalytics("weekly_trend", time.Now())

	activities, now, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.engine.WeeklyTrend(activities, now), nil
}

func orDefault(w, fallback analytics.Window) analytics.Window {
	if w == "" {
		return fallback
	}
	return w
}
