package service

import (
	"context"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// ActivityService defines the interface for activity write and lookup logic
type ActivityService interface {
	Create(ctx context.Context, ownerID string, req *models.CreateActivityRequest) (*models.Activity, error)
	Get(ctx context.Context, ownerID, id string) (*models.Activity, error)
	Update(ctx context.Context, ownerID, id string, req *models.UpdateActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error)
	Canonicalize(ctx context.Context, ownerID, raw string) (string, error)
	Suggest(ctx context.Context, ownerID, query string, limit int) ([]string, error)
}

// InsightsService defines the interface for the read-only analytics views
type InsightsService interface {
	Dashboard(ctx context.Context, ownerID string) (*models.Dashboard, error)
	Recent(ctx context.Context, ownerID string, limit int) ([]models.Activity, error)
	History(ctx context.Context, ownerID string, q analytics.HistoryQuery) (*models.HistoryPage, error)
	HoursPerCategory(ctx context.Context, ownerID string, window analytics.Window) (models.CategoryHours, error)
	HourlyAverageEnergy(ctx context.Context, ownerID string, window analytics.Window) (models.HourlyAverages, error)
	TopByCategory(ctx context.Context, ownerID string, direction models.Direction, limit int, window analytics.Window) ([]models.NameSummary, error)
	WeeklyTrend(ctx context.Context, ownerID string) ([]models.DayPoint, error)
}
