package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/events"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/metrics"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
)

type activityService struct {
	store repository.ActivityStore
	options
}

// NewActivityService creates a new activity service
func NewActivityService(store repository.ActivityStore, opts ...Option) ActivityService {
	return &activityService{
		store:   store,
		options: buildOptions(opts),
	}
}

func (s *activityService) Create(ctx context.Context, ownerID string, req *models.CreateActivityRequest) (*models.Activity, error) {
	now := s.now()

	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	in := activityInput{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		EnergyLevel:     req.EnergyLevel,
		DurationMinutes: req.DurationMinutes,
		OccurredAt:      occurredAt,
	}
	if err := validateInput(in, now); err != nil {
		return nil, err
	}

	existing, err := s.store.QueryByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load activities for canonicalization: %w", err)
	}
	name := s.canonicalize(existing, in.Name)

	id, err := newActivityID()
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		ID:              id,
		OwnerID:         ownerID,
		Name:            name,
		Description:     in.Description,
		EnergyLevel:     models.EnergyLevel(*in.EnergyLevel),
		DurationMinutes: *in.DurationMinutes,
		OccurredAt:      occurredAt.UTC(),
		LoggedAt:        now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	if err := s.store.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	metrics.RecordActivityWrite("create", 1)

	logger.Ctx(ctx).Info("activity logged",
		logger.String("activity_id", activity.ID),
		logger.Int("energy_level", int(activity.EnergyLevel)),
		logger.Bool("name_merged", name != in.Name),
	)

	s.publish(ctx, events.Event{Type: events.TypeActivityLogged, OwnerID: ownerID, Activity: activity})
	return activity, nil
}

func (s *activityService) Get(ctx context.Context, ownerID, id string) (*models.Activity, error) {
	activity, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return activity, nil
}

func (s *activityService) Update(ctx context.Context, ownerID, id string, req *models.UpdateActivityRequest) (*models.Activity, error) {
	current, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err)
	}

	now := s.now()

	// Start from the stored values and overlay what the request sets.
	energy := int(current.EnergyLevel)
	duration := current.DurationMinutes
	in := activityInput{
		Name:            current.Name,
		Description:     current.Description,
		EnergyLevel:     &energy,
		DurationMinutes: &duration,
		OccurredAt:      current.OccurredAt,
	}
	if req.Name != nil {
		in.Name = strings.TrimSpace(*req.Name)
	}
	in.Description = strings.TrimSpace(req.Description.Apply(in.Description))
	if req.EnergyLevel != nil {
		in.EnergyLevel = req.EnergyLevel
	}
	if req.DurationMinutes != nil {
		in.DurationMinutes = req.DurationMinutes
	}
	if req.OccurredAt != nil {
		in.OccurredAt = *req.OccurredAt
	}
	if err := validateInput(in, now); err != nil {
		return nil, err
	}

	name := in.Name
	if req.Name != nil {
		existing, err := s.store.QueryByOwner(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("load activities for canonicalization: %w", err)
		}
		others := slices.DeleteFunc(existing, func(a models.Activity) bool { return a.ID == id })
		name = s.canonicalize(others, in.Name)
	}

	updated := *current
	updated.Name = name
	updated.Description = in.Description
	updated.EnergyLevel = models.EnergyLevel(*in.EnergyLevel)
	updated.DurationMinutes = *in.DurationMinutes
	updated.OccurredAt = in.OccurredAt.UTC()
	updated.UpdatedAt = now.UTC()

	if err := s.store.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	metrics.RecordActivityWrite("update", 1)

	logger.Ctx(ctx).Info("activity updated", logger.String("activity_id", id))

	s.publish(ctx, events.Event{Type: events.TypeActivityUpdated, OwnerID: ownerID, Activity: &updated})
	return &updated, nil
}

func (s *activityService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return notFound(err)
	}
	metrics.RecordActivityWrite("delete", 1)

	logger.Ctx(ctx).Info("activity deleted", logger.String("activity_id", id))

	s.publish(ctx, events.Event{Type: events.TypeActivityDeleted, OwnerID: ownerID, ActivityIDs: []string{id}})
	return nil
}

// DeleteMany removes the listed activities that belong to the owner.
// Unknown and foreign ids are skipped silently.
func (s *activityService) DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// Resolve which ids the owner actually has so the deletion event only
	// names records that existed.
	existing, err := s.store.QueryByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("load activities for bulk delete: %w", err)
	}
	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	owned := make([]string, 0, len(ids))
	for _, a := range existing {
		if _, ok := requested[a.ID]; ok {
			owned = append(owned, a.ID)
		}
	}
	if len(owned) == 0 {
		return 0, nil
	}
	slices.Sort(owned)

	deleted, err := s.store.DeleteMany(ctx, ownerID, owned)
	if err != nil {
		return 0, fmt.Errorf("bulk delete activities: %w", err)
	}
	metrics.RecordActivityWrite("delete", int(deleted))

	logger.Ctx(ctx).Info("activities bulk deleted",
		logger.Int("requested", len(ids)),
		logger.Int64("deleted", deleted),
	)

	s.publish(ctx, events.Event{Type: events.TypeActivityDeleted, OwnerID: ownerID, ActivityIDs: owned})
	return deleted, nil
}

func (s *activityService) Canonicalize(ctx context.Context, ownerID, raw string) (string, error) {
	existing, err := s.store.QueryByOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("load activities for canonicalization: %w", err)
	}
	return analytics.Canonicalize(existing, raw), nil
}

func (s *activityService) Suggest(ctx context.Context, ownerID, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	existing, err := s.store.QueryByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load activities for suggestions: %w", err)
	}
	return analytics.Suggest(existing, query, limit), nil
}

func (s *activityService) canonicalize(existing []models.Activity, name string) string {
	canonical := analytics.Canonicalize(existing, name)
	metrics.RecordCanonicalization(canonical != name)
	return canonical
}

// publish sends event after the store write has succeeded. The store is the
// source of truth, so a failed publish is logged and counted but not returned.
func (s *activityService) publish(ctx context.Context, event events.Event) {
	event.EmittedAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.RecordPublishFailure(event.Type)
		logger.Ctx(ctx).Warn("failed to publish activity event",
			logger.String("type", event.Type),
			logger.Err(err),
		)
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrActivityNotFound
	}
	return fmt.Errorf("activity store: %w", err)
}
