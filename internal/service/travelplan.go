package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
)

// TravelPlanService implements business logic for TravelPlan operations:
// field validation, owner-only mutation, and the discovery feed.
type TravelPlanService struct {
	repo repo.TravelPlanRepo
}

// NewTravelPlanService constructs a TravelPlanService backed by the provided repo.
func NewTravelPlanService(r repo.TravelPlanRepo) *TravelPlanService {
	return &TravelPlanService{repo: r}
}

// Create validates and persists a new plan owned by ownerID.
func (s *TravelPlanService) Create(ctx context.Context, ownerID string, plan domain.TravelPlan) (domain.TravelPlan, error) {
	plan.UserID = ownerID
	if err := validatePlan(plan); err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single plan by ID, active or not.
func (s *TravelPlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.GetByID: %w", err)
	}
	return plan, nil
}

// ListByUser returns all of a user's own plans, soft-deleted ones included,
// so the owner can still see what they removed from discovery.
func (s *TravelPlanService) ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error) {
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPlanService.ListByUser: %w", err)
	}
	if plans == nil {
		plans = []domain.TravelPlan{}
	}
	return plans, nil
}

// Discover returns other users' active plans, newest first, narrowed by the
// filter. The requester's own plans are excluded after the query, mirroring
// how the feed is assembled: the repo joins and filters on activity, the
// service applies the requester exclusion.
func (s *TravelPlanService) Discover(ctx context.Context, requesterID string, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
	all, err := s.repo.SearchActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPlanService.Discover: %w", err)
	}

	feed := make([]domain.PlanWithOwner, 0, len(all))
	for _, p := range all {
		if p.UserID == requesterID {
			continue
		}
		feed = append(feed, p)
	}
	return feed, nil
}

// Update validates and overwrites a plan's mutable fields.
// Only the owner may update; anyone else gets domain.ErrForbidden.
func (s *TravelPlanService) Update(ctx context.Context, requesterID string, plan domain.TravelPlan) (domain.TravelPlan, error) {
	existing, err := s.repo.GetByID(ctx, plan.ID)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Update: %w", err)
	}
	if existing.UserID != requesterID {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Update: %w", domain.ErrForbidden)
	}

	plan.UserID = existing.UserID
	if err := validatePlan(plan); err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.TravelPlanService.Update: %w", err)
	}
	return updated, nil
}

// Delete soft-deletes a plan: it disappears from discovery but stays
// resolvable by ID. Only the owner may delete.
func (s *TravelPlanService) Delete(ctx context.Context, requesterID string, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TravelPlanService.Delete: %w", err)
	}
	if existing.UserID != requesterID {
		return fmt.Errorf("service.TravelPlanService.Delete: %w", domain.ErrForbidden)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("service.TravelPlanService.Delete: %w", err)
	}
	return nil
}

// validatePlan enforces the field rules shared by Create and Update.
// The end-before-start check runs here so an inverted date range is rejected
// before any repo call is made.
func validatePlan(plan domain.TravelPlan) error {
	if strings.TrimSpace(plan.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if plan.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", domain.ErrValidation)
	}
	if plan.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", domain.ErrValidation)
	}
	if plan.EndDate.Before(plan.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}
