package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
)

// MatchService implements business logic for Match operations.
//
// allowDuplicates controls whether a second match between the same two users
// may be created. The original behavior allows it (multiple pending proposals
// per pair); set the flag to false to reject repeats with domain.ErrDuplicate.
type MatchService struct {
	repo            repo.MatchRepo
	allowDuplicates bool
}

// NewMatchService constructs a MatchService backed by the provided MatchRepo.
func NewMatchService(r repo.MatchRepo, allowDuplicates bool) *MatchService {
	return &MatchService{repo: r, allowDuplicates: allowDuplicates}
}

// Create records a pairing proposal from requesterID. The new match starts
// in status pending; referenced users and plans are only checked by the
// storage layer's foreign keys.
func (s *MatchService) Create(ctx context.Context, requesterID string, match domain.Match) (domain.Match, error) {
	match.UserOneID = requesterID
	if strings.TrimSpace(match.UserTwoID) == "" {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w: userTwoId is required", domain.ErrValidation)
	}
	if match.TravelPlanOneID == uuid.Nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w: travelPlanOneId is required", domain.ErrValidation)
	}
	if match.TravelPlanTwoID == uuid.Nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w: travelPlanTwoId is required", domain.ErrValidation)
	}

	if !s.allowDuplicates {
		exists, err := s.repo.ExistsForPair(ctx, match.UserOneID, match.UserTwoID)
		if err != nil {
			return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", err)
		}
		if exists {
			return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", domain.ErrDuplicate)
		}
	}

	created, err := s.repo.Create(ctx, match)
	if err != nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", err)
	}
	return created, nil
}

// ListForUser returns every match the user participates in, newest first.
func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	matches, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.ListForUser: %w", err)
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}
