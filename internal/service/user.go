// Package service contains the business logic for the WanderMatch API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
)

// UserService implements business logic for User operations.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// GetByID returns a single user by the external-auth subject ID.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// UpsertFromProfile creates or refreshes a user row from the identity fields
// of a verified auth token, so the stored identity tracks the auth provider.
func (s *UserService) UpsertFromProfile(ctx context.Context, profile domain.UserProfile) (domain.User, error) {
	if strings.TrimSpace(profile.ID) == "" {
		return domain.User{}, fmt.Errorf("service.UserService.UpsertFromProfile: %w: subject is required", domain.ErrValidation)
	}

	user, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpsertFromProfile: %w", err)
	}
	return user, nil
}
