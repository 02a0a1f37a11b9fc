package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
	"github.com/wandermatch/backend/internal/service"
)

// mockTravelPlanRepo is a hand-written test double for repo.TravelPlanRepo.
// Each method is a function field — set only the ones your test needs.
type mockTravelPlanRepo struct {
	create       func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error)
	listByUser   func(ctx context.Context, userID string) ([]domain.TravelPlan, error)
	searchActive func(ctx context.Context, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error)
	update       func(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)
	softDelete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTravelPlanRepo) Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	return m.create(ctx, plan)
}
func (m *mockTravelPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	return m.getByID(ctx, id)
}
func (m *mockTravelPlanRepo) ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTravelPlanRepo) SearchActive(ctx context.Context, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
	return m.searchActive(ctx, filter)
}
func (m *mockTravelPlanRepo) Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	return m.update(ctx, plan)
}
func (m *mockTravelPlanRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.softDelete(ctx, id)
}

var _ repo.TravelPlanRepo = (*mockTravelPlanRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validPlan() domain.TravelPlan {
	return domain.TravelPlan{
		Destination: "Tokyo, Japan",
		StartDate:   domain.NewDate(2025, 3, 1),
		EndDate:     domain.NewDate(2025, 3, 10),
		Interests:   []string{"food", "hiking"},
	}
}

func echoPlanRepo() *mockTravelPlanRepo {
	// Echoes whatever it receives back, for tests that only exercise the
	// validation logic in front of the repo call.
	return &mockTravelPlanRepo{
		create: func(_ context.Context, p domain.TravelPlan) (domain.TravelPlan, error) { return p, nil },
		update: func(_ context.Context, p domain.TravelPlan) (domain.TravelPlan, error) { return p, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTravelPlanService_Create_Valid(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	got, err := svc.Create(context.Background(), "u1", validPlan())

	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID, "owner comes from the authenticated caller")
	assert.Equal(t, "Tokyo, Japan", got.Destination)
}

func TestTravelPlanService_Create_OwnerOverridesPayload(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	plan := validPlan()
	plan.UserID = "someone-else"
	got, err := svc.Create(context.Background(), "u1", plan)

	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID, "a client-supplied owner must be ignored")
}

func TestTravelPlanService_Create_MissingDestination(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	plan := validPlan()
	plan.Destination = "   "
	_, err := svc.Create(context.Background(), "u1", plan)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelPlanService_Create_MissingDates(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	plan := validPlan()
	plan.StartDate = domain.Date{}
	_, err := svc.Create(context.Background(), "u1", plan)
	assert.ErrorIs(t, err, domain.ErrValidation)

	plan = validPlan()
	plan.EndDate = domain.Date{}
	_, err = svc.Create(context.Background(), "u1", plan)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelPlanService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	plan := validPlan()
	plan.StartDate = domain.NewDate(2025, 3, 10)
	plan.EndDate = domain.NewDate(2025, 3, 1)
	_, err := svc.Create(context.Background(), "u1", plan)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelPlanService_Create_SingleDayPlan(t *testing.T) {
	svc := service.NewTravelPlanService(echoPlanRepo())

	plan := validPlan()
	plan.StartDate = domain.NewDate(2025, 3, 1)
	plan.EndDate = domain.NewDate(2025, 3, 1)
	_, err := svc.Create(context.Background(), "u1", plan)

	assert.NoError(t, err, "equal start and end dates are a valid one-day plan")
}

func TestTravelPlanService_Create_RepoError(t *testing.T) {
	dbErr := errors.New("connection reset")
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		create: func(_ context.Context, _ domain.TravelPlan) (domain.TravelPlan, error) {
			return domain.TravelPlan{}, dbErr
		},
	})

	_, err := svc.Create(context.Background(), "u1", validPlan())

	assert.ErrorIs(t, err, dbErr)
}

// ---- ListByUser tests ------------------------------------------------------

func TestTravelPlanService_ListByUser_EmptyIsNotNil(t *testing.T) {
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		listByUser: func(_ context.Context, _ string) ([]domain.TravelPlan, error) { return nil, nil },
	})

	got, err := svc.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotNil(t, got, "JSON encoding must produce [] rather than null")
	assert.Empty(t, got)
}

// ---- Discover tests --------------------------------------------------------

func TestTravelPlanService_Discover_ExcludesRequester(t *testing.T) {
	mine := domain.PlanWithOwner{TravelPlan: validPlan()}
	mine.UserID = "u1"
	theirs := domain.PlanWithOwner{TravelPlan: validPlan()}
	theirs.UserID = "u2"
	theirs.User = domain.User{ID: "u2"}

	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		searchActive: func(_ context.Context, _ domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
			return []domain.PlanWithOwner{mine, theirs}, nil
		},
	})

	got, err := svc.Discover(context.Background(), "u1", domain.DiscoveryFilter{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].UserID)
}

func TestTravelPlanService_Discover_EmptyIsNotNil(t *testing.T) {
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		searchActive: func(_ context.Context, _ domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
			return nil, nil
		},
	})

	got, err := svc.Discover(context.Background(), "u1", domain.DiscoveryFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTravelPlanService_Discover_PassesFilterThrough(t *testing.T) {
	var seen domain.DiscoveryFilter
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		searchActive: func(_ context.Context, f domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
			seen = f
			return nil, nil
		},
	})

	start := domain.NewDate(2025, 3, 1)
	_, err := svc.Discover(context.Background(), "u1", domain.DiscoveryFilter{
		Destination: "tokyo",
		StartDate:   &start,
	})

	require.NoError(t, err)
	assert.Equal(t, "tokyo", seen.Destination)
	require.NotNil(t, seen.StartDate)
}

// ---- Update tests ----------------------------------------------------------

func TestTravelPlanService_Update_Owner(t *testing.T) {
	id := uuid.New()
	existing := validPlan()
	existing.ID = id
	existing.UserID = "u1"

	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, got uuid.UUID) (domain.TravelPlan, error) {
			assert.Equal(t, id, got)
			return existing, nil
		},
		update: func(_ context.Context, p domain.TravelPlan) (domain.TravelPlan, error) { return p, nil },
	})

	updated := validPlan()
	updated.ID = id
	updated.Destination = "Kyoto, Japan"
	got, err := svc.Update(context.Background(), "u1", updated)

	require.NoError(t, err)
	assert.Equal(t, "Kyoto, Japan", got.Destination)
	assert.Equal(t, "u1", got.UserID, "ownership never changes on update")
}

func TestTravelPlanService_Update_NotOwner(t *testing.T) {
	existing := validPlan()
	existing.ID = uuid.New()
	existing.UserID = "u1"

	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) { return existing, nil },
	})

	updated := validPlan()
	updated.ID = existing.ID
	_, err := svc.Update(context.Background(), "u2", updated)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTravelPlanService_Update_NotFound(t *testing.T) {
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) {
			return domain.TravelPlan{}, domain.ErrNotFound
		},
	})

	plan := validPlan()
	plan.ID = uuid.New()
	_, err := svc.Update(context.Background(), "u1", plan)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelPlanService_Update_InvalidFields(t *testing.T) {
	existing := validPlan()
	existing.ID = uuid.New()
	existing.UserID = "u1"

	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) { return existing, nil },
	})

	updated := existing
	updated.Destination = ""
	_, err := svc.Update(context.Background(), "u1", updated)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete tests ----------------------------------------------------------

func TestTravelPlanService_Delete_Owner(t *testing.T) {
	existing := validPlan()
	existing.ID = uuid.New()
	existing.UserID = "u1"

	deleted := false
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) { return existing, nil },
		softDelete: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, existing.ID, id)
			deleted = true
			return nil
		},
	})

	err := svc.Delete(context.Background(), "u1", existing.ID)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestTravelPlanService_Delete_NotOwner(t *testing.T) {
	existing := validPlan()
	existing.ID = uuid.New()
	existing.UserID = "u1"

	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) { return existing, nil },
	})

	err := svc.Delete(context.Background(), "u2", existing.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTravelPlanService_Delete_NotFound(t *testing.T) {
	svc := service.NewTravelPlanService(&mockTravelPlanRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) {
			return domain.TravelPlan{}, domain.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), "u1", uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
