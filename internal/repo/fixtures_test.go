package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
	"github.com/wandermatch/backend/testutil"
)

// beginTx opens a transaction against the test database that is rolled back
// when the test finishes, giving free per-test isolation without cleanup SQL.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func beginTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// seedUser inserts a user row the other fixtures can reference.
func seedUser(t *testing.T, tx pgx.Tx, id string) domain.User {
	t.Helper()
	email := id + "@example.com"
	user, err := repo.NewUserRepo(tx).Upsert(context.Background(), domain.UserProfile{
		ID:        id,
		Email:     &email,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err, "seed user %s", id)
	return user
}

// planFixture returns a domain.TravelPlan with sensible defaults.
// Callers can override individual fields before inserting.
func planFixture(userID string) domain.TravelPlan {
	return domain.TravelPlan{
		UserID:      userID,
		Destination: "Tokyo",
		StartDate:   domain.NewDate(2025, 3, 1),
		EndDate:     domain.NewDate(2025, 3, 10),
		Description: "Cherry blossom season",
		Interests:   []string{"food", "hiking"},
	}
}

// seedPlan inserts a travel plan for the given user.
func seedPlan(t *testing.T, tx pgx.Tx, userID, destination string) domain.TravelPlan {
	t.Helper()
	p := planFixture(userID)
	p.Destination = destination
	created, err := repo.NewTravelPlanRepo(tx).Create(context.Background(), p)
	require.NoError(t, err, "seed plan for %s", userID)
	return created
}
