package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/handler"
	"github.com/wandermatch/backend/internal/middleware"
)

// ---- service mocks ---------------------------------------------------------
// Hand-written doubles for the handler's service interfaces. Each method is a
// function field — set only the ones your test needs.

type mockUserServicer struct {
	getByID           func(ctx context.Context, id string) (domain.User, error)
	upsertFromProfile func(ctx context.Context, profile domain.UserProfile) (domain.User, error)
}

func (m *mockUserServicer) GetByID(ctx context.Context, id string) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) UpsertFromProfile(ctx context.Context, profile domain.UserProfile) (domain.User, error) {
	return m.upsertFromProfile(ctx, profile)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockTravelPlanServicer struct {
	create     func(ctx context.Context, ownerID string, plan domain.TravelPlan) (domain.TravelPlan, error)
	listByUser func(ctx context.Context, userID string) ([]domain.TravelPlan, error)
	discover   func(ctx context.Context, requesterID string, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error)
	update     func(ctx context.Context, requesterID string, plan domain.TravelPlan) (domain.TravelPlan, error)
	delete     func(ctx context.Context, requesterID string, id uuid.UUID) error
}

func (m *mockTravelPlanServicer) Create(ctx context.Context, ownerID string, plan domain.TravelPlan) (domain.TravelPlan, error) {
	return m.create(ctx, ownerID, plan)
}
func (m *mockTravelPlanServicer) ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTravelPlanServicer) Discover(ctx context.Context, requesterID string, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error) {
	return m.discover(ctx, requesterID, filter)
}
func (m *mockTravelPlanServicer) Update(ctx context.Context, requesterID string, plan domain.TravelPlan) (domain.TravelPlan, error) {
	return m.update(ctx, requesterID, plan)
}
func (m *mockTravelPlanServicer) Delete(ctx context.Context, requesterID string, id uuid.UUID) error {
	return m.delete(ctx, requesterID, id)
}

var _ handler.TravelPlanServicer = (*mockTravelPlanServicer)(nil)

type mockMessageServicer struct {
	send        func(ctx context.Context, senderID string, msg domain.Message) (domain.Message, error)
	listForUser func(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error)
	markRead    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockMessageServicer) Send(ctx context.Context, senderID string, msg domain.Message) (domain.Message, error) {
	return m.send(ctx, senderID, msg)
}
func (m *mockMessageServicer) ListForUser(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error) {
	return m.listForUser(ctx, userID, counterpart)
}
func (m *mockMessageServicer) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.markRead(ctx, id)
}

var _ handler.MessageServicer = (*mockMessageServicer)(nil)

type mockMatchServicer struct {
	create      func(ctx context.Context, requesterID string, match domain.Match) (domain.Match, error)
	listForUser func(ctx context.Context, userID string) ([]domain.Match, error)
}

func (m *mockMatchServicer) Create(ctx context.Context, requesterID string, match domain.Match) (domain.Match, error) {
	return m.create(ctx, requesterID, match)
}
func (m *mockMatchServicer) ListForUser(ctx context.Context, userID string) ([]domain.Match, error) {
	return m.listForUser(ctx, userID)
}

var _ handler.MatchServicer = (*mockMatchServicer)(nil)

// ---- request helpers -------------------------------------------------------

// authAs returns middleware that stamps every request with a fixed identity,
// standing in for the JWT authenticator in route-level tests.
func authAs(id middleware.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), id)))
		})
	}
}

// newRouter mounts the full route tree with the caller authenticated as userID.
func newRouter(s *handler.Server, userID string) http.Handler {
	return handler.Routes(s, authAs(middleware.Identity{UserID: userID}))
}

// doJSON performs a request with an optional JSON body against the router.
func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
