// Package handler implements the HTTP handlers for the WanderMatch API.
// All handlers are methods on Server, split into entity-specific files
// (auth.go, travelplan.go, message.go, match.go) that share the same struct
// so they can access its dependencies. Handlers decode and shape JSON and
// map service errors to HTTP statuses; business rules live in the services.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/schema"
)

// UserServicer defines the user operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type UserServicer interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	UpsertFromProfile(ctx context.Context, profile domain.UserProfile) (domain.User, error)
}

// TravelPlanServicer defines the travel-plan operations the handlers depend on.
type TravelPlanServicer interface {
	Create(ctx context.Context, ownerID string, plan domain.TravelPlan) (domain.TravelPlan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TravelPlan, error)
	Discover(ctx context.Context, requesterID string, filter domain.DiscoveryFilter) ([]domain.PlanWithOwner, error)
	Update(ctx context.Context, requesterID string, plan domain.TravelPlan) (domain.TravelPlan, error)
	Delete(ctx context.Context, requesterID string, id uuid.UUID) error
}

// MessageServicer defines the message operations the handlers depend on.
type MessageServicer interface {
	Send(ctx context.Context, senderID string, msg domain.Message) (domain.Message, error)
	ListForUser(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// MatchServicer defines the match operations the handlers depend on.
type MatchServicer interface {
	Create(ctx context.Context, requesterID string, match domain.Match) (domain.Match, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Match, error)
}

// Server holds the handlers' dependencies: one service per entity and the
// compiled payload validators for the create endpoints.
type Server struct {
	users    UserServicer
	plans    TravelPlanServicer
	messages MessageServicer
	matches  MatchServicer

	planSchema    *schema.Validator
	messageSchema *schema.Validator
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, plans TravelPlanServicer, messages MessageServicer, matches MatchServicer) *Server {
	return &Server{
		users:         users,
		plans:         plans,
		messages:      messages,
		matches:       matches,
		planSchema:    schema.TravelPlanCreate(),
		messageSchema: schema.MessageCreate(),
	}
}

// Routes mounts every endpoint on a fresh chi router. All /api routes sit
// behind the provided authenticator middleware; the health check and the
// embedded OpenAPI document stay public.
func Routes(s *Server, authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Use(authn)

		r.Get("/auth/user", s.GetAuthUser)

		r.Route("/travel-plans", func(r chi.Router) {
			r.Get("/", s.ListTravelPlans)
			r.Post("/", s.CreateTravelPlan)
			r.Put("/{id}", s.UpdateTravelPlan)
			r.Delete("/{id}", s.DeleteTravelPlan)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", s.ListMessages)
			r.Post("/", s.SendMessage)
			r.Put("/{id}/read", s.MarkMessageRead)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", s.ListMatches)
			r.Post("/", s.CreateMatch)
		})
	})

	return r
}
