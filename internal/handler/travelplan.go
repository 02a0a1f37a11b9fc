package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/middleware"
)

// travelPlanPayload is the client-supplied portion of a travel plan.
// Server-assigned fields (id, userId, timestamps) never appear here — the
// schema validator strips them before this struct is decoded.
type travelPlanPayload struct {
	Destination string      `json:"destination"`
	StartDate   domain.Date `json:"startDate"`
	EndDate     domain.Date `json:"endDate"`
	Description string      `json:"description"`
	Interests   []string    `json:"interests"`
}

func (p travelPlanPayload) toDomain() domain.TravelPlan {
	return domain.TravelPlan{
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Description: p.Description,
		Interests:   p.Interests,
	}
}

// ListTravelPlans handles GET /api/travel-plans.
// With ?search=discover it returns the discovery feed: other users' active
// plans with the owner profile embedded, optionally narrowed by
// ?destination=, ?startDate=, and ?endDate=. Without it, the caller's own
// plans are returned, soft-deleted ones included.
func (s *Server) ListTravelPlans(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if r.URL.Query().Get("search") == "discover" {
		filter, err := discoveryFilterFromQuery(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		feed, err := s.plans.Discover(r.Context(), identity.UserID, filter)
		if err != nil {
			respondServiceError(w, r, err, "Travel plan not found", "Failed to fetch travel plans")
			return
		}
		respondJSON(w, http.StatusOK, feed)
		return
	}

	plans, err := s.plans.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, err, "Travel plan not found", "Failed to fetch travel plans")
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

// CreateTravelPlan handles POST /api/travel-plans.
func (s *Server) CreateTravelPlan(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel plan data")
		return
	}

	cleaned, fieldErrs, err := s.planSchema.Validate(r.Context(), raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel plan data")
		return
	}
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, "Invalid travel plan data", fieldErrs)
		return
	}

	var payload travelPlanPayload
	if err := json.Unmarshal(cleaned, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel plan data")
		return
	}

	created, err := s.plans.Create(r.Context(), identity.UserID, payload.toDomain())
	if err != nil {
		respondServiceError(w, r, err, "Travel plan not found", "Failed to create travel plan")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateTravelPlan handles PUT /api/travel-plans/{id}. Owner only.
func (s *Server) UpdateTravelPlan(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Travel plan not found")
		return
	}

	var payload travelPlanPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel plan data")
		return
	}

	plan := payload.toDomain()
	plan.ID = id

	updated, err := s.plans.Update(r.Context(), identity.UserID, plan)
	if err != nil {
		respondServiceError(w, r, err, "Travel plan not found", "Failed to update travel plan")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteTravelPlan handles DELETE /api/travel-plans/{id}. Owner only.
// The plan is soft-deleted: hidden from discovery, still resolvable by ID.
func (s *Server) DeleteTravelPlan(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Travel plan not found")
		return
	}

	if err := s.plans.Delete(r.Context(), identity.UserID, id); err != nil {
		respondServiceError(w, r, err, "Travel plan not found", "Failed to delete travel plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Travel plan deleted successfully"})
}

// discoveryFilterFromQuery parses the optional discovery filter parameters.
func discoveryFilterFromQuery(r *http.Request) (domain.DiscoveryFilter, error) {
	q := r.URL.Query()
	filter := domain.DiscoveryFilter{Destination: q.Get("destination")}

	for param, dest := range map[string]**domain.Date{
		"startDate": &filter.StartDate,
		"endDate":   &filter.EndDate,
	} {
		if v := q.Get(param); v != "" {
			t, err := time.Parse(domain.DateFormat, v)
			if err != nil {
				return domain.DiscoveryFilter{}, fmt.Errorf("invalid %s: expected %s", param, domain.DateFormat)
			}
			d := domain.Date{Time: t}
			*dest = &d
		}
	}

	return filter, nil
}
