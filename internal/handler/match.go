package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/middleware"
)

// matchPayload is the client-supplied portion of a match. User one is always
// the authenticated requester.
type matchPayload struct {
	UserTwoID       string `json:"userTwoId"`
	TravelPlanOneID string `json:"travelPlanOneId"`
	TravelPlanTwoID string `json:"travelPlanTwoId"`
}

// ListMatches handles GET /api/matches, returning every match the caller
// participates in, newest first.
func (s *Server) ListMatches(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	matches, err := s.matches.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, err, "Match not found", "Failed to fetch matches")
		return
	}

	respondJSON(w, http.StatusOK, matches)
}

// CreateMatch handles POST /api/matches. The new match starts pending;
// whether a repeat pairing for the same two users is allowed depends on
// server configuration (a repeat yields 409 when duplicates are disabled).
func (s *Server) CreateMatch(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var payload matchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid match data")
		return
	}

	match := domain.Match{UserTwoID: payload.UserTwoID}
	var err error
	if match.TravelPlanOneID, err = uuid.Parse(payload.TravelPlanOneID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid match data")
		return
	}
	if match.TravelPlanTwoID, err = uuid.Parse(payload.TravelPlanTwoID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid match data")
		return
	}

	created, err := s.matches.Create(r.Context(), identity.UserID, match)
	if err != nil {
		respondServiceError(w, r, err, "Match not found", "Failed to create match")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}
