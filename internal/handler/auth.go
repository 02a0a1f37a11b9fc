package handler

import (
	"errors"
	"net/http"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/middleware"
)

// GetAuthUser handles GET /api/auth/user.
// It returns the caller's stored profile. On first sight of an identity the
// profile is created from the token claims, so no separate signup call exists.
func (s *Server) GetAuthUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.users.GetByID(r.Context(), identity.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.UpsertFromProfile(r.Context(), identity.Profile())
	}
	if err != nil {
		respondServiceError(w, r, err, "User not found", "Failed to fetch user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
