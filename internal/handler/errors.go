package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/schema"
)

// errorResponse is the JSON error envelope every failure returns.
// Validation failures additionally carry per-field details.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes a plain error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondFieldErrors writes a 400 with per-field validation details.
func respondFieldErrors(w http.ResponseWriter, message string, errs []schema.FieldError) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Message: message, Errors: errs})
}

// respondServiceError maps a service-layer error to an HTTP response.
// Sentinel errors become their documented statuses; anything else is logged
// server-side and reported as a generic 500 with no internal detail leaked.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, failureMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrDuplicate):
		respondError(w, http.StatusConflict, "A match between these users already exists")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, failureMsg)
	}
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation, e.g.
// "service.TravelPlanService.Create: validation error: destination is required"
// → "destination is required".
func validationMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
