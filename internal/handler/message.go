package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/middleware"
)

// messagePayload is the client-supplied portion of a message. The sender is
// always the authenticated caller; the schema validator strips any senderId
// a client tries to smuggle in.
type messagePayload struct {
	RecipientID  string  `json:"recipientId"`
	TravelPlanID *string `json:"travelPlanId"`
	Content      string  `json:"content"`
}

// ListMessages handles GET /api/messages.
// Without parameters it returns the caller's whole inbox (sent and received).
// With ?recipientId= it returns only the two-party thread with that user.
// Both views embed full sender and recipient profiles, newest first.
func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var counterpart *string
	if v := r.URL.Query().Get("recipientId"); v != "" {
		counterpart = &v
	}

	msgs, err := s.messages.ListForUser(r.Context(), identity.UserID, counterpart)
	if err != nil {
		respondServiceError(w, r, err, "Message not found", "Failed to fetch messages")
		return
	}

	respondJSON(w, http.StatusOK, msgs)
}

// SendMessage handles POST /api/messages.
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message data")
		return
	}

	cleaned, fieldErrs, err := s.messageSchema.Validate(r.Context(), raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message data")
		return
	}
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, "Invalid message data", fieldErrs)
		return
	}

	var payload messagePayload
	if err := json.Unmarshal(cleaned, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message data")
		return
	}

	msg := domain.Message{
		RecipientID: payload.RecipientID,
		Content:     payload.Content,
	}
	if payload.TravelPlanID != nil {
		planID, err := uuid.Parse(*payload.TravelPlanID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid message data")
			return
		}
		msg.TravelPlanID = &planID
	}

	created, err := s.messages.Send(r.Context(), identity.UserID, msg)
	if err != nil {
		respondServiceError(w, r, err, "Message not found", "Failed to send message")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// MarkMessageRead handles PUT /api/messages/{id}/read.
// Idempotent: re-marking an already-read message still reports success.
func (s *Server) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Message not found")
		return
	}

	if err := s.messages.MarkRead(r.Context(), id); err != nil {
		respondServiceError(w, r, err, "Message not found", "Failed to mark message as read")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Message marked as read"})
}
