package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wandermatch/backend/internal/domain"
	"github.com/wandermatch/backend/internal/repo"
)

// MessageService implements business logic for Message operations.
type MessageService struct {
	repo repo.MessageRepo
}

// NewMessageService constructs a MessageService backed by the provided MessageRepo.
func NewMessageService(r repo.MessageRepo) *MessageService {
	return &MessageService{repo: r}
}

// Send validates and persists a new message from senderID.
// A message addressed to the sender themself is accepted — nothing forbids
// it, even if it is of little use.
func (s *MessageService) Send(ctx context.Context, senderID string, msg domain.Message) (domain.Message, error) {
	msg.SenderID = senderID
	if strings.TrimSpace(msg.RecipientID) == "" {
		return domain.Message{}, fmt.Errorf("service.MessageService.Send: %w: recipientId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return domain.Message{}, fmt.Errorf("service.MessageService.Send: %w: content is required", domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("service.MessageService.Send: %w", err)
	}
	return created, nil
}

// ListForUser returns the inbox (all messages the user sent or received) or,
// with a counterpart, the two-party thread between them, newest first.
func (s *MessageService) ListForUser(ctx context.Context, userID string, counterpart *string) ([]domain.MessageWithUsers, error) {
	msgs, err := s.repo.ListForUser(ctx, userID, counterpart)
	if err != nil {
		return nil, fmt.Errorf("service.MessageService.ListForUser: %w", err)
	}
	if msgs == nil {
		msgs = []domain.MessageWithUsers{}
	}
	return msgs, nil
}

// MarkRead flips the read flag on a message. Idempotent: re-marking an
// already-read message still succeeds.
func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("service.MessageService.MarkRead: %w", err)
	}
	return nil
}
