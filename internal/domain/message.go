package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users, optionally attached to a
// travel plan. Messages are never deleted; the only mutation is flipping
// IsRead. A message where sender == recipient is representable and accepted —
// the system places no constraint against self-messages, low-value as they are.
type Message struct {
	ID           uuid.UUID  `json:"id"`
	SenderID     string     `json:"senderId"`
	RecipientID  string     `json:"recipientId"`
	TravelPlanID *uuid.UUID `json:"travelPlanId,omitempty"`
	Content      string     `json:"content"`
	IsRead       bool       `json:"isRead"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// MessageWithUsers is a message enriched with both participants' profiles,
// as served by the inbox and thread endpoints.
type MessageWithUsers struct {
	Message
	Sender    User `json:"sender"`
	Recipient User `json:"recipient"`
}
