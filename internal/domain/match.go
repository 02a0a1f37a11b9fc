package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus enumerates the lifecycle states of a match.
// The only meaningful transitions are pending → accepted and
// pending → rejected; no transition endpoint exists yet.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// Match records a pairing proposal between two users' travel plans.
// UserOne is always the requester that initiated the pairing.
type Match struct {
	ID              uuid.UUID   `json:"id"`
	UserOneID       string      `json:"userOneId"`
	UserTwoID       string      `json:"userTwoId"`
	TravelPlanOneID uuid.UUID   `json:"travelPlanOneId"`
	TravelPlanTwoID uuid.UUID   `json:"travelPlanTwoId"`
	Status          MatchStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}
