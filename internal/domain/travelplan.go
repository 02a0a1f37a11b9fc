package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelPlan is a user-authored record describing an intended trip.
// Plans are soft-deleted: IsActive flips to false instead of removing the
// row, so messages that reference the plan stay resolvable.
type TravelPlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	Destination string    `json:"destination"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
	Description string    `json:"description,omitempty"`
	Interests   []string  `json:"interests,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlanWithOwner is a travel plan joined with its owner's profile, as served
// by the discovery feed.
type PlanWithOwner struct {
	TravelPlan
	User User `json:"user"`
}

// DiscoveryFilter narrows the discovery feed. Zero values mean "no filter".
// Destination matches as a case-insensitive substring; the date bounds
// restrict plans to those starting on or after StartDate and ending on or
// before EndDate.
type DiscoveryFilter struct {
	Destination string
	StartDate   *Date
	EndDate     *Date
}
