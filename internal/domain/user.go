// Package domain contains the core data types for the WanderMatch API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import "time"

// User is a traveler profile. The ID is the subject claim issued by the
// external auth provider, not a database-generated value, so it is a plain
// string rather than a UUID.
// Profiles are created from token claims on first sight; users are never
// hard-deleted.
type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email"` // unique when present; nil for providers that withhold it
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	DateOfBirth     *Date     `json:"dateOfBirth,omitempty"`
	Interests       []string  `json:"interests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserProfile carries the identity fields extracted from a verified auth
// token, used to upsert the users row on login.
type UserProfile struct {
	ID              string
	Email           *string
	FirstName       string
	LastName        string
	ProfileImageURL string
}
