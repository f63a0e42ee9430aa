// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

// Package session owns the authenticated-user state of the Guidora client.
//
// # Architecture
//
// The entities in this file represent the "Truth" the rest of the client
// renders from. They have no dependencies on outer layers (HTTP, storage)
// and are reconstructed wholesale by normalization on every login/refresh —
// never incrementally mutated.
package session

// Role represents the marketplace role resolved for an account.
//
// # Usage
//
// Screens use [Role.AtLeast] to decide which dashboards (guide bookings,
// photographer portfolio, admin review queue) are reachable.
type Role string

const (
	RoleAdmin        Role = "ADMIN"        // Marketplace operators.
	RoleGuide        Role = "GUIDER"       // Tour guides ("GUIDER" is the wire spelling).
	RolePhotographer Role = "PHOTOGRAPHER" // Photographers offering shoots.
	RoleUser         Role = "USER"         // Default role: a travelling customer.
)

// level maps a role to a numeric hierarchy level to easily check permissions.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleGuide:
		return 30
	case RolePhotographer:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// AtLeast checks if the current role meets or exceeds the required target role.
//
// # Why numeric mapping?
//
// Using numeric levels allows simple >= comparisons instead of nested
// IF/SWITCH statements when deciding whether a guide may open a
// customer-level screen.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// resolveRole collapses the three raw role flags into exactly one [Role].
//
// # Invariant
//
// Priority order is ADMIN > GUIDER > PHOTOGRAPHER > USER, first match wins.
// An account is never classified as two roles at once, even when the backend
// sets multiple flags.
func resolveRole(isAdmin, isGuide, isPhotographer bool) Role {
	switch {
	case isAdmin:
		return RoleAdmin
	case isGuide:
		return RoleGuide
	case isPhotographer:
		return RolePhotographer
	default:
		return RoleUser
	}
}

// Status names the relationship between the held profile and the held credential.
//
// # Why an explicit state?
//
// The backend occasionally returns a login payload without a token (partially
// verified accounts). Instead of letting profile and credential silently
// diverge, the session names the condition so screens can branch on it.
type Status string

const (
	// StatusLoggedOut means no profile is held.
	StatusLoggedOut Status = "logged_out"

	// StatusAuthenticated means a profile and a usable credential are held.
	StatusAuthenticated Status = "authenticated"

	// StatusProfileOnly means a profile is held but no credential was issued.
	StatusProfileOnly Status = "profile_only"
)

// User is the normalized account representation used throughout the client.
//
// # Rules
//   - Every field is always present (zero value, never "missing"), so screens
//     can bind without nil checks.
//   - Role flags are derived during normalization, never set independently.
//   - Credential fields are carried through from the raw payload, not derived,
//     and are excluded from JSON rendering.
type User struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Username    string  `json:"username"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	Gender      string  `json:"gender"`
	DateOfBirth string  `json:"dateOfBirth"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// ProfileRef points at the account's profile photo in media storage.
	ProfileRef string `json:"profile"`

	Role           Role `json:"role"`
	IsAdmin        bool `json:"isAdmin"`
	IsGuide        bool `json:"isGuide"`
	IsPhotographer bool `json:"isPhotographer"`

	// Explicitly omitted from JSON for security.
	Credential        string `json:"-"`
	RefreshCredential string `json:"-"`
}
