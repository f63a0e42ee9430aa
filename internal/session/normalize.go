// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/guidora/mobile-core/pkg/loose"
)

// Candidate source keys, in fallback order, for every normalized field.
//
// The backend has shipped camelCase, snake_case, and a few legacy spellings
// over its lifetime. Order matters: the canonical spelling comes first so
// normalizing an already-normalized record is a no-op.
var (
	idKeys          = []string{"id", "userId", "user_id"}
	nameKeys        = []string{"name", "fullName", "full_name"}
	usernameKeys    = []string{"username", "userName", "user_name"}
	phoneKeys       = []string{"phone", "phoneNumber", "phone_number"}
	emailKeys       = []string{"email"}
	addressKeys     = []string{"address"}
	genderKeys      = []string{"gender"}
	dobKeys         = []string{"dateOfBirth", "date_of_birth", "dob"}
	countryKeys     = []string{"countryCode", "country_code"}
	latitudeKeys    = []string{"latitude", "lat"}
	longitudeKeys   = []string{"longitude", "lng", "long"}
	profileKeys     = []string{"profile", "profilePhoto", "profile_photo", "avatar", "image"}
	roleKeys        = []string{"role", "userRole", "user_role"}
	adminFlagKeys   = []string{"isAdmin", "is_admin", "admin"}
	guideFlagKeys   = []string{"isGuide", "is_guide", "guide", "isGuider"}
	photoFlagKeys   = []string{"isPhotographer", "is_photographer", "photographer"}
	tokenKeys       = []string{"token", "accessToken", "access_token"}
	refreshKeys     = []string{"refreshToken", "refresh_token"}
	nestedUserKeys  = []string{"user", "data"}
	defaultUserName = "User"
)

// UnwrapUser returns the user object of a raw backend payload.
//
// # Tolerated Shapes
//
// The backend sometimes wraps the account under a nested "user" key (or hands
// over a whole response envelope with a "data" key) and sometimes returns the
// account object directly. All shapes must normalize identically given
// equivalent field values, so unwrapping happens here, before any field is
// read. Unwrapping is iterative to cope with {"data": {"user": {...}}}.
func UnwrapUser(raw map[string]any) map[string]any {
	record := raw
	for i := 0; i < 3 && record != nil; i++ {
		nested := loose.Map(record, nestedUserKeys...)
		if nested == nil {
			return record
		}
		record = nested
	}
	return record
}

// Normalize maps a loosely-shaped backend payload into a fully-keyed [*User].
//
// # Behavior
//   - A nil payload yields nil ("no user"), never a panic.
//   - Fields absent from the payload default to zero values, so downstream
//     code can rely on the [User] shape always being complete.
//   - Role flags derive from boolean flags OR a matching role string; the
//     single Role field is resolved by priority (see [resolveRole]).
//   - The credential is looked up inside the user object first, then at the
//     top level of the payload (login responses place it beside the user).
func Normalize(raw map[string]any) *User {
	if raw == nil {
		return nil
	}
	record := UnwrapUser(raw)

	// ── 1. Role Derivation ────────────────────────────────────────────────

	roleString := strings.ToUpper(strings.TrimSpace(loose.String(record, roleKeys...)))

	isAdmin := loose.Bool(record, adminFlagKeys...) || roleString == "ADMIN"
	isGuide := loose.Bool(record, guideFlagKeys...) ||
		roleString == string(RoleGuide) || roleString == "GUIDE"
	isPhotographer := loose.Bool(record, photoFlagKeys...) || roleString == "PHOTOGRAPHER"

	// ── 2. Identity Fields ────────────────────────────────────────────────

	name := loose.String(record, nameKeys...)
	if name == "" {
		name = loose.String(record, usernameKeys...)
	}
	if name == "" {
		name = defaultUserName
	}

	user := &User{
		ID:          loose.Int64(record, idKeys...),
		Name:        norm.NFC.String(name),
		Username:    norm.NFC.String(loose.String(record, usernameKeys...)),
		Phone:       loose.String(record, phoneKeys...),
		Email:       loose.String(record, emailKeys...),
		Address:     loose.String(record, addressKeys...),
		Gender:      loose.String(record, genderKeys...),
		DateOfBirth: loose.String(record, dobKeys...),
		CountryCode: loose.String(record, countryKeys...),
		Latitude:    loose.Float64(record, latitudeKeys...),
		Longitude:   loose.Float64(record, longitudeKeys...),
		ProfileRef:  loose.String(record, profileKeys...),
	}

	// ── 3. Role Resolution (mutually exclusive, priority ordered) ─────────

	user.IsAdmin = isAdmin
	user.IsGuide = isGuide
	user.IsPhotographer = isPhotographer
	user.Role = resolveRole(isAdmin, isGuide, isPhotographer)

	// ── 4. Credentials (carried through, not derived) ─────────────────────

	// Login responses place the token either inside the user object or
	// beside it at the top level of the payload. The user object wins.
	user.Credential = loose.String(record, tokenKeys...)
	if user.Credential == "" {
		user.Credential = loose.String(raw, tokenKeys...)
	}
	user.RefreshCredential = loose.String(record, refreshKeys...)
	if user.RefreshCredential == "" {
		user.RefreshCredential = loose.String(raw, refreshKeys...)
	}

	return user
}
