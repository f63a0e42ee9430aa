// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

// Package sec provides client-side credential inspection.
//
// # Architecture
//
// The mobile core never validates token signatures — the backend is the only
// authority on credential validity. This package only *reads* the claims of a
// bearer token so the session layer can log useful diagnostics (expiry,
// subject) before attempting a silent refresh.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialInfo summarizes the readable claims of a bearer credential.
//
// # Why unverified?
//
// The client has no signing key material. An expired or forged token is
// rejected by the backend with a 401 either way; inspecting claims locally
// only improves log quality and lets the UI warn about imminent expiry.
type CredentialInfo struct {
	// Subject is the 'sub' claim, usually the account ID.
	Subject string

	// ExpiresAt is the 'exp' claim. Zero when the token carries no expiry.
	ExpiresAt time.Time

	// Expired reports whether ExpiresAt is set and in the past.
	Expired bool
}

// InspectCredential parses a JWT bearer credential WITHOUT verifying its
// signature and returns the readable claims.
//
// # Returns
//   - A [*CredentialInfo] with subject and expiry data.
//   - An error if the string is not a structurally valid JWT. Opaque
//     (non-JWT) tokens are a supported backend option, so callers must treat
//     this error as informational, never as a reason to drop the credential.
func InspectCredential(tokenString string) (*CredentialInfo, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("sec: credential is not a readable JWT: %w", err)
	}

	info := &CredentialInfo{}

	if subject, err := claims.GetSubject(); err == nil {
		info.Subject = subject
	}

	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		info.ExpiresAt = expiry.Time
		info.Expired = expiry.Time.Before(time.Now())
	}

	return info, nil
}
