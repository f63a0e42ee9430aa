// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"context"

	"github.com/guidora/mobile-core/internal/platform/httpclient"
)

// Envelope is the backend response envelope, re-exported so session
// consumers do not need to import the transport layer for the type alone.
type Envelope = httpclient.Envelope

// CredentialStore defines the persistence contract for the bearer credential.
//
// # Review Process
//
// This interface is placed in a separate file from manager.go so lifecycle
// changes and storage-contract changes can be reviewed independently.
//
// # Implementations
//
//   - [FileStore]: on-device JSON file (default for phone installs).
//   - [SealedFileStore]: file encrypted at rest for installs that opt in.
//   - [RedisStore]: shared key-value deployment (kiosks, end-to-end rigs).
type CredentialStore interface {
	// Load returns the persisted credential.
	//
	// An absent credential is NOT an error: Load returns ("", nil) so the
	// caller can distinguish "never logged in" from "storage unavailable".
	Load(ctx context.Context) (string, error)

	// Save persists the credential, replacing any previous value.
	Save(ctx context.Context, credential string) error

	// Delete removes the persisted credential. Deleting an absent
	// credential is a no-op, so the operation is idempotent.
	Delete(ctx context.Context) error
}

// ProfileAPI defines the backend operations the session manager drives.
//
// # Domain Ownership
//
// Login and registration are NOT part of this contract: credential
// validation belongs to the UI flow, which hands the raw login payload to
// [Manager.Login] after the backend has accepted it.
type ProfileAPI interface {
	// GetProfile fetches the account behind the attached credential.
	GetProfile(ctx context.Context) (*Envelope, error)

	// UpdateProfile sends a partial field patch to the backend.
	UpdateProfile(ctx context.Context, patch map[string]any) (*Envelope, error)

	// RequestRole submits a role-elevation request (guide, photographer).
	RequestRole(ctx context.Context, role string) (*Envelope, error)
}

// HeaderWriter is the slice of the HTTP client the session manager needs:
// the mutable default-header map carrying the Authorization header.
type HeaderWriter interface {
	SetDefaultHeader(name, value string)
	DeleteDefaultHeader(name string)
}
