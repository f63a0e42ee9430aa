// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/guidora/mobile-core/internal/platform/constants"
	"github.com/guidora/mobile-core/internal/platform/sec"
)

// Manager owns the authenticated-user value, the persisted credential, and
// the outbound Authorization header of the Guidora client.
//
// # Architecture
//
// The manager is an explicit, dependency-injected object — never ambient
// global state. The UI layer reads it through the accessor methods and
// drives it through the operations below; the HTTP layer notifies it of
// credential rejections through [Manager.InvalidateCredential].
//
// # Concurrency
//
// All state transitions happen under one mutex, so the invariant "credential
// cleared implies profile cleared, in the same step" holds by construction.
// Every transition bumps a monotonic version; responses of calls that
// started before a later transition are discarded instead of overwriting
// fresher state.
//
// # Review Process
//
// This type is critical for security. Any change to credential handling
// must be reviewed by the platform team.
type Manager struct {
	store   CredentialStore
	api     ProfileAPI
	headers HeaderWriter
	log     *slog.Logger

	mu         sync.RWMutex
	user       *User
	rawUser    map[string]any
	credential string
	status     Status
	version    uint64
}

// NewManager constructs a [*Manager] with its collaborators.
//
// The caller is expected to also register [Manager.InvalidateCredential] as
// the HTTP client's unauthorized hook so the global 401 rule applies to
// every endpoint uniformly.
func NewManager(store CredentialStore, api ProfileAPI, headers HeaderWriter, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:   store,
		api:     api,
		headers: headers,
		log:     logger,
		status:  StatusLoggedOut,
	}
}

// # Read-Only Views

// CurrentUser returns the normalized profile, or nil when logged out.
// The returned value is a copy; mutating it never affects the session.
func (m *Manager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	copied := *m.user
	return &copied
}

// Credential returns the bearer credential currently held, or "".
func (m *Manager) Credential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential
}

// Status returns the named session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// IsLoggedIn reports whether a profile is currently held.
func (m *Manager) IsLoggedIn() bool {
	return m.CurrentUser() != nil
}

// # Lifecycle Operations

// Bootstrap restores the session from persisted storage at process start.
//
// # Behavior
//
// If a credential is found it is attached to the default Authorization
// header BEFORE any network call, then a single profile fetch is attempted.
// Any failure (network, 401, business refusal) leaves the session logged
// out and is logged, never returned: bootstrap is best-effort by contract.
// The credential stays attached; a later explicit 401 is handled by the
// global response rule, not here.
func (m *Manager) Bootstrap(ctx context.Context) {
	// ── 1. Restore Credential ─────────────────────────────────────────────

	credential, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn("bootstrap: credential storage unavailable", slog.Any("error", err))
		return
	}
	if credential == "" {
		m.log.Debug("bootstrap: no persisted credential")
		return
	}

	m.headers.SetDefaultHeader(constants.HeaderAuthorization, constants.BearerPrefix+credential)

	m.mu.Lock()
	m.credential = credential
	m.mu.Unlock()

	// ── 2. Expiry Diagnostics (log-only, backend stays authoritative) ─────

	if info, err := sec.InspectCredential(credential); err == nil && info.Expired {
		m.log.Info("bootstrap: persisted credential looks expired",
			slog.Time("expires_at", info.ExpiresAt),
		)
	}

	// ── 3. Silent Profile Fetch (single attempt, no retries) ──────────────

	envelope, err := m.api.GetProfile(ctx)
	if err != nil {
		m.log.Warn("bootstrap: profile fetch failed", slog.Any("error", err))
		return
	}
	if !envelope.Status || envelope.Data == nil {
		m.log.Warn("bootstrap: profile fetch refused",
			slog.Int("http_status", envelope.HTTPStatus),
			slog.String("message", envelope.Message),
		)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyProfileLocked(envelope.Data)
	m.log.Info("bootstrap: session restored", slog.Int64("user_id", m.user.ID))
}

// Login installs a raw login payload as the new session.
//
// # Constraint
//
// The caller must have already obtained the payload from a successful
// authentication call; validating credentials is not this operation's job.
//
// # Behavior
//
// The payload is normalized (flat or user-nested shapes both work). A
// non-empty credential is persisted and attached to the default headers.
// The profile is installed either way; a payload without a token yields
// the explicit [StatusProfileOnly] state instead of a silent divergence.
//
// # Returns
//
// An error only when the credential could not be persisted (storage
// unavailable). Expected failure modes never error.
func (m *Manager) Login(ctx context.Context, raw map[string]any) error {
	user := Normalize(raw)
	if user == nil {
		m.log.Warn("login: empty payload, session unchanged")
		return nil
	}

	if user.Credential != "" {
		if err := m.store.Save(ctx, user.Credential); err != nil {
			return err
		}
		m.headers.SetDefaultHeader(constants.HeaderAuthorization, constants.BearerPrefix+user.Credential)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.version++
	m.user = user
	m.rawUser = maps.Clone(UnwrapUser(raw))
	m.credential = user.Credential
	if user.Credential != "" {
		m.status = StatusAuthenticated
	} else {
		m.status = StatusProfileOnly
		m.log.Warn("login: payload carried no credential",
			slog.Int64("user_id", user.ID),
		)
	}

	m.log.Info("login: session replaced",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("status", string(m.status)),
	)
	return nil
}

// Logout clears the session: persisted credential, default Authorization
// header, and in-memory profile.
//
// # Guarantee
//
// Logout always succeeds locally. A storage delete failure is logged but
// local state is cleared regardless; no network call is involved.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx); err != nil {
		m.log.Error("logout: could not delete persisted credential", slog.Any("error", err))
	}
	m.headers.DeleteDefaultHeader(constants.HeaderAuthorization)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	m.clearLocked()
	m.log.Info("logout: session cleared")
}

// Refresh re-fetches the profile using the attached credential.
//
// # Behavior
//
// On a success signal the profile is re-normalized and replaced. On any
// failure the session is left exactly as it was — a network hiccup must not
// log the traveler out; genuine invalidation arrives through the global 401
// rule instead. A refresh that was overtaken by a later login/logout is
// discarded rather than allowed to overwrite fresher state.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.RLock()
	started := m.version
	m.mu.RUnlock()

	envelope, err := m.api.GetProfile(ctx)
	if err != nil {
		m.log.Warn("refresh: profile fetch failed", slog.Any("error", err))
		return
	}
	if !envelope.Status || envelope.Data == nil {
		m.log.Warn("refresh: profile fetch refused",
			slog.Int("http_status", envelope.HTTPStatus),
			slog.String("message", envelope.Message),
		)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.version != started {
		m.log.Debug("refresh: discarded stale response")
		return
	}

	m.applyProfileLocked(envelope.Data)
	m.log.Info("refresh: profile updated", slog.Int64("user_id", m.user.ID))
}

// UpdateProfile sends a partial field patch to the backend and, only on an
// explicit success signal, merges it into the held profile.
//
// # Returns
//
// The raw server envelope in every outcome, so the UI can display the
// backend's message. The session state changes only on success.
func (m *Manager) UpdateProfile(ctx context.Context, patch map[string]any) (*Envelope, error) {
	envelope, err := m.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	if !envelope.Status {
		m.log.Warn("update_profile: refused by backend",
			slog.Int("http_status", envelope.HTTPStatus),
			slog.String("message", envelope.Message),
		)
		return envelope, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Shallow-merge the patch over the retained raw shape, then rebuild the
	// normalized profile from scratch so derived fields stay consistent.
	merged := maps.Clone(m.rawUser)
	if merged == nil {
		merged = make(map[string]any, len(patch))
	}
	maps.Copy(merged, patch)

	m.version++
	m.rawUser = merged
	m.user = Normalize(merged)
	m.log.Info("update_profile: profile merged", slog.Int64("user_id", m.user.ID))

	return envelope, nil
}

// RequestRole submits a role-elevation request (guide or photographer).
//
// # Behavior
//
// The session is never mutated: role changes only take effect once a later
// login/refresh reflects the backend's updated flags. A transport failure is
// converted into a locally constructed failure envelope so the calling
// screen always has something to render.
func (m *Manager) RequestRole(ctx context.Context, role string) *Envelope {
	envelope, err := m.api.RequestRole(ctx, role)
	if err != nil {
		m.log.Warn("request_role: call failed",
			slog.String("role", role),
			slog.Any("error", err),
		)
		return &Envelope{Status: false, Message: err.Error()}
	}
	return envelope
}

// # Global 401 Rule

// InvalidateCredential implements the client-wide reaction to HTTP 401.
//
// # Contract
//
// Registered as the HTTP client's unauthorized hook, so it fires for every
// authenticated endpoint uniformly. The failed credential is compared with
// the currently held one: concurrent 401s for the same credential collapse
// into exactly one clear, and a 401 for an already-rotated credential is
// ignored. The in-memory profile is cleared immediately together with the
// persisted copy and the header — a revoked credential must not leave a
// logged-in looking session behind.
func (m *Manager) InvalidateCredential(ctx context.Context, failedCredential string) {
	m.mu.Lock()
	if failedCredential == "" || m.credential != failedCredential {
		m.mu.Unlock()
		return
	}
	m.version++
	m.clearLocked()
	m.mu.Unlock()

	m.headers.DeleteDefaultHeader(constants.HeaderAuthorization)
	if err := m.store.Delete(ctx); err != nil {
		m.log.Error("invalidate: could not delete persisted credential", slog.Any("error", err))
	}
	m.log.Info("invalidate: credential revoked by backend")
}

// # Internal Helpers

// applyProfileLocked installs a fetched profile payload. Caller holds m.mu.
func (m *Manager) applyProfileLocked(data map[string]any) {
	m.version++
	m.user = Normalize(data)
	m.rawUser = maps.Clone(UnwrapUser(data))
	if m.credential != "" {
		m.status = StatusAuthenticated
	} else {
		m.status = StatusProfileOnly
	}
}

// clearLocked resets profile and credential together. Caller holds m.mu.
func (m *Manager) clearLocked() {
	m.user = nil
	m.rawUser = nil
	m.credential = ""
	m.status = StatusLoggedOut
}
