// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidora/mobile-core/internal/backend"
	"github.com/guidora/mobile-core/internal/platform/constants"
	"github.com/guidora/mobile-core/internal/platform/httpclient"
	"github.com/guidora/mobile-core/internal/session"
)

// wire assembles the full client stack (file store, HTTP client, backend
// wrappers, session manager, 401 hook) against the given fake server —
// exactly the wiring the CLI and the app perform.
func wire(t *testing.T, serverURL string) (*session.Manager, *httpclient.Client, *session.FileStore) {
	t.Helper()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session_token.json"))
	client := httpclient.New(httpclient.Config{BaseURL: serverURL})
	manager := session.NewManager(store, backend.New(client), client, nil)
	client.OnUnauthorized(manager.InvalidateCredential)

	return manager, client, store
}

/*
TestBootstrap_RestoresPersistedSession verifies the cold-start scenario: a
persisted credential of "abc123" plus a profile endpoint returning a GUIDER
account yields a restored session with the header attached.
*/
func TestBootstrap_RestoresPersistedSession(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/user/get_profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer abc123", r.Header.Get(constants.HeaderAuthorization))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"id": 7, "username": "bob", "role": "GUIDER"},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	manager, client, store := wire(t, server.URL)
	require.NoError(t, store.Save(context.Background(), "abc123"))

	manager.Bootstrap(context.Background())

	user := manager.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, session.Role("GUIDER"), user.Role)
	assert.True(t, user.IsGuide)
	assert.Equal(t, session.StatusAuthenticated, manager.Status())

	auth, ok := client.DefaultHeader(constants.HeaderAuthorization)
	require.True(t, ok)
	assert.Equal(t, "Bearer abc123", auth)
}

/*
TestBootstrap_RevokedCredentialClearsEverything verifies the full-stack 401
path: a stored credential the backend rejects is removed from storage,
memory, and the default headers — exactly once, across concurrent calls.
*/
func TestBootstrap_RevokedCredentialClearsEverything(t *testing.T) {
	var rejections atomic.Int32
	router := chi.NewRouter()
	router.Post("/user/get_profile", func(w http.ResponseWriter, r *http.Request) {
		rejections.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "invalid token"})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	manager, client, store := wire(t, server.URL)
	require.NoError(t, store.Save(context.Background(), "revoked-tok"))

	manager.Bootstrap(context.Background())

	assert.Nil(t, manager.CurrentUser())
	assert.Empty(t, manager.Credential())
	assert.Equal(t, session.StatusLoggedOut, manager.Status())

	_, ok := client.DefaultHeader(constants.HeaderAuthorization)
	assert.False(t, ok)

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	assert.Equal(t, int32(1), rejections.Load())
}

/*
TestLoginThenRefresh_FullStack verifies the everyday flow over the wire:
login installs the session, refresh re-normalizes the profile.
*/
func TestLoginThenRefresh_FullStack(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/user/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"user":  map[string]any{"id": 9, "name": "Lan", "isPhotographer": true},
				"token": "live-tok",
			},
		})
	})
	router.Post("/user/get_profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer live-tok", r.Header.Get(constants.HeaderAuthorization))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"id": 9, "name": "Lan Pham", "isPhotographer": true},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	manager, _, store := wire(t, server.URL)
	api := backend.New(httpclient.New(httpclient.Config{BaseURL: server.URL}))

	envelope, err := api.Login(context.Background(), backend.LoginInput{
		Phone: "0912345678", Password: "secret123",
	})
	require.NoError(t, err)
	require.True(t, envelope.Status)

	require.NoError(t, manager.Login(context.Background(), envelope.Data))

	user := manager.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Lan", user.Name)
	assert.Equal(t, session.RolePhotographer, user.Role)
	assert.Equal(t, "live-tok", manager.Credential())

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "live-tok", stored)

	manager.Refresh(context.Background())
	assert.Equal(t, "Lan Pham", manager.CurrentUser().Name)
}
