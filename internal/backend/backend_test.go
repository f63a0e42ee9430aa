// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidora/mobile-core/internal/backend"
	"github.com/guidora/mobile-core/internal/platform/apperr"
	"github.com/guidora/mobile-core/internal/platform/httpclient"
)

// newAPI wires a backend client against a chi-routed fake server that
// captures each decoded request body.
func newAPI(t *testing.T, register func(router chi.Router, bodies *[]map[string]any)) (*backend.Client, *[]map[string]any) {
	t.Helper()

	var bodies []map[string]any
	router := chi.NewRouter()
	register(router, &bodies)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := httpclient.New(httpclient.Config{BaseURL: server.URL})
	return backend.New(client), &bodies
}

func capture(bodies *[]map[string]any, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	*bodies = append(*bodies, body)
}

func ok(w http.ResponseWriter, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "data": data})
}

/*
TestLogin_SendsCredentialsAndReturnsEnvelope verifies the wire shape of the
login endpoint and the raw envelope pass-through.
*/
func TestLogin_SendsCredentialsAndReturnsEnvelope(t *testing.T) {
	api, bodies := newAPI(t, func(router chi.Router, bodies *[]map[string]any) {
		router.Post("/user/login", func(w http.ResponseWriter, r *http.Request) {
			capture(bodies, r)
			ok(w, map[string]any{"id": 7, "username": "bob", "token": "tok-7"})
		})
	})

	envelope, err := api.Login(context.Background(), backend.LoginInput{
		Phone:    "0912345678",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, envelope.Status)
	assert.Equal(t, "tok-7", envelope.Data["token"])

	require.Len(t, *bodies, 1)
	sent := (*bodies)[0]
	assert.Equal(t, "0912345678", sent["phone"])
	assert.Equal(t, "secret123", sent["password"])
}

/*
TestLogin_ValidatesLocally verifies missing fields are rejected before any
network round trip.
*/
func TestLogin_ValidatesLocally(t *testing.T) {
	api, bodies := newAPI(t, func(chi.Router, *[]map[string]any) {})

	_, err := api.Login(context.Background(), backend.LoginInput{Phone: "0912345678"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Empty(t, *bodies)
}

/*
TestRegister_SendsAllFields verifies the registration payload shape.
*/
func TestRegister_SendsAllFields(t *testing.T) {
	api, bodies := newAPI(t, func(router chi.Router, bodies *[]map[string]any) {
		router.Post("/user/register", func(w http.ResponseWriter, r *http.Request) {
			capture(bodies, r)
			ok(w, map[string]any{"id": 12})
		})
	})

	envelope, err := api.Register(context.Background(), backend.RegisterInput{
		Name:        "Mai Anh",
		Username:    "maianh",
		CountryCode: "+84",
		Phone:       "0912345678",
		Password:    "longenough",
	})
	require.NoError(t, err)
	assert.True(t, envelope.Status)

	require.Len(t, *bodies, 1)
	sent := (*bodies)[0]
	assert.Equal(t, "Mai Anh", sent["name"])
	assert.Equal(t, "maianh", sent["username"])
	assert.Equal(t, "+84", sent["countryCode"])
}

/*
TestRegister_RejectsWeakPassword verifies local password length enforcement.
*/
func TestRegister_RejectsWeakPassword(t *testing.T) {
	api, _ := newAPI(t, func(chi.Router, *[]map[string]any) {})

	_, err := api.Register(context.Background(), backend.RegisterInput{
		Name:        "Mai Anh",
		Username:    "maianh",
		CountryCode: "+84",
		Phone:       "0912345678",
		Password:    "short",
	})
	assert.Error(t, err)
}

/*
TestGetProfile_SendsEmptyBody verifies the profile fetch carries no payload.
*/
func TestGetProfile_SendsEmptyBody(t *testing.T) {
	api, bodies := newAPI(t, func(router chi.Router, bodies *[]map[string]any) {
		router.Post("/user/get_profile", func(w http.ResponseWriter, r *http.Request) {
			capture(bodies, r)
			ok(w, map[string]any{"id": 7})
		})
	})

	envelope, err := api.GetProfile(context.Background())
	require.NoError(t, err)
	assert.True(t, envelope.Status)

	require.Len(t, *bodies, 1)
	assert.Empty(t, (*bodies)[0])
}

/*
TestUpdateProfile_RejectsEmptyPatch verifies a no-op patch never hits the
network.
*/
func TestUpdateProfile_RejectsEmptyPatch(t *testing.T) {
	api, bodies := newAPI(t, func(chi.Router, *[]map[string]any) {})

	_, err := api.UpdateProfile(context.Background(), map[string]any{})
	assert.Error(t, err)
	assert.Empty(t, *bodies)
}

/*
TestRequestRole_AllowsOnlyElevatableRoles verifies ADMIN can never be
requested through the app while marketplace roles can.
*/
func TestRequestRole_AllowsOnlyElevatableRoles(t *testing.T) {
	api, bodies := newAPI(t, func(router chi.Router, bodies *[]map[string]any) {
		router.Post("/user/request_role", func(w http.ResponseWriter, r *http.Request) {
			capture(bodies, r)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "message": "queued"})
		})
	})

	envelope, err := api.RequestRole(context.Background(), "GUIDER")
	require.NoError(t, err)
	assert.True(t, envelope.Status)
	require.Len(t, *bodies, 1)
	assert.Equal(t, "GUIDER", (*bodies)[0]["role"])

	_, err = api.RequestRole(context.Background(), "ADMIN")
	assert.Error(t, err)

	_, err = api.RequestRole(context.Background(), "")
	assert.Error(t, err)
}
