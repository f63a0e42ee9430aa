// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

// Package backend contains the typed wrappers over the Guidora REST API.
//
// # Architecture
//
// Wrappers act as the "gatekeepers" to the network. They are responsible for:
//   - Building the JSON request body for each named endpoint.
//   - Strict local validation, so requests that cannot possibly succeed are
//     rejected before a network round trip.
//   - Returning the standard response envelope untouched, so the session
//     layer and the screens interpret success signals themselves.
//
// They contain NO session state and NO header handling — the shared
// [httpclient.Client] owns both.
package backend

import (
	"context"

	"github.com/guidora/mobile-core/internal/platform/constants"
	"github.com/guidora/mobile-core/internal/platform/httpclient"
	"github.com/guidora/mobile-core/internal/platform/validate"
)

// Client groups the user-facing endpoints of the marketplace backend.
type Client struct {
	http *httpclient.Client
}

// New constructs a backend [*Client] over the shared HTTP client.
func New(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates with phone and password.
//
// # Returns
//   - The raw envelope: on success, Data holds the user fields plus a token.
//   - A validation error before any network call when a field is missing.
func (c *Client) Login(ctx context.Context, input LoginInput) (*httpclient.Envelope, error) {
	v := &validate.Validator{}
	if err := v.
		Required("phone", input.Phone).
		Required("password", input.Password).
		Err(); err != nil {
		return nil, err
	}

	return c.http.PostJSON(ctx, constants.PathLogin, input)
}

// RegisterInput holds the data required to enroll a new traveler account.
type RegisterInput struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// Register creates a new account. The new member still logs in separately;
// registration issues no credential.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*httpclient.Envelope, error) {
	v := &validate.Validator{}
	if err := v.
		Required("name", input.Name).
		Required("username", input.Username).
		MinLen("username", input.Username, 3).
		Required("countryCode", input.CountryCode).
		Phone("phone", input.Phone).
		MinLen("password", input.Password, 8).
		Err(); err != nil {
		return nil, err
	}

	return c.http.PostJSON(ctx, constants.PathRegister, input)
}

// GetProfile fetches the account behind the attached Authorization header.
// The request body is empty by contract.
func (c *Client) GetProfile(ctx context.Context) (*httpclient.Envelope, error) {
	return c.http.PostJSON(ctx, constants.PathGetProfile, nil)
}

// UpdateProfile sends a partial user-field patch.
//
// The patch is forwarded as-is: the backend decides which fields are
// writable, and the session layer merges only after the success signal.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) (*httpclient.Envelope, error) {
	if len(patch) == 0 {
		return nil, validate.RequiredError("patch", "At least one field must change")
	}
	return c.http.PostJSON(ctx, constants.PathUpdateProfile, patch)
}

// roleRequest is the JSON payload for a role-elevation request.
type roleRequest struct {
	Role string `json:"role"`
}

// RequestRole submits a role-elevation request (guide or photographer).
// Admin is never requestable through the app.
func (c *Client) RequestRole(ctx context.Context, role string) (*httpclient.Envelope, error) {
	v := &validate.Validator{}
	if err := v.
		Required("role", role).
		OneOf("role", role, "GUIDER", "PHOTOGRAPHER").
		Err(); err != nil {
		return nil, err
	}

	return c.http.PostJSON(ctx, constants.PathRequestRole, roleRequest{Role: role})
}
