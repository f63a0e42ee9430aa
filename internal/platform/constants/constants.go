// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

/*
Package constants provides centralized, immutable values for the mobile core.

It defines default timeouts, endpoint paths, and cross-cutting keys that are
shared between different layers of the client.

Categories:

  - Client Timing: Request timeouts and outbound rate limits.
  - Endpoints: Backend paths consumed by the session layer.
  - Credentials: Storage keys and header names for the bearer token.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the session logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "guidora-mobile-core"
	AppVersion = "0.1.0-dev"
)

// # Client Timing

const (
	// DefaultRequestTimeout is the maximum duration for a single backend call.
	DefaultRequestTimeout = 15 * time.Second

	// DefaultRateLimitRPS is the outbound requests per second the client allows.
	DefaultRateLimitRPS = 10.0

	// DefaultRateLimitBurst is the maximum burst of outbound requests.
	DefaultRateLimitBurst = 20
)

// # Backend Endpoints

// All session endpoints are POST requests under the /user prefix.
const (
	PathLogin         = "/user/login"
	PathRegister      = "/user/register"
	PathGetProfile    = "/user/get_profile"
	PathUpdateProfile = "/user/update_profile"
	PathRequestRole   = "/user/request_role"
)

// # Credentials & Headers

const (
	// HeaderAuthorization carries the bearer credential on outbound requests.
	HeaderAuthorization = "Authorization"

	// BearerPrefix is prepended to the credential in the Authorization header.
	BearerPrefix = "Bearer "

	// HeaderRequestID is the per-request correlation header.
	HeaderRequestID = "X-Request-ID"

	// CredentialStorageKey is the key under which the bearer token is persisted.
	CredentialStorageKey = "token"

	// CredentialFileName is the on-device file backing the credential store.
	CredentialFileName = "session_token.json"
)

// # Redis Prefixes (Shared-Deployment Credential Store)

const (
	RedisPrefixCredential = "session:credential:"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldMessage = "message"
	FieldData    = "data"
	FieldToken   = "token"
	FieldUser    = "user"
	FieldRole    = "role"
)
