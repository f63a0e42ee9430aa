// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidora/mobile-core/internal/platform/sec"
)

// signedToken builds an HS256 token with the given claims. The signing key is
// irrelevant to inspection, which never verifies signatures.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-only-key"))
	require.NoError(t, err)
	return token
}

/*
TestInspectCredential_ReadsClaims verifies that subject and expiry are read
from a token the client could never verify.
*/
func TestInspectCredential_ReadsClaims(t *testing.T) {
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub": "4812",
		"exp": expiry.Unix(),
	})

	info, err := sec.InspectCredential(token)
	require.NoError(t, err)

	assert.Equal(t, "4812", info.Subject)
	assert.True(t, expiry.Equal(info.ExpiresAt))
	assert.False(t, info.Expired)
}

/*
TestInspectCredential_FlagsExpiredToken verifies the expiry flag for a token
whose exp claim is in the past.
*/
func TestInspectCredential_FlagsExpiredToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub": "4812",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	info, err := sec.InspectCredential(token)
	require.NoError(t, err)
	assert.True(t, info.Expired)
}

/*
TestInspectCredential_TokenWithoutExpiry verifies that a token with no exp
claim is reported as non-expiring.
*/
func TestInspectCredential_TokenWithoutExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "4812"})

	info, err := sec.InspectCredential(token)
	require.NoError(t, err)

	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired)
}

/*
TestInspectCredential_OpaqueToken verifies that a non-JWT credential yields an
error rather than a panic. Opaque tokens remain usable for API calls.
*/
func TestInspectCredential_OpaqueToken(t *testing.T) {
	info, err := sec.InspectCredential("abc123")
	assert.Error(t, err)
	assert.Nil(t, info)
}
