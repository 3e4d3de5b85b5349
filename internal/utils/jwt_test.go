// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/MKhiriev/tapcard/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrincipal = models.Principal{UserID: 123, OrganizationID: 7, Role: models.RoleAdmin}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", testPrincipal, time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)
	assert.Equal(t, testPrincipal, token.Principal())

	claims, ok := token.Token.Claims.(*models.Claims)
	require.True(t, ok)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, int64(7), claims.OrganizationID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, testPrincipal, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	generated, err := GenerateJWTToken("iss", testPrincipal, time.Hour, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, "key", "iss")
	require.NoError(t, err)

	assert.Equal(t, testPrincipal, parsed.Principal())
	assert.Equal(t, generated.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	generated, err := GenerateJWTToken("iss", testPrincipal, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "other-key", "iss")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	generated, err := GenerateJWTToken("iss", testPrincipal, -time.Minute, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "iss")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateJWTToken("iss", testPrincipal, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "other")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_MissingOrganization(t *testing.T) {
	generated, err := GenerateJWTToken("iss", models.Principal{UserID: 1, Role: models.RoleOwner}, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "iss")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_UnknownRole(t *testing.T) {
	generated, err := GenerateJWTToken("iss", models.Principal{UserID: 1, OrganizationID: 2, Role: "root"}, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "key", "iss")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"surrounding spaces", "  Bearer abc  ", "abc", false},
		{"missing token", "Bearer", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"empty", "", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
