package authtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	v := NewValidator([]byte("test-secret"), "HS256")

	token, err := v.Issue("user-1", "tenant-1", "admin", false, []string{"tenant-1"}, time.Hour)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "admin", claims.OrgRole)
	assert.False(t, claims.IsSuperAdmin)
}

func TestValidateExpiredToken(t *testing.T) {
	v := NewValidator([]byte("test-secret"), "HS256")

	token, err := v.Issue("user-1", "tenant-1", "member", false, nil, -time.Hour)
	require.NoError(t, err)

	_, err = v.Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	v1 := NewValidator([]byte("secret-one"), "HS256")
	v2 := NewValidator([]byte("secret-two"), "HS256")

	token, err := v1.Issue("user-1", "tenant-1", "member", false, nil, time.Hour)
	require.NoError(t, err)

	_, err = v2.Validate(token)
	require.Error(t, err)
}

func TestToTenantContextDefaultsInvalidRole(t *testing.T) {
	claims := &Claims{Subject: "user-1", TenantID: "tenant-1", OrgRole: "not-a-role"}
	tc := ToTenantContext(claims, "tenant-1")
	assert.Equal(t, "member", string(tc.OrgRole))
}

func TestValidateAccessTokenAcceptsAccessType(t *testing.T) {
	v := NewValidator([]byte("test-secret"), "HS256")
	token, err := v.Issue("user-1", "tenant-1", "member", false, nil, time.Hour)
	require.NoError(t, err)

	claims, err := v.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}

func TestDecodeUnverifiedIgnoresSignature(t *testing.T) {
	v1 := NewValidator([]byte("secret-one"), "HS256")
	token, err := v1.Issue("user-1", "tenant-1", "member", false, nil, time.Hour)
	require.NoError(t, err)

	claims, err := DecodeUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
}

func TestToTenantContextUsesResolvedTenantID(t *testing.T) {
	claims := &Claims{Subject: "user-1", TenantID: "tenant-1", OrgRole: "owner", IsSuperAdmin: true}
	tc := ToTenantContext(claims, "tenant-9")
	assert.Equal(t, "tenant-9", tc.TenantID)
	assert.True(t, tc.IsSuperAdmin)
}
