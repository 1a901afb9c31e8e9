// Package authtoken decodes and validates the JWT that carries a request's
// identity claims, generalizing the teacher's S3-credential-centric
// AuthService (internal/auth/auth.go) into the pure claims-decode step that
// feeds internal/tenant.Context construction (spec C7/C9).
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

// Claims is the decoded identity carried by an access token: subject,
// tenant, role, super-admin flag, and the set of tenants the subject may
// switch into via X-Tenant-ID.
type Claims struct {
	Subject          string   `json:"sub"`
	TenantID         string   `json:"tenant_id"`
	OrgRole          string   `json:"org_role"`
	IsSuperAdmin     bool     `json:"is_super_admin"`
	AvailableTenants []string `json:"available_tenants"`
	TokenType        string   `json:"type"`
	jwt.RegisteredClaims
}

// DecodeUnverified parses claims without checking the signature, matching
// the request pipeline's tenant-binding step (spec §4.9 step 3: "decodes
// the token, no validation here; validation is deferred to protected
// handlers"). Never use this result to authorize an action — only to
// populate context for logging/scoping ahead of the real check.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "could not parse access token")
	}
	return claims, nil
}

// Validator decodes and verifies access tokens signed with a shared HMAC
// secret, mirroring the teacher's ValidateJWT but against the richer
// claims set above instead of UserID/Email/TenantID.
type Validator struct {
	secret    []byte
	algorithm string
}

// NewValidator builds a Validator for the configured signing secret and
// algorithm (spec §6.3 JWT_ALGORITHM, HS256 by default).
func NewValidator(secret []byte, algorithm string) *Validator {
	if algorithm == "" {
		algorithm = "HS256"
	}
	return &Validator{secret: secret, algorithm: algorithm}
}

// Validate parses and verifies tokenString, returning the decoded claims or
// a closed apperrors code (CodeInvalidToken / CodeTokenExpired).
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.New(apperrors.CodeTokenExpired, "access token has expired")
		}
		return nil, apperrors.New(apperrors.CodeInvalidToken, "could not parse access token")
	}
	if !token.Valid {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "access token failed validation")
	}

	return claims, nil
}

// ValidateAccessToken validates tokenString and additionally requires
// TokenType == "access", per spec §4.9 step 4's "re-validate signature +
// expiry + type == access" contract for protected handlers.
func (v *Validator) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := v.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "token is not an access token")
	}
	return claims, nil
}

// Issue mints a signed access token for the given identity, expiring after
// ttl. Grounded on the teacher's GenerateJWT, extended with org_role,
// is_super_admin and available_tenants.
func (v *Validator) Issue(subject, tenantID, orgRole string, isSuperAdmin bool, availableTenants []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject:          subject,
		TenantID:         tenantID,
		OrgRole:          orgRole,
		IsSuperAdmin:     isSuperAdmin,
		AvailableTenants: availableTenants,
		TokenType:        "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "isora-cyberops",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ToTenantContext builds the per-request tenant.Context from decoded claims
// and the resolved tenant ID (after any X-Tenant-ID override has already
// been resolved by tenant.ResolveTenantID).
func ToTenantContext(claims *Claims, resolvedTenantID string) *tenant.Context {
	role := tenant.OrgRole(claims.OrgRole)
	if !role.Valid() {
		role = tenant.RoleMember
	}
	return &tenant.Context{
		TenantID:     resolvedTenantID,
		UserID:       claims.Subject,
		OrgRole:      role,
		IsSuperAdmin: claims.IsSuperAdmin,
	}
}
