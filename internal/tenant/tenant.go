// Package tenant implements per-request tenant context binding (spec C7).
//
// A Context is constructed once authentication succeeds and is carried
// through the request exclusively via context.Context — never through a
// package-level or thread-local variable, since handlers run on a
// multiplexed goroutine-per-request runtime and any shared mutable slot
// would bleed between concurrent requests.
package tenant

import (
	"context"
	"errors"
)

// contextKey is a custom type to prevent context key collisions.
type contextKey string

const ctxKey contextKey = "tenant-context"

// OrgRole is the closed set of roles a user can hold within a tenant.
type OrgRole string

const (
	RoleOwner   OrgRole = "owner"
	RoleAdmin   OrgRole = "admin"
	RoleManager OrgRole = "manager"
	RoleLead    OrgRole = "lead"
	RoleMember  OrgRole = "member"
)

func (r OrgRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleLead, RoleMember:
		return true
	}
	return false
}

// Context is the scoped tenant identity attached to one request.
// It must be created after authentication succeeds and is never reused
// across requests.
type Context struct {
	TenantID     string
	UserID       string
	OrgRole      OrgRole
	IsSuperAdmin bool
}

// Errors
var (
	ErrNoTenant  = errors.New("tenant: no tenant context bound to this request")
	ErrForbidden = errors.New("tenant: tenant override forbidden for this user")
)

// Bind attaches tc to ctx, returning a new context carrying it. It does not
// mutate ctx in place — callers must use the returned context going forward.
func Bind(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, ctxKey, tc)
}

// Clear removes any tenant context from ctx. Middleware MUST call this (via
// defer) on every exit path so a context value never outlives its request.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, (*Context)(nil))
}

// FromContext extracts the bound tenant context, or ErrNoTenant if none is
// bound (e.g. an excluded path, or middleware not applied).
func FromContext(ctx context.Context) (*Context, error) {
	tc, ok := ctx.Value(ctxKey).(*Context)
	if !ok || tc == nil {
		return nil, ErrNoTenant
	}
	return tc, nil
}

// MustFromContext extracts the tenant context or panics. Only safe to call
// in handlers reached after the tenant-binding middleware.
func MustFromContext(ctx context.Context) *Context {
	tc, err := FromContext(ctx)
	if err != nil {
		panic("tenant: context middleware not applied: " + err.Error())
	}
	return tc
}

// ResolveTenantID decides which tenant ID a request should be scoped to.
//
// A super admin may override the token's tenant via headerTenant
// unconditionally. A non-super-admin may only switch into a tenant listed
// in availableTenants (e.g. a multi-org member); any other override is
// ErrForbidden.
func ResolveTenantID(tokenTenantID, headerTenant string, isSuperAdmin bool, availableTenants []string) (string, error) {
	if headerTenant == "" {
		return tokenTenantID, nil
	}
	if isSuperAdmin {
		return headerTenant, nil
	}
	for _, t := range availableTenants {
		if t == headerTenant {
			return headerTenant, nil
		}
	}
	return "", ErrForbidden
}
