package tenant

// Scope wraps a repository query/mutation with the tenant-isolation
// invariant from spec §4.7: every operation executed while a Context is
// active is filtered to TenantID unless the caller is a super admin AND the
// operation explicitly opts into cross-tenant scope.
//
// This is the one place the "inject tenant_id into every query" rule is
// enforced, so feature services never have to remember to do it themselves
// (c.f. the design note on collapsing dependency-injected framework magic
// into explicit constructors).
type Scope struct {
	tc           *Context
	crossTenant  bool
	hasTenantCol bool
}

// NewScope builds a query scope from the bound tenant context for an entity
// that carries a tenant_id column (hasTenantColumn=false for global/shared
// entities, which are never filtered).
func NewScope(tc *Context, hasTenantColumn bool) *Scope {
	return &Scope{tc: tc, hasTenantCol: hasTenantColumn}
}

// AllowCrossTenant opts a single operation into bypassing the tenant filter.
// Only takes effect if the bound context is a super admin; otherwise it is
// a no-op and the filter still applies.
func (s *Scope) AllowCrossTenant() *Scope {
	s.crossTenant = true
	return s
}

// Filter returns the equality-filter fragment (column -> value) that must be
// ANDed onto the query's WHERE clause, or nil if no filter applies.
func (s *Scope) Filter() map[string]string {
	if !s.hasTenantCol || s.tc == nil {
		return nil
	}
	if s.tc.IsSuperAdmin && s.crossTenant {
		return nil
	}
	return map[string]string{"tenant_id": s.tc.TenantID}
}

// StampCreate fills in tenant_id on a new row's field map if the entity has
// that column and it isn't already set.
func (s *Scope) StampCreate(fields map[string]any) {
	if !s.hasTenantCol || s.tc == nil {
		return
	}
	if _, exists := fields["tenant_id"]; exists {
		return
	}
	fields["tenant_id"] = s.tc.TenantID
}
