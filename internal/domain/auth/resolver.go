package auth

// ClaimSource names one location inside a session token that may carry a
// role value, together with the extractor that pulls it out.
type ClaimSource struct {
	Name    string
	Extract func(SessionClaims) any
}

// DefaultClaimSources is the resolution order for role candidates. The list
// is evaluated front to back and the first candidate that normalizes wins;
// candidates are never merged or voted across.
//
// The ordering is a deliberate, stakeholder-visible contract: a stale but
// valid value in an earlier location masks later ones, even when the later
// one carries more privilege.
var DefaultClaimSources = []ClaimSource{
	{Name: "role", Extract: func(c SessionClaims) any { return c.Role }},
	{Name: "user_metadata.role", Extract: func(c SessionClaims) any { return c.UserMetadataRole }},
	{Name: "app_metadata.role", Extract: func(c SessionClaims) any { return c.AppMetadataRole }},
	{Name: "legacy", Extract: func(c SessionClaims) any { return c.LegacyRole }},
}

// Resolution is the outcome of resolving a role from session claims.
type Resolution struct {
	Role   Role
	Source RoleSource
	// Claim is the name of the winning claim location, empty when no
	// candidate normalized.
	Claim string
}

// RoleResolver normalizes a set of role-bearing claim candidates into a
// single authoritative role. It holds no state beyond its source order, so
// resolution is a pure function of its input.
type RoleResolver struct {
	sources []ClaimSource
}

// NewRoleResolver returns a resolver using DefaultClaimSources.
func NewRoleResolver() *RoleResolver {
	return &RoleResolver{sources: DefaultClaimSources}
}

// NewRoleResolverWithSources returns a resolver with a custom source order.
// Useful for tests and for tooling that inspects individual locations.
func NewRoleResolverWithSources(sources []ClaimSource) *RoleResolver {
	return &RoleResolver{sources: sources}
}

// Resolve returns the first candidate (in source order) that normalizes to
// a recognized role. When nothing normalizes the result carries an empty
// role and RoleSourceNone.
func (r *RoleResolver) Resolve(claims SessionClaims) Resolution {
	for _, src := range r.sources {
		role, ok := ParseRole(src.Extract(claims))
		if !ok {
			continue
		}
		source := RoleSourceSessionClaim
		if src.Name == "legacy" {
			source = RoleSourceLegacyField
		}
		return Resolution{Role: role, Source: source, Claim: src.Name}
	}
	return Resolution{Source: RoleSourceNone}
}
