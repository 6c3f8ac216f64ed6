package auth

// Principal represents an authenticated user with resolved permissions.
type Principal struct {
	User        User
	Permissions map[string]struct{}
}

// NewPrincipal constructs a principal with preloaded permission codes.
func NewPrincipal(user User, codes []string) Principal {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return Principal{User: user, Permissions: set}
}

// HasPermission reports whether the principal may perform the action
// identified by code. Superusers hold every permission.
func (p Principal) HasPermission(code string) bool {
	if p.User.IsSuperuser {
		return true
	}
	_, ok := p.Permissions[code]
	return ok
}
