package blog

// Role is the user's role
type Role = string

const (
	// RoleUser is a regular user (read, write own content)
	RoleUser Role = "USER"
	// RoleManager is a content manager
	RoleManager Role = "MANAGER"
	// RoleAdmin can act on any user's resources
	RoleAdmin Role = "ADMIN"
)

// roleAuthorities is the fixed role to authority mapping. Every role
// maps to a non empty set.
var roleAuthorities = map[Role][]string{
	RoleUser:    {"post:read", "post:write", "album:write", "comment:write"},
	RoleManager: {"post:read", "post:write", "album:write", "comment:write", "content:moderate"},
	RoleAdmin:   {"post:read", "post:write", "album:write", "comment:write", "content:moderate", "user:manage"},
}

var roleHierarchy = map[Role]int{
	RoleUser:    0,
	RoleManager: 1,
	RoleAdmin:   2,
}

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	_, ok := roleHierarchy[r]
	return ok
}

// Authorities returns the granted authority strings for a role. The
// mapping is total: unknown roles get nothing.
func Authorities(r Role) []string {
	auths, ok := roleAuthorities[r]
	if !ok {
		return nil
	}

	out := make([]string, len(auths))
	copy(out, auths)
	return out
}

// IsAtLeast checks if role meets the minimum required level
func IsAtLeast(r, minRole Role) bool {
	currentLevel, ok := roleHierarchy[r]
	if !ok {
		return false
	}

	minLevel, ok := roleHierarchy[minRole]
	if !ok {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{RoleUser, RoleManager, RoleAdmin}
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, IsValidRole(role)
}
