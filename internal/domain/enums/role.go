package enums

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTutor:
		return RoleTutor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// AnyAllowed reports whether the held role set intersects the allowed set.
func AnyAllowed(held []Role, allowed ...Role) bool {
	for _, h := range held {
		for _, a := range allowed {
			if h == a {
				return true
			}
		}
	}
	return false
}

func RolesFromStrings(values []string) []Role {
	roles := make([]Role, 0, len(values))
	for _, v := range values {
		if role, ok := ParseRole(v); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func RolesToStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
