package domain

// Authorize reports whether a user holding userRoles may access a page that
// requires any of the required roles. An empty required set admits every
// authenticated user. Authorization never considers anything beyond role
// membership.
func Authorize(userRoles, required []string) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(userRoles))
	for _, r := range userRoles {
		held[r] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}
