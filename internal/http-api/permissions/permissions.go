package permissions

import "titlehub/internal/http-api/models"

// Identity is the authenticated (or anonymous) caller as seen by the
// authorization predicates. It carries only what the checks need.
type Identity struct {
	UserID        string
	Username      string
	Role          string
	Staff         bool
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// IsAdminOrSuperuser grants full user-management access: the caller must be
// authenticated and either carry the staff flag or hold the admin role.
func IsAdminOrSuperuser(id Identity) bool {
	return id.Authenticated && (id.Staff || id.Role == models.RoleAdmin)
}

// CanWriteCatalog gates mutation of titles, genres and categories. Reads are
// open to anyone and never go through this check.
func CanWriteCatalog(id Identity) bool {
	return IsAdminOrSuperuser(id)
}

// IsModeration reports whether the caller holds an elevated content role.
func IsModeration(id Identity) bool {
	return id.Authenticated && (id.Role == models.RoleAdmin || id.Role == models.RoleModerator)
}

// CanEditContent decides update/delete on a review or comment: the author
// may always edit their own, moderators and admins may edit anything.
func CanEditContent(id Identity, authorID string) bool {
	if !id.Authenticated {
		return false
	}
	return id.UserID == authorID || IsModeration(id)
}
