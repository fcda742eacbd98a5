package auth

import (
	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
)

// The gate functions are pure predicates. Every mutating service operation
// composes one or more of them before touching persisted state.

// Authenticated fails with ErrUnauthenticated when no identity is attached.
func Authenticated(id *Identity) error {
	if id == nil {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// AllowRoles passes when the identity holds one of the allowed roles.
func AllowRoles(id *Identity, roles ...Role) error {
	if id == nil {
		return apperr.ErrUnauthenticated
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return apperr.ErrForbidden
}

// CanModifyResource permits the head of department unconditionally, and
// otherwise only the resource's own author.
func CanModifyResource(id *Identity, resourceAuthorID uuid.UUID) error {
	if id == nil {
		return apperr.ErrUnauthenticated
	}
	if id.Role == RoleHead {
		return nil
	}
	if id.StaffID == resourceAuthorID {
		return nil
	}
	return apperr.ErrForbidden
}
