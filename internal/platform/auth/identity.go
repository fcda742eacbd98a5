// Package auth holds the access-control core: staff identity, pure permission
// gates, password hashing, the opaque session stores, and the echo middleware
// that attaches an Identity to each request context.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role is a staff access tier. The set is closed; only head_of_department
// carries global override authority.
type Role string

const (
	RoleResident Role = "resident"
	RoleSurgeon  Role = "surgeon"
	RoleHead     Role = "head_of_department"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleResident, RoleSurgeon, RoleHead:
		return true
	}
	return false
}

// Identity is the authenticated staff projection carried through a session.
// The password hash is never part of it. Services receive it by value so the
// permission gates stay pure and testable without a live HTTP context.
type Identity struct {
	StaffID     uuid.UUID `json:"staff_id"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the authenticated identity, or nil if the
// request carried no valid session.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return nil
	}
	return &id
}
