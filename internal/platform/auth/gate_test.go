package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
)

func TestAuthenticated(t *testing.T) {
	if err := Authenticated(nil); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("nil identity: expected ErrUnauthenticated, got %v", err)
	}
	id := &Identity{StaffID: uuid.New(), Role: RoleSurgeon}
	if err := Authenticated(id); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAllowRoles(t *testing.T) {
	resident := &Identity{StaffID: uuid.New(), Role: RoleResident}
	surgeon := &Identity{StaffID: uuid.New(), Role: RoleSurgeon}
	head := &Identity{StaffID: uuid.New(), Role: RoleHead}

	if err := AllowRoles(nil, RoleResident); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("nil identity: expected ErrUnauthenticated, got %v", err)
	}
	if err := AllowRoles(resident, RoleResident, RoleHead); err != nil {
		t.Errorf("resident in allowed set: unexpected %v", err)
	}
	if err := AllowRoles(surgeon, RoleResident, RoleHead); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("surgeon outside allowed set: expected ErrForbidden, got %v", err)
	}
	if err := AllowRoles(head, RoleHead); err != nil {
		t.Errorf("head in allowed set: unexpected %v", err)
	}
	// No blanket override: AllowRoles checks membership only.
	if err := AllowRoles(head, RoleResident); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("head outside allowed set: expected ErrForbidden, got %v", err)
	}
}

// Exhaustive over the three roles crossed with matching / non-matching author.
func TestCanModifyResource(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()

	cases := []struct {
		name    string
		role    Role
		staffID uuid.UUID
		permit  bool
	}{
		{"resident own resource", RoleResident, authorID, true},
		{"resident foreign resource", RoleResident, otherID, false},
		{"surgeon own resource", RoleSurgeon, authorID, true},
		{"surgeon foreign resource", RoleSurgeon, otherID, false},
		{"head own resource", RoleHead, authorID, true},
		{"head foreign resource", RoleHead, otherID, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := &Identity{StaffID: tc.staffID, Role: tc.role}
			err := CanModifyResource(id, authorID)
			if tc.permit && err != nil {
				t.Errorf("expected permit, got %v", err)
			}
			if !tc.permit && !errors.Is(err, apperr.ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}

	if err := CanModifyResource(nil, authorID); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("nil identity: expected ErrUnauthenticated, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleResident, RoleSurgeon, RoleHead} {
		if !ValidRole(r) {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if ValidRole("admin") {
		t.Error("role set must be closed")
	}
	if ValidRole("") {
		t.Error("empty role must be invalid")
	}
}
