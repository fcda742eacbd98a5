package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-signing-key"), time.Hour)
	want := Identity{StaffID: uuid.New(), DisplayName: "Dr. Huda", Role: RoleHead}

	token, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StaffID != want.StaffID || got.Role != want.Role || got.DisplayName != want.DisplayName {
		t.Errorf("identity mismatch: got %+v, want %+v", got, want)
	}
}

func TestTokenIssuer_WrongKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("key-one"), time.Hour)
	token, err := issuer.Issue(Identity{StaffID: uuid.New(), Role: RoleSurgeon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenIssuer([]byte("key-two"), time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with a different key")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-signing-key"), -time.Minute)
	token, err := issuer.Issue(Identity{StaffID: uuid.New(), Role: RoleResident})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-signing-key"), time.Hour)
	if _, err := issuer.Verify("not.a.jwt"); err == nil {
		t.Error("expected garbage token to fail verification")
	}
}
