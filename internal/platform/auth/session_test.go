package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemorySessionStore_CreateGetDelete(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	want := Identity{StaffID: uuid.New(), DisplayName: "Dr. Samir", Role: RoleResident}

	token, err := store.Create(context.Background(), want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(token))
	}

	got, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StaffID != want.StaffID || got.Role != want.Role || got.DisplayName != want.DisplayName {
		t.Errorf("identity mismatch: got %+v, want %+v", got, want)
	}

	if err := store.Delete(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestMemorySessionStore_UnknownToken(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	if _, err := store.Get(context.Background(), "deadbeef"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	token, err := store.Create(context.Background(), Identity{StaffID: uuid.New(), Role: RoleSurgeon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := store.Get(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestMemorySessionStore_Sweep(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := store.Create(context.Background(), Identity{StaffID: uuid.New(), Role: RoleResident}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if removed := store.Sweep(); removed != 3 {
		t.Errorf("expected 3 swept sessions, got %d", removed)
	}
	if len(store.sessions) != 0 {
		t.Errorf("expected empty store after sweep, got %d entries", len(store.sessions))
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.Create(context.Background(), Identity{StaffID: uuid.New(), Role: RoleSurgeon})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[token] {
			t.Fatal("duplicate session token generated")
		}
		seen[token] = true
	}
}
