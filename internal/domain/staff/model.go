package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/auth"
)

// StaffAccount maps to the staff_accounts table. The password hash is never
// serialized; responses carry every other field.
type StaffAccount struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Role         auth.Role `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Identity projects the account into the session payload.
func (a *StaffAccount) Identity() auth.Identity {
	return auth.Identity{
		StaffID:     a.ID,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
}
