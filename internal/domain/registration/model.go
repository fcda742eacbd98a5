package registration

import (
	"time"

	"github.com/google/uuid"
)

// Passport status values accepted on the public intake form.
const (
	PassportYes     = "yes"
	PassportExpired = "expired"
	PassportNo      = "no"
)

var validPassportStatuses = map[string]bool{
	PassportYes:     true,
	PassportExpired: true,
	PassportNo:      true,
}

// Registration maps to the registrations table. Submitted by the public
// evacuation landing page; readable by staff only.
type Registration struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Gender         string    `db:"gender" json:"gender"`
	IDNumber       string    `db:"id_number" json:"id_number"`
	DateOfBirth    string    `db:"date_of_birth" json:"date_of_birth"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	PassportStatus string    `db:"passport_status" json:"passport_status"`
	PhotoURL       string    `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
