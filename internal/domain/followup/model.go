package followup

import (
	"time"

	"github.com/google/uuid"
)

// FollowupNote maps to the followup_notes table. Notes are append-only:
// create and delete exist, modification does not.
type FollowupNote struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Note          string    `db:"note" json:"note"`
	CreatedBy     uuid.UUID `db:"created_by" json:"created_by"`
	CreatedByName string    `db:"created_by_name" json:"created_by_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
