package followup

import (
	"context"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/domain/patient"
)

type Repository interface {
	Create(ctx context.Context, note *FollowupNote) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*FollowupNote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatientSource resolves the patient a note attaches to. Satisfied by
// patient.Repository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.PatientRecord, error)
}
