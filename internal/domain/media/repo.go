package media

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, ref *MediaReference) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MediaReference, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
