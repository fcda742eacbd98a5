package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *PatientRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientRecord, error)
	Update(ctx context.Context, p *PatientRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*PatientRecord, error)
	ListActive(ctx context.Context) ([]*PatientRecord, error)
}

type ArchiveRepository interface {
	Create(ctx context.Context, rec *ArchiveRecord) error
	List(ctx context.Context) ([]*ArchiveRecord, error)
}

type BedRepository interface {
	Get(ctx context.Context, department string) (*DepartmentBedCounter, error)
	Upsert(ctx context.Context, counter *DepartmentBedCounter) error
	// Adjust shifts occupied_beds by delta, creating the row when absent and
	// flooring the result at zero.
	Adjust(ctx context.Context, department string, delta int) error
}
