package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, acc *StaffAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*StaffAccount, error)
	List(ctx context.Context) ([]*StaffAccount, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
}
