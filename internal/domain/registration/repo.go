package registration

import "context"

type Repository interface {
	Create(ctx context.Context, r *Registration) error
	List(ctx context.Context, limit, offset int) ([]*Registration, error)
	Count(ctx context.Context) (int, error)
}
