package news

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Announcement, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByAnnouncement(ctx context.Context, newsID uuid.UUID) ([]*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAnnouncement(ctx context.Context, newsID uuid.UUID) error
}
