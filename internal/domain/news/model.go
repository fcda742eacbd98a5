package news

import (
	"time"

	"github.com/google/uuid"
)

// Announcement maps to the announcements table.
type Announcement struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	AuthorID   uuid.UUID `db:"author_id" json:"author_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Comment maps to the comments table.
type Comment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	NewsID     uuid.UUID `db:"news_id" json:"news_id"`
	Content    string    `db:"content" json:"content"`
	AuthorID   uuid.UUID `db:"author_id" json:"author_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
