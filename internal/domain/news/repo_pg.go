package news

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const newsCols = `id, title, content, author_id, author_name, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, a *Announcement) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO announcements (id, title, content, author_id, author_name)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.Title, a.Content, a.AuthorID, a.AuthorName,
	)
	if err != nil {
		return apperr.Storef("create announcement", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	var a Announcement
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+newsCols+` FROM announcements WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.AuthorName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("announcement")
		}
		return nil, apperr.Storef("get announcement", err)
	}
	return &a, nil
}

func (r *repoPG) Update(ctx context.Context, a *Announcement) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE announcements SET title=$2, content=$3, updated_at=NOW() WHERE id = $1`,
		a.ID, a.Title, a.Content,
	)
	if err != nil {
		return apperr.Storef("update announcement", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("announcement %s", a.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return apperr.Storef("delete announcement", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("announcement %s", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*Announcement, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+newsCols+` FROM announcements ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Storef("list announcements", err)
	}
	defer rows.Close()

	var items []*Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.AuthorName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, apperr.Storef("scan announcement", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

// -- Comments --

type commentRepoPG struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) CommentRepository {
	return &commentRepoPG{pool: pool}
}

func (r *commentRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *commentRepoPG) Create(ctx context.Context, c *Comment) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO comments (id, news_id, content, author_id, author_name)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.NewsID, c.Content, c.AuthorID, c.AuthorName,
	)
	if err != nil {
		return apperr.Storef("create comment", err)
	}
	return nil
}

func (r *commentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, news_id, content, author_id, author_name, created_at
		FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.NewsID, &c.Content, &c.AuthorID, &c.AuthorName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("comment")
		}
		return nil, apperr.Storef("get comment", err)
	}
	return &c, nil
}

func (r *commentRepoPG) ListByAnnouncement(ctx context.Context, newsID uuid.UUID) ([]*Comment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, news_id, content, author_id, author_name, created_at
		FROM comments WHERE news_id = $1 ORDER BY created_at`, newsID)
	if err != nil {
		return nil, apperr.Storef("list comments", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.NewsID, &c.Content, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, apperr.Storef("scan comment", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *commentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return apperr.Storef("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("comment %s", id)
	}
	return nil
}

func (r *commentRepoPG) DeleteByAnnouncement(ctx context.Context, newsID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM comments WHERE news_id = $1`, newsID)
	if err != nil {
		return apperr.Storef("delete comments for announcement", err)
	}
	return nil
}
