package news

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
	"github.com/surgward/surgward/internal/platform/db"
)

type Service struct {
	repo     Repository
	comments CommentRepository
	tx       db.TxRunner
}

func NewService(repo Repository, comments CommentRepository, tx db.TxRunner) *Service {
	return &Service{repo: repo, comments: comments, tx: tx}
}

// PublishRequest carries a new announcement.
type PublishRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Publish creates an announcement stamped with the actor as author.
func (s *Service) Publish(ctx context.Context, actor *auth.Identity, req PublishRequest) (*Announcement, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation("content", "content is required")
	}

	a := &Announcement{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   actor.StaffID,
		AuthorName: actor.DisplayName,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns one announcement.
func (s *Service) Get(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*Announcement, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// List returns all announcements, newest first.
func (s *Service) List(ctx context.Context, actor *auth.Identity) ([]*Announcement, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// UpdateRequest carries the editable announcement fields.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Update edits an announcement. The author or the head of department only;
// a missing announcement reports 404 before any permission check.
func (s *Service) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req UpdateRequest) (*Announcement, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanModifyResource(actor, a.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an announcement and its comments in one transaction.
// Comments go first so a failure leaves both in place.
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if err := auth.Authenticated(actor); err != nil {
		return err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CanModifyResource(actor, a.AuthorID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.comments.DeleteByAnnouncement(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

// CommentRequest carries a new comment.
type CommentRequest struct {
	NewsID  uuid.UUID `json:"news_id"`
	Content string    `json:"content"`
}

// AddComment posts a comment under an announcement.
func (s *Service) AddComment(ctx context.Context, actor *auth.Identity, req CommentRequest) (*Comment, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation("content", "content is required")
	}
	if _, err := s.repo.GetByID(ctx, req.NewsID); err != nil {
		return nil, err
	}

	c := &Comment{
		NewsID:     req.NewsID,
		Content:    req.Content,
		AuthorID:   actor.StaffID,
		AuthorName: actor.DisplayName,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns the discussion under an announcement, oldest first.
func (s *Service) ListComments(ctx context.Context, actor *auth.Identity, newsID uuid.UUID) ([]*Comment, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.comments.ListByAnnouncement(ctx, newsID)
}

// DeleteComment removes a comment. The comment's author or the head only.
func (s *Service) DeleteComment(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if err := auth.Authenticated(actor); err != nil {
		return err
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CanModifyResource(actor, c.AuthorID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}
