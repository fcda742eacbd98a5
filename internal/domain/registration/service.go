package registration

import (
	"context"
	"strings"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SubmitRequest is the public intake form. Every field except photo_url is
// required.
type SubmitRequest struct {
	FullName       string `json:"full_name"`
	Gender         string `json:"gender"`
	IDNumber       string `json:"id_number"`
	DateOfBirth    string `json:"date_of_birth"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	PassportStatus string `json:"passport_status"`
	PhotoURL       string `json:"photo_url"`
}

// Submit records one evacuation registration. The endpoint is public; no
// identity is involved.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Registration, error) {
	required := []struct {
		field, value string
	}{
		{"full_name", req.FullName},
		{"gender", req.Gender},
		{"id_number", req.IDNumber},
		{"date_of_birth", req.DateOfBirth},
		{"phone", req.Phone},
		{"email", req.Email},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperr.Validation(f.field, f.field+" is required")
		}
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.Validation("email", "email is malformed")
	}
	if !validPassportStatuses[req.PassportStatus] {
		return nil, apperr.Validation("passport_status", "passport_status must be one of yes, expired, no")
	}

	reg := &Registration{
		FullName:       req.FullName,
		Gender:         req.Gender,
		IDNumber:       req.IDNumber,
		DateOfBirth:    req.DateOfBirth,
		Phone:          req.Phone,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PassportStatus: req.PassportStatus,
		PhotoURL:       req.PhotoURL,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// List returns a page of submissions, newest first. Staff only.
func (s *Service) List(ctx context.Context, actor *auth.Identity, limit, offset int) ([]*Registration, int, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, 0, err
	}
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
