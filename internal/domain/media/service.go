package media

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateRequest carries a new file reference.
type CreateRequest struct {
	PatientID   uuid.UUID `json:"patient_id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
}

// Create attaches a file reference to a patient. Resident or head only;
// the uploader is stamped from the actor.
func (s *Service) Create(ctx context.Context, actor *auth.Identity, req CreateRequest) (*MediaReference, error) {
	if err := auth.AllowRoles(actor, auth.RoleResident, auth.RoleHead); err != nil {
		return nil, err
	}
	if req.PatientID == uuid.Nil {
		return nil, apperr.Validation("patient_id", "patient id is required")
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, apperr.Validation("url", "file url is required")
	}

	ref := &MediaReference{
		PatientID:   req.PatientID,
		FileName:    req.FileName,
		FileType:    req.FileType,
		URL:         req.URL,
		Description: req.Description,
		UploadedBy:  actor.StaffID,
	}
	if err := s.repo.Create(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// ListByPatient returns a patient's file references, newest first.
func (s *Service) ListByPatient(ctx context.Context, actor *auth.Identity, patientID uuid.UUID) ([]*MediaReference, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// Delete removes a file reference. Resident or head; not ownership-scoped.
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if err := auth.AllowRoles(actor, auth.RoleResident, auth.RoleHead); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
