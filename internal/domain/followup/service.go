package followup

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/domain/patient"
	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type Service struct {
	repo     Repository
	patients PatientSource
}

func NewService(repo Repository, patients PatientSource) *Service {
	return &Service{repo: repo, patients: patients}
}

// CreateRequest carries a new followup note.
type CreateRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Note      string    `json:"note"`
}

// Create appends a note to an active patient's record. The patient must
// exist (404) and must not be archived (400).
func (s *Service) Create(ctx context.Context, actor *auth.Identity, req CreateRequest) (*FollowupNote, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Note) == "" {
		return nil, apperr.Validation("note", "note text is required")
	}

	p, err := s.patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if p.Status == patient.StatusArchived {
		return nil, apperr.Conflictf("cannot add notes to an archived patient")
	}

	note := &FollowupNote{
		PatientID:     req.PatientID,
		Note:          req.Note,
		CreatedBy:     actor.StaffID,
		CreatedByName: actor.DisplayName,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListByPatient returns a patient's notes, newest first.
func (s *Service) ListByPatient(ctx context.Context, actor *auth.Identity, patientID uuid.UUID) ([]*FollowupNote, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// Delete removes a note. Head of department only.
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if err := auth.AllowRoles(actor, auth.RoleHead); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
