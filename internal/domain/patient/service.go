package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
	"github.com/surgward/surgward/internal/platform/db"
)

// OccupancyRecorder receives admission and discharge events for metric
// gauges. A nil recorder is allowed.
type OccupancyRecorder interface {
	RecordAdmission(department string)
	RecordDischarge(reason string)
}

type Service struct {
	patients Repository
	archive  ArchiveRepository
	beds     BedRepository
	tx       db.TxRunner
	recorder OccupancyRecorder
}

func NewService(patients Repository, archive ArchiveRepository, beds BedRepository, tx db.TxRunner) *Service {
	return &Service{patients: patients, archive: archive, beds: beds, tx: tx}
}

// SetOccupancyRecorder attaches an optional metrics recorder.
func (s *Service) SetOccupancyRecorder(r OccupancyRecorder) {
	s.recorder = r
}

// AdmitRequest carries the fields accepted at admission.
type AdmitRequest struct {
	FullName      string `json:"full_name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	IDNumber      string `json:"id_number"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Diagnosis     string `json:"diagnosis"`
	Operation     string `json:"operation"`
	Surgeon       string `json:"surgeon"`
	Department    string `json:"department"`
	BedNumber     string `json:"bed_number"`
	AdmissionDate string `json:"admission_date"`
	Notes         string `json:"notes"`
}

// Admit creates an active patient record and claims a bed in the patient's
// department. Record creation and the bed increment commit as one
// transaction.
func (s *Service) Admit(ctx context.Context, actor *auth.Identity, req AdmitRequest) (*PatientRecord, error) {
	if err := auth.AllowRoles(actor, auth.RoleResident, auth.RoleHead); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, apperr.Validation("full_name", "patient name is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		return nil, apperr.Validation("department", "department is required")
	}
	if req.Age < 0 {
		return nil, apperr.Validation("age", "age cannot be negative")
	}

	p := &PatientRecord{
		FullName:      strings.TrimSpace(req.FullName),
		Age:           req.Age,
		Gender:        req.Gender,
		IDNumber:      req.IDNumber,
		Phone:         req.Phone,
		Address:       req.Address,
		Diagnosis:     req.Diagnosis,
		Operation:     req.Operation,
		Surgeon:       req.Surgeon,
		Department:    strings.TrimSpace(req.Department),
		BedNumber:     req.BedNumber,
		AdmissionDate: req.AdmissionDate,
		Notes:         req.Notes,
		Status:        StatusActive,
		CreatedBy:     actor.StaffID,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.patients.Create(ctx, p); err != nil {
			return err
		}
		return s.beds.Adjust(ctx, p.Department, +1)
	})
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.RecordAdmission(p.Department)
	}
	return p, nil
}

// Get returns one patient record.
func (s *Service) Get(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*PatientRecord, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.patients.GetByID(ctx, id)
}

// List returns every patient record, newest first.
func (s *Service) List(ctx context.Context, actor *auth.Identity) ([]*PatientRecord, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.patients.List(ctx)
}

// ListActive returns only patients still on the ward.
func (s *Service) ListActive(ctx context.Context, actor *auth.Identity) ([]*PatientRecord, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.patients.ListActive(ctx)
}

// UpdateRequest carries a partial patient update. Nil fields are left
// untouched; status is not updatable through this path.
type UpdateRequest struct {
	FullName      *string `json:"full_name"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	IDNumber      *string `json:"id_number"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Diagnosis     *string `json:"diagnosis"`
	Operation     *string `json:"operation"`
	Surgeon       *string `json:"surgeon"`
	Department    *string `json:"department"`
	BedNumber     *string `json:"bed_number"`
	AdmissionDate *string `json:"admission_date"`
	Notes         *string `json:"notes"`
}

// Update applies a last-write-wins partial update.
func (s *Service) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req UpdateRequest) (*PatientRecord, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&p.FullName, req.FullName)
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, apperr.Validation("age", "age cannot be negative")
		}
		p.Age = *req.Age
	}
	applyString(&p.Gender, req.Gender)
	applyString(&p.IDNumber, req.IDNumber)
	applyString(&p.Phone, req.Phone)
	applyString(&p.Address, req.Address)
	applyString(&p.Diagnosis, req.Diagnosis)
	applyString(&p.Operation, req.Operation)
	applyString(&p.Surgeon, req.Surgeon)
	applyString(&p.Department, req.Department)
	applyString(&p.BedNumber, req.BedNumber)
	applyString(&p.AdmissionDate, req.AdmissionDate)
	applyString(&p.Notes, req.Notes)

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Discharge archives an active patient: the archive snapshot, status flip
// and bed release commit as one transaction. Returns the archive record.
func (s *Service) Discharge(ctx context.Context, actor *auth.Identity, id uuid.UUID, reason, notes string) (*ArchiveRecord, error) {
	if err := auth.AllowRoles(actor, auth.RoleResident, auth.RoleHead); err != nil {
		return nil, err
	}
	if !validDischargeReasons[reason] {
		return nil, apperr.Validation("discharge_reason", "unknown discharge reason")
	}

	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusArchived {
		return nil, apperr.Conflictf("patient already archived")
	}

	if notes == "" {
		notes = p.Notes
	}
	rec := &ArchiveRecord{
		PatientID:       p.ID,
		FullName:        p.FullName,
		Age:             p.Age,
		Gender:          p.Gender,
		Diagnosis:       p.Diagnosis,
		Operation:       p.Operation,
		Surgeon:         p.Surgeon,
		AdmissionDate:   p.AdmissionDate,
		DischargeReason: reason,
		Notes:           notes,
		DischargedBy:    actor.StaffID,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.archive.Create(ctx, rec); err != nil {
			return err
		}
		p.Status = StatusArchived
		if err := s.patients.Update(ctx, p); err != nil {
			return err
		}
		if p.Department != "" {
			return s.beds.Adjust(ctx, p.Department, -1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.RecordDischarge(reason)
	}
	return rec, nil
}

// Delete removes a patient record permanently. Head of department only;
// followups, media and archive rows for the patient are left in place.
func (s *Service) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if err := auth.AllowRoles(actor, auth.RoleHead); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

// ListArchive returns every archive record, most recent discharge first.
func (s *Service) ListArchive(ctx context.Context, actor *auth.Identity) ([]*ArchiveRecord, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.archive.List(ctx)
}

// GetBeds reports a department's bed counter. A department without a row
// reads as zeros rather than an error.
func (s *Service) GetBeds(ctx context.Context, actor *auth.Identity, department string) (*DepartmentBedCounter, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	c, err := s.beds.Get(ctx, department)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return &DepartmentBedCounter{Department: department}, nil
		}
		return nil, err
	}
	return c, nil
}

// BedsRequest carries the writable bed counter fields.
type BedsRequest struct {
	TotalBeds    int `json:"total_beds"`
	OccupiedBeds int `json:"occupied_beds"`
}

// UpdateBeds replaces a department's bed counts. Head of department only.
func (s *Service) UpdateBeds(ctx context.Context, actor *auth.Identity, department string, req BedsRequest) (*DepartmentBedCounter, error) {
	if err := auth.AllowRoles(actor, auth.RoleHead); err != nil {
		return nil, err
	}
	if req.TotalBeds < 0 || req.OccupiedBeds < 0 {
		return nil, apperr.Validation("total_beds", "bed counts cannot be negative")
	}
	c := &DepartmentBedCounter{
		Department:   department,
		TotalBeds:    req.TotalBeds,
		OccupiedBeds: req.OccupiedBeds,
	}
	if err := s.beds.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
