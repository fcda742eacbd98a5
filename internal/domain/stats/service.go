package stats

import (
	"context"

	"github.com/surgward/surgward/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard assembles the ward overview. Any authenticated staff member may
// read it; the breakdowns carry no per-patient detail.
func (s *Service) Dashboard(ctx context.Context, actor *auth.Identity) (*Dashboard, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}

	total, active, err := s.repo.PatientTotals(ctx)
	if err != nil {
		return nil, err
	}
	byDept, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	byDiag, err := s.repo.CountByDiagnosis(ctx)
	if err != nil {
		return nil, err
	}
	archived, reasons, err := s.repo.ArchiveTotals(ctx)
	if err != nil {
		return nil, err
	}

	if byDept == nil {
		byDept = []DepartmentCount{}
	}
	if byDiag == nil {
		byDiag = []DiagnosisCount{}
	}
	return &Dashboard{
		TotalPatients:        total,
		ActivePatients:       active,
		ArchivedPatients:     archived,
		PatientsByDepartment: byDept,
		PatientsByDiagnosis:  byDiag,
		DischargeReasons:     reasons,
	}, nil
}
