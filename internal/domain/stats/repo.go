package stats

import "context"

// Repository aggregates over the patients and archive tables. All counts are
// computed store-side so the dashboard stays a handful of cheap queries.
type Repository interface {
	PatientTotals(ctx context.Context) (total, active int, err error)
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	CountByDiagnosis(ctx context.Context) ([]DiagnosisCount, error)
	ArchiveTotals(ctx context.Context) (int, DischargeReasonCounts, error)
}
