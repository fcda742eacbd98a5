package stats

import (
	"context"

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

func (r *repoPG) PatientTotals(ctx context.Context) (int, int, error) {
	var total, active int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active')
		FROM patients`).Scan(&total, &active)
	if err != nil {
		return 0, 0, apperr.Storef("count patients", err)
	}
	return total, active, nil
}

func (r *repoPG) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT department, COUNT(*)
		FROM patients
		GROUP BY department
		ORDER BY COUNT(*) DESC, department`)
	if err != nil {
		return nil, apperr.Storef("count patients by department", err)
	}
	defer rows.Close()

	var result []DepartmentCount
	for rows.Next() {
		var dc DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, apperr.Storef("scan department count", err)
		}
		result = append(result, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storef("count patients by department", err)
	}
	return result, nil
}

func (r *repoPG) CountByDiagnosis(ctx context.Context) ([]DiagnosisCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT diagnosis, COUNT(*)
		FROM patients
		WHERE diagnosis <> ''
		GROUP BY diagnosis
		ORDER BY COUNT(*) DESC, diagnosis`)
	if err != nil {
		return nil, apperr.Storef("count patients by diagnosis", err)
	}
	defer rows.Close()

	var result []DiagnosisCount
	for rows.Next() {
		var dc DiagnosisCount
		if err := rows.Scan(&dc.Diagnosis, &dc.Count); err != nil {
			return nil, apperr.Storef("scan diagnosis count", err)
		}
		result = append(result, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storef("count patients by diagnosis", err)
	}
	return result, nil
}

func (r *repoPG) ArchiveTotals(ctx context.Context) (int, DischargeReasonCounts, error) {
	var (
		total   int
		reasons DischargeReasonCounts
	)
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE discharge_reason = 'improved'),
			COUNT(*) FILTER (WHERE discharge_reason = 'by_request'),
			COUNT(*) FILTER (WHERE discharge_reason = 'escaped'),
			COUNT(*) FILTER (WHERE discharge_reason = 'died')
		FROM archive_records`).Scan(
		&total, &reasons.Improved, &reasons.ByRequest, &reasons.Escaped, &reasons.Died)
	if err != nil {
		return 0, DischargeReasonCounts{}, apperr.Storef("count archive records", err)
	}
	return total, reasons, nil
}
