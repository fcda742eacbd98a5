package patient

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

const patientCols = `id, full_name, age, gender, id_number, phone, address,
	diagnosis, operation, surgeon, department, bed_number, admission_date,
	notes, status, created_by, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *PatientRecord) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (
			id, full_name, age, gender, id_number, phone, address,
			diagnosis, operation, surgeon, department, bed_number,
			admission_date, notes, status, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.FullName, p.Age, p.Gender, p.IDNumber, p.Phone, p.Address,
		p.Diagnosis, p.Operation, p.Surgeon, p.Department, p.BedNumber,
		p.AdmissionDate, p.Notes, p.Status, p.CreatedBy,
	)
	if err != nil {
		return apperr.Storef("create patient", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientRecord, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *PatientRecord) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET
			full_name=$2, age=$3, gender=$4, id_number=$5, phone=$6, address=$7,
			diagnosis=$8, operation=$9, surgeon=$10, department=$11,
			bed_number=$12, admission_date=$13, notes=$14, status=$15,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Age, p.Gender, p.IDNumber, p.Phone, p.Address,
		p.Diagnosis, p.Operation, p.Surgeon, p.Department,
		p.BedNumber, p.AdmissionDate, p.Notes, p.Status,
	)
	if err != nil {
		return apperr.Storef("update patient", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("patient %s", p.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return apperr.Storef("delete patient", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("patient %s", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*PatientRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Storef("list patients", err)
	}
	defer rows.Close()
	return collectPatients(rows)
}

func (r *repoPG) ListActive(ctx context.Context) ([]*PatientRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE status = $1 ORDER BY created_at DESC`,
		StatusActive)
	if err != nil {
		return nil, apperr.Storef("list active patients", err)
	}
	defer rows.Close()
	return collectPatients(rows)
}

func scanPatient(row pgx.Row) (*PatientRecord, error) {
	var p PatientRecord
	err := row.Scan(
		&p.ID, &p.FullName, &p.Age, &p.Gender, &p.IDNumber, &p.Phone, &p.Address,
		&p.Diagnosis, &p.Operation, &p.Surgeon, &p.Department, &p.BedNumber,
		&p.AdmissionDate, &p.Notes, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("patient")
		}
		return nil, apperr.Storef("scan patient", err)
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*PatientRecord, error) {
	var patients []*PatientRecord
	for rows.Next() {
		var p PatientRecord
		err := rows.Scan(
			&p.ID, &p.FullName, &p.Age, &p.Gender, &p.IDNumber, &p.Phone, &p.Address,
			&p.Diagnosis, &p.Operation, &p.Surgeon, &p.Department, &p.BedNumber,
			&p.AdmissionDate, &p.Notes, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, apperr.Storef("scan patient", err)
		}
		patients = append(patients, &p)
	}
	return patients, rows.Err()
}

// -- Archive --

type archiveRepoPG struct {
	pool *pgxpool.Pool
}

func NewArchiveRepo(pool *pgxpool.Pool) ArchiveRepository {
	return &archiveRepoPG{pool: pool}
}

func (r *archiveRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const archiveCols = `id, patient_id, full_name, age, gender, diagnosis,
	operation, surgeon, admission_date, discharge_reason, notes,
	discharged_by, discharged_at`

func (r *archiveRepoPG) Create(ctx context.Context, rec *ArchiveRecord) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO archive_records (
			id, patient_id, full_name, age, gender, diagnosis, operation,
			surgeon, admission_date, discharge_reason, notes, discharged_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.PatientID, rec.FullName, rec.Age, rec.Gender, rec.Diagnosis,
		rec.Operation, rec.Surgeon, rec.AdmissionDate, rec.DischargeReason,
		rec.Notes, rec.DischargedBy,
	)
	if err != nil {
		return apperr.Storef("create archive record", err)
	}
	return nil
}

func (r *archiveRepoPG) List(ctx context.Context) ([]*ArchiveRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+archiveCols+` FROM archive_records ORDER BY discharged_at DESC`)
	if err != nil {
		return nil, apperr.Storef("list archive records", err)
	}
	defer rows.Close()

	var recs []*ArchiveRecord
	for rows.Next() {
		var rec ArchiveRecord
		err := rows.Scan(
			&rec.ID, &rec.PatientID, &rec.FullName, &rec.Age, &rec.Gender,
			&rec.Diagnosis, &rec.Operation, &rec.Surgeon, &rec.AdmissionDate,
			&rec.DischargeReason, &rec.Notes, &rec.DischargedBy, &rec.DischargedAt,
		)
		if err != nil {
			return nil, apperr.Storef("scan archive record", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// -- Beds --

type bedRepoPG struct {
	pool *pgxpool.Pool
}

func NewBedRepo(pool *pgxpool.Pool) BedRepository {
	return &bedRepoPG{pool: pool}
}

func (r *bedRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *bedRepoPG) Get(ctx context.Context, department string) (*DepartmentBedCounter, error) {
	var c DepartmentBedCounter
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT department, total_beds, occupied_beds FROM department_beds WHERE department = $1`,
		department).Scan(&c.Department, &c.TotalBeds, &c.OccupiedBeds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("department %s", department)
		}
		return nil, apperr.Storef("get bed counter", err)
	}
	return &c, nil
}

func (r *bedRepoPG) Upsert(ctx context.Context, counter *DepartmentBedCounter) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO department_beds (department, total_beds, occupied_beds)
		VALUES ($1,$2,$3)
		ON CONFLICT (department)
		DO UPDATE SET total_beds = EXCLUDED.total_beds, occupied_beds = EXCLUDED.occupied_beds`,
		counter.Department, counter.TotalBeds, counter.OccupiedBeds,
	)
	if err != nil {
		return apperr.Storef("upsert bed counter", err)
	}
	return nil
}

func (r *bedRepoPG) Adjust(ctx context.Context, department string, delta int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO department_beds (department, total_beds, occupied_beds)
		VALUES ($1, 0, GREATEST($2, 0))
		ON CONFLICT (department)
		DO UPDATE SET occupied_beds = GREATEST(department_beds.occupied_beds + $2, 0)`,
		department, delta,
	)
	if err != nil {
		return apperr.Storef("adjust bed occupancy", err)
	}
	return nil
}
