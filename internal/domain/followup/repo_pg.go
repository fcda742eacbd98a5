package followup

import (
	"context"

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

func (r *repoPG) Create(ctx context.Context, note *FollowupNote) error {
	note.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO followup_notes (id, patient_id, note, created_by, created_by_name)
		VALUES ($1,$2,$3,$4,$5)`,
		note.ID, note.PatientID, note.Note, note.CreatedBy, note.CreatedByName,
	)
	if err != nil {
		return apperr.Storef("create followup note", err)
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*FollowupNote, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, note, created_by, created_by_name, created_at
		FROM followup_notes WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, apperr.Storef("list followup notes", err)
	}
	defer rows.Close()

	var notes []*FollowupNote
	for rows.Next() {
		var n FollowupNote
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Note, &n.CreatedBy, &n.CreatedByName, &n.CreatedAt); err != nil {
			return nil, apperr.Storef("scan followup note", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM followup_notes WHERE id = $1`, id)
	if err != nil {
		return apperr.Storef("delete followup note", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("followup note %s", id)
	}
	return nil
}
