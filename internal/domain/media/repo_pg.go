package media

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

func (r *repoPG) Create(ctx context.Context, ref *MediaReference) error {
	ref.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO media_files (id, patient_id, file_name, file_type, url, description, uploaded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		ref.ID, ref.PatientID, ref.FileName, ref.FileType, ref.URL, ref.Description, ref.UploadedBy,
	)
	if err != nil {
		return apperr.Storef("create media reference", err)
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MediaReference, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, file_name, file_type, url, description, uploaded_by, created_at
		FROM media_files WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, apperr.Storef("list media references", err)
	}
	defer rows.Close()

	var refs []*MediaReference
	for rows.Next() {
		var m MediaReference
		if err := rows.Scan(&m.ID, &m.PatientID, &m.FileName, &m.FileType, &m.URL, &m.Description, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, apperr.Storef("scan media reference", err)
		}
		refs = append(refs, &m)
	}
	return refs, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM media_files WHERE id = $1`, id)
	if err != nil {
		return apperr.Storef("delete media reference", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("media reference %s", id)
	}
	return nil
}
