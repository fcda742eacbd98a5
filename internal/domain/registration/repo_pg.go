package registration

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

const registrationCols = `id, full_name, gender, id_number, date_of_birth,
	phone, email, passport_status, photo_url, created_at`

func (r *repoPG) Create(ctx context.Context, reg *Registration) error {
	reg.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO registrations (
			id, full_name, gender, id_number, date_of_birth,
			phone, email, passport_status, photo_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		reg.ID, reg.FullName, reg.Gender, reg.IDNumber, reg.DateOfBirth,
		reg.Phone, reg.Email, reg.PassportStatus, reg.PhotoURL,
	)
	if err != nil {
		return apperr.Storef("create registration", err)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Registration, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+registrationCols+`
		FROM registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, apperr.Storef("list registrations", err)
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, apperr.Storef("count registrations", err)
	}
	return n, nil
}

func scanRegistration(row pgx.Row) (*Registration, error) {
	var reg Registration
	err := row.Scan(
		&reg.ID, &reg.FullName, &reg.Gender, &reg.IDNumber, &reg.DateOfBirth,
		&reg.Phone, &reg.Email, &reg.PassportStatus, &reg.PhotoURL, &reg.CreatedAt,
	)
	if err != nil {
		return nil, apperr.Storef("scan registration", err)
	}
	return &reg, nil
}

func collectRegistrations(rows pgx.Rows) ([]*Registration, error) {
	var result []*Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storef("iterate registrations", err)
	}
	return result, nil
}
