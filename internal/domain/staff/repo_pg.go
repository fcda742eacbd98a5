package staff

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

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const accountCols = `id, email, password_hash, display_name, role, created_at`

func (r *repoPG) Create(ctx context.Context, acc *StaffAccount) error {
	acc.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff_accounts (id, email, password_hash, display_name, role)
		VALUES ($1,$2,$3,$4,$5)`,
		acc.ID, acc.Email, acc.PasswordHash, acc.DisplayName, acc.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflictf("email already registered")
		}
		return apperr.Storef("create staff account", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*StaffAccount, error) {
	return scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT `+accountCols+` FROM staff_accounts WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*StaffAccount, error) {
	return scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT `+accountCols+` FROM staff_accounts WHERE email = $1`, email))
}

func (r *repoPG) List(ctx context.Context) ([]*StaffAccount, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+accountCols+` FROM staff_accounts ORDER BY created_at`)
	if err != nil {
		return nil, apperr.Storef("list staff accounts", err)
	}
	defer rows.Close()

	var accs []*StaffAccount
	for rows.Next() {
		var a StaffAccount
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.Role, &a.CreatedAt); err != nil {
			return nil, apperr.Storef("scan staff account", err)
		}
		accs = append(accs, &a)
	}
	return accs, rows.Err()
}

func (r *repoPG) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE staff_accounts SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return apperr.Storef("update staff role", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("staff account %s", id)
	}
	return nil
}

func scanAccount(row pgx.Row) (*StaffAccount, error) {
	var a StaffAccount
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("staff account")
		}
		return nil, apperr.Storef("scan staff account", err)
	}
	return &a, nil
}
