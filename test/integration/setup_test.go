package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgward/surgward/internal/platform/auth"
	"github.com/surgward/surgward/internal/platform/db"
)

// globalPool is the shared test database, initialized once in TestMain.
var globalPool *pgxpool.Pool

func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stderr, "docker not available, skipping integration tests")
		os.Exit(0)
	}

	ctx := context.Background()

	connStr, cleanup, err := startPostgresContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}

	migrator := db.NewMigrator(pool, findMigrationsDir())
	if _, err := migrator.Up(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	globalPool = pool
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	return filepath.Join(dir, "..", "..", "migrations")
}

// truncateAll resets every table between tests. Order respects foreign keys.
func truncateAll(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := globalPool.Exec(ctx, `
		TRUNCATE comments, announcements, media_files, followup_notes,
			archive_records, patients, department_beds, registrations,
			staff_accounts CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// seedStaff inserts a staff account directly and returns its identity.
func seedStaff(t *testing.T, ctx context.Context, role auth.Role) auth.Identity {
	t.Helper()
	id := uuid.New()
	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = globalPool.Exec(ctx, `
		INSERT INTO staff_accounts (id, email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4, $5)`,
		id, fmt.Sprintf("%s@ward.test", id), hash, "Dr. Test", string(role))
	if err != nil {
		t.Fatalf("seed staff account: %v", err)
	}
	return auth.Identity{StaffID: id, DisplayName: "Dr. Test", Role: role}
}
