//go:build e2e

// Package pgtest runs one Postgres container per test process and hands each
// test its own freshly migrated database.
package pgtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/infra/db"
	"sublet-booking/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	containerOnce sync.Once
	containerErr  error
	host          string
	port          nat.Port
)

// NewDatabase creates an empty database on the shared container, applies the
// migrations and returns a pool plus the config that reaches it.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	startContainer(t)

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer admin.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second))
		}
		if _, createErr = admin.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", createErr)
	}
	require.NoError(t, createErr, "failed to create test database")

	cfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}
	pool, cleanup, err := db.Connect(ctx, cfg)
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(func() {
		cleanup()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		dropPool, err := pgxpool.New(dropCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for cleanup", "database", dbName, "error", err)
			return
		}
		defer dropPool.Close()
		if _, err := dropPool.Exec(dropCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err)
		}
	})

	applyMigrations(t, pool)
	return pool, cfg
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	dir := filepath.Join(repoRoot(t), "migrations")
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", dir)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "failed to apply %s", filepath.Base(f))
	}
}

// repoRoot walks up from the package directory `go test` runs in.
func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found above the test directory")
		dir = parent
	}
}

func startContainer(t *testing.T) {
	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     testUser,
					"POSTGRES_PASSWORD": testPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(h string, p nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, h, p.Port())
				}).WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
		if err != nil {
			containerErr = err
			return
		}
		if port, containerErr = c.MappedPort(ctx, "5432/tcp"); containerErr != nil {
			return
		}
		host, containerErr = c.Host(ctx)
	})
	require.NoError(t, containerErr, "failed to start postgres container")
}

func InsertUser(t *testing.T, pool *pgxpool.Pool, role user.Role) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, display_name, email, role) VALUES ($1, $2, $3, $4)`,
		id, "user "+id.String()[:8], id.String()+"@example.com", role.String())
	require.NoError(t, err)
	return id
}

func InsertProperty(t *testing.T, pool *pgxpool.Pool, p *property.Property) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO properties (id, host_id, title, city, monthly_price_cents, cleaning_fee_cents,
			security_deposit_cents, minimum_stay_weeks, maximum_stay_months, max_guests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.HostID, p.Title, p.City, p.MonthlyPriceCents, p.CleaningFeeCents,
		p.SecurityDepositCents, p.MinimumStayWeeks, p.MaximumStayMonths, p.MaxGuests, string(p.Status))
	require.NoError(t, err)
}

// SettleBooking marks a booking completed and paid, the state payouts require.
func SettleBooking(t *testing.T, pool *pgxpool.Pool, bookingID uuid.UUID) {
	t.Helper()
	tag, err := pool.Exec(context.Background(), `
		UPDATE bookings
		SET booking_status = 'completed', payment_status = 'completed', completed_at = now(), updated_at = now()
		WHERE id = $1`, bookingID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}
