package db

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testPool is shared by all database tests; nil when no container could be started.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Printf("postgres container unavailable, database tests skipped: %v", err)
		os.Exit(m.Run())
	}

	code := runWithContainer(ctx, m, container)
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func runWithContainer(ctx context.Context, m *testing.M, container testcontainers.Container) int {
	host, err := container.Host(ctx)
	if err != nil {
		log.Printf("getting container host: %v", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Printf("getting container port: %v", err)
		return 1
	}
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Printf("connecting to test db: %v", err)
		return 1
	}
	defer testPool.Close()

	if err := runMigrations(ctx, testPool); err != nil {
		log.Printf("running migrations: %v", err)
		return 1
	}

	return m.Run()
}

// setupTestDB returns the shared pool with empty tables, or skips the test.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	if testPool == nil {
		tb.Skip("postgres is not available")
	}

	ctx := context.Background()
	for _, query := range []string{"TRUNCATE goal_events", "TRUNCATE bot_profiles"} {
		if _, err := testPool.Exec(ctx, query); err != nil {
			tb.Logf("cleanup warning: %v", err)
		}
	}
	return testPool
}

// runMigrations applies embedded migrations through a database/sql handle on the pool config.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	connStr := stdlib.RegisterConnConfig(pool.Config().ConnConfig)
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql.DB: %w", err)
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB)
}
