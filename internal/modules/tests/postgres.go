//go:build integration

package tests

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/eskrenkovic/migrate-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
)

const (
	postgresImage    = "postgres:15-alpine"
	postgresUser     = "scheduler"
	postgresPassword = "scheduler"
	postgresDatabase = "scheduler"
)

var postgresPort = nat.Port("5432/tcp")

// PostgresFixture is a throw-away migrated Postgres running in a container.
type PostgresFixture struct {
	container testcontainers.Container
	DB        *sql.DB
	DSN       string
}

func NewPostgresFixture(ctx context.Context, migrationsPath string) (*PostgresFixture, error) {
	request := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{string(postgresPort)},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDatabase,
		},
		WaitingFor: wait.ForListeningPort(postgresPort).WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	fixture := &PostgresFixture{container: container}

	db, err := fixture.open(ctx)
	if err != nil {
		_ = fixture.Stop(ctx)
		return nil, err
	}
	fixture.DB = db

	if err := migrate.Run(ctx, db, migrationsPath); err != nil {
		_ = fixture.Stop(ctx)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return fixture, nil
}

func (f *PostgresFixture) open(ctx context.Context) (*sql.DB, error) {
	host, err := f.container.Host(ctx)
	if err != nil {
		return nil, err
	}

	port, err := f.container.MappedPort(ctx, postgresPort)
	if err != nil {
		return nil, err
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(postgresUser, postgresPassword),
		Host:     fmt.Sprintf("%s:%s", host, port.Port()),
		Path:     postgresDatabase,
		RawQuery: "sslmode=disable",
	}

	f.DSN = dsn.String()

	db, err := sql.Open("postgres", f.DSN)
	if err != nil {
		return nil, err
	}

	// The port opens before the server accepts connections.
	deadline := time.Now().Add(30 * time.Second)
	for {
		err = db.PingContext(ctx)
		if err == nil {
			return db, nil
		}

		if time.Now().After(deadline) {
			_ = db.Close()
			return nil, fmt.Errorf("postgres did not become ready: %w", err)
		}

		time.Sleep(250 * time.Millisecond)
	}
}

func (f *PostgresFixture) Stop(ctx context.Context) error {
	if f.DB != nil {
		_ = f.DB.Close()
	}
	return f.container.Terminate(ctx)
}
