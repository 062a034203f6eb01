//go:build integration

package db

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "herbsera"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/herbsera?sslmode=disable", host, port.Port())
}

func tableExists(t *testing.T, dsn, table string) bool {
	t.Helper()
	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer conn.Close()

	var exists bool
	err = conn.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigrationsUpAndDown(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(ctx, t)

	mg, err := NewMigrator(dsn)
	require.NoError(t, err)
	defer mg.Close()

	version, _, err := mg.Version()
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, mg.Up())
	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	for _, table := range []string{"users", "products", "orders", "order_items", "reviews", "activity_logs", "login_events"} {
		assert.True(t, tableExists(t, dsn, table), table)
	}

	// Running again is a no-op.
	require.NoError(t, mg.Up())

	require.NoError(t, mg.Down(1))
	version, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, tableExists(t, dsn, "activity_logs"))
	assert.True(t, tableExists(t, dsn, "orders"))

	assert.Error(t, mg.Down(0))
}

func TestRunMigrations(t *testing.T) {
	dsn := startPostgres(context.Background(), t)

	require.NoError(t, RunMigrations(dsn))
	assert.True(t, tableExists(t, dsn, "carts"))
}
