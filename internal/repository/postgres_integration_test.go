//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestRepository_Integration_SaveAndFind(t *testing.T) {
	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.CreateTables(ctx))
	// CreateTables is idempotent.
	require.NoError(t, repo.CreateTables(ctx))

	coordinate := testCoordinate()
	address := testAddress()

	require.NoError(t, repo.SaveResolvedAddress(ctx, coordinate, address))

	// The same pair again violates both unique keys.
	err := repo.SaveResolvedAddress(ctx, coordinate, address)
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.FindAddress(ctx, coordinate.Latitude, coordinate.Longitude)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *address.StreetName, found.StreetName)
	assert.Equal(t, *address.City, found.City)
	assert.Equal(t, *address.PostalCode, found.PostalCode)

	missing, err := repo.FindAddress(ctx, 0.42, 0.42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	results, err := repo.SearchAddresses(ctx, "ipiranga")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, *address.StreetName, results[0].StreetName)
}
