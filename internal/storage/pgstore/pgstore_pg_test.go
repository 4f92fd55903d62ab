package pgstore_test

import (
	"context"
	"testing"

	"github.com/AndrewDonelson/persistent/internal/storage"
	"github.com/AndrewDonelson/persistent/internal/storage/pgstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testcontainers "github.com/testcontainers/testcontainers-go"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	pgImage    = "postgres:16-alpine"
	pgDatabase = "persistentpgtest"
	pgUser     = "persistentuser"
	pgPassword = "persistentpass"
)

// setupPG spins up a Postgres container and returns a connected Store.
// Skips the test if Docker is not available.
func setupPG(t *testing.T) *pgstore.Store {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgc, err := tcpg.Run(ctx, pgImage,
		tcpg.WithDatabase(pgDatabase),
		tcpg.WithUsername(pgUser),
		tcpg.WithPassword(pgPassword),
		tcpg.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := pgc.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := pgstore.Connect(ctx, dsn, pgstore.Options{})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		_ = pgc.Terminate(ctx)
	})
	return store
}

func TestPGStore_RoundTrip(t *testing.T) {
	store := setupPG(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.EnsureTable(ctx), "EnsureTable is idempotent")

	_, err := store.Read(ctx, "settings")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ok, err := store.Exists(ctx, "settings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, "settings", []byte("v1")))
	require.NoError(t, store.Write(ctx, "settings", []byte("v2")))

	got, err := store.Read(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	ok, err = store.Exists(ctx, "settings")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "settings"))
	require.NoError(t, store.Delete(ctx, "settings"))
	_, err = store.Read(ctx, "settings")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPGStore_EmptyPayload(t *testing.T) {
	store := setupPG(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "empty", nil))
	got, err := store.Read(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPGStore_MissingTable(t *testing.T) {
	store := setupPG(t)
	ctx := context.Background()

	other := pgstore.New(store.Pool(), pgstore.Options{Table: "not_created"})
	_, err := other.Read(ctx, "k")
	require.Error(t, err)
	assert.True(t, pgstore.IsUndefinedTable(err))
}
