package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/models"
)

func TestNewStore_InvalidType(t *testing.T) {
	_, err := NewStore(StoreType("cloud"))
	assert.ErrorIs(t, err, ErrInvalidStoreType)
}

func TestNewStore_MissingConfig(t *testing.T) {
	_, err := NewStore(StoreTypeFile)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewStore(StoreTypeRedis)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	store, err := NewStore(StoreTypeMemory)
	require.NoError(t, err)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty slot loads as nil, not an error")

	user := models.User{ID: "2", Email: "alice@example.com", Password: "s3cret", Role: models.RoleUser}
	require.NoError(t, store.Save(ctx, user))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, user, *loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Close())
}

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store, err := NewStore(StoreTypeFile, WithFilePath(path))
	require.NoError(t, err)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	user := models.User{ID: "7", Name: "Alice", Email: "alice@example.com", Password: "s3cret", Role: models.RoleAdmin}
	require.NoError(t, store.Save(ctx, user))

	// A second store on the same path sees the slot (simulated restart).
	reopened, err := NewStore(StoreTypeFile, WithFilePath(path))
	require.NoError(t, err)
	loaded, err = reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, user, *loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing the already-empty slot is not an error.
	require.NoError(t, store.Clear(ctx))
}

func TestFileStore_MalformedSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(StoreTypeFile, WithFilePath(path))
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
}
