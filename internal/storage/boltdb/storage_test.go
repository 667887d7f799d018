package boltdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

// createTestStorage создает временное BoltDB хранилище
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nexstore_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func testApps() []models.App {
	return []models.App{
		{
			ID:          "foo-1",
			Name:        "Foo",
			Developer:   "Acme",
			Description: "First app",
			Category:    "social",
			Icon:        "fas fa-mobile-alt",
			DownloadURL: "https://example.com/foo",
			Rating:      4.2,
			IsHot:       true,
			Badges:      []string{"trending"},
		},
		{
			ID:          "bar-2",
			Name:        "Bar",
			Developer:   "Acme",
			Description: "Second app",
			Category:    "games",
			Icon:        "fas fa-cube",
			DownloadURL: "https://example.com/bar",
			Rating:      3.8,
			Badges:      []string{},
		},
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Пустое хранилище отличимо от пустой коллекции
	_, err := store.LoadApps(ctx)
	require.ErrorIs(t, err, storage.ErrCatalogNotFound)

	apps := testApps()
	require.NoError(t, store.SaveApps(ctx, apps))

	got, err := store.LoadApps(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, apps[0].ID, got[0].ID)
	assert.Equal(t, apps[0].Name, got[0].Name)
	assert.InDelta(t, apps[0].Rating, got[0].Rating, 0.0001)
	assert.True(t, got[0].IsHot)
	assert.Equal(t, []string{"trending"}, got[0].Badges)
	assert.Equal(t, apps[1].ID, got[1].ID)

	// Сохранение пустой коллекции не превращается в "absent"
	require.NoError(t, store.SaveApps(ctx, []models.App{}))
	got, err = store.LoadApps(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogCorruptData(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Пишем мусор напрямую в bucket
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCatalog).Put(catalogKey, []byte("{broken"))
	})
	require.NoError(t, err)

	_, err = store.LoadApps(ctx)
	assert.True(t, errors.Is(err, storage.ErrDataCorrupt))
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.LoadUsers(ctx)
	require.ErrorIs(t, err, storage.ErrUsersNotFound)

	users := []models.User{
		{
			ID:        "u-1",
			Username:  "alice",
			Password:  "secret1",
			Email:     "alice@nexorastore.com",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			IsBanned:  false,
		},
	}
	require.NoError(t, store.SaveUsers(ctx, users))

	got, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, users[0].ID, got[0].ID)
	assert.Equal(t, users[0].Username, got[0].Username)
	assert.Equal(t, users[0].Password, got[0].Password)
	assert.Equal(t, users[0].Email, got[0].Email)
	assert.False(t, got[0].IsBanned)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetSession(ctx)
	require.ErrorIs(t, err, storage.ErrSessionNotFound)

	session := &models.Session{ID: "u-1", Username: "alice", Email: "alice@nexorastore.com"}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	// nil стирает ключ, а не сохраняет null
	require.NoError(t, store.SaveSession(ctx, nil))
	_, err = store.GetSession(ctx)
	require.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторное удаление не ошибка
	require.NoError(t, store.DeleteSession(ctx))
}

func TestThemeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetTheme(ctx)
	require.ErrorIs(t, err, storage.ErrSettingNotFound)

	require.NoError(t, store.SaveTheme(ctx, models.ThemeBlue))

	got, err := store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeBlue, got)
}
