package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() {
		_ = store.Close()
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "a", "b", "wallet.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		assert.Equal(t, dbPath, store.Path())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		assert.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("in memory", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		require.NoError(t, store.Migrate(context.Background()))
	})

	t.Run("flags foreign files as corrupted", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "notes.db")
		garbage := strings.Repeat("definitely not sqlite ", 200)
		require.NoError(t, os.WriteFile(dbPath, []byte(garbage), 0o600))

		store, err := NewSQLiteStorage(dbPath)
		if err == nil {
			err = store.Migrate(context.Background())
			_ = store.Close()
		}
		assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)
	})
}

func TestFavorites(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	uids, err := store.GetFavoriteCoinUIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, uids)

	for _, uid := range []string{"tether", "bitcoin", "ethereum"} {
		require.NoError(t, store.AddFavorite(ctx, uid))
	}

	uids, err = store.GetFavoriteCoinUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tether", "bitcoin", "ethereum"}, uids, "insertion order is kept")

	err = store.AddFavorite(ctx, "bitcoin")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	ok, err := store.IsFavorite(ctx, "bitcoin")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.RemoveFavorite(ctx, "bitcoin"))
	ok, err = store.IsFavorite(ctx, "bitcoin")
	require.NoError(t, err)
	assert.False(t, ok)

	err = store.RemoveFavorite(ctx, "bitcoin")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.AddFavorite(ctx, "bitcoin"))
	uids, err = store.GetFavoriteCoinUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tether", "ethereum", "bitcoin"}, uids)

	assert.ErrorIs(t, store.AddFavorite(ctx, ""), ErrEmptyString)
}

func TestPreferences(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetPreference(ctx, "base_currency_code")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SetPreference(ctx, "base_currency_code", "USD"))
	require.NoError(t, store.SetPreference(ctx, "base_currency_code", "EUR"))

	value, err := store.GetPreference(ctx, "base_currency_code")
	require.NoError(t, err)
	assert.Equal(t, "EUR", value)

	require.NoError(t, store.SetPreference(ctx, "empty", ""))
	value, err = store.GetPreference(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, value)

	assert.ErrorIs(t, store.SetPreference(ctx, "", "x"), ErrEmptyString)
}

func TestWalletConnectSessions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	sessions := []model.WalletConnectSession{
		{AccountID: "account-1", Topic: "topic-b"},
		{AccountID: "account-1", Topic: "topic-a"},
		{AccountID: "account-2", Topic: "topic-a"},
	}
	for _, s := range sessions {
		require.NoError(t, store.SaveWalletConnectSession(ctx, s))
	}
	require.NoError(t, store.SaveWalletConnectSession(ctx, sessions[0]), "saving twice is a no-op")

	got, err := store.GetWalletConnectSessions(ctx, "account-1")
	require.NoError(t, err)
	assert.Equal(t, []model.WalletConnectSession{
		{AccountID: "account-1", Topic: "topic-a"},
		{AccountID: "account-1", Topic: "topic-b"},
	}, got)

	all, err := store.GetAllWalletConnectSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.DeleteWalletConnectSession(ctx, "account-1", "topic-a"))
	got, err = store.GetWalletConnectSessions(ctx, "account-1")
	require.NoError(t, err)
	assert.Equal(t, []model.WalletConnectSession{{AccountID: "account-1", Topic: "topic-b"}}, got)

	require.NoError(t, store.DeleteWalletConnectSessionsByAccount(ctx, "account-1"))
	got, err = store.GetWalletConnectSessions(ctx, "account-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.GetWalletConnectSessions(ctx, "account-2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWalletConnectSessions_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		session model.WalletConnectSession
	}{
		{name: "missing account", session: model.WalletConnectSession{Topic: "t"}},
		{name: "missing topic", session: model.WalletConnectSession{AccountID: "a"}},
		{name: "blank topic", session: model.WalletConnectSession{AccountID: "a", Topic: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveWalletConnectSession(ctx, tt.session)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}
