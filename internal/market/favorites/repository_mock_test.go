package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockFavoritesStore struct {
	mock.Mock
}

func (m *mockFavoritesStore) GetFavoriteCoinUIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if uids, ok := args.Get(0).([]string); ok {
		return uids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFavoritesStore) AddFavorite(ctx context.Context, coinUID string) error {
	return m.Called(ctx, coinUID).Error(0)
}

func (m *mockFavoritesStore) RemoveFavorite(ctx context.Context, coinUID string) error {
	return m.Called(ctx, coinUID).Error(0)
}

func (m *mockFavoritesStore) IsFavorite(ctx context.Context, coinUID string) (bool, error) {
	args := m.Called(ctx, coinUID)
	return args.Bool(0), args.Error(1)
}

func TestRepository_StoreFailureSkipsProvider(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("database is locked")

	store := &mockFavoritesStore{}
	store.On("GetFavoriteCoinUIDs", mock.Anything).Return(nil, storeErr).Once()

	provider := newTestProvider()
	repo := NewRepository(store, provider)

	_, err := repo.Get(ctx, market.HighestCap, usd, true)

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, provider.callCount())
	store.AssertExpectations(t)
}

func TestRepository_FailedEditKeepsSubscribersQuiet(t *testing.T) {
	ctx := context.Background()

	store := &mockFavoritesStore{}
	store.On("AddFavorite", mock.Anything, "bitcoin").Return(common.ErrDuplicateEntry).Once()
	store.On("RemoveFavorite", mock.Anything, "dogecoin").Return(common.ErrNotFound).Once()

	repo := NewRepository(store, newTestProvider())
	updates, unsubscribe := repo.DataUpdated()
	defer unsubscribe()

	assert.ErrorIs(t, repo.Add(ctx, "bitcoin"), common.ErrDuplicateEntry)
	assert.ErrorIs(t, repo.Remove(ctx, "dogecoin"), common.ErrNotFound)

	select {
	case <-updates:
		t.Fatal("failed edits must not notify")
	default:
	}
	store.AssertExpectations(t)
}
