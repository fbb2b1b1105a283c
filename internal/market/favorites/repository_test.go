package favorites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *fakeProvider {
	return &fakeProvider{infos: map[string]market.MarketInfo{
		"bitcoin":  marketInfo("bitcoin", 800),
		"ethereum": marketInfo("ethereum", 300),
		"tether":   marketInfo("tether", 100),
		"solana":   marketInfo("solana", 50),
		"dogecoin": marketInfo("dogecoin", 20),
	}}
}

func TestRepository_GetSortsAndChunks(t *testing.T) {
	store := newMemoryStore("tether", "bitcoin", "dogecoin", "ethereum", "solana")
	provider := newTestProvider()
	repo := NewRepository(store, provider, WithChunkSize(2))

	items, err := repo.Get(context.Background(), market.HighestCap, usd, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"bitcoin", "ethereum", "tether", "solana", "dogecoin"}, itemUIDs(items))
	assert.Equal(t, 3, provider.callCount())
	for _, item := range items {
		assert.Equal(t, usd, item.Rate.Currency)
	}
}

func TestRepository_EmptyFavorites(t *testing.T) {
	provider := newTestProvider()
	repo := NewRepository(newMemoryStore(), provider)

	items, err := repo.Get(context.Background(), market.HighestCap, usd, true)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Equal(t, 0, provider.callCount())
}

func TestRepository_Cache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := newMemoryStore("bitcoin", "ethereum")
	provider := newTestProvider()
	repo := NewRepository(store, provider, WithCacheTTL(time.Minute), WithClock(clock))
	ctx := context.Background()

	_, err := repo.Get(ctx, market.HighestCap, usd, false)
	require.NoError(t, err)
	require.Equal(t, 1, provider.callCount())

	items, err := repo.Get(ctx, market.LowestCap, usd, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ethereum", "bitcoin"}, itemUIDs(items))
	assert.Equal(t, 1, provider.callCount(), "fresh cache serves non-forced reads")

	_, err = repo.Get(ctx, market.HighestCap, usd, true)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount(), "forced reads bypass the cache")

	_, err = repo.Get(ctx, market.HighestCap, eur, false)
	require.NoError(t, err)
	assert.Equal(t, 3, provider.callCount(), "cache is per currency")

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, market.HighestCap, usd, false)
	require.NoError(t, err)
	assert.Equal(t, 4, provider.callCount(), "expired entries are refetched")
}

func TestRepository_AddRemoveNotifies(t *testing.T) {
	store := newMemoryStore("bitcoin")
	provider := newTestProvider()
	repo := NewRepository(store, provider)
	ctx := context.Background()

	updates, unsubscribe := repo.DataUpdated()
	defer unsubscribe()

	_, err := repo.Get(ctx, market.HighestCap, usd, false)
	require.NoError(t, err)

	require.NoError(t, repo.Add(ctx, "ethereum"))
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("expected update notification")
	}

	items, err := repo.Get(ctx, market.HighestCap, usd, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, itemUIDs(items))
	assert.Equal(t, 2, provider.callCount())

	require.NoError(t, repo.Remove(ctx, "bitcoin"))
	<-updates

	err = repo.Remove(ctx, "bitcoin")
	assert.Error(t, err)
}

func TestRepository_ProviderError(t *testing.T) {
	provider := newTestProvider()
	provider.err = errors.New("boom")
	repo := NewRepository(newMemoryStore("bitcoin"), provider)

	_, err := repo.Get(context.Background(), market.HighestCap, usd, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.err)
}
