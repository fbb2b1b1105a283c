// Package favorites implements the market favorites screen: the repository,
// the refresh service and the view model driving the UI.
package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/reactive"
	"github.com/Veraticus/bankwallet/internal/service"
	"golang.org/x/sync/errgroup"
)

// Repository defaults.
const (
	DefaultCacheTTL  = 5 * time.Minute
	DefaultChunkSize = 50
	maxParallelFetch = 4
)

type cacheEntry struct {
	fetchedAt time.Time
	uids      []string
	items     []market.MarketItem
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithCacheTTL sets how long market data is served from cache.
func WithCacheTTL(ttl time.Duration) RepositoryOption {
	return func(r *Repository) { r.cacheTTL = ttl }
}

// WithChunkSize sets how many coins are requested per provider call.
func WithChunkSize(size int) RepositoryOption {
	return func(r *Repository) {
		if size > 0 {
			r.chunkSize = size
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// Repository serves market data for favorite coins.
type Repository struct {
	favorites service.FavoritesStore
	provider  service.MarketInfoProvider
	logger    *slog.Logger
	updated   *reactive.Signal
	now       func() time.Time
	cache     map[string]cacheEntry
	cacheTTL  time.Duration
	chunkSize int
	mu        sync.Mutex
}

var _ service.MarketFavoritesRepository = (*Repository)(nil)

// NewRepository creates a favorites repository.
func NewRepository(favorites service.FavoritesStore, provider service.MarketInfoProvider, opts ...RepositoryOption) *Repository {
	r := &Repository{
		favorites: favorites,
		provider:  provider,
		logger:    slog.Default().With("component", "favorites_repository"),
		updated:   reactive.NewSignal(),
		now:       time.Now,
		cache:     make(map[string]cacheEntry),
		cacheTTL:  DefaultCacheTTL,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the favorites' market items sorted by sortingField.
func (r *Repository) Get(ctx context.Context, sortingField market.SortingField, currency model.Currency, forceRefresh bool) ([]market.MarketItem, error) {
	uids, err := r.favorites.GetFavoriteCoinUIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if len(uids) == 0 {
		return []market.MarketItem{}, nil
	}

	if !forceRefresh {
		if items, ok := r.cached(currency.Code, uids); ok {
			r.logger.Debug("Serving favorites from cache", "currency", currency.Code, "count", len(items))
			return market.Sort(items, sortingField), nil
		}
	}

	infos, err := r.fetch(ctx, uids, currency.Code)
	if err != nil {
		return nil, err
	}

	items := make([]market.MarketItem, 0, len(infos))
	for _, info := range infos {
		items = append(items, market.NewMarketItem(info, currency))
	}

	r.mu.Lock()
	r.cache[currency.Code] = cacheEntry{fetchedAt: r.now(), uids: uids, items: items}
	r.mu.Unlock()

	return market.Sort(items, sortingField), nil
}

// Add marks coinUID as favorite.
func (r *Repository) Add(ctx context.Context, coinUID string) error {
	if err := r.favorites.AddFavorite(ctx, coinUID); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// Remove unmarks coinUID.
func (r *Repository) Remove(ctx context.Context, coinUID string) error {
	if err := r.favorites.RemoveFavorite(ctx, coinUID); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// DataUpdated notifies after Add or Remove.
func (r *Repository) DataUpdated() (<-chan struct{}, func()) {
	return r.updated.Subscribe()
}

func (r *Repository) invalidate() {
	r.mu.Lock()
	clear(r.cache)
	r.mu.Unlock()
	r.updated.Notify()
}

func (r *Repository) cached(currencyCode string, uids []string) ([]market.MarketItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[currencyCode]
	if !ok || r.now().Sub(entry.fetchedAt) >= r.cacheTTL || !slices.Equal(entry.uids, uids) {
		return nil, false
	}
	return entry.items, true
}

// fetch requests market infos in parallel chunks, keeping favorites order.
func (r *Repository) fetch(ctx context.Context, uids []string, currencyCode string) ([]market.MarketInfo, error) {
	chunks := slices.Collect(slices.Chunk(uids, r.chunkSize))
	results := make([][]market.MarketInfo, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetch)
	for i, chunk := range chunks {
		g.Go(func() error {
			infos, err := r.provider.MarketInfos(gctx, chunk, currencyCode)
			if err != nil {
				return fmt.Errorf("failed to fetch market info: %w", err)
			}
			results[i] = infos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byUID := make(map[string]market.MarketInfo, len(uids))
	for _, chunk := range results {
		for _, info := range chunk {
			byUID[info.Coin.UID] = info
		}
	}

	infos := make([]market.MarketInfo, 0, len(byUID))
	for _, uid := range uids {
		if info, ok := byUID[uid]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}
