// Package service defines the interfaces shared by the wallet services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	FavoritesStore
	PreferenceStore
	WalletConnectStore

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// FavoritesStore persists the coins the user marked as favorite.
type FavoritesStore interface {
	GetFavoriteCoinUIDs(ctx context.Context) ([]string, error)
	AddFavorite(ctx context.Context, coinUID string) error
	RemoveFavorite(ctx context.Context, coinUID string) error
	IsFavorite(ctx context.Context, coinUID string) (bool, error)
}

// PreferenceStore persists small key/value user preferences.
// GetPreference returns common.ErrNotFound for unknown keys.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// WalletConnectStore persists wallet-connect v2 sessions per account.
type WalletConnectStore interface {
	SaveWalletConnectSession(ctx context.Context, session model.WalletConnectSession) error
	GetWalletConnectSessions(ctx context.Context, accountID string) ([]model.WalletConnectSession, error)
	GetAllWalletConnectSessions(ctx context.Context) ([]model.WalletConnectSession, error)
	DeleteWalletConnectSession(ctx context.Context, accountID, topic string) error
	DeleteWalletConnectSessionsByAccount(ctx context.Context, accountID string) error
}

// MarketFavoritesRepository returns market data for the user's favorite coins.
type MarketFavoritesRepository interface {
	// Get returns the favorites sorted by sortingField and denominated in
	// currency. forceRefresh bypasses any cached market data.
	Get(ctx context.Context, sortingField market.SortingField, currency model.Currency, forceRefresh bool) ([]market.MarketItem, error)
	// DataUpdated notifies when the favorites list changes.
	DataUpdated() (<-chan struct{}, func())
}

// MarketInfoProvider fetches raw market data for coins.
type MarketInfoProvider interface {
	MarketInfos(ctx context.Context, coinUIDs []string, currencyCode string) ([]market.MarketInfo, error)
}

// CurrencyManager exposes the user's base currency.
type CurrencyManager interface {
	BaseCurrency() model.Currency
	// BaseCurrencyUpdated notifies after the base currency changes.
	BaseCurrencyUpdated() (<-chan struct{}, func())
}

// BackgroundListener observes application foreground transitions.
// Methods are called on the notifier's goroutine and must not block.
type BackgroundListener interface {
	WillEnterForeground()
	DidEnterBackground()
}

// BackgroundManager notifies listeners about foreground transitions.
type BackgroundManager interface {
	RegisterListener(listener BackgroundListener)
	UnregisterListener(listener BackgroundListener)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
