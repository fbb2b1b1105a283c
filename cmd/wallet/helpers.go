package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/config"
	"github.com/Veraticus/bankwallet/internal/currency"
	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/Veraticus/bankwallet/internal/market/favorites"
	"github.com/Veraticus/bankwallet/internal/marketkit"
	"github.com/Veraticus/bankwallet/internal/storage"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const defaultCurrencyCode = "USD"

// openStorage opens the configured database and brings its schema up to date.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path := config.DatabasePath()
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, databaseError(path, fmt.Errorf("failed to open database: %w", err))
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, databaseError(path, fmt.Errorf("failed to run migrations: %w", err))
	}

	return store, nil
}

func databaseError(path string, err error) error {
	if errors.Is(err, common.ErrDatabaseCorrupted) {
		return common.NewUserError(fmt.Sprintf("%s is not a usable wallet database, move it aside or pass --database", path), err)
	}
	return err
}

func newFormatter() *format.NumberFormatter {
	return format.NewNumberFormatter(language.English)
}

func newTranslator() *format.Translator {
	return format.NewTranslator(language.English)
}

func selectedTheme() themes.Theme {
	return themes.GetTheme(viper.GetString("tui.theme"))
}

func newCurrencyManager(ctx context.Context, store *storage.SQLiteStorage) (*currency.Manager, error) {
	fallback := viper.GetString("currency.base")
	if fallback == "" {
		fallback = defaultCurrencyCode
	}
	return currency.NewManager(ctx, store, fallback)
}

// newFavoritesRepository wires the favorites repository to the market data API.
func newFavoritesRepository(store *storage.SQLiteStorage) (*favorites.Repository, error) {
	cfg, err := config.LoadMarketConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load market config: %w", err)
	}

	client, err := marketkit.NewClient(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create market client: %w", err)
	}

	return favorites.NewRepository(store, client, favorites.WithCacheTTL(cfg.CacheTTL)), nil
}
