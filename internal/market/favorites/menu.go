package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/service"
)

// Preference keys for the favorites menu.
const (
	SortingFieldPreference = "market_favorites_sorting_field"
	MarketFieldPreference  = "market_favorites_market_field"
)

// MenuService persists the favorites screen's menu selections.
type MenuService struct {
	store  service.PreferenceStore
	logger *slog.Logger
}

// NewMenuService creates a menu service backed by store.
func NewMenuService(store service.PreferenceStore) *MenuService {
	return &MenuService{
		store:  store,
		logger: slog.Default().With("component", "favorites_menu"),
	}
}

// SortingField returns the persisted sorting field, or HighestCap.
func (m *MenuService) SortingField(ctx context.Context) market.SortingField {
	key, ok := m.load(ctx, SortingFieldPreference)
	if !ok {
		return market.HighestCap
	}
	field, err := market.ParseSortingField(key)
	if err != nil {
		m.logger.Warn("Ignoring persisted sorting field", "error", err)
		return market.HighestCap
	}
	return field
}

// SetSortingField persists field.
func (m *MenuService) SetSortingField(ctx context.Context, field market.SortingField) error {
	if err := m.store.SetPreference(ctx, SortingFieldPreference, field.Key()); err != nil {
		return fmt.Errorf("failed to save sorting field: %w", err)
	}
	return nil
}

// MarketField returns the persisted market field, or PriceDiff.
func (m *MenuService) MarketField(ctx context.Context) market.MarketField {
	key, ok := m.load(ctx, MarketFieldPreference)
	if !ok {
		return market.PriceDiff
	}
	field, err := market.ParseMarketField(key)
	if err != nil {
		m.logger.Warn("Ignoring persisted market field", "error", err)
		return market.PriceDiff
	}
	return field
}

// SetMarketField persists field.
func (m *MenuService) SetMarketField(ctx context.Context, field market.MarketField) error {
	if err := m.store.SetPreference(ctx, MarketFieldPreference, field.Key()); err != nil {
		return fmt.Errorf("failed to save market field: %w", err)
	}
	return nil
}

func (m *MenuService) load(ctx context.Context, key string) (string, bool) {
	value, err := m.store.GetPreference(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			m.logger.Warn("Failed to load preference", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}
