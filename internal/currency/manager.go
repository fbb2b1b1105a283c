// Package currency tracks the user's base currency.
package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/reactive"
	"github.com/Veraticus/bankwallet/internal/service"
)

// BaseCurrencyPreference is the preference key holding the base currency code.
const BaseCurrencyPreference = "base_currency_code"

// Supported lists the currencies the wallet can display.
var Supported = []model.Currency{
	{Code: "USD", Symbol: "$", Decimals: 2},
	{Code: "EUR", Symbol: "€", Decimals: 2},
	{Code: "GBP", Symbol: "£", Decimals: 2},
	{Code: "JPY", Symbol: "¥", Decimals: 0},
	{Code: "CHF", Symbol: "Fr.", Decimals: 2},
	{Code: "AUD", Symbol: "A$", Decimals: 2},
	{Code: "CAD", Symbol: "C$", Decimals: 2},
	{Code: "CNY", Symbol: "¥", Decimals: 2},
	{Code: "RUB", Symbol: "₽", Decimals: 2},
	{Code: "BRL", Symbol: "R$", Decimals: 2},
}

// Lookup returns the supported currency with code.
func Lookup(code string) (model.Currency, error) {
	for _, c := range Supported {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return model.Currency{}, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, code)
}

// Manager holds the base currency and persists changes.
type Manager struct {
	store   service.PreferenceStore
	updated *reactive.Signal
	logger  *slog.Logger
	current model.Currency
	mu      sync.RWMutex
}

var _ service.CurrencyManager = (*Manager)(nil)

// NewManager loads the persisted base currency, falling back to fallbackCode
// when none is stored.
func NewManager(ctx context.Context, store service.PreferenceStore, fallbackCode string) (*Manager, error) {
	m := &Manager{
		store:   store,
		updated: reactive.NewSignal(),
		logger:  slog.Default().With("component", "currency_manager"),
	}

	code, err := store.GetPreference(ctx, BaseCurrencyPreference)
	switch {
	case errors.Is(err, common.ErrNotFound):
		code = fallbackCode
	case err != nil:
		return nil, fmt.Errorf("failed to load base currency: %w", err)
	}

	current, err := Lookup(code)
	if err != nil {
		m.logger.Warn("Unsupported base currency, using USD", "code", code)
		current = Supported[0]
	}
	m.current = current
	return m, nil
}

// BaseCurrency returns the current base currency.
func (m *Manager) BaseCurrency() model.Currency {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// BaseCurrencyUpdated notifies after SetBaseCurrency changes the currency.
func (m *Manager) BaseCurrencyUpdated() (<-chan struct{}, func()) {
	return m.updated.Subscribe()
}

// Currencies returns the supported currencies.
func (m *Manager) Currencies() []model.Currency {
	return append([]model.Currency(nil), Supported...)
}

// SetBaseCurrency persists code as the base currency and notifies subscribers.
// Setting the current currency again is a no-op.
func (m *Manager) SetBaseCurrency(ctx context.Context, code string) error {
	next, err := Lookup(code)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.current == next {
		m.mu.Unlock()
		return nil
	}
	if err := m.store.SetPreference(ctx, BaseCurrencyPreference, next.Code); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to save base currency: %w", err)
	}
	m.current = next
	m.mu.Unlock()

	m.logger.Info("Base currency changed", "code", next.Code)
	m.updated.Notify()
	return nil
}
