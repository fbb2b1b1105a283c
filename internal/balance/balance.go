// Package balance builds the account balance screen.
package balance

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/shopspring/decimal"
)

const hiddenValue = "*****"

// AccountViewItem identifies the account shown in the header.
type AccountViewItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Watch bool   `json:"watch"`
}

// BalanceItem is one coin held by an account.
type BalanceItem struct {
	// Rate is the coin price in the base currency; nil when unknown.
	Rate    *decimal.Decimal `json:"rate"`
	Diff    *decimal.Decimal `json:"diff"`
	Coin    model.Coin       `json:"coin"`
	Balance decimal.Decimal  `json:"balance"`
}

func (b BalanceItem) fiat() decimal.Decimal {
	if b.Rate == nil {
		return decimal.Zero
	}
	return b.Balance.Mul(*b.Rate)
}

// BalanceViewItem is a display row for one coin.
type BalanceViewItem struct {
	FiatValue *format.ColoredValue
	Diff      *format.ColoredValue
	CoinUID   string
	Code      string
	Name      string
	CoinValue string
}

// HeaderViewItem is the total shown above the balances.
type HeaderViewItem struct {
	Total  string
	Hidden bool
}

// ScreenViewItem is everything the balance screen renders.
type ScreenViewItem struct {
	Account AccountViewItem
	Header  HeaderViewItem
	Items   []BalanceViewItem
}

// IsEmpty reports whether the account holds no coins.
func (s ScreenViewItem) IsEmpty() bool {
	return len(s.Items) == 0
}

// Builder converts balances into view items.
type Builder struct {
	formatter *format.NumberFormatter
}

// NewBuilder creates a balance screen builder.
func NewBuilder(formatter *format.NumberFormatter) *Builder {
	return &Builder{formatter: formatter}
}

// BuildScreen sorts balances by fiat value and totals them in currency.
// hidden masks every amount.
func (b *Builder) BuildScreen(account AccountViewItem, balances []BalanceItem, currency model.Currency, hidden bool) ScreenViewItem {
	sorted := slices.Clone(balances)
	slices.SortStableFunc(sorted, func(x, y BalanceItem) int {
		return y.fiat().Cmp(x.fiat())
	})

	total := decimal.Zero
	items := make([]BalanceViewItem, 0, len(sorted))
	for _, item := range sorted {
		total = total.Add(item.fiat())
		items = append(items, b.viewItem(item, currency, hidden))
	}

	header := HeaderViewItem{Hidden: hidden, Total: hiddenValue}
	if !hidden {
		header.Total = b.formatter.FormatFiat(total, currency.Symbol, 0, int(currency.Decimals))
	}

	return ScreenViewItem{Account: account, Header: header, Items: items}
}

func (b *Builder) viewItem(item BalanceItem, currency model.Currency, hidden bool) BalanceViewItem {
	view := BalanceViewItem{
		CoinUID:   item.Coin.UID,
		Code:      item.Coin.Code,
		Name:      item.Coin.Name,
		CoinValue: hiddenValue,
	}

	if item.Diff != nil {
		color := format.ColorPositive
		if item.Diff.IsNegative() {
			color = format.ColorNegative
		}
		view.Diff = &format.ColoredValue{Value: b.formatter.FormatPercent(*item.Diff, 2), Color: color}
	}

	if hidden {
		return view
	}

	view.CoinValue = b.formatter.FormatCoin(item.Balance, item.Coin.Code, 0, b.formatter.SignificantDecimalCoin(item.Balance))
	if item.Rate != nil {
		view.FiatValue = &format.ColoredValue{
			Value: b.formatter.FormatFiat(item.fiat(), currency.Symbol, 0, int(currency.Decimals)),
			Color: format.ColorNeutral,
		}
	}
	return view
}

// Snapshot is an account's balances as exported to JSON.
type Snapshot struct {
	Account  AccountViewItem `json:"account"`
	Currency string          `json:"currency"`
	Balances []BalanceItem   `json:"balances"`
	Hidden   bool            `json:"hide_balance"`
}

// DecodeSnapshot reads a balance snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode balance snapshot: %w", err)
	}
	if snapshot.Account.Name == "" {
		return Snapshot{}, fmt.Errorf("balance snapshot has no account name")
	}
	return snapshot, nil
}
