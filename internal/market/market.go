// Package market holds the market data model shared by the market screens.
package market

import (
	"fmt"
	"slices"

	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/shopspring/decimal"
)

// SortingField orders market lists.
type SortingField int

// Sorting fields in menu order.
const (
	HighestCap SortingField = iota
	LowestCap
	HighestVolume
	LowestVolume
	TopGainers
	TopLosers
)

// SortingFields lists every sorting field in menu order.
var SortingFields = []SortingField{HighestCap, LowestCap, HighestVolume, LowestVolume, TopGainers, TopLosers}

var sortingFieldKeys = map[SortingField]string{
	HighestCap:    "highest_cap",
	LowestCap:     "lowest_cap",
	HighestVolume: "highest_volume",
	LowestVolume:  "lowest_volume",
	TopGainers:    "top_gainers",
	TopLosers:     "top_losers",
}

var sortingFieldTitles = map[SortingField]string{
	HighestCap:    "Highest Cap",
	LowestCap:     "Lowest Cap",
	HighestVolume: "Highest Volume",
	LowestVolume:  "Lowest Volume",
	TopGainers:    "Top Gainers",
	TopLosers:     "Top Losers",
}

// Key returns the stable identifier used for persistence.
func (f SortingField) Key() string {
	if key, ok := sortingFieldKeys[f]; ok {
		return key
	}
	return fmt.Sprintf("sorting_field_%d", int(f))
}

// String returns the menu title.
func (f SortingField) String() string {
	if title, ok := sortingFieldTitles[f]; ok {
		return title
	}
	return f.Key()
}

// ParseSortingField resolves a persisted key.
func ParseSortingField(key string) (SortingField, error) {
	for field, k := range sortingFieldKeys {
		if k == key {
			return field, nil
		}
	}
	return HighestCap, fmt.Errorf("unknown sorting field %q", key)
}

// MarketField selects the value shown in the trailing column of a market row.
type MarketField int

// Market fields in menu order.
const (
	PriceDiff MarketField = iota
	MarketCap
	Volume
)

// MarketFields lists every market field in menu order.
var MarketFields = []MarketField{PriceDiff, MarketCap, Volume}

var marketFieldKeys = map[MarketField]string{
	PriceDiff: "price_diff",
	MarketCap: "market_cap",
	Volume:    "volume",
}

var marketFieldTitles = map[MarketField]string{
	PriceDiff: "Price",
	MarketCap: "MCap",
	Volume:    "Vol",
}

// Key returns the stable identifier used for persistence.
func (f MarketField) Key() string {
	if key, ok := marketFieldKeys[f]; ok {
		return key
	}
	return fmt.Sprintf("market_field_%d", int(f))
}

// String returns the menu title.
func (f MarketField) String() string {
	if title, ok := marketFieldTitles[f]; ok {
		return title
	}
	return f.Key()
}

// Next cycles to the following market field.
func (f MarketField) Next() MarketField {
	return MarketFields[(int(f)+1)%len(MarketFields)]
}

// ParseMarketField resolves a persisted key.
func ParseMarketField(key string) (MarketField, error) {
	for field, k := range marketFieldKeys {
		if k == key {
			return field, nil
		}
	}
	return PriceDiff, fmt.Errorf("unknown market field %q", key)
}

// MarketInfo is the raw market data for one coin as returned by a provider.
type MarketInfo struct {
	// PriceChange24h is a percentage; nil when the provider has no history.
	PriceChange24h *decimal.Decimal
	Coin           model.Coin
	Price          decimal.Decimal
	MarketCap      decimal.Decimal
	TotalVolume    decimal.Decimal
	Rank           int
}

// MarketItem is a coin's market data denominated in a currency.
type MarketItem struct {
	Diff      *decimal.Decimal
	Coin      model.Coin
	Rate      model.CurrencyValue
	MarketCap model.CurrencyValue
	Volume    model.CurrencyValue
	Rank      int
}

// NewMarketItem denominates info in currency.
func NewMarketItem(info MarketInfo, currency model.Currency) MarketItem {
	return MarketItem{
		Coin:      info.Coin,
		Rate:      model.CurrencyValue{Currency: currency, Value: info.Price},
		Diff:      info.PriceChange24h,
		MarketCap: model.CurrencyValue{Currency: currency, Value: info.MarketCap},
		Volume:    model.CurrencyValue{Currency: currency, Value: info.TotalVolume},
		Rank:      info.Rank,
	}
}

// Sort returns a copy of items ordered by field. The sort is stable and
// items without a price change sort last for the gainers and losers fields.
func Sort(items []MarketItem, field SortingField) []MarketItem {
	sorted := slices.Clone(items)

	slices.SortStableFunc(sorted, func(a, b MarketItem) int {
		switch field {
		case LowestCap:
			return a.MarketCap.Value.Cmp(b.MarketCap.Value)
		case HighestVolume:
			return b.Volume.Value.Cmp(a.Volume.Value)
		case LowestVolume:
			return a.Volume.Value.Cmp(b.Volume.Value)
		case TopGainers:
			return compareDiff(a.Diff, b.Diff, true)
		case TopLosers:
			return compareDiff(a.Diff, b.Diff, false)
		default:
			return b.MarketCap.Value.Cmp(a.MarketCap.Value)
		}
	})

	return sorted
}

func compareDiff(a, b *decimal.Decimal, descending bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if descending {
		return b.Cmp(*a)
	}
	return a.Cmp(*b)
}
