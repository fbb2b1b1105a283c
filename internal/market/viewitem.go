package market

import (
	"strconv"

	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/shopspring/decimal"
)

const (
	rateMaxDigits     = 4
	diffMaxDigits     = 2
	shortFiatDigits   = 2
	noDiffPlaceholder = "----"
)

// MarketViewItem is a display row for one market item.
type MarketViewItem struct {
	CoinUID string
	Code    string
	Name    string
	Rate    string
	Value   format.ColoredValue
	Rank    string
}

// NewMarketViewItem renders item with the trailing value selected by field.
func NewMarketViewItem(item MarketItem, field MarketField, formatter *format.NumberFormatter) MarketViewItem {
	view := MarketViewItem{
		CoinUID: item.Coin.UID,
		Code:    item.Coin.Code,
		Name:    item.Coin.Name,
		Rate:    formatter.FormatFiat(item.Rate.Value, item.Rate.Currency.Symbol, 0, rateDigits(item.Rate.Value)),
	}
	if item.Rank > 0 {
		view.Rank = strconv.Itoa(item.Rank)
	}

	switch field {
	case MarketCap:
		view.Value = format.ColoredValue{
			Value: formatter.FormatFiatShort(item.MarketCap.Value, item.MarketCap.Currency.Symbol, shortFiatDigits),
			Color: format.ColorNeutral,
		}
	case Volume:
		view.Value = format.ColoredValue{
			Value: formatter.FormatFiatShort(item.Volume.Value, item.Volume.Currency.Symbol, shortFiatDigits),
			Color: format.ColorNeutral,
		}
	default:
		view.Value = diffValue(item.Diff, formatter)
	}

	return view
}

// NewMarketViewItems renders items in order.
func NewMarketViewItems(items []MarketItem, field MarketField, formatter *format.NumberFormatter) []MarketViewItem {
	views := make([]MarketViewItem, 0, len(items))
	for _, item := range items {
		views = append(views, NewMarketViewItem(item, field, formatter))
	}
	return views
}

func diffValue(diff *decimal.Decimal, formatter *format.NumberFormatter) format.ColoredValue {
	if diff == nil {
		return format.ColoredValue{Value: noDiffPlaceholder, Color: format.ColorNeutral}
	}

	color := format.ColorPositive
	if diff.IsNegative() {
		color = format.ColorNegative
	}
	return format.ColoredValue{Value: formatter.FormatPercent(*diff, diffMaxDigits), Color: color}
}

// rateDigits keeps small prices readable.
func rateDigits(rate decimal.Decimal) int {
	if rate.Abs().LessThan(decimal.NewFromInt(1)) {
		return rateMaxDigits + 2
	}
	return rateMaxDigits
}
