package model

import "github.com/shopspring/decimal"

// Currency is a fiat or display currency prices are denominated in.
type Currency struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}

// CurrencyValue is an amount denominated in a display currency.
type CurrencyValue struct {
	Currency Currency
	Value    decimal.Decimal
}

// Abs returns the currency value without its sign.
func (v CurrencyValue) Abs() CurrencyValue {
	return CurrencyValue{Currency: v.Currency, Value: v.Value.Abs()}
}

// Mul returns the value multiplied by factor, keeping the currency.
func (v CurrencyValue) Mul(factor decimal.Decimal) CurrencyValue {
	return CurrencyValue{Currency: v.Currency, Value: v.Value.Mul(factor)}
}
