package model

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Coin describes an asset the wallet can hold or display.
type Coin struct {
	UID      string `json:"uid"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// CoinValue is an amount of a coin expressed in whole units.
type CoinValue struct {
	Coin  Coin
	Value decimal.Decimal
}

// NewCoinValueFromBaseUnits scales an integer amount of the coin's smallest
// unit (wei, satoshi, jager) into whole coin units.
func NewCoinValueFromBaseUnits(coin Coin, raw decimal.Decimal) CoinValue {
	return CoinValue{Coin: coin, Value: raw.Shift(-coin.Decimals)}
}

// Abs returns the coin value without its sign.
func (v CoinValue) Abs() CoinValue {
	return CoinValue{Coin: v.Coin, Value: v.Value.Abs()}
}

// IsMaxValue reports whether the value is the largest amount representable by
// a 256-bit token balance, which token contracts treat as an unlimited allowance.
func (v CoinValue) IsMaxValue() bool {
	return v.Value.Equal(maxTokenValue(v.Coin.Decimals))
}

// MaxCoinValue returns the unlimited-allowance value for coin.
func MaxCoinValue(coin Coin) CoinValue {
	return CoinValue{Coin: coin, Value: maxTokenValue(coin.Decimals)}
}

func maxTokenValue(decimals int32) decimal.Decimal {
	allOnes := new(uint256.Int).SetAllOne()
	return decimal.NewFromBigInt(allOnes.ToBig(), -decimals)
}
