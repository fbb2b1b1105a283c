package transactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{name: "forty characters", address: "abcdefghij0123456789abcdefghij0123456789", want: "abcde...56789"},
		{name: "evm address", address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", want: "0xdAC...31ec7"},
		{name: "exactly ten", address: "0123456789", want: "0123456789"},
		{name: "short", address: "bnb1to", want: "bnb1to"},
		{name: "empty", address: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateAddress(tt.address))
		})
	}
}

func TestAddressBook_Title(t *testing.T) {
	book := DefaultAddressBook()
	book.Add("bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", "Cold storage")

	tests := []struct {
		name     string
		address  string
		wantName string
		wantOK   bool
	}{
		{name: "checksummed", address: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", wantName: "Uniswap v.2", wantOK: true},
		{name: "lowercase", address: "0x7a250d5630b4cf539739df2c5dacb4c659f2488d", wantName: "Uniswap v.2", wantOK: true},
		{name: "without prefix", address: "1111111254fb6c44bac0bed2854e76f90643097d", wantName: "1inch", wantOK: true},
		{name: "bitcoin", address: "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", wantName: "Cold storage", wantOK: true},
		{name: "unknown evm", address: "0x0000000000000000000000000000000000000001", wantOK: false},
		{name: "garbage", address: "not an address", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := book.Title(tt.address)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
