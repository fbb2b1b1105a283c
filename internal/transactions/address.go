package transactions

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
)

const truncatedSideLength = 5

// AddressMapper resolves well-known addresses to display names.
type AddressMapper interface {
	Title(address string) (string, bool)
}

// AddressBook is a static AddressMapper. EVM addresses match regardless of
// checksum casing; bitcoin addresses match on their canonical encoding.
type AddressBook struct {
	evm   map[common.Address]string
	other map[string]string
}

// NewAddressBook builds an address book from address to name entries.
func NewAddressBook(entries map[string]string) *AddressBook {
	b := &AddressBook{
		evm:   make(map[common.Address]string),
		other: make(map[string]string),
	}
	for address, name := range entries {
		b.Add(address, name)
	}
	return b
}

// DefaultAddressBook returns the names of widely used exchange contracts.
func DefaultAddressBook() *AddressBook {
	return NewAddressBook(map[string]string{
		"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D": "Uniswap v.2",
		"0xE592427A0AEce92De3Edee1F18E0157C05861564": "Uniswap v.3",
		"0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45": "Uniswap v.3",
		"0x10ED43C718714eb63d5aA57B78B54704E256024E": "PancakeSwap",
		"0x1111111254fb6c44bAC0beD2854e76F90643097d": "1inch",
		"0x1111111254EEB25477B68fb85Ed929f73A960582": "1inch",
	})
}

// Add registers a display name for address.
func (b *AddressBook) Add(address, name string) {
	if common.IsHexAddress(address) {
		b.evm[common.HexToAddress(address)] = name
		return
	}
	b.other[canonicalAddress(address)] = name
}

// Title returns the display name registered for address.
func (b *AddressBook) Title(address string) (string, bool) {
	if common.IsHexAddress(address) {
		name, ok := b.evm[common.HexToAddress(address)]
		return name, ok
	}
	name, ok := b.other[canonicalAddress(address)]
	return name, ok
}

func canonicalAddress(address string) string {
	decoded, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
	if err != nil {
		return strings.TrimSpace(address)
	}
	return decoded.EncodeAddress()
}

// TruncateAddress shortens an address to its first and last five characters.
// Addresses too short to shorten are returned unchanged.
func TruncateAddress(address string) string {
	if len(address) <= 2*truncatedSideLength {
		return address
	}
	return address[:truncatedSideLength] + "..." + address[len(address)-truncatedSideLength:]
}
