package transactions

import (
	"time"

	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/Veraticus/bankwallet/internal/model"
)

const (
	fiatMinDigits = 0
	fiatMaxDigits = 2
	infinityGlyph = "∞"
)

// Factory converts records into view items. It keeps no mutable state, so a
// single Factory may be shared by concurrent callers.
type Factory struct {
	formatter  *format.NumberFormatter
	translator *format.Translator
	addresses  AddressMapper
}

// NewFactory creates a view item factory.
func NewFactory(formatter *format.NumberFormatter, translator *format.Translator, addresses AddressMapper) *Factory {
	return &Factory{
		formatter:  formatter,
		translator: translator,
		addresses:  addresses,
	}
}

// Convert derives status and progress from the item's chain head and builds
// the view item.
func (f *Factory) Convert(item TransactionItem) TransactionViewItem {
	var (
		lastHeight    *int64
		lastTimestamp *int64
	)
	if item.LastBlockInfo != nil {
		height := item.LastBlockInfo.Height
		lastHeight = &height
		lastTimestamp = item.LastBlockInfo.Timestamp
	}

	status := item.Record.Status(lastHeight)
	return f.Build(item.Record, item.CurrencyValue, status, ProgressPercent(status), lastTimestamp)
}

// ConvertAll converts items in order.
func (f *Factory) ConvertAll(items []TransactionItem) []TransactionViewItem {
	out := make([]TransactionViewItem, 0, len(items))
	for _, item := range items {
		out = append(out, f.Convert(item))
	}
	return out
}

// Build produces exactly one view item for record. status is accepted for
// callers that already resolved it; the display only depends on progress.
func (f *Factory) Build(
	record model.TransactionRecord,
	currencyValue *model.CurrencyValue,
	_ model.TransactionStatus,
	progress *int,
	lastBlockTimestamp *int64,
) TransactionViewItem {
	b := &viewItemBuilder{
		factory:            f,
		currencyValue:      currencyValue,
		progress:           progress,
		lastBlockTimestamp: lastBlockTimestamp,
	}
	record.Accept(b)
	return b.item
}

// viewItemBuilder implements model.RecordVisitor for a single Build call.
type viewItemBuilder struct {
	factory            *Factory
	currencyValue      *model.CurrencyValue
	progress           *int
	lastBlockTimestamp *int64
	item               TransactionViewItem
}

var _ model.RecordVisitor = (*viewItemBuilder)(nil)

func (b *viewItemBuilder) base(r *model.RecordBase, icon Icon, title, subtitle string) TransactionViewItem {
	return TransactionViewItem{
		UID:      r.UID,
		Icon:     icon,
		Progress: b.progress,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Unix(r.Timestamp, 0),
	}
}

func (b *viewItemBuilder) VisitEvmIncoming(r *model.EvmIncomingTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconIncoming,
		f.translator.Get(format.KeyReceive),
		f.translator.Get(format.KeyFrom, f.nameOrTruncated(r.From)))
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorPositive)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	b.item = item
}

func (b *viewItemBuilder) VisitEvmOutgoing(r *model.EvmOutgoingTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconOutgoing,
		f.translator.Get(format.KeySend),
		f.translator.Get(format.KeyTo, f.nameOrTruncated(r.To)))
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorOutgoing)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	item.SentToSelf = r.SentToSelf
	b.item = item
}

func (b *viewItemBuilder) VisitApprove(r *model.ApproveTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconApprove,
		f.translator.Get(format.KeyApprove),
		f.translator.Get(format.KeyFrom, f.nameOrTruncated(r.Spender)))

	if r.Value.IsMaxValue() {
		item.PrimaryValue = &format.ColoredValue{Value: infinityGlyph, Color: format.ColorUnsigned}
		item.SecondaryValue = &format.ColoredValue{
			Value: f.translator.Get(format.KeyUnlimited, r.Value.Coin.Code),
			Color: format.ColorNeutral,
		}
	} else {
		item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorUnsigned)
		item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	}
	b.item = item
}

func (b *viewItemBuilder) VisitSwap(r *model.SwapTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconSwap,
		f.translator.Get(format.KeySwap),
		f.translator.Get(format.KeyFrom, f.nameOrTruncated(r.ExchangeAddress)))

	item.PrimaryValue = f.coinValue(r.ValueIn, format.ColorOutgoing)
	if r.ValueOut != nil {
		color := format.ColorPositive
		if r.ForeignRecipient {
			color = format.ColorNeutral
		}
		item.SecondaryValue = f.coinValue(*r.ValueOut, color)
	}
	b.item = item
}

func (b *viewItemBuilder) VisitContractCall(r *model.ContractCallTransactionRecord) {
	f := b.factory
	title := f.translator.Get(format.KeyContractCall)
	if name := r.Source.Blockchain.Name; name != "" {
		title = name + " " + title
	}

	subtitle := f.translator.Get(format.KeyNoAddress)
	if r.ContractAddress != "" {
		subtitle = f.translator.Get(format.KeyFrom, f.nameOrTruncated(r.ContractAddress))
	}

	b.item = b.base(&r.RecordBase, IconUnordered, title, subtitle)
}

func (b *viewItemBuilder) VisitContractCreation(r *model.ContractCreationTransactionRecord) {
	f := b.factory
	b.item = b.base(&r.RecordBase, IconUnordered,
		f.translator.Get(format.KeyContractCreation),
		f.translator.Get(format.KeyNoAddress))
}

func (b *viewItemBuilder) VisitBitcoinIncoming(r *model.BitcoinIncomingTransactionRecord) {
	f := b.factory
	subtitle := f.translator.Get(format.KeyNoAddress)
	if r.From != nil {
		subtitle = f.translator.Get(format.KeyFrom, f.nameOrTruncated(*r.From))
	}

	item := b.base(&r.RecordBase, IconIncoming, f.translator.Get(format.KeyReceive), subtitle)
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorPositive)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	item.DoubleSpend = r.HasConflict()
	item.Locked = lockedFlag(r.LockState(b.lastBlockTimestamp))
	b.item = item
}

func (b *viewItemBuilder) VisitBitcoinOutgoing(r *model.BitcoinOutgoingTransactionRecord) {
	f := b.factory
	subtitle := f.translator.Get(format.KeyNoAddress)
	if r.To != nil {
		subtitle = f.translator.Get(format.KeyTo, f.nameOrTruncated(*r.To))
	}

	item := b.base(&r.RecordBase, IconOutgoing, f.translator.Get(format.KeySend), subtitle)
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorOutgoing)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	item.SentToSelf = r.SentToSelf
	item.DoubleSpend = r.HasConflict()
	item.Locked = lockedFlag(r.LockState(b.lastBlockTimestamp))
	b.item = item
}

func (b *viewItemBuilder) VisitBinanceChainIncoming(r *model.BinanceChainIncomingTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconIncoming,
		f.translator.Get(format.KeyReceive),
		f.translator.Get(format.KeyFrom, f.nameOrTruncated(r.From)))
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorPositive)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	b.item = item
}

func (b *viewItemBuilder) VisitBinanceChainOutgoing(r *model.BinanceChainOutgoingTransactionRecord) {
	f := b.factory
	item := b.base(&r.RecordBase, IconOutgoing,
		f.translator.Get(format.KeySend),
		f.translator.Get(format.KeyTo, f.nameOrTruncated(r.To)))
	item.PrimaryValue = f.fiatValue(b.currencyValue, format.ColorOutgoing)
	item.SecondaryValue = f.coinValue(r.Value, format.ColorNeutral)
	item.SentToSelf = r.SentToSelf
	b.item = item
}

// lockedFlag keeps "no lock data" (nil) distinct from "not locked" (false).
func lockedFlag(state *model.LockState) *bool {
	if state == nil {
		return nil
	}
	locked := state.Locked
	return &locked
}

func (f *Factory) fiatValue(value *model.CurrencyValue, color format.Color) *format.ColoredValue {
	if value == nil {
		return nil
	}
	return &format.ColoredValue{
		Value: f.formatter.FormatFiat(value.Value.Abs(), value.Currency.Symbol, fiatMinDigits, fiatMaxDigits),
		Color: color,
	}
}

func (f *Factory) coinValue(value model.CoinValue, color format.Color) *format.ColoredValue {
	significant := f.formatter.SignificantDecimalCoin(value.Value)
	return &format.ColoredValue{
		Value: f.formatter.FormatCoin(value.Value.Abs(), value.Coin.Code, 0, significant),
		Color: color,
	}
}

func (f *Factory) nameOrTruncated(address string) string {
	if f.addresses != nil {
		if name, ok := f.addresses.Title(address); ok {
			return name
		}
	}
	return TruncateAddress(address)
}
