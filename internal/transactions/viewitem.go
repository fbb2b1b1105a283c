// Package transactions maps transaction records to display view items.
package transactions

import (
	"math"
	"time"

	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/Veraticus/bankwallet/internal/model"
)

// Icon names the glyph shown next to a transaction.
type Icon string

// Transaction icons.
const (
	IconIncoming  Icon = "incoming"
	IconOutgoing  Icon = "outgoing"
	IconSwap      Icon = "swap"
	IconApprove   Icon = "approve"
	IconUnordered Icon = "unordered"
)

// PendingProgress is the progress shown for transactions not yet in a block.
const PendingProgress = 15

// TransactionViewItem is a presentation-ready projection of a record.
type TransactionViewItem struct {
	Date           time.Time
	Progress       *int
	PrimaryValue   *format.ColoredValue
	SecondaryValue *format.ColoredValue
	// Locked is nil when the record has no lock information.
	Locked      *bool
	UID         string
	Icon        Icon
	Title       string
	Subtitle    string
	SentToSelf  bool
	DoubleSpend bool
}

// TransactionItem bundles a record with the context needed to display it.
type TransactionItem struct {
	Record        model.TransactionRecord
	CurrencyValue *model.CurrencyValue
	LastBlockInfo *model.LastBlockInfo
}

// ProgressPercent quantizes a status into the 0-100 value shown by the UI.
// Only pending and processing transactions show progress.
func ProgressPercent(status model.TransactionStatus) *int {
	switch status.Kind {
	case model.StatusPending:
		p := PendingProgress
		return &p
	case model.StatusProcessing:
		p := int(math.Round(status.Progress * 100))
		return &p
	default:
		return nil
	}
}
