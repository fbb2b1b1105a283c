package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used by the transaction and market screens.
const (
	KeySend             = "Transactions_Send"
	KeyReceive          = "Transactions_Receive"
	KeySwap             = "Transactions_Swap"
	KeyApprove          = "Transactions_Approve"
	KeyContractCall     = "Transactions_ContractCall"
	KeyContractCreation = "Transactions_ContractCreation"
	KeyFrom             = "Transactions_From"
	KeyTo               = "Transactions_To"
	KeyUnlimited        = "Transaction_Unlimited"
	KeyNoAddress        = "Transactions_NoAddress"
)

var english = map[string]string{
	KeySend:             "Send",
	KeyReceive:          "Receive",
	KeySwap:             "Swap",
	KeyApprove:          "Approve",
	KeyContractCall:     "Contract Call",
	KeyContractCreation: "Contract Creation",
	KeyFrom:             "From: %s",
	KeyTo:               "To: %s",
	KeyUnlimited:        "Unlimited %s",
	KeyNoAddress:        "---",
}

var messages = mustBuildCatalog()

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		if err := b.SetString(language.English, key, msg); err != nil {
			return nil, fmt.Errorf("message %s: %w", key, err)
		}
	}
	return b, nil
}

func mustBuildCatalog() *catalog.Builder {
	b, err := buildCatalog()
	if err != nil {
		panic(err)
	}
	return b
}

// Translator resolves message keys into localized strings.
type Translator struct {
	printer *message.Printer
}

// NewTranslator creates a translator for the catalog language closest to
// tag. Locales without messages get English.
func NewTranslator(tag language.Tag) *Translator {
	_, index, _ := messages.Matcher().Match(tag)
	return &Translator{printer: message.NewPrinter(messages.Languages()[index], message.Catalog(messages))}
}

// Get returns the localized message for key formatted with args.
func (t *Translator) Get(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
