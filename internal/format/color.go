package format

// Color is a semantic palette entry; themes map it to concrete colors.
type Color int

const (
	// ColorNeutral is used for secondary, unsigned amounts.
	ColorNeutral Color = iota
	// ColorUnsigned is used for primary amounts that carry no direction.
	ColorUnsigned
	// ColorPositive marks received funds and rising prices.
	ColorPositive
	// ColorOutgoing marks spent or sent funds.
	ColorOutgoing
	// ColorNegative marks falling prices.
	ColorNegative
)

func (c Color) String() string {
	switch c {
	case ColorNeutral:
		return "neutral"
	case ColorUnsigned:
		return "unsigned"
	case ColorPositive:
		return "positive"
	case ColorOutgoing:
		return "outgoing"
	case ColorNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// ColoredValue is a formatted string with the color it should be shown in.
type ColoredValue struct {
	Value string
	Color Color
}
