package compose

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountInput applies one typed character to the amount field. Only digits
// and a single decimal point are accepted. The text is re-parsed after every
// accepted character; when it does not parse yet (a lone "."), the previous
// value is kept.
func AmountInput(value decimal.Decimal, text string, r rune) (decimal.Decimal, string, bool) {
	switch {
	case r >= '0' && r <= '9':
	case r == '.' && !strings.Contains(text, "."):
	default:
		return value, text, false
	}

	text += string(r)

	if parsed, ok := parseAmountText(text); ok {
		return parsed, text, true
	}
	return value, text, true
}

// AmountBackspace removes the last character of the amount text and re-parses
// it, falling back to zero.
func AmountBackspace(text string) (decimal.Decimal, string) {
	text = dropLast(text)

	if parsed, ok := parseAmountText(text); ok {
		return parsed, text
	}
	return decimal.Zero, text
}

// parseAmountText accepts the partial forms that show up while typing,
// such as "12." and ".5".
func parseAmountText(text string) (decimal.Decimal, bool) {
	s := strings.TrimSuffix(text, ".")
	if s == "" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
