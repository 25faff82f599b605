package money

import (
	"strings"
	"unicode"

	pkgerrors "github.com/glambook/glambook-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a stored price value into a decimal. Legacy rows
// carry currency-prefixed strings ("₹8,000", "Rs. 1200.50"); newer rows
// are plain numerics. Non-numeric leading characters and thousands
// separators are stripped before parsing.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := normalize(raw)
	if cleaned == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price is empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price is not numeric")
	}
	return amount, nil
}

// MustPositive parses a stored price and rejects zero or negative amounts.
func MustPositive(raw string) (decimal.Decimal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return amount, nil
}

func normalize(raw string) string {
	s := strings.TrimSpace(raw)

	// Drop everything up to the first digit: currency symbols, ISO
	// prefixes ("Rs.", "INR"), and any whitespace between them. A '-'
	// directly before the first digit is a sign, not prefix junk.
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return ""
	}
	neg := start > 0 && s[start-1] == '-'
	s = s[start:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case r == ',' || r == ' ' || r == '_':
			// thousands separators
		default:
			// trailing junk ends the number
			return b.String()
		}
	}
	return b.String()
}
