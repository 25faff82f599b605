package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountPlainNumeric(t *testing.T) {
	amount, err := ParseAmount("1200.50")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1200.50")))
}

func TestParseAmountCurrencyPrefix(t *testing.T) {
	cases := map[string]string{
		"₹8,000":      "8000",
		"Rs. 1200.50": "1200.50",
		"INR 12 000":  "12000",
		"  ₹ 2,500 ":  "2500",
	}
	for raw, want := range cases {
		amount, err := ParseAmount(raw)
		require.NoError(t, err, "input %q", raw)
		assert.True(t, amount.Equal(decimal.RequireFromString(want)), "input %q: got %s", raw, amount)
	}
}

func TestParseAmountTrailingJunkStopsParse(t *testing.T) {
	amount, err := ParseAmount("500/- only")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(500)))
}

func TestParseAmountRejectsNonNumeric(t *testing.T) {
	_, err := ParseAmount("free")
	require.Error(t, err)

	_, err = ParseAmount("   ")
	require.Error(t, err)
}

func TestParseAmountKeepsLeadingSign(t *testing.T) {
	cases := map[string]string{
		"-100":    "-100",
		"₹-2,500": "-2500",
		"Rs. -50": "-50",
	}
	for raw, want := range cases {
		amount, err := ParseAmount(raw)
		require.NoError(t, err, "input %q", raw)
		assert.True(t, amount.Equal(decimal.RequireFromString(want)), "input %q: got %s", raw, amount)
	}
}

func TestMustPositiveRejectsZeroAndNegative(t *testing.T) {
	_, err := MustPositive("0")
	require.Error(t, err)

	_, err = MustPositive("-100")
	require.Error(t, err)

	_, err = MustPositive("₹-2,500")
	require.Error(t, err)

	amount, err := MustPositive("₹12,000")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(12000)))
}
