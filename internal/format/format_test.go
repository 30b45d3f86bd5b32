package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount string
		code   string
		want   string
	}{
		{"0", "USD", "$0.00"},
		{"1234.5", "USD", "$1,234.50"},
		{"1234567.891", "EUR", "€1,234,567.89"},
		{"-12", "GBP", "-£12.00"},
		{"999.999", "INR", "₹1,000.00"},
		{"5", "XYZ", "$5.00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Currency(decimal.RequireFromString(tc.amount), tc.code), tc.amount)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "95%", Percent(95.2))
	require.Equal(t, "0%", Percent(0))
	require.Equal(t, "+1.5%", PercentChange(1.5))
	require.Equal(t, "+0.0%", PercentChange(0))
	require.Equal(t, "-3.0%", PercentChange(-3))
}

func TestDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Mar 5, 2026", Date(time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC)))

	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	got, err := ParseDate("", time.UTC, now)
	require.NoError(t, err)
	require.Equal(t, now, got)

	got, err = ParseDate("2026-01-31", time.UTC, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("31/01/2026", time.UTC, now)
	require.Error(t, err)
}
