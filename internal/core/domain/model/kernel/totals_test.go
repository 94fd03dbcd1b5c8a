package kernel_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTotals(t *testing.T) {
	t.Run("should round each amount to the cent", func(t *testing.T) {
		totals, err := kernel.NewTotals(
			decimal.RequireFromString("1.005"),
			decimal.RequireFromString("0.333"),
			decimal.RequireFromString("1.338"),
		)

		require.NoError(t, err)
		assert.True(t, totals.HT().Equal(decimal.RequireFromString("1.01")), "got %s", totals.HT())
		assert.True(t, totals.TVA().Equal(decimal.RequireFromString("0.33")), "got %s", totals.TVA())
		assert.True(t, totals.TTC().Equal(decimal.RequireFromString("1.34")), "got %s", totals.TTC())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewTotals(
			decimal.NewFromInt(-1),
			decimal.Zero,
			decimal.Zero,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTotals_Add(t *testing.T) {
	a, err := kernel.NewTotals(
		decimal.RequireFromString("2.00"),
		decimal.RequireFromString("0.11"),
		decimal.RequireFromString("2.11"),
	)
	require.NoError(t, err)

	b, err := kernel.NewTotals(
		decimal.RequireFromString("4.00"),
		decimal.RequireFromString("0.22"),
		decimal.RequireFromString("4.22"),
	)
	require.NoError(t, err)

	sum := a.Add(b)
	assert.True(t, sum.HT().Equal(decimal.RequireFromString("6.00")))
	assert.True(t, sum.TVA().Equal(decimal.RequireFromString("0.33")))
	assert.True(t, sum.TTC().Equal(decimal.RequireFromString("6.33")))
}

func TestZeroTotals(t *testing.T) {
	zero := kernel.ZeroTotals()

	assert.True(t, zero.HT().IsZero())
	assert.True(t, zero.TVA().IsZero())
	assert.True(t, zero.TTC().IsZero())
}

func TestRoundCents(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "half up at the cent", in: "0.005", expected: "0.01"},
		{name: "below half stays down", in: "0.004", expected: "0.00"},
		{name: "already exact", in: "6.33", expected: "6.33"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := kernel.RoundCents(decimal.RequireFromString(tc.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)), "got %s", got)
		})
	}
}

func TestDocumentNumbers(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	t.Run("order number matches CMD format", func(t *testing.T) {
		number := kernel.NewOrderNumber(now)

		assert.Regexp(t, `^CMD-202506-\d{4}$`, number)
		require.NoError(t, kernel.ValidateDocumentNumber(number))
	})

	t.Run("supplier order number matches SO format", func(t *testing.T) {
		number := kernel.NewSupplierOrderNumber(now)

		assert.Regexp(t, `^SO-202506-\d{4}$`, number)
		require.NoError(t, kernel.ValidateDocumentNumber(number))
	})

	t.Run("month is zero padded", func(t *testing.T) {
		january := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
		assert.Regexp(t, `^CMD-202601-\d{4}$`, kernel.NewOrderNumber(january))
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		for _, number := range []string{"", "CMD-2025-0001", "XX-202506-0001", "CMD-202506-01"} {
			require.Error(t, kernel.ValidateDocumentNumber(number), "number %q", number)
		}
	})
}
