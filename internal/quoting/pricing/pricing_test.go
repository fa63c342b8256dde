package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/shared"
)

func TestLineItemTotal(t *testing.T) {
	t.Run("applies markup on top of quantity times unit price", func(t *testing.T) {
		total, err := LineItemTotal(2, 1000, 30)
		require.NoError(t, err)
		assert.InDelta(t, 2600, total, 0.001)
	})

	t.Run("zero markup keeps the raw extended price", func(t *testing.T) {
		total, err := LineItemTotal(3, 150.50, 0)
		require.NoError(t, err)
		assert.InDelta(t, 451.50, total, 0.001)
	})

	t.Run("zero quantity yields zero", func(t *testing.T) {
		total, err := LineItemTotal(0, 1000, 25)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := LineItemTotal(-1, 1000, 25)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		_, err := LineItemTotal(1, -50, 25)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{TotalPrice: 6000},
		{TotalPrice: 4000},
	}

	t.Run("percentage discount", func(t *testing.T) {
		totals, err := ComputeTotals(items, 10, DiscountPercentage)
		require.NoError(t, err)

		assert.InDelta(t, 10000, totals.Subtotal, 0.001)
		assert.InDelta(t, 1000, totals.Discount, 0.001)
		assert.InDelta(t, 9000, totals.TotalExGST, 0.001)
		assert.InDelta(t, 900, totals.GST, 0.001)
		assert.InDelta(t, 9900, totals.Total, 0.001)
		assert.InDelta(t, GSTRate, totals.GSTRate, 0.001)
	})

	t.Run("fixed discount", func(t *testing.T) {
		totals, err := ComputeTotals(items, 500, DiscountFixed)
		require.NoError(t, err)

		assert.InDelta(t, 500, totals.Discount, 0.001)
		assert.InDelta(t, 9500, totals.TotalExGST, 0.001)
		assert.InDelta(t, 10450, totals.Total, 0.001)
	})

	t.Run("fixed discount is capped at the subtotal", func(t *testing.T) {
		totals, err := ComputeTotals(items, 25000, DiscountFixed)
		require.NoError(t, err)

		assert.InDelta(t, 10000, totals.Discount, 0.001)
		assert.Zero(t, totals.TotalExGST)
		assert.Zero(t, totals.GST)
		assert.Zero(t, totals.Total)
	})

	t.Run("gst is derived from the discounted base", func(t *testing.T) {
		totals, err := ComputeTotals(items, 20, DiscountPercentage)
		require.NoError(t, err)

		assert.InDelta(t, totals.TotalExGST*GSTRate/100, totals.GST, 0.001)
		assert.InDelta(t, totals.TotalExGST+totals.GST, totals.Total, 0.001)
	})

	t.Run("no items", func(t *testing.T) {
		totals, err := ComputeTotals(nil, 0, DiscountPercentage)
		require.NoError(t, err)
		assert.Zero(t, totals.Subtotal)
		assert.Zero(t, totals.Total)
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		_, err := ComputeTotals(items, -5, DiscountPercentage)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("unknown discount type is rejected", func(t *testing.T) {
		_, err := ComputeTotals(items, 5, DiscountType("coupon"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}
