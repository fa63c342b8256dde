package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/quoting/margins"
)

func chargerTierPolicy() margins.MarginSettings {
	return margins.MarginSettings{
		DefaultMarkup: 20,
		VolumeDiscounts: []margins.VolumeDiscount{
			{MinimumQuantity: 2, DiscountPercentage: 10, ApplicableCategories: []string{"chargers"}},
		},
	}
}

func TestApplyVolumeDiscounts(t *testing.T) {
	t.Run("qualifying item gets the tier discount on unit price", func(t *testing.T) {
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 2, UnitPrice: 1000, Markup: 30, TotalPrice: 2600},
		}

		out := ApplyVolumeDiscounts(items, chargerTierPolicy())
		require.Len(t, out, 1)
		assert.InDelta(t, 900, out[0].UnitPrice, 0.001)
		assert.InDelta(t, 2340, out[0].TotalPrice, 0.001)
		// Input is left untouched.
		assert.InDelta(t, 1000, items[0].UnitPrice, 0.001)
	})

	t.Run("quantities aggregate per category", func(t *testing.T) {
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 1, UnitPrice: 1000, Markup: 0, TotalPrice: 1000},
			{ID: "b", Category: "chargers", Quantity: 1, UnitPrice: 2000, Markup: 0, TotalPrice: 2000},
		}

		out := ApplyVolumeDiscounts(items, chargerTierPolicy())
		assert.InDelta(t, 900, out[0].UnitPrice, 0.001)
		assert.InDelta(t, 1800, out[1].UnitPrice, 0.001)
	})

	t.Run("below the minimum quantity nothing changes", func(t *testing.T) {
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 1, UnitPrice: 1000, Markup: 30, TotalPrice: 1300},
		}

		out := ApplyVolumeDiscounts(items, chargerTierPolicy())
		assert.InDelta(t, 1000, out[0].UnitPrice, 0.001)
		assert.InDelta(t, 1300, out[0].TotalPrice, 0.001)
	})

	t.Run("other categories are untouched", func(t *testing.T) {
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 2, UnitPrice: 1000, Markup: 0, TotalPrice: 2000},
			{ID: "b", Category: "installation", Quantity: 2, UnitPrice: 500, Markup: 0, TotalPrice: 1000},
		}

		out := ApplyVolumeDiscounts(items, chargerTierPolicy())
		assert.InDelta(t, 900, out[0].UnitPrice, 0.001)
		assert.InDelta(t, 500, out[1].UnitPrice, 0.001)
	})

	t.Run("highest qualifying percentage wins", func(t *testing.T) {
		policy := margins.MarginSettings{
			VolumeDiscounts: []margins.VolumeDiscount{
				{MinimumQuantity: 2, DiscountPercentage: 5, ApplicableCategories: []string{"chargers"}},
				{MinimumQuantity: 4, DiscountPercentage: 12, ApplicableCategories: []string{"chargers"}},
				{MinimumQuantity: 10, DiscountPercentage: 20, ApplicableCategories: []string{"chargers"}},
			},
		}
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 5, UnitPrice: 100, Markup: 0, TotalPrice: 500},
		}

		out := ApplyVolumeDiscounts(items, policy)
		assert.InDelta(t, 88, out[0].UnitPrice, 0.001)
	})

	t.Run("empty policy returns an equal copy", func(t *testing.T) {
		items := []LineItem{
			{ID: "a", Category: "chargers", Quantity: 5, UnitPrice: 100, Markup: 10, TotalPrice: 550},
		}

		out := ApplyVolumeDiscounts(items, margins.MarginSettings{})
		assert.Equal(t, items, out)
	})
}
