package pricing

import (
	"github.com/voltquote/voltquote/internal/quoting/margins"
)

// ApplyVolumeDiscounts applies category-scoped quantity-tiered discounts
// from the policy to a line-item set and returns the adjusted copy.
//
// Quantities are aggregated per category, so three separate charger items
// of quantity 2 each qualify for a minimum-quantity-6 tier. For each item
// the highest qualifying percentage wins; ties fall to the earlier tier in
// the policy. The discount lowers the unit price and the line total is
// recomputed with the markup preserved. Items with no qualifying tier are
// returned unchanged.
func ApplyVolumeDiscounts(items []LineItem, policy margins.MarginSettings) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	if len(policy.VolumeDiscounts) == 0 {
		return out
	}

	quantityByCategory := make(map[string]int)
	for _, item := range items {
		quantityByCategory[item.Category] += item.Quantity
	}

	for i, item := range out {
		tier, ok := bestTier(policy.VolumeDiscounts, item.Category, quantityByCategory[item.Category])
		if !ok {
			continue
		}
		discounted := item.UnitPrice * (1 - tier.DiscountPercentage/100)
		total, err := LineItemTotal(item.Quantity, discounted, item.Markup)
		if err != nil {
			continue
		}
		out[i].UnitPrice = discounted
		out[i].TotalPrice = total
	}
	return out
}

func bestTier(tiers []margins.VolumeDiscount, category string, categoryQuantity int) (margins.VolumeDiscount, bool) {
	var best margins.VolumeDiscount
	found := false
	for _, tier := range tiers {
		if !tier.AppliesTo(category) || tier.MinimumQuantity > categoryQuantity {
			continue
		}
		if !found || tier.DiscountPercentage > best.DiscountPercentage {
			best = tier
			found = true
		}
	}
	return best, found
}
