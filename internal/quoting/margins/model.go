package margins

// VolumeDiscount is a quantity-tiered discount scoped to line-item categories.
type VolumeDiscount struct {
	MinimumQuantity      int      `json:"minimum_quantity"`
	DiscountPercentage   float64  `json:"discount_percentage"`
	ApplicableCategories []string `json:"applicable_categories"`
}

// AppliesTo reports whether the tier covers the given category.
func (d VolumeDiscount) AppliesTo(category string) bool {
	for _, c := range d.ApplicableCategories {
		if c == category {
			return true
		}
	}
	return false
}

// MarginSettings is the process-wide pricing policy. It is loaded once and
// shared read-only by quote computations; changes go through the explicit
// settings-update path, never through line-item edits.
type MarginSettings struct {
	DefaultMarkup   float64            `json:"default_markup"`
	CategoryMarkups map[string]float64 `json:"category_markups"`
	MinimumMargin   float64            `json:"minimum_margin"`
	MaximumDiscount float64            `json:"maximum_discount"`
	VolumeDiscounts []VolumeDiscount   `json:"volume_discounts"`
}

// MarkupFor returns the category markup, falling back to the default markup.
func (s MarginSettings) MarkupFor(category string) float64 {
	if m, ok := s.CategoryMarkups[category]; ok {
		return m
	}
	return s.DefaultMarkup
}

// Defaults returns the policy used before any settings have been saved.
func Defaults() MarginSettings {
	return MarginSettings{
		DefaultMarkup: 20,
		CategoryMarkups: map[string]float64{
			"chargers":     25,
			"accessories":  30,
			"installation": 35,
			"service":      40,
		},
		MinimumMargin:   10,
		MaximumDiscount: 20,
	}
}
