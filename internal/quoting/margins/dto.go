package margins

// UpdateSettingsRequest replaces the whole pricing policy in one call.
type UpdateSettingsRequest struct {
	DefaultMarkup   float64                `json:"default_markup" validate:"gte=0"`
	CategoryMarkups map[string]float64     `json:"category_markups,omitempty"`
	MinimumMargin   float64                `json:"minimum_margin" validate:"gte=0"`
	MaximumDiscount float64                `json:"maximum_discount" validate:"gte=0,lte=100"`
	VolumeDiscounts []VolumeDiscountUpdate `json:"volume_discounts,omitempty" validate:"dive"`
}

// VolumeDiscountUpdate mirrors VolumeDiscount for the update payload.
type VolumeDiscountUpdate struct {
	MinimumQuantity      int      `json:"minimum_quantity" validate:"required,gt=0"`
	DiscountPercentage   float64  `json:"discount_percentage" validate:"gte=0,lte=100"`
	ApplicableCategories []string `json:"applicable_categories" validate:"required,min=1"`
}

func (r UpdateSettingsRequest) toSettings() MarginSettings {
	settings := MarginSettings{
		DefaultMarkup:   r.DefaultMarkup,
		CategoryMarkups: r.CategoryMarkups,
		MinimumMargin:   r.MinimumMargin,
		MaximumDiscount: r.MaximumDiscount,
	}
	for _, tier := range r.VolumeDiscounts {
		settings.VolumeDiscounts = append(settings.VolumeDiscounts, VolumeDiscount{
			MinimumQuantity:      tier.MinimumQuantity,
			DiscountPercentage:   tier.DiscountPercentage,
			ApplicableCategories: tier.ApplicableCategories,
		})
	}
	return settings
}
