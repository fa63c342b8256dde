package pricing

import (
	"fmt"

	"github.com/voltquote/voltquote/internal/shared"
)

// LineItemTotal computes quantity * unitPrice * (1 + markup/100).
func LineItemTotal(quantity int, unitPrice, markupPercent float64) (float64, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}
	if unitPrice < 0 {
		return 0, fmt.Errorf("%w: unit price must not be negative", shared.ErrValidation)
	}
	return float64(quantity) * unitPrice * (1 + markupPercent/100), nil
}

// ComputeTotals derives quote totals from a line-item set and a discount
// input. The discount amount is capped at the subtotal so the excl-GST
// total never goes negative.
func ComputeTotals(items []LineItem, discount float64, discountType DiscountType) (Totals, error) {
	if discount < 0 {
		return Totals{}, fmt.Errorf("%w: discount must not be negative", shared.ErrValidation)
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}

	var discountAmount float64
	switch discountType {
	case DiscountPercentage:
		discountAmount = subtotal * discount / 100
	case DiscountFixed:
		discountAmount = discount
	default:
		return Totals{}, fmt.Errorf("%w: unknown discount type %q", shared.ErrValidation, discountType)
	}
	if discountAmount > subtotal {
		discountAmount = subtotal
	}

	totalExGST := subtotal - discountAmount
	gst := totalExGST * GSTRate / 100

	return Totals{
		Subtotal:     subtotal,
		Discount:     discountAmount,
		DiscountType: discountType,
		GST:          gst,
		GSTRate:      GSTRate,
		Total:        totalExGST + gst,
		TotalExGST:   totalExGST,
	}, nil
}
