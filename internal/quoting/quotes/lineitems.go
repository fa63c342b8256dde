package quotes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/pricing"
	"github.com/voltquote/voltquote/internal/shared"
)

// LineItemPatch is a partial update of a line item. Nil fields are left
// untouched; changing quantity, unit price or markup triggers a line total
// recompute.
type LineItemPatch struct {
	Type           *pricing.ItemType
	ProductID      *string
	Name           *string
	Description    *string
	Category       *string
	Quantity       *int
	UnitPrice      *float64
	Markup         *float64
	Cost           *float64
	Unit           *pricing.Unit
	IsOptional     *bool
	Specifications map[string]string
	Supplier       *pricing.SupplierInfo
}

// AddLineItem assigns an id, derives the line total and appends the item,
// then recomputes quote totals preserving the existing discount input.
func AddLineItem(q Quote, item pricing.LineItem) (Quote, error) {
	if item.Quantity <= 0 {
		return q, fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
	}
	total, err := pricing.LineItemTotal(item.Quantity, item.UnitPrice, item.Markup)
	if err != nil {
		return q, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.TotalPrice = total

	items := make([]pricing.LineItem, len(q.LineItems), len(q.LineItems)+1)
	copy(items, q.LineItems)
	q.LineItems = append(items, item)

	if err := recomputeTotals(&q); err != nil {
		return q, err
	}
	return q, nil
}

// UpdateLineItem merges a patch into the matching item and recomputes
// totals. It fails with a not-found error when the id is absent.
func UpdateLineItem(q Quote, id string, patch LineItemPatch) (Quote, error) {
	index := -1
	for i, item := range q.LineItems {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return q, fmt.Errorf("%w: line item %s", shared.ErrNotFound, id)
	}

	items := make([]pricing.LineItem, len(q.LineItems))
	copy(items, q.LineItems)
	item := items[index]

	priceChanged := false
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.ProductID != nil {
		item.ProductID = patch.ProductID
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return q, fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
		}
		item.Quantity = *patch.Quantity
		priceChanged = true
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
		priceChanged = true
	}
	if patch.Markup != nil {
		item.Markup = *patch.Markup
		priceChanged = true
	}
	if patch.Cost != nil {
		item.Cost = *patch.Cost
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.IsOptional != nil {
		item.IsOptional = *patch.IsOptional
	}
	if patch.Specifications != nil {
		item.Specifications = patch.Specifications
	}
	if patch.Supplier != nil {
		item.Supplier = patch.Supplier
	}

	if priceChanged {
		total, err := pricing.LineItemTotal(item.Quantity, item.UnitPrice, item.Markup)
		if err != nil {
			return q, err
		}
		item.TotalPrice = total
	}

	items[index] = item
	q.LineItems = items

	if err := recomputeTotals(&q); err != nil {
		return q, err
	}
	return q, nil
}

// RemoveLineItem filters the item out and recomputes totals. Removing an
// unknown id is a no-op, not an error.
func RemoveLineItem(q Quote, id string) (Quote, error) {
	items := make([]pricing.LineItem, 0, len(q.LineItems))
	for _, item := range q.LineItems {
		if item.ID != id {
			items = append(items, item)
		}
	}
	q.LineItems = items

	if err := recomputeTotals(&q); err != nil {
		return q, err
	}
	return q, nil
}

// ApplyVolumeDiscounts runs the policy's volume tiers over the line items
// and recomputes totals. This is an explicit, once-per-quote operation:
// the tier discount rewrites unit prices, so folding it into the regular
// recompute path would compound the reduction on every edit.
func ApplyVolumeDiscounts(q Quote, policy margins.MarginSettings) (Quote, error) {
	q.LineItems = pricing.ApplyVolumeDiscounts(q.LineItems, policy)
	if err := recomputeTotals(&q); err != nil {
		return q, err
	}
	return q, nil
}

func recomputeTotals(q *Quote) error {
	if q.DiscountType == "" {
		q.DiscountType = pricing.DiscountPercentage
	}
	totals, err := pricing.ComputeTotals(q.LineItems, q.Discount, q.DiscountType)
	if err != nil {
		return err
	}
	q.Totals = totals
	return nil
}
