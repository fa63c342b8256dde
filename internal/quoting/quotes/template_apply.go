package quotes

import (
	"github.com/google/uuid"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
)

// ApplyTemplate instantiates a template onto the quote: every blueprint
// line item gets a fresh id and a derived total, the template settings
// fully overwrite the quote settings, and totals are recomputed with the
// discount reset to zero. Usage counting is the caller's responsibility
// (one increment per application).
func ApplyTemplate(q Quote, tmpl Template) (Quote, error) {
	items := make([]pricing.LineItem, 0, len(tmpl.LineItems))
	for _, blueprint := range tmpl.LineItems {
		item := blueprint
		item.ID = uuid.NewString()
		total, err := pricing.LineItemTotal(item.Quantity, item.UnitPrice, item.Markup)
		if err != nil {
			return q, err
		}
		item.TotalPrice = total
		items = append(items, item)
	}

	q.LineItems = items
	q.Settings = tmpl.Settings
	templateID := tmpl.ID
	q.TemplateID = &templateID
	q.Discount = 0
	q.DiscountType = pricing.DiscountPercentage

	if err := recomputeTotals(&q); err != nil {
		return q, err
	}
	return q, nil
}
