// Package pricing holds the line-item model and the pure price math shared
// by every quote mutation. Functions here are deterministic and perform no
// I/O; callers recompute totals after every change to a line-item set.
package pricing

// ItemType classifies a quote line item.
type ItemType string

const (
	TypeCharger      ItemType = "charger"
	TypeAccessory    ItemType = "accessory"
	TypeInstallation ItemType = "installation"
	TypeService      ItemType = "service"
	TypeCustom       ItemType = "custom"
)

// Unit is the unit of measure a line item is quantified in.
type Unit string

const (
	UnitEach        Unit = "each"
	UnitHour        Unit = "hour"
	UnitMeter       Unit = "meter"
	UnitSquareMeter Unit = "sqm"
	UnitLinearMeter Unit = "linear_meter"
)

// DiscountType selects how a quote-level discount input is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// GSTRate is the flat GST percentage applied to every quote.
const GSTRate = 10.0

// SupplierInfo captures where a line item is sourced from.
type SupplierInfo struct {
	Name    string `json:"name"`
	SKU     string `json:"sku,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// LineItem is one priced row of a quote. TotalPrice is derived and must
// only ever be set through LineItemTotal.
type LineItem struct {
	ID             string            `json:"id"`
	Type           ItemType          `json:"type"`
	ProductID      *string           `json:"product_id,omitempty"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Category       string            `json:"category"`
	Quantity       int               `json:"quantity"`
	UnitPrice      float64           `json:"unit_price"`
	Markup         float64           `json:"markup"`
	Cost           float64           `json:"cost"`
	Unit           Unit              `json:"unit"`
	TotalPrice     float64           `json:"total_price"`
	IsOptional     bool              `json:"is_optional,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Supplier       *SupplierInfo     `json:"supplier,omitempty"`
}

// Totals aggregates the fully derived money fields of a quote. Discount is
// the resolved discount amount, not the raw input.
type Totals struct {
	Subtotal     float64      `json:"subtotal"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discount_type"`
	GST          float64      `json:"gst"`
	GSTRate      float64      `json:"gst_rate"`
	Total        float64      `json:"total"`
	TotalExGST   float64      `json:"total_ex_gst"`
}
