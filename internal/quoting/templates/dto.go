package templates

import "github.com/voltquote/voltquote/internal/quoting/quotes"

// CreateTemplateRequest defines a new template. Line item prices are stored
// as given; totals are recomputed when the template is applied to a quote.
type CreateTemplateRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=120"`
	LineItems []TemplateItem  `json:"line_items" validate:"dive"`
	Settings  quotes.Settings `json:"settings"`
	IsDefault bool            `json:"is_default"`
}

// TemplateItem is one blueprint row.
type TemplateItem struct {
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Markup      float64 `json:"markup" validate:"gte=0"`
	IsOptional  bool    `json:"is_optional"`
}

// UpdateTemplateRequest carries partial edits.
type UpdateTemplateRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=2,max=120"`
	LineItems []TemplateItem   `json:"line_items" validate:"omitempty,dive"`
	Settings  *quotes.Settings `json:"settings"`
	IsDefault *bool            `json:"is_default"`
}
