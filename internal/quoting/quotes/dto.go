package quotes

import (
	"time"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
)

type CreateQuoteRequest struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Description        string     `json:"description,omitempty"`
	ClientInfo         ClientInfo `json:"client_info"`
	Settings           *Settings  `json:"settings,omitempty"`
	TemplateID         *string    `json:"template_id,omitempty" validate:"omitempty,uuid4"`
	UseDefaultTemplate bool       `json:"use_default_template,omitempty"`
	ProjectID          *string    `json:"project_id,omitempty"`
	CreatedBy          string     `json:"created_by" validate:"required,max=100"`
	RequiresApproval   bool       `json:"requires_approval,omitempty"`
}

type UpdateQuoteRequest struct {
	Title            *string               `json:"title,omitempty" validate:"omitempty,max=200"`
	Description      *string               `json:"description,omitempty"`
	ClientInfo       *ClientInfo           `json:"client_info,omitempty"`
	Settings         *Settings             `json:"settings,omitempty"`
	Discount         *float64              `json:"discount,omitempty" validate:"omitempty,gte=0"`
	DiscountType     *pricing.DiscountType `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed"`
	RequiresApproval *bool                 `json:"requires_approval,omitempty"`
}

type AddLineItemRequest struct {
	Type           pricing.ItemType      `json:"type" validate:"required,oneof=charger accessory installation service custom"`
	ProductID      *string               `json:"product_id,omitempty"`
	Name           string                `json:"name" validate:"required,max=200"`
	Description    string                `json:"description,omitempty"`
	Category       string                `json:"category" validate:"required,max=100"`
	Quantity       int                   `json:"quantity" validate:"required,gt=0"`
	UnitPrice      float64               `json:"unit_price" validate:"gte=0"`
	Markup         *float64              `json:"markup,omitempty" validate:"omitempty,gte=0"`
	Cost           float64               `json:"cost" validate:"gte=0"`
	Unit           pricing.Unit          `json:"unit" validate:"required,oneof=each hour meter sqm linear_meter"`
	IsOptional     bool                  `json:"is_optional,omitempty"`
	Specifications map[string]string     `json:"specifications,omitempty"`
	Supplier       *pricing.SupplierInfo `json:"supplier,omitempty"`
}

type UpdateLineItemRequest struct {
	Type           *pricing.ItemType     `json:"type,omitempty" validate:"omitempty,oneof=charger accessory installation service custom"`
	ProductID      *string               `json:"product_id,omitempty"`
	Name           *string               `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string               `json:"description,omitempty"`
	Category       *string               `json:"category,omitempty" validate:"omitempty,max=100"`
	Quantity       *int                  `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitPrice      *float64              `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	Markup         *float64              `json:"markup,omitempty" validate:"omitempty,gte=0"`
	Cost           *float64              `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Unit           *pricing.Unit         `json:"unit,omitempty" validate:"omitempty,oneof=each hour meter sqm linear_meter"`
	IsOptional     *bool                 `json:"is_optional,omitempty"`
	Specifications map[string]string     `json:"specifications,omitempty"`
	Supplier       *pricing.SupplierInfo `json:"supplier,omitempty"`
}

type AddProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required,uuid4"`
}

type SubmitRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

type DecisionRequest struct {
	Decision  DecisionKind `json:"decision" validate:"required,oneof=accepted rejected"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	Comments  string       `json:"comments,omitempty"`
}

type CommentRequest struct {
	UserID     string `json:"user_id" validate:"required,max=100"`
	Message    string `json:"message" validate:"required"`
	IsInternal bool   `json:"is_internal,omitempty"`
}

type ViewRequest struct {
	Source string `json:"source,omitempty" validate:"omitempty,max=200"`
}

type ListQuotesRequest struct {
	Status *Status `json:"status,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}

func (r AddLineItemRequest) toItem() pricing.LineItem {
	item := pricing.LineItem{
		Type:           r.Type,
		ProductID:      r.ProductID,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		Cost:           r.Cost,
		Unit:           r.Unit,
		IsOptional:     r.IsOptional,
		Specifications: r.Specifications,
		Supplier:       r.Supplier,
	}
	if r.Markup != nil {
		item.Markup = *r.Markup
	}
	return item
}

func (r UpdateLineItemRequest) toPatch() LineItemPatch {
	return LineItemPatch{
		Type:           r.Type,
		ProductID:      r.ProductID,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		Markup:         r.Markup,
		Cost:           r.Cost,
		Unit:           r.Unit,
		IsOptional:     r.IsOptional,
		Specifications: r.Specifications,
		Supplier:       r.Supplier,
	}
}
