package quotes

import (
	"time"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
)

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusSent          Status = "sent"
	StatusViewed        Status = "viewed"
	StatusAccepted      Status = "accepted"
	StatusRejected      Status = "rejected"
	StatusExpired       Status = "expired"
)

// Editable reports whether draft-stage mutations (line items, settings,
// client info) are still allowed.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Expirable reports whether the expiry sweep may transition this status.
func (s Status) Expirable() bool {
	return s == StatusPendingReview || s == StatusSent || s == StatusViewed
}

// ClientInfo identifies the contact and company a quote is addressed to.
type ClientInfo struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	ABN     string `json:"abn,omitempty"`
}

// Settings carries the commercial terms attached to a quote.
type Settings struct {
	ValidityDays  int    `json:"validity_days"`
	PaymentTerms  string `json:"payment_terms,omitempty"`
	WarrantyTerms string `json:"warranty_terms,omitempty"`
	DeliveryTerms string `json:"delivery_terms,omitempty"`
	Terms         string `json:"terms,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Comment is a note on a quote; client-facing comments have IsInternal false.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClientView records one client open of a sent quote.
type ClientView struct {
	ViewedAt time.Time `json:"viewed_at"`
	Source   string    `json:"source,omitempty"`
}

// Attachment is file metadata only; the object itself lives in external storage.
type Attachment struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Approval records an internal review action on the quote.
type Approval struct {
	UserID string    `json:"user_id"`
	Action string    `json:"action"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

// DecisionKind is the client's answer to a quote.
type DecisionKind string

const (
	DecisionAccepted DecisionKind = "accepted"
	DecisionRejected DecisionKind = "rejected"
)

// Decision is the client decision consumed by the lifecycle.
type Decision struct {
	QuoteID   string       `json:"quote_id"`
	Decision  DecisionKind `json:"decision"`
	Timestamp time.Time    `json:"timestamp"`
	Comments  string       `json:"comments,omitempty"`
}

// Quote is the aggregate root. It is owned by the caller until persisted;
// the repository stores full snapshots keyed by ID thereafter. QuoteNumber
// is assigned once at creation and never changes.
type Quote struct {
	ID               string               `json:"id"`
	QuoteNumber      string               `json:"quote_number"`
	ProjectID        *string              `json:"project_id,omitempty"`
	TemplateID       *string              `json:"template_id,omitempty"`
	Version          int                  `json:"version"`
	Status           Status               `json:"status"`
	ClientInfo       ClientInfo           `json:"client_info"`
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	LineItems        []pricing.LineItem   `json:"line_items"`
	Discount         float64              `json:"discount"`
	DiscountType     pricing.DiscountType `json:"discount_type"`
	Totals           pricing.Totals       `json:"totals"`
	Settings         Settings             `json:"settings"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	SentAt           *time.Time           `json:"sent_at,omitempty"`
	ValidUntil       time.Time            `json:"valid_until"`
	AcceptedAt       *time.Time           `json:"accepted_at,omitempty"`
	CreatedBy        string               `json:"created_by"`
	ClientViews      []ClientView         `json:"client_views,omitempty"`
	Comments         []Comment            `json:"comments,omitempty"`
	Attachments      []Attachment         `json:"attachments,omitempty"`
	Approvals        []Approval           `json:"approvals,omitempty"`
	RequiresApproval bool                 `json:"requires_approval"`
	ProjectData      map[string]any       `json:"project_data,omitempty"`
}

// Template is a reusable quote blueprint. Line items carry no id or total;
// both are assigned when the template is applied to a quote.
type Template struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	LineItems  []pricing.LineItem `json:"line_items"`
	Settings   Settings           `json:"settings"`
	UsageCount int                `json:"usage_count"`
	IsDefault  bool               `json:"is_default"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
