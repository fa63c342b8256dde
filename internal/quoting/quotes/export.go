package quotes

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
)

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(amount float64) string {
	return moneyPrinter.Sprintf("A$%.2f", amount)
}

// RenderLine is one display row of the render snapshot.
type RenderLine struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
	IsOptional  bool   `json:"is_optional,omitempty"`
}

// RenderSnapshot is the finalized, display-ready document handed to the
// downstream PDF/render consumer. Totals are formatted from an internally
// consistent snapshot; the consumer does no money math of its own.
type RenderSnapshot struct {
	QuoteNumber string       `json:"quote_number"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      Status       `json:"status"`
	Client      ClientInfo   `json:"client"`
	Lines       []RenderLine `json:"lines"`
	Subtotal    string       `json:"subtotal"`
	Discount    string       `json:"discount"`
	GST         string       `json:"gst"`
	Total       string       `json:"total"`
	TotalExGST  string       `json:"total_ex_gst"`
	ValidUntil  string       `json:"valid_until"`
	Settings    Settings     `json:"settings"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// NewRenderSnapshot builds the render-ready view of a quote.
func NewRenderSnapshot(q Quote, now time.Time) RenderSnapshot {
	lines := make([]RenderLine, 0, len(q.LineItems))
	for _, item := range q.LineItems {
		lines = append(lines, renderLine(item))
	}
	return RenderSnapshot{
		QuoteNumber: q.QuoteNumber,
		Title:       q.Title,
		Description: q.Description,
		Status:      q.Status,
		Client:      q.ClientInfo,
		Lines:       lines,
		Subtotal:    formatMoney(q.Totals.Subtotal),
		Discount:    formatMoney(q.Totals.Discount),
		GST:         formatMoney(q.Totals.GST),
		Total:       formatMoney(q.Totals.Total),
		TotalExGST:  formatMoney(q.Totals.TotalExGST),
		ValidUntil:  q.ValidUntil.Format("2 January 2006"),
		Settings:    q.Settings,
		GeneratedAt: now,
	}
}

func renderLine(item pricing.LineItem) RenderLine {
	return RenderLine{
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        string(item.Unit),
		UnitPrice:   formatMoney(item.UnitPrice),
		TotalPrice:  formatMoney(item.TotalPrice),
		IsOptional:  item.IsOptional,
	}
}
