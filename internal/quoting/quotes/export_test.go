package quotes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
)

func TestNewRenderSnapshot(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	q, err := AddLineItem(draftQuote(), pricing.LineItem{
		Name: "AC Charger", Category: "chargers", Quantity: 2, UnitPrice: 1000, Markup: 30,
		Unit: pricing.UnitEach,
	})
	require.NoError(t, err)
	q.Title = "Depot rollout"
	q.ClientInfo.Name = "Sam"
	q.ValidUntil = time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC)

	snapshot := NewRenderSnapshot(q, now)

	assert.Equal(t, "Depot rollout", snapshot.Title)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "A$1,000.00", snapshot.Lines[0].UnitPrice)
	assert.Equal(t, "A$2,600.00", snapshot.Lines[0].TotalPrice)
	assert.Equal(t, "A$2,600.00", snapshot.Subtotal)
	assert.Equal(t, "A$2,860.00", snapshot.Total)
	assert.Equal(t, "27 September 2026", snapshot.ValidUntil)
	assert.Equal(t, now, snapshot.GeneratedAt)
}
