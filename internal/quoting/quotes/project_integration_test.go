package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/pricing"
	"github.com/voltquote/voltquote/internal/quoting/projects"
)

func TestIntegrateProject(t *testing.T) {
	policy := margins.Defaults()

	t.Run("maps client fields and generates charger plus installation items", func(t *testing.T) {
		record := projects.Record{
			"contactName":  "Sam Riley",
			"contactEmail": "sam@acme.example",
			"companyName":  "Acme Fleet",
			"site_address": "1 Depot Rd",
			"projectTitle": "Depot charging rollout",
			"chargerSelection": map[string]any{
				"chargingType":     "dc-fast",
				"powerRating":      "50kw",
				"numberOfChargers": "4",
			},
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)

		assert.Equal(t, "Sam Riley", q.ClientInfo.Name)
		assert.Equal(t, "sam@acme.example", q.ClientInfo.Email)
		assert.Equal(t, "Acme Fleet", q.ClientInfo.Company)
		assert.Equal(t, "1 Depot Rd", q.ClientInfo.Address)
		assert.Equal(t, "Depot charging rollout", q.Title)
		assert.Equal(t, map[string]any(record), q.ProjectData)

		require.Len(t, q.LineItems, 2)

		charger := q.LineItems[0]
		assert.Equal(t, pricing.TypeCharger, charger.Type)
		assert.Equal(t, 4, charger.Quantity)
		assert.InDelta(t, 45000, charger.UnitPrice, 0.001)
		assert.InDelta(t, policy.MarkupFor("chargers"), charger.Markup, 0.001)

		install := q.LineItems[1]
		assert.Equal(t, pricing.TypeInstallation, install.Type)
		assert.Equal(t, 4, install.Quantity)
		assert.InDelta(t, 2500, install.UnitPrice, 0.001)

		assert.InDelta(t, charger.TotalPrice+install.TotalPrice, q.Totals.Subtotal, 0.001)
	})

	t.Run("22kw ac chargers use the mid price point", func(t *testing.T) {
		record := projects.Record{
			"chargerSelection": map[string]any{
				"chargingType":     "ac",
				"powerRating":      "22kw",
				"numberOfChargers": float64(2),
			},
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		require.NotEmpty(t, q.LineItems)
		assert.InDelta(t, 12000, q.LineItems[0].UnitPrice, 0.001)
	})

	t.Run("other ac ratings fall back to the base price", func(t *testing.T) {
		record := projects.Record{
			"charger_selection": map[string]any{
				"charging_type":      "ac",
				"power_rating":       "7kw",
				"number_of_chargers": float64(1),
			},
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		require.NotEmpty(t, q.LineItems)
		assert.InDelta(t, 8000, q.LineItems[0].UnitPrice, 0.001)
	})

	t.Run("weather protection adds one canopy per charger pair", func(t *testing.T) {
		record := projects.Record{
			"chargerSelection": map[string]any{
				"chargingType":      "ac",
				"powerRating":       "22kw",
				"numberOfChargers":  float64(5),
				"weatherProtection": true,
			},
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		require.Len(t, q.LineItems, 3)

		canopy := q.LineItems[2]
		assert.Equal(t, pricing.TypeAccessory, canopy.Type)
		assert.Equal(t, 3, canopy.Quantity)
		assert.InDelta(t, 3500, canopy.UnitPrice, 0.001)
	})

	t.Run("requirements fields take precedence over top-level ones", func(t *testing.T) {
		record := projects.Record{
			"contactName": "Top Level",
			"requirements": map[string]any{
				"contactName": "Nested Wins",
			},
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		assert.Equal(t, "Nested Wins", q.ClientInfo.Name)
	})

	t.Run("camelCase beats snake_case", func(t *testing.T) {
		record := projects.Record{
			"contactName":  "Camel",
			"contact_name": "Snake",
		}

		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		assert.Equal(t, "Camel", q.ClientInfo.Name)
	})

	t.Run("no charger selection generates no items", func(t *testing.T) {
		q, err := IntegrateProject(draftQuote(), projects.Record{"contactName": "Sam"}, policy)
		require.NoError(t, err)
		assert.Empty(t, q.LineItems)
	})

	t.Run("incomplete selection generates no items", func(t *testing.T) {
		record := projects.Record{
			"chargerSelection": map[string]any{
				"chargingType": "ac",
			},
		}
		q, err := IntegrateProject(draftQuote(), record, policy)
		require.NoError(t, err)
		assert.Empty(t, q.LineItems)
	})
}
