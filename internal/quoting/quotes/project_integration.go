package quotes

import (
	"fmt"

	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/pricing"
	"github.com/voltquote/voltquote/internal/quoting/projects"
)

// Charger pricing rule table for project-seeded quotes. DC fast chargers
// carry their own price point; AC pricing splits on the 22kW rating.
const (
	chargerPriceDCFast  = 45000
	chargerPrice22kW    = 12000
	chargerPriceDefault = 8000

	installationUnitPrice = 2500
	installationUnitCost  = 1500

	canopyUnitPrice = 3500
	canopyUnitCost  = 2200
)

// Field precedence per target: explicit requirements field first, then the
// camelCase project field, then the snake_case variant. Source systems use
// inconsistent key names, so the order is fixed and load-bearing.
var projectFieldChains = map[string][]string{
	"name":        {"requirements.contactName", "contactName", "contact_name"},
	"email":       {"requirements.contactEmail", "contactEmail", "contact_email"},
	"phone":       {"requirements.contactPhone", "contactPhone", "contact_phone"},
	"company":     {"requirements.companyName", "companyName", "company_name"},
	"address":     {"requirements.siteAddress", "siteAddress", "site_address"},
	"abn":         {"requirements.abn", "abn", "company_abn"},
	"title":       {"requirements.projectTitle", "projectTitle", "project_name"},
	"description": {"requirements.projectDescription", "projectDescription", "project_description"},
}

var chargerSelectionChain = []string{"requirements.chargerSelection", "chargerSelection", "charger_selection"}

// IntegrateProject maps an external project record into the quote's client
// info, title, description and raw project data, and auto-generates charger,
// installation and optional weather-protection line items from the record's
// charger selection. Generated items go through the regular append path one
// at a time, so totals are recomputed per insert.
func IntegrateProject(q Quote, record projects.Record, policy margins.MarginSettings) (Quote, error) {
	q.ClientInfo.Name = record.String(projectFieldChains["name"]...)
	q.ClientInfo.Email = record.String(projectFieldChains["email"]...)
	q.ClientInfo.Phone = record.String(projectFieldChains["phone"]...)
	q.ClientInfo.Company = record.String(projectFieldChains["company"]...)
	q.ClientInfo.Address = record.String(projectFieldChains["address"]...)
	q.ClientInfo.ABN = record.String(projectFieldChains["abn"]...)
	q.Title = record.String(projectFieldChains["title"]...)
	q.Description = record.String(projectFieldChains["description"]...)
	q.ProjectData = record

	selection := record.Map(chargerSelectionChain...)
	if selection == nil {
		return q, nil
	}

	chargingType := selection.String("chargingType", "charging_type")
	powerRating := selection.String("powerRating", "power_rating")
	chargerQuantity := selection.Int("numberOfChargers", "number_of_chargers")
	if chargingType == "" || powerRating == "" || chargerQuantity <= 0 {
		return q, nil
	}

	unitPrice := float64(chargerPriceDefault)
	switch {
	case chargingType == "dc-fast":
		unitPrice = chargerPriceDCFast
	case powerRating == "22kw":
		unitPrice = chargerPrice22kW
	}

	var err error
	q, err = AddLineItem(q, pricing.LineItem{
		Type:        pricing.TypeCharger,
		Name:        fmt.Sprintf("EV Charger (%s, %s)", chargingType, powerRating),
		Description: "Charging station as per project requirements",
		Category:    "chargers",
		Quantity:    chargerQuantity,
		UnitPrice:   unitPrice,
		Markup:      policy.MarkupFor("chargers"),
		Cost:        unitPrice * 0.7,
		Unit:        pricing.UnitEach,
	})
	if err != nil {
		return q, err
	}

	q, err = AddLineItem(q, pricing.LineItem{
		Type:        pricing.TypeInstallation,
		Name:        "Standard Installation",
		Description: "Installation and commissioning per charger",
		Category:    "installation",
		Quantity:    chargerQuantity,
		UnitPrice:   installationUnitPrice,
		Markup:      policy.MarkupFor("installation"),
		Cost:        installationUnitCost,
		Unit:        pricing.UnitEach,
	})
	if err != nil {
		return q, err
	}

	if selection.Bool("weatherProtection", "weather_protection") {
		// One canopy covers two chargers.
		canopyQuantity := (chargerQuantity + 1) / 2
		q, err = AddLineItem(q, pricing.LineItem{
			Type:        pricing.TypeAccessory,
			Name:        "Weather Protection Canopy",
			Description: "All-weather canopy, one per charger pair",
			Category:    "accessories",
			Quantity:    canopyQuantity,
			UnitPrice:   canopyUnitPrice,
			Markup:      policy.MarkupFor("accessories"),
			Cost:        canopyUnitCost,
			Unit:        pricing.UnitEach,
		})
		if err != nil {
			return q, err
		}
	}

	return q, nil
}
