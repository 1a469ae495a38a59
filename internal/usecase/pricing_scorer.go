package usecase

import (
	"fmt"
	"strings"

	"github.com/platepulse/backend/internal/domain"
)

// Delivery markup band. Markups below the band suggest the restaurant is
// eating platform fees; above it, that delivery customers are priced out.
const (
	pricingMinSharedItems = 5
	pricingMarkupFloor    = 0.10
	pricingMarkupCeiling  = 0.35

	// markupEpsilon keeps the inclusive band boundaries stable under
	// floating-point rounding of the per-item markup ratios
	markupEpsilon = 1e-9
)

// ScorePricing compares dine-in prices against delivery-platform prices for
// items that appear on both menus (matched by normalized name). Max 30.
// Returns the checklist plus the markup stats used by the revenue report.
func ScorePricing(dineIn, delivery []domain.MenuItem) (domain.ChecklistResult, domain.PricingStats) {
	result := domain.ChecklistResult{
		Name:     "pricing",
		MaxScore: 30,
	}
	stats := domain.PricingStats{}

	dineInPrices := make(map[string]float64)
	for _, item := range dineIn {
		key := normalizeItemName(item.Name)
		if key != "" && item.Price > 0 {
			dineInPrices[key] = item.Price
		}
	}

	var markupSum float64
	undercut := 0
	for _, item := range delivery {
		key := normalizeItemName(item.Name)
		base, ok := dineInPrices[key]
		if !ok || item.Price <= 0 {
			continue
		}
		stats.SharedItems++
		markupSum += (item.Price - base) / base
		if item.Price < base {
			undercut++
		}
	}

	if stats.SharedItems > 0 {
		stats.AverageMarkup = markupSum / float64(stats.SharedItems)
		stats.MarkupTooLow = stats.AverageMarkup < pricingMarkupFloor-markupEpsilon
		stats.MarkupTooHigh = stats.AverageMarkup > pricingMarkupCeiling+markupEpsilon
	}

	markupHealthy := stats.SharedItems > 0 && !stats.MarkupTooLow && !stats.MarkupTooHigh

	addCheck(&result, "shared_items", stats.SharedItems >= pricingMinSharedItems, 10,
		fmt.Sprintf("%d items found on both menus (need >= %d)", stats.SharedItems, pricingMinSharedItems))
	addCheck(&result, "markup_band", markupHealthy, 15,
		fmt.Sprintf("average delivery markup %.0f%% (healthy band %.0f%%-%.0f%%)",
			stats.AverageMarkup*100, pricingMarkupFloor*100, pricingMarkupCeiling*100))
	addCheck(&result, "no_undercut", stats.SharedItems > 0 && undercut == 0, 5,
		fmt.Sprintf("%d items cheaper on delivery than dine-in", undercut))

	return result, stats
}

// normalizeItemName lowercases and collapses whitespace so the same dish
// matches across channels despite casing or spacing differences
func normalizeItemName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
