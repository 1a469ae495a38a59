package usecase

import (
	"fmt"
	"strings"

	"github.com/platepulse/backend/internal/domain"
)

// Menu structure thresholds
const (
	menuMinItems           = 10
	menuMinCategories      = 3
	menuMinPricedFraction  = 0.90
	menuMaxCategoryShare   = 0.60
)

// ScoreMenuStructure evaluates whether the extracted menu looks like a
// well-organized menu: enough items, real categories, prices on nearly
// everything, no duplicates, no single category dominating. Max 30.
func ScoreMenuStructure(items []domain.MenuItem) domain.ChecklistResult {
	result := domain.ChecklistResult{
		Name:     "menu",
		MaxScore: 30,
	}

	total := len(items)
	categories := make(map[string]int)
	names := make(map[string]int)
	priced := 0

	for _, item := range items {
		if item.Category != "" {
			categories[strings.ToLower(item.Category)]++
		}
		names[strings.ToLower(strings.TrimSpace(item.Name))]++
		if item.Price > 0 {
			priced++
		}
	}

	duplicates := 0
	for _, n := range names {
		if n > 1 {
			duplicates++
		}
	}

	pricedFraction := 0.0
	largestShare := 0.0
	if total > 0 {
		pricedFraction = float64(priced) / float64(total)
		for _, n := range categories {
			share := float64(n) / float64(total)
			if share > largestShare {
				largestShare = share
			}
		}
	}

	addCheck(&result, "item_count", total >= menuMinItems, 5,
		fmt.Sprintf("%d items (need >= %d)", total, menuMinItems))
	addCheck(&result, "categories", len(categories) >= menuMinCategories, 5,
		fmt.Sprintf("%d categories (need >= %d)", len(categories), menuMinCategories))
	addCheck(&result, "prices", total > 0 && pricedFraction >= menuMinPricedFraction, 10,
		fmt.Sprintf("%d of %d items priced", priced, total))
	addCheck(&result, "no_duplicates", total > 0 && duplicates == 0, 5,
		fmt.Sprintf("%d duplicate names", duplicates))
	addCheck(&result, "category_balance", total > 0 && len(categories) > 0 && largestShare <= menuMaxCategoryShare, 5,
		fmt.Sprintf("largest category holds %.0f%% of items", largestShare*100))

	return result
}
