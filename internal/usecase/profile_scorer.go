package usecase

import (
	"fmt"

	"github.com/platepulse/backend/internal/domain"
)

// Profile checklist thresholds
const (
	profileCheckPoints   = 5
	profileMinRating     = 4.0
	profileMinReviews    = 10
)

// ScoreProfile evaluates how complete the business listing is.
// Eight checks, 5 points each, 40 max. Every check is an independent
// boolean rule against the place record; the total is their plain sum.
func ScoreProfile(place *domain.Place) domain.ChecklistResult {
	result := domain.ChecklistResult{
		Name:     "profile",
		MaxScore: 40,
	}
	if place == nil {
		place = &domain.Place{}
	}

	addCheck(&result, "address", place.Address != "", profileCheckPoints,
		"street address on the listing")
	addCheck(&result, "phone", place.Phone != "", profileCheckPoints,
		"phone number on the listing")
	addCheck(&result, "website", place.Website != "", profileCheckPoints,
		"website link on the listing")
	addCheck(&result, "rating", place.Rating >= profileMinRating, profileCheckPoints,
		fmt.Sprintf("rating %.1f (need >= %.1f)", place.Rating, profileMinRating))
	addCheck(&result, "reviews", place.ReviewCount >= profileMinReviews, profileCheckPoints,
		fmt.Sprintf("%d reviews (need >= %d)", place.ReviewCount, profileMinReviews))
	addCheck(&result, "categories", len(place.Types) > 0, profileCheckPoints,
		"business categories set")
	addCheck(&result, "price_level", place.PriceLevel > 0, profileCheckPoints,
		"price level set")
	addCheck(&result, "photos", place.PhotoCount > 0, profileCheckPoints,
		"at least one photo")

	return result
}

// addCheck appends a pass/fail rule and accumulates the checklist total
func addCheck(result *domain.ChecklistResult, name string, passed bool, points int, detail string) {
	check := domain.CheckResult{
		Name:      name,
		MaxPoints: points,
		Passed:    passed,
		Detail:    detail,
	}
	if passed {
		check.Points = points
		result.Score += points
	}
	result.Checks = append(result.Checks, check)
}
