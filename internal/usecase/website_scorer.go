package usecase

import "github.com/platepulse/backend/internal/domain"

const websiteCheckPoints = 5

// ScoreWebsite evaluates basic SEO hygiene of the business homepage.
// Eight checks, 5 points each, 40 max. A nil signals record (site missing
// or unreachable) fails every check rather than erroring.
func ScoreWebsite(signals *domain.PageSignals) domain.ChecklistResult {
	result := domain.ChecklistResult{
		Name:     "website",
		MaxScore: 40,
	}
	if signals == nil {
		signals = &domain.PageSignals{}
	}

	addCheck(&result, "https", signals.HTTPS, websiteCheckPoints,
		"site served over HTTPS")
	addCheck(&result, "title", signals.Title != "", websiteCheckPoints,
		"page title present")
	addCheck(&result, "meta_description", signals.MetaDescription != "", websiteCheckPoints,
		"meta description present")
	addCheck(&result, "h1", signals.HasH1, websiteCheckPoints,
		"at least one H1 heading")
	addCheck(&result, "mobile_viewport", signals.HasViewportMeta, websiteCheckPoints,
		"mobile viewport meta tag")
	addCheck(&result, "phone_visible", signals.HasPhoneText, websiteCheckPoints,
		"phone number visible on page")
	addCheck(&result, "menu_link", signals.HasMenuLink, websiteCheckPoints,
		"link to a menu page")
	addCheck(&result, "structured_data", signals.HasStructuredData, websiteCheckPoints,
		"JSON-LD structured data present")

	return result
}
