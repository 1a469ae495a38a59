package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/platepulse/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// DiagnosticServiceConfig holds configuration for the diagnostic service
type DiagnosticServiceConfig struct {
	CacheTTL            time.Duration
	MonthlySearchVolume int
	CTR                 float64
	ConversionRate      float64
	AOV                 float64
}

// DiagnosticService runs the full online-health diagnostic for a business:
// resolve the listing, rank it locally, inspect the website and menus,
// score the checklists, and estimate revenue loss. External failures past
// place resolution degrade the report instead of aborting it.
type DiagnosticService struct {
	cache    domain.CacheRepository
	places   domain.PlacesClient
	rank     domain.RankClient
	fetcher  domain.PageFetcher
	cacheTTL time.Duration
	config   DiagnosticServiceConfig
}

// NewDiagnosticService creates a diagnostic service with dependencies
func NewDiagnosticService(
	cache domain.CacheRepository,
	places domain.PlacesClient,
	rank domain.RankClient,
	fetcher domain.PageFetcher,
	config DiagnosticServiceConfig,
) *DiagnosticService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 6 * time.Hour
	}

	return &DiagnosticService{
		cache:    cache,
		places:   places,
		rank:     rank,
		fetcher:  fetcher,
		cacheTTL: cacheTTL,
		config:   config,
	}
}

// Diagnose produces a HealthReport for the requested business.
// Flow: check cache -> resolve place -> rank + site + menus -> score -> cache
func (s *DiagnosticService) Diagnose(ctx context.Context, request *domain.DiagnoseRequest) (*domain.HealthReport, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(request)

	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		cached.Source = "Cache"
		return cached, nil
	}

	place, err := s.resolvePlace(ctx, request.Query)
	if err != nil {
		return nil, err
	}

	report := &domain.HealthReport{
		Place:       *place,
		Source:      "Live",
		GeneratedAt: time.Now().UTC(),
	}

	keyword := deriveKeyword(request.Keyword, place)

	if request.IncludeCompetitors {
		competitors, err := s.places.NearbySearch(ctx, place.Location, keyword)
		if err != nil {
			s.warn(report, "competitor lookup failed: %v", err)
		} else {
			report.Competitors = competitors
		}
	}

	report.RankPosition = s.lookupRank(ctx, report, keyword, place)
	report.RankBucket = ClassifyRank(report.RankPosition)

	signals, dineIn := s.inspectWebsite(ctx, report, place.Website)
	report.Website = signals

	var delivery []domain.MenuItem
	if request.DeliveryMenuURL != "" {
		delivery, err = s.fetcher.FetchMenu(ctx, request.DeliveryMenuURL, domain.ChannelDelivery)
		if err != nil {
			s.warn(report, "delivery menu fetch failed: %v", err)
		}
	}

	report.Checklists.Profile = ScoreProfile(place)
	report.Checklists.Website = ScoreWebsite(signals)
	report.Checklists.Menu = ScoreMenuStructure(dineIn)
	report.Checklists.Pricing, report.Pricing = ScorePricing(dineIn, delivery)
	report.OverallScore = overallScore(report.Checklists)

	report.Revenue = EstimateRevenueLoss(
		firstPositiveInt(request.MonthlySearchVolume, s.config.MonthlySearchVolume),
		s.config.CTR,
		s.config.ConversionRate,
		firstPositive(request.AOV, s.config.AOV),
		report.RankBucket,
	)

	s.setInCache(ctx, cacheKey, report)

	return report, nil
}

// resolvePlace finds the business and enriches it with full details
func (s *DiagnosticService) resolvePlace(ctx context.Context, query string) (*domain.Place, error) {
	place, err := s.places.FindPlace(ctx, query)
	if err != nil {
		return nil, err
	}

	if place.PlaceID != "" {
		details, err := s.places.GetDetails(ctx, place.PlaceID)
		if err != nil {
			log.Printf("[DIAG] details lookup failed for %s, using search result: %v", place.PlaceID, err)
			return place, nil
		}
		return details, nil
	}

	return place, nil
}

// lookupRank queries the local-search listing and locates the business.
// Any failure resolves to position 0 (bucket "none") with a warning.
func (s *DiagnosticService) lookupRank(ctx context.Context, report *domain.HealthReport, keyword string, place *domain.Place) int {
	entries, err := s.rank.Search(ctx, keyword, place.Location)
	if err != nil {
		s.warn(report, "local rank lookup failed: %v", err)
		return 0
	}

	position := FindRankPosition(place, entries)
	if position == 0 {
		s.warn(report, "business not found in local results for %q", keyword)
	}
	return position
}

// inspectWebsite fetches SEO signals and the dine-in menu from the site.
// A missing or unreachable site yields nil signals and an empty menu.
func (s *DiagnosticService) inspectWebsite(ctx context.Context, report *domain.HealthReport, website string) (*domain.PageSignals, []domain.MenuItem) {
	if website == "" {
		s.warn(report, "listing has no website")
		return nil, nil
	}

	signals, err := s.fetcher.FetchSignals(ctx, website)
	if err != nil {
		s.warn(report, "website fetch failed: %v", err)
		signals = nil
	}

	menu, err := s.fetcher.FetchMenu(ctx, website, domain.ChannelDineIn)
	if err != nil {
		s.warn(report, "menu extraction failed: %v", err)
		menu = nil
	}

	return signals, menu
}

func (s *DiagnosticService) warn(report *domain.HealthReport, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[DIAG] %s", message)
	report.Warnings = append(report.Warnings, message)
}

// overallScore converts the checklist totals to a 0-100 percentage,
// rounded to one decimal
func overallScore(checklists domain.Checklists) float64 {
	score := checklists.Profile.Score + checklists.Website.Score +
		checklists.Menu.Score + checklists.Pricing.Score
	max := checklists.Profile.MaxScore + checklists.Website.MaxScore +
		checklists.Menu.MaxScore + checklists.Pricing.MaxScore
	if max == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(max)*1000) / 10
}

// deriveKeyword picks the local-search keyword: explicit request value,
// then the first listing category, then a generic fallback
func deriveKeyword(requested string, place *domain.Place) string {
	if requested != "" {
		return requested
	}
	for _, t := range place.Types {
		if t != "" && t != "point_of_interest" && t != "establishment" && t != "food" {
			return strings.ReplaceAll(t, "_", " ")
		}
	}
	return "restaurant"
}

// generateCacheKey creates a normalized cache key from the request.
// Format: "report:{normalized query}:{normalized keyword}"
func (s *DiagnosticService) generateCacheKey(request *domain.DiagnoseRequest) string {
	return fmt.Sprintf("report:%s:%s",
		normalizeForCacheKey(request.Query), normalizeForCacheKey(request.Keyword))
}

// normalizeForCacheKey lowercases, strips special characters, and collapses
// whitespace so equivalent queries share a cache entry
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a report from cache. Reports are stored as JSON
// strings so the nested structure survives the cache's round-trip.
func (s *DiagnosticService) getFromCache(ctx context.Context, key string) *domain.HealthReport {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	raw, ok := value.(string)
	if !ok {
		return nil
	}

	var report domain.HealthReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		log.Printf("[DIAG] discarding unreadable cached report: %v", err)
		return nil
	}
	return &report
}

// setInCache stores a report in cache; failures are logged, not returned
func (s *DiagnosticService) setInCache(ctx context.Context, key string, report *domain.HealthReport) {
	raw, err := json.Marshal(report)
	if err != nil {
		log.Printf("[DIAG] failed to serialize report for cache: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		log.Printf("[DIAG] failed to cache report: %v", err)
	}
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstPositiveInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
