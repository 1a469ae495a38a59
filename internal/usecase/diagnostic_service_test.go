package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/platepulse/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockPlacesClient is a mock implementation of domain.PlacesClient
type MockPlacesClient struct {
	place        *domain.Place
	details      *domain.Place
	competitors  []domain.Competitor
	findError    error
	detailsError error
	nearbyError  error
}

func (m *MockPlacesClient) FindPlace(ctx context.Context, query string) (*domain.Place, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	return m.place, nil
}

func (m *MockPlacesClient) GetDetails(ctx context.Context, placeID string) (*domain.Place, error) {
	if m.detailsError != nil {
		return nil, m.detailsError
	}
	if m.details != nil {
		return m.details, nil
	}
	return m.place, nil
}

func (m *MockPlacesClient) NearbySearch(ctx context.Context, location domain.LatLng, keyword string) ([]domain.Competitor, error) {
	if m.nearbyError != nil {
		return nil, m.nearbyError
	}
	return m.competitors, nil
}

// MockRankClient is a mock implementation of domain.RankClient
type MockRankClient struct {
	entries     []domain.RankEntry
	searchError error
	keyword     string
}

func (m *MockRankClient) Search(ctx context.Context, keyword string, location domain.LatLng) ([]domain.RankEntry, error) {
	m.keyword = keyword
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.entries, nil
}

// MockPageFetcher is a mock implementation of domain.PageFetcher
type MockPageFetcher struct {
	signals       *domain.PageSignals
	signalsError  error
	menus         map[domain.Channel][]domain.MenuItem
	menuError     error
	fetchedMenuAt []string
}

func (m *MockPageFetcher) FetchSignals(ctx context.Context, pageURL string) (*domain.PageSignals, error) {
	if m.signalsError != nil {
		return nil, m.signalsError
	}
	return m.signals, nil
}

func (m *MockPageFetcher) FetchMenu(ctx context.Context, pageURL string, channel domain.Channel) ([]domain.MenuItem, error) {
	m.fetchedMenuAt = append(m.fetchedMenuAt, pageURL)
	if m.menuError != nil {
		return nil, m.menuError
	}
	return m.menus[channel], nil
}

func testPlace() *domain.Place {
	return &domain.Place{
		PlaceID:     "pp-1",
		Name:        "Joe's Pizza",
		Address:     "1 Main St",
		Phone:       "555-1234",
		Website:     "https://joespizza.example",
		Rating:      4.5,
		ReviewCount: 20,
		PriceLevel:  2,
		Types:       []string{"restaurant"},
		PhotoCount:  1,
		Location:    domain.LatLng{Lat: 40.7, Lng: -74.0},
	}
}

func newTestService(places *MockPlacesClient, rank *MockRankClient, fetcher *MockPageFetcher) (*DiagnosticService, *MockCacheRepository) {
	cache := NewMockCacheRepository()
	svc := NewDiagnosticService(cache, places, rank, fetcher, DiagnosticServiceConfig{})
	return svc, cache
}

func TestDiagnose(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for nil request", func(t *testing.T) {
		svc, _ := newTestService(&MockPlacesClient{}, &MockRankClient{}, &MockPageFetcher{})
		_, err := svc.Diagnose(ctx, nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("returns error for blank query", func(t *testing.T) {
		svc, _ := newTestService(&MockPlacesClient{}, &MockRankClient{}, &MockPageFetcher{})
		_, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "   "})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("propagates place resolution failure", func(t *testing.T) {
		svc, _ := newTestService(&MockPlacesClient{findError: domain.ErrPlaceNotFound}, &MockRankClient{}, &MockPageFetcher{})
		_, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "nowhere grill"})
		if !errors.Is(err, domain.ErrPlaceNotFound) {
			t.Errorf("error = %v, want ErrPlaceNotFound", err)
		}
	})

	t.Run("full flow produces a scored live report", func(t *testing.T) {
		places := &MockPlacesClient{place: testPlace()}
		rank := &MockRankClient{entries: []domain.RankEntry{
			{Position: 1, PlaceID: "other"},
			{Position: 2, PlaceID: "pp-1", Title: "Joe's Pizza"},
		}}
		fetcher := &MockPageFetcher{
			signals: &domain.PageSignals{HTTPS: true, Title: "Joe's Pizza", HasH1: true},
			menus: map[domain.Channel][]domain.MenuItem{
				domain.ChannelDineIn: {
					{Name: "Margherita", Price: 12, Category: "Pizza"},
					{Name: "Tiramisu", Price: 7, Category: "Desserts"},
				},
			},
		}
		svc, cache := newTestService(places, rank, fetcher)

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Source != "Live" {
			t.Errorf("Source = %v, want Live", report.Source)
		}
		if report.RankPosition != 2 {
			t.Errorf("RankPosition = %d, want 2", report.RankPosition)
		}
		if report.RankBucket != domain.RankTop3 {
			t.Errorf("RankBucket = %v, want top3", report.RankBucket)
		}
		if report.Checklists.Profile.Score != 40 {
			t.Errorf("Profile.Score = %d, want 40", report.Checklists.Profile.Score)
		}
		if report.Revenue.EstimatedLoss != 0 {
			t.Errorf("EstimatedLoss = %v, want 0 for top3", report.Revenue.EstimatedLoss)
		}
		if !cache.setCalled {
			t.Error("expected report to be cached")
		}
	})

	t.Run("returns cached report on cache hit", func(t *testing.T) {
		svc, cache := newTestService(&MockPlacesClient{findError: errors.New("should not be called")}, &MockRankClient{}, &MockPageFetcher{})

		stored := &domain.HealthReport{Place: *testPlace(), Source: "Live", OverallScore: 50}
		raw, _ := json.Marshal(stored)
		cache.data["report:joes pizza:"] = string(raw)

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Source != "Cache" {
			t.Errorf("Source = %v, want Cache", report.Source)
		}
		if report.OverallScore != 50 {
			t.Errorf("OverallScore = %v, want 50", report.OverallScore)
		}
	})

	t.Run("rank failure degrades to bucket none with warning", func(t *testing.T) {
		places := &MockPlacesClient{place: testPlace()}
		rank := &MockRankClient{searchError: domain.ErrRankAPIFailure}
		svc, _ := newTestService(places, rank, &MockPageFetcher{})

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.RankBucket != domain.RankNone {
			t.Errorf("RankBucket = %v, want none", report.RankBucket)
		}
		if len(report.Warnings) == 0 {
			t.Error("expected a warning for the rank failure")
		}
		if report.Revenue.EstimatedLoss <= 0 {
			t.Errorf("EstimatedLoss = %v, want > 0 for bucket none", report.Revenue.EstimatedLoss)
		}
	})

	t.Run("website fetch failure zeroes the website checklist", func(t *testing.T) {
		places := &MockPlacesClient{place: testPlace()}
		fetcher := &MockPageFetcher{signalsError: domain.ErrPageFetchFailure, menuError: domain.ErrPageFetchFailure}
		svc, _ := newTestService(places, &MockRankClient{}, fetcher)

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Checklists.Website.Score != 0 {
			t.Errorf("Website.Score = %d, want 0", report.Checklists.Website.Score)
		}
		if report.Checklists.Menu.Score != 0 {
			t.Errorf("Menu.Score = %d, want 0", report.Checklists.Menu.Score)
		}
	})

	t.Run("missing website skips fetching entirely", func(t *testing.T) {
		place := testPlace()
		place.Website = ""
		fetcher := &MockPageFetcher{}
		svc, _ := newTestService(&MockPlacesClient{place: place}, &MockRankClient{}, fetcher)

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fetcher.fetchedMenuAt) != 0 {
			t.Errorf("fetched %v, want no fetches", fetcher.fetchedMenuAt)
		}
		if report.Checklists.Profile.Score != 35 {
			t.Errorf("Profile.Score = %d, want 35", report.Checklists.Profile.Score)
		}
	})

	t.Run("delivery menu url feeds the pricing comparison", func(t *testing.T) {
		places := &MockPlacesClient{place: testPlace()}
		fetcher := &MockPageFetcher{
			menus: map[domain.Channel][]domain.MenuItem{
				domain.ChannelDineIn: {
					{Name: "Margherita", Price: 10},
					{Name: "Diavola", Price: 12},
					{Name: "Quattro Formaggi", Price: 13},
					{Name: "Calzone", Price: 11},
					{Name: "Tiramisu", Price: 7},
				},
				domain.ChannelDelivery: {
					{Name: "Margherita", Price: 12},
					{Name: "Diavola", Price: 14.4},
					{Name: "Quattro Formaggi", Price: 15.6},
					{Name: "Calzone", Price: 13.2},
					{Name: "Tiramisu", Price: 8.4},
				},
			},
		}
		svc, _ := newTestService(places, &MockRankClient{}, fetcher)

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{
			Query:           "Joe's Pizza",
			DeliveryMenuURL: "https://delivery.example/joes",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Pricing.SharedItems != 5 {
			t.Errorf("SharedItems = %d, want 5", report.Pricing.SharedItems)
		}
		if report.Pricing.MarkupTooLow || report.Pricing.MarkupTooHigh {
			t.Errorf("penalty flags set for 20%% markup: %+v", report.Pricing)
		}
	})

	t.Run("competitors included only when requested", func(t *testing.T) {
		places := &MockPlacesClient{
			place: testPlace(),
			competitors: []domain.Competitor{
				{PlaceID: "c1", Name: "Luigi's", Rating: 4.2, ReviewCount: 88},
			},
		}
		svc, _ := newTestService(places, &MockRankClient{}, &MockPageFetcher{})

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza", IncludeCompetitors: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Competitors) != 1 {
			t.Errorf("len(Competitors) = %d, want 1", len(report.Competitors))
		}

		report, err = svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza Express"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Competitors) != 0 {
			t.Errorf("len(Competitors) = %d, want 0", len(report.Competitors))
		}
	})

	t.Run("request keyword overrides the derived category", func(t *testing.T) {
		rank := &MockRankClient{}
		svc, _ := newTestService(&MockPlacesClient{place: testPlace()}, rank, &MockPageFetcher{})

		_, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza", Keyword: "pizza delivery"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rank.keyword != "pizza delivery" {
			t.Errorf("keyword = %q, want %q", rank.keyword, "pizza delivery")
		}
	})

	t.Run("continues when caching fails", func(t *testing.T) {
		svc, cache := newTestService(&MockPlacesClient{place: testPlace()}, &MockRankClient{}, &MockPageFetcher{})
		cache.setError = errors.New("cache write failed")

		report, err := svc.Diagnose(ctx, &domain.DiagnoseRequest{Query: "Joe's Pizza"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report == nil {
			t.Error("expected report even when cache write fails")
		}
	})
}

func TestDeriveKeyword(t *testing.T) {
	t.Run("explicit keyword wins", func(t *testing.T) {
		if got := deriveKeyword("ramen", testPlace()); got != "ramen" {
			t.Errorf("keyword = %q, want ramen", got)
		}
	})

	t.Run("generic types are skipped", func(t *testing.T) {
		place := &domain.Place{Types: []string{"point_of_interest", "establishment", "thai_restaurant"}}
		if got := deriveKeyword("", place); got != "thai restaurant" {
			t.Errorf("keyword = %q, want 'thai restaurant'", got)
		}
	})

	t.Run("falls back to restaurant", func(t *testing.T) {
		if got := deriveKeyword("", &domain.Place{}); got != "restaurant" {
			t.Errorf("keyword = %q, want restaurant", got)
		}
	})
}

func TestOverallScore(t *testing.T) {
	t.Run("full marks score 100", func(t *testing.T) {
		checklists := domain.Checklists{
			Profile: domain.ChecklistResult{Score: 40, MaxScore: 40},
			Website: domain.ChecklistResult{Score: 40, MaxScore: 40},
			Menu:    domain.ChecklistResult{Score: 30, MaxScore: 30},
			Pricing: domain.ChecklistResult{Score: 30, MaxScore: 30},
		}
		if got := overallScore(checklists); got != 100 {
			t.Errorf("overallScore = %v, want 100", got)
		}
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		checklists := domain.Checklists{
			Profile: domain.ChecklistResult{Score: 20, MaxScore: 40},
			Website: domain.ChecklistResult{Score: 15, MaxScore: 40},
			Menu:    domain.ChecklistResult{Score: 10, MaxScore: 30},
			Pricing: domain.ChecklistResult{Score: 0, MaxScore: 30},
		}
		// 45/140 = 32.142...
		if got := overallScore(checklists); got != 32.1 {
			t.Errorf("overallScore = %v, want 32.1", got)
		}
	})
}
