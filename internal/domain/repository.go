package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PlacesClient defines the interface for the maps/places API
type PlacesClient interface {
	FindPlace(ctx context.Context, query string) (*Place, error)
	GetDetails(ctx context.Context, placeID string) (*Place, error)
	NearbySearch(ctx context.Context, location LatLng, keyword string) ([]Competitor, error)
}

// RankClient defines the interface for the local-search ranking API
type RankClient interface {
	Search(ctx context.Context, keyword string, location LatLng) ([]RankEntry, error)
}

// PageFetcher defines the interface for best-effort website inspection
type PageFetcher interface {
	FetchSignals(ctx context.Context, pageURL string) (*PageSignals, error)
	FetchMenu(ctx context.Context, pageURL string, channel Channel) ([]MenuItem, error)
}

// AnalysisClient defines the interface for the LLM deep-analysis call
type AnalysisClient interface {
	Analyze(ctx context.Context, report *HealthReport) (*DeepAnalysis, error)
}
