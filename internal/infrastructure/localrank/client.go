package localrank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/platepulse/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client queries a local-search results API for a keyword near a
// location and returns the ranked venue listing
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new local rank client
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// searchResponse mirrors the ranking API's result payload
type searchResponse struct {
	LocalResults []resultEntry `json:"local_results"`
}

type resultEntry struct {
	Position    int     `json:"position"`
	PlaceID     string  `json:"place_id"`
	Title       string  `json:"title"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

// Search returns the ranked local listing for a keyword at a location
func (c *Client) Search(ctx context.Context, keyword string, location domain.LatLng) ([]domain.RankEntry, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("q", keyword)
	params.Add("ll", fmt.Sprintf("@%f,%f,14z", location.Lat, location.Lng))
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PlatePulse/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrRankAPIFailure, resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	entries := make([]domain.RankEntry, 0, len(searchResp.LocalResults))
	for _, r := range searchResp.LocalResults {
		entries = append(entries, domain.RankEntry{
			Position:    r.Position,
			PlaceID:     r.PlaceID,
			Title:       r.Title,
			Rating:      r.Rating,
			ReviewCount: r.Reviews,
		})
	}

	log.Printf("[RANK] %q returned %d local results", keyword, len(entries))
	return entries, nil
}
