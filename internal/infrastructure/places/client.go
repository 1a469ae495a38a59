package places

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

// Client handles communication with the maps/places API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new places API client
func NewClient(apiKey, baseURL string) *Client {
	// Stay well under the provider's per-minute quota
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// FindPlace resolves a free-text business name or address to a place
func (c *Client) FindPlace(ctx context.Context, query string) (*domain.Place, error) {
	params := url.Values{}
	params.Add("input", query)
	params.Add("inputtype", "textquery")
	params.Add("fields", "place_id,name,formatted_address,geometry,rating,user_ratings_total,types")

	var resp findPlaceResponse
	if err := c.getJSON(ctx, "/findplacefromtext/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusToError(resp.Status); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, domain.ErrPlaceNotFound
	}

	log.Printf("[PLACES] resolved %q to %s", query, resp.Candidates[0].PlaceID)
	return mapResult(&resp.Candidates[0]), nil
}

// GetDetails retrieves the full profile record for a place ID
func (c *Client) GetDetails(ctx context.Context, placeID string) (*domain.Place, error) {
	params := url.Values{}
	params.Add("place_id", placeID)
	params.Add("fields", "place_id,name,formatted_address,formatted_phone_number,website,geometry,rating,user_ratings_total,price_level,types,photos,opening_hours")

	var resp detailsResponse
	if err := c.getJSON(ctx, "/details/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusToError(resp.Status); err != nil {
		return nil, err
	}

	return mapResult(&resp.Result), nil
}

// NearbySearch lists venues around a location matching the keyword
func (c *Client) NearbySearch(ctx context.Context, location domain.LatLng, keyword string) ([]domain.Competitor, error) {
	params := url.Values{}
	params.Add("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Add("keyword", keyword)
	params.Add("radius", "1500")

	var resp nearbyResponse
	if err := c.getJSON(ctx, "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if err := statusToError(resp.Status); err != nil {
		return nil, err
	}

	log.Printf("[PLACES] nearby search %q returned %d venues", keyword, len(resp.Results))
	return mapCompetitors(resp.Results), nil
}

// getJSON executes a GET with rate limiting and retries on transient
// failures (network errors, 5xx, 429). 4xx responses are not retried.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Add("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "PlatePulse/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[PLACES] request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrPlacesAPIFailure, err)
			sleepBackoff(ctx, attempt)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusInternalServerError ||
			resp.StatusCode == http.StatusBadGateway ||
			resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusTooManyRequests {
			log.Printf("[PLACES] transient API error (attempt %d): status %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPlacesAPIFailure, resp.StatusCode)
			sleepBackoff(ctx, attempt)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d, body: %s", domain.ErrPlacesAPIFailure, resp.StatusCode, string(body))
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

// statusToError translates API-level status strings into domain errors
func statusToError(status string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return domain.ErrPlaceNotFound
	default:
		return fmt.Errorf("%w: status %s", domain.ErrPlacesAPIFailure, status)
	}
}

func sleepBackoff(ctx context.Context, attempt int) {
	select {
	case <-time.After(time.Duration(attempt*500) * time.Millisecond):
	case <-ctx.Done():
	}
}
