package domain

import "errors"

var (
	// ErrPlaceNotFound is returned when no business matches the query
	ErrPlaceNotFound = errors.New("place not found")

	// ErrPlacesAPIFailure is returned when the places API request fails
	ErrPlacesAPIFailure = errors.New("places API request failed")

	// ErrRankAPIFailure is returned when the local-search ranking API fails
	ErrRankAPIFailure = errors.New("local rank API request failed")

	// ErrPageFetchFailure is returned when a website page cannot be fetched
	ErrPageFetchFailure = errors.New("page fetch failed")

	// ErrLLMUnavailable is returned when the analysis model cannot be reached
	ErrLLMUnavailable = errors.New("analysis model unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
