package usecase

import (
	"regexp"
	"strings"

	"github.com/platepulse/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// minTitleOverlap is the token-overlap fraction required to treat a
// result title as the same business when place IDs are unavailable
const minTitleOverlap = 0.6

// FindRankPosition locates the business inside a ranked local-search
// listing. Exact place ID matches win; otherwise the first entry whose
// title shares enough name tokens is taken. Returns 0 when absent.
func FindRankPosition(place *domain.Place, entries []domain.RankEntry) int {
	if place == nil {
		return 0
	}

	for _, entry := range entries {
		if place.PlaceID != "" && entry.PlaceID == place.PlaceID {
			return entry.Position
		}
	}

	nameTokens := nameTokenSet(place.Name)
	if len(nameTokens) == 0 {
		return 0
	}

	for _, entry := range entries {
		titleTokens := nameTokenSet(entry.Title)
		if len(titleTokens) == 0 {
			continue
		}
		matched := 0
		for token := range nameTokens {
			if titleTokens[token] {
				matched++
			}
		}
		if float64(matched)/float64(len(nameTokens)) >= minTitleOverlap {
			return entry.Position
		}
	}

	return 0
}

// nameTokenSet lowercases, strips punctuation, and drops single-character
// tokens so "Joe's Pizza" and "Joes Pizza NYC" compare on real words
func nameTokenSet(s string) map[string]bool {
	cleaned := nonWordRegex.ReplaceAllString(strings.ToLower(s), " ")
	set := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 {
			continue
		}
		set[word] = true
	}
	return set
}
