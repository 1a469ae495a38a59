package llm

import (
	"encoding/json"
	"strings"

	"github.com/platepulse/backend/internal/domain"
)

// ParseAnalysis decodes the model reply into a DeepAnalysis with a
// tolerant fallback chain: direct parse, then the substring between the
// first '{' and the last '}', then the raw text as the summary. A reply
// is never rejected outright.
func ParseAnalysis(raw string) *domain.DeepAnalysis {
	var analysis domain.DeepAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err == nil {
		return &analysis
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err == nil {
			return &analysis
		}
	}

	return &domain.DeepAnalysis{
		OverallSummary: strings.TrimSpace(raw),
		KeyFindings:    []string{},
		Risks:          []string{},
		DataGaps:       []string{},
	}
}
