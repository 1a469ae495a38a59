package llm

import (
	"encoding/json"
	"fmt"

	"github.com/platepulse/backend/internal/domain"
)

const systemPrompt = "You are a North American restaurant and delivery operations expert, " +
	"familiar with DoorDash, UberEats, and local-search marketing."

// analysisSchema is the exact JSON shape the model must return
const analysisSchema = `{
  "overall_summary": "string, overall assessment",
  "key_findings": ["list of strings, core insights"],
  "prioritized_actions": [
    {
      "horizon": "short_term or mid_term",
      "description": "recommended action"
    }
  ],
  "risks": ["list of strings, main risk points"],
  "data_gaps": ["list of strings, missing data"]
}`

// BuildAnalysisPrompt renders the health report into the strict-JSON
// analysis prompt
func BuildAnalysisPrompt(report *domain.HealthReport) (string, error) {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Below is structured JSON describing a restaurant's online health diagnostic:
%s

Based on this information, produce a deep diagnosis of the restaurant.

The output MUST be strict JSON. No extra text, no explanations, no Markdown.

The required JSON schema is:

%s

Return ONLY the JSON. No code fences, no comments, no additional notes.`,
		string(payload), analysisSchema), nil
}
