package domain

import "time"

// CheckResult is a single rule inside a checklist. Points is either 0 or
// MaxPoints; checklist totals are always the plain sum of their checks.
type CheckResult struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"maxPoints"`
	Passed    bool   `json:"passed"`
	Detail    string `json:"detail,omitempty"`
}

// ChecklistResult is the outcome of one fixed scoring checklist
type ChecklistResult struct {
	Name     string        `json:"name"`
	Score    int           `json:"score"`
	MaxScore int           `json:"maxScore"`
	Checks   []CheckResult `json:"checks"`
}

// PricingStats carries the markup analysis behind the pricing checklist
type PricingStats struct {
	SharedItems   int     `json:"sharedItems"`
	AverageMarkup float64 `json:"averageMarkup"`
	MarkupTooLow  bool    `json:"markupTooLow"`
	MarkupTooHigh bool    `json:"markupTooHigh"`
}

// RevenueLossEstimate is the output of the rank-bucket revenue model
type RevenueLossEstimate struct {
	MonthlySearchVolume int        `json:"monthlySearchVolume"`
	CTR                 float64    `json:"ctr"`
	ConversionRate      float64    `json:"conversionRate"`
	AOV                 float64    `json:"aov"`
	RankBucket          RankBucket `json:"rankBucket"`
	IdealCustomers      float64    `json:"idealCustomers"`
	CurrentCustomers    float64    `json:"currentCustomers"`
	EstimatedLoss       float64    `json:"estimatedMonthlyLoss"`
}

// Checklists groups the four fixed checklist results
type Checklists struct {
	Profile ChecklistResult `json:"profile"`
	Website ChecklistResult `json:"website"`
	Menu    ChecklistResult `json:"menu"`
	Pricing ChecklistResult `json:"pricing"`
}

// HealthReport is the full diagnostic result for one business
type HealthReport struct {
	Place        Place               `json:"place"`
	Competitors  []Competitor        `json:"competitors,omitempty"`
	RankPosition int                 `json:"rankPosition"` // 0 = not found in results
	RankBucket   RankBucket          `json:"rankBucket"`
	Website      *PageSignals        `json:"website,omitempty"`
	Checklists   Checklists          `json:"checklists"`
	Pricing      PricingStats        `json:"pricing"`
	Revenue      RevenueLossEstimate `json:"revenue"`
	OverallScore float64             `json:"overallScore"`
	Warnings     []string            `json:"warnings,omitempty"`
	Source       string              `json:"source"` // "Live" or "Cache"
	GeneratedAt  time.Time           `json:"generatedAt"`
}

// PrioritizedAction is one recommendation from the deep analysis
type PrioritizedAction struct {
	Horizon     string `json:"horizon"` // "short_term" or "mid_term"
	Description string `json:"description"`
}

// DeepAnalysis is the structured prose report produced by the LLM
type DeepAnalysis struct {
	OverallSummary     string              `json:"overall_summary"`
	KeyFindings        []string            `json:"key_findings"`
	PrioritizedActions []PrioritizedAction `json:"prioritized_actions"`
	Risks              []string            `json:"risks"`
	DataGaps           []string            `json:"data_gaps"`
}

// DiagnoseRequest is the inbound request for a health diagnostic
type DiagnoseRequest struct {
	Query               string  `json:"query" binding:"required"` // business name or address
	Keyword             string  `json:"keyword,omitempty"`        // local-search keyword, defaults from place types
	AOV                 float64 `json:"aov,omitempty"`
	MonthlySearchVolume int     `json:"monthlySearchVolume,omitempty"`
	IncludeCompetitors  bool    `json:"includeCompetitors,omitempty"`
	DeliveryMenuURL     string  `json:"deliveryMenuUrl,omitempty"`
}
