package usecase

import (
	"context"
	"log"

	"github.com/platepulse/backend/internal/domain"
)

// AnalysisService runs a diagnostic and forwards the report to the LLM
// for a structured deep-analysis narrative
type AnalysisService struct {
	diagnostics *DiagnosticService
	analyzer    domain.AnalysisClient
}

// NewAnalysisService creates an analysis service with dependencies
func NewAnalysisService(diagnostics *DiagnosticService, analyzer domain.AnalysisClient) *AnalysisService {
	return &AnalysisService{
		diagnostics: diagnostics,
		analyzer:    analyzer,
	}
}

// AnalysisResult pairs the rule-based report with the model's narrative
type AnalysisResult struct {
	Report   *domain.HealthReport `json:"report"`
	Analysis *domain.DeepAnalysis `json:"analysis"`
}

// DiagnoseAndAnalyze produces the health report and its deep analysis.
// A model failure never loses the report: the analysis degrades to a
// summary-only record carrying the failure as a data gap.
func (s *AnalysisService) DiagnoseAndAnalyze(ctx context.Context, request *domain.DiagnoseRequest) (*AnalysisResult, error) {
	report, err := s.diagnostics.Diagnose(ctx, request)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, report)
	if err != nil {
		log.Printf("[DIAG] deep analysis failed: %v", err)
		analysis = &domain.DeepAnalysis{
			OverallSummary: "Deep analysis is unavailable; only the rule-based scores are shown.",
			DataGaps:       []string{"deep analysis failed: " + err.Error()},
		}
	}

	return &AnalysisResult{Report: report, Analysis: analysis}, nil
}
