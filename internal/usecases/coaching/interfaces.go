package coaching

import (
	"github.com/rylessKechit/salesup/internal/domain"
)

// Coach generates coaching analyses and weakness reports for agents
type Coach interface {
	Analyze(agentID string, opts AnalysisOptions) (*domain.Analysis, error)
	Weaknesses(agentID string) (*domain.WeaknessReport, error)
}

// AnalysisOptions narrows an analysis request. Zero values mean the
// default 14 day window with no category filter.
type AnalysisOptions struct {
	Days      int
	FocusArea domain.InsightCategory
}
