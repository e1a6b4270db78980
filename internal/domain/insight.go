package domain

// InsightType tags the tone of a coaching insight
type InsightType string

const (
	InsightSuccess     InsightType = "success"
	InsightWarning     InsightType = "warning"
	InsightImprovement InsightType = "improvement"
	InsightGoal        InsightType = "goal"
)

// InsightCategory is the performance dimension an insight belongs to
type InsightCategory string

const (
	CategoryContracts   InsightCategory = "contracts"
	CategoryInsurance   InsightCategory = "insurance"
	CategoryUpgrades    InsightCategory = "upgrades"
	CategoryConsistency InsightCategory = "consistency"
	CategoryRevenue     InsightCategory = "revenue"
)

// InsightPriority ranks insights in the analysis output
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Weight converts a priority to its sort weight
func (p InsightPriority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Insight is a single templated coaching observation. Insights are never
// persisted; they are regenerated on every analysis request.
type Insight struct {
	ID          string          `json:"id"`
	Type        InsightType     `json:"type"`
	Category    InsightCategory `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ActionItems []string        `json:"action_items"`
	Priority    InsightPriority `json:"priority"`
	Impact      string          `json:"impact"`
	Confidence  int             `json:"confidence"`
}

// Trend classifies the direction of recent performance
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Analysis is the full coaching bundle for one agent at one point in time
type Analysis struct {
	OverallScore    int        `json:"overall_score"`
	Trend           Trend      `json:"trend"`
	Insights        []*Insight `json:"insights"`
	Recommendations []string   `json:"recommendations"`
	NextGoals       []string   `json:"next_goals"`
	WeakestArea     string     `json:"weakest_area"`
	StrongestArea   string     `json:"strongest_area"`
}

// WeaknessReport lists the improvement areas detected for an agent
type WeaknessReport struct {
	Weaknesses      []string            `json:"weaknesses"`
	Metrics         *PerformanceMetrics `json:"metrics,omitempty"`
	Recommendations []string            `json:"recommendations"`
}
