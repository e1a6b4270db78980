package domain

import "time"

// PerformanceMetrics is the derived KPI bundle for one aggregation window.
// Every field is a deterministic function of the DailyEntry set; none is
// independently mutable.
type PerformanceMetrics struct {
	TotalContracts      int     `json:"total_contracts"`
	TotalUpgrades       int     `json:"total_upgrades"`
	TotalRevenue        float64 `json:"total_revenue"`
	InsuranceRate       float64 `json:"insurance_rate"`
	UpgradeRate         float64 `json:"upgrade_rate"`
	AverageUpgradePrice float64 `json:"average_upgrade_price"`
	RevenuePerContract  float64 `json:"revenue_per_contract"`
	ConsistencyScore    int     `json:"consistency_score"`
	PerformanceScore    int     `json:"performance_score"`
}

// PerformanceSnapshot is the persisted KPI bundle for one (agent, period).
// Recomputed on every entry write for the agent.
type PerformanceSnapshot struct {
	ID           int64              `json:"id"`
	AgentID      string             `json:"agent_id"`
	Period       string             `json:"period"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	Metrics      PerformanceMetrics `json:"metrics"`
	CalculatedAt time.Time          `json:"calculated_at"`
}

// PeriodMonthly is the trailing-30-day aggregation period
const PeriodMonthly = "monthly"
