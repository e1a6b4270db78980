package coaching

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/rylessKechit/salesup/internal/domain"
)

// ErrNoMetrics is returned when an analysis is requested without a
// computed metrics snapshot to draw from.
var ErrNoMetrics = errors.New("no performance metrics available")

// Analyze produces the full coaching bundle for one agent from its
// aggregated metrics and most recent daily entries. Entries must be
// ordered from newest to oldest. The function is deterministic and has
// no side effects.
func Analyze(metrics *domain.PerformanceMetrics, entries []*domain.DailyEntry) (*domain.Analysis, error) {
	if metrics == nil {
		return nil, ErrNoMetrics
	}

	insights := make([]*domain.Insight, 0, 8)
	insights = append(insights, insuranceInsights(metrics)...)
	insights = append(insights, upgradeInsights(metrics)...)
	insights = append(insights, consistencyInsights(metrics)...)
	insights = append(insights, revenueInsights(metrics)...)
	insights = append(insights, trendInsights(entries)...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Weight() > insights[j].Priority.Weight()
	})

	strongest, weakest := strengthsAndWeaknesses(metrics)

	return &domain.Analysis{
		OverallScore:    overallScore(metrics),
		Trend:           classifyTrend(entries),
		Insights:        insights,
		Recommendations: recommendations(metrics, insights),
		NextGoals:       nextGoals(metrics),
		WeakestArea:     weakest,
		StrongestArea:   strongest,
	}, nil
}

func insuranceInsights(m *domain.PerformanceMetrics) []*domain.Insight {
	switch {
	case m.InsuranceRate >= benchmarkInsuranceRate:
		return []*domain.Insight{{
			ID:          "insurance-excellent",
			Type:        domain.InsightSuccess,
			Category:    domain.CategoryInsurance,
			Title:       "🔥 Excellent Insurance Rate!",
			Description: fmt.Sprintf("Your %.1f%% insurance rate is outstanding, well above the industry benchmark of %.0f%%", m.InsuranceRate, benchmarkInsuranceRate),
			ActionItems: []string{
				"Maintain this excellent momentum",
				"Share your techniques with the team",
				"Focus on upgrading your existing customers",
			},
			Priority:   domain.PriorityLow,
			Impact:     "Continue your great work to maintain high revenue",
			Confidence: 95,
		}}
	case m.InsuranceRate >= benchmarkInsuranceRate*0.8:
		return []*domain.Insight{{
			ID:          "insurance-good",
			Type:        domain.InsightImprovement,
			Category:    domain.CategoryInsurance,
			Title:       "📈 Good Insurance Rate - Room for Growth",
			Description: fmt.Sprintf("Your %.1f%% insurance rate is solid, but you can reach the %.0f%% benchmark", m.InsuranceRate, benchmarkInsuranceRate),
			ActionItems: []string{
				"Ask about insurance needs during initial contact",
				"Explain benefits of each package clearly",
				"Use success stories from other clients",
				"Follow up on pending insurance decisions",
			},
			Priority:   domain.PriorityMedium,
			Impact:     fmt.Sprintf("Reaching %.0f%% could increase revenue by %d€", benchmarkInsuranceRate, potentialInsuranceGain(m)),
			Confidence: 85,
		}}
	default:
		return []*domain.Insight{{
			ID:          "insurance-needs-work",
			Type:        domain.InsightWarning,
			Category:    domain.CategoryInsurance,
			Title:       "⚠️ Insurance Rate Needs Attention",
			Description: fmt.Sprintf("Your %.1f%% insurance rate is below average. This is a key revenue opportunity.", m.InsuranceRate),
			ActionItems: []string{
				"Review your insurance presentation technique",
				"Practice objection handling for insurance",
				"Schedule training on insurance benefits",
				"Start every call mentioning insurance options",
				"Create a simple comparison chart for customers",
			},
			Priority:   domain.PriorityHigh,
			Impact:     fmt.Sprintf("Improving to benchmark could increase monthly revenue by %d€", potentialInsuranceGain(m)),
			Confidence: 90,
		}}
	}
}

func upgradeInsights(m *domain.PerformanceMetrics) []*domain.Insight {
	insights := make([]*domain.Insight, 0, 2)

	if m.UpgradeRate >= benchmarkUpgradeRate {
		insights = append(insights, &domain.Insight{
			ID:          "upgrade-rate-excellent",
			Type:        domain.InsightSuccess,
			Category:    domain.CategoryUpgrades,
			Title:       "🚀 Upgrade Master!",
			Description: fmt.Sprintf("Your %.1f%% upgrade rate is phenomenal!", m.UpgradeRate),
			ActionItems: []string{
				"Document your upgrade techniques",
				"Mentor other team members",
				"Focus on increasing upgrade values",
			},
			Priority:   domain.PriorityLow,
			Impact:     "Your upgrade skills are driving excellent revenue",
			Confidence: 95,
		})
	} else {
		gap := benchmarkUpgradeRate - m.UpgradeRate
		insights = append(insights, &domain.Insight{
			ID:          "upgrade-rate-improve",
			Type:        domain.InsightImprovement,
			Category:    domain.CategoryUpgrades,
			Title:       "📊 Upgrade Opportunity Detected",
			Description: fmt.Sprintf("You're %.1f%% away from the benchmark upgrade rate", gap),
			ActionItems: []string{
				"Present upgrade options during every call",
				"Highlight upgrade benefits early",
				"Use \"assumptive close\" technique",
				"Create urgency with limited-time offers",
			},
			Priority:   domain.PriorityMedium,
			Impact:     fmt.Sprintf("Each 5%% improvement could add %.0f€ monthly", float64(m.TotalContracts)*0.05*100),
			Confidence: 80,
		})
	}

	if m.AverageUpgradePrice < benchmarkAvgUpgradePrice {
		insights = append(insights, &domain.Insight{
			ID:          "upgrade-value-low",
			Type:        domain.InsightImprovement,
			Category:    domain.CategoryUpgrades,
			Title:       "💰 Upgrade Value Optimization",
			Description: fmt.Sprintf("Your average upgrade value is %.0f€. Industry leaders average %.0f€", m.AverageUpgradePrice, benchmarkAvgUpgradePrice),
			ActionItems: []string{
				"Suggest premium upgrade packages first",
				"Bundle multiple upgrades together",
				"Explain long-term value, not just monthly cost",
				"Use anchoring: start with highest package",
			},
			Priority:   domain.PriorityMedium,
			Impact:     fmt.Sprintf("Increasing average by 20€ = %d€ extra monthly", m.TotalUpgrades*20),
			Confidence: 75,
		})
	}

	return insights
}

func consistencyInsights(m *domain.PerformanceMetrics) []*domain.Insight {
	switch {
	case m.ConsistencyScore < 70:
		return []*domain.Insight{{
			ID:          "consistency-low",
			Type:        domain.InsightWarning,
			Category:    domain.CategoryConsistency,
			Title:       "📅 Consistency is Key to Success",
			Description: fmt.Sprintf("Your %d%% consistency score indicates irregular tracking. Consistent performers earn 40%% more.", m.ConsistencyScore),
			ActionItems: []string{
				"Set daily reminders to fill your metrics",
				"Fill your daily entry every morning",
				"Track even zero-performance days",
				"Use the mobile app for easy access",
			},
			Priority:   domain.PriorityHigh,
			Impact:     "Consistent tracking leads to consistent improvement",
			Confidence: 95,
		}}
	case m.ConsistencyScore < 85:
		return []*domain.Insight{{
			ID:          "consistency-medium",
			Type:        domain.InsightImprovement,
			Category:    domain.CategoryConsistency,
			Title:       "⏰ Build Your Daily Habit",
			Description: fmt.Sprintf("Your %d%% consistency is good, but daily tracking creates breakthrough results", m.ConsistencyScore),
			ActionItems: []string{
				"Set a specific time each day for data entry",
				"Link tracking to an existing habit (coffee, lunch)",
				"Aim for 7 days in a row to build momentum",
			},
			Priority:   domain.PriorityMedium,
			Impact:     "Perfect consistency correlates with 25% higher performance",
			Confidence: 80,
		}}
	}
	return nil
}

func revenueInsights(m *domain.PerformanceMetrics) []*domain.Insight {
	if m.RevenuePerContract >= benchmarkRevenuePerContract {
		return nil
	}
	return []*domain.Insight{{
		ID:          "revenue-per-contract-low",
		Type:        domain.InsightImprovement,
		Category:    domain.CategoryRevenue,
		Title:       "💡 Revenue Per Contract Opportunity",
		Description: fmt.Sprintf("At %.0f€ per contract, you're below the %.0f€ benchmark", m.RevenuePerContract, benchmarkRevenuePerContract),
		ActionItems: []string{
			"Always mention insurance options",
			"Suggest multiple upgrade tiers",
			"Create package deals for maximum value",
			"Follow up on pending decisions",
		},
		Priority:   domain.PriorityHigh,
		Impact:     fmt.Sprintf("Reaching benchmark = %.0f€ extra monthly", (benchmarkRevenuePerContract-m.RevenuePerContract)*float64(m.TotalContracts)),
		Confidence: 85,
	}}
}

// trendInsights compares contract volume over the last five entries
// against the five before that. Entries must be newest first.
func trendInsights(entries []*domain.DailyEntry) []*domain.Insight {
	if len(entries) < 5 {
		return nil
	}

	recent := entries[:5]
	older := entries[5:min(len(entries), 10)]
	if len(older) < 3 {
		return nil
	}

	recentAvg := averageContracts(recent)
	olderAvg := averageContracts(older)
	if olderAvg == 0 {
		return nil
	}

	improvement := (recentAvg - olderAvg) / olderAvg * 100

	if improvement > 20 {
		return []*domain.Insight{{
			ID:          "trend-improving",
			Type:        domain.InsightSuccess,
			Category:    domain.CategoryContracts,
			Title:       "📈 You're on Fire!",
			Description: fmt.Sprintf("Your performance is up %.0f%% compared to last week!", improvement),
			ActionItems: []string{
				"Keep doing what you're doing!",
				"Document what changed in your approach",
				"Share your success with the team",
			},
			Priority:   domain.PriorityLow,
			Impact:     "Momentum is building, maintain this energy!",
			Confidence: 90,
		}}
	}

	if improvement < -20 {
		return []*domain.Insight{{
			ID:          "trend-declining",
			Type:        domain.InsightWarning,
			Category:    domain.CategoryContracts,
			Title:       "📉 Performance Dip Detected",
			Description: fmt.Sprintf("Your recent performance is down %.0f%% from last week", math.Abs(improvement)),
			ActionItems: []string{
				"Review what changed in your routine",
				"Check if you need more leads",
				"Talk to your manager about support",
				"Revisit your successful strategies",
			},
			Priority:   domain.PriorityHigh,
			Impact:     "Quick action can reverse this trend",
			Confidence: 85,
		}}
	}

	return nil
}

func averageContracts(entries []*domain.DailyEntry) float64 {
	total := 0
	for _, e := range entries {
		total += e.ContractsCount
	}
	return float64(total) / float64(len(entries))
}

// overallScore blends the four benchmarked dimensions into a 0-100
// score. Each dimension is capped at its benchmark before weighting.
func overallScore(m *domain.PerformanceMetrics) int {
	insurance := math.Min(m.InsuranceRate/benchmarkInsuranceRate, 1) * 100
	upgrade := math.Min(m.UpgradeRate/benchmarkUpgradeRate, 1) * 100
	consistency := float64(m.ConsistencyScore)
	revenue := math.Min(m.RevenuePerContract/benchmarkRevenuePerContract, 1) * 100

	return int(math.Round(insurance*0.3 + upgrade*0.25 + consistency*0.2 + revenue*0.25))
}

// classifyTrend compares upgrade revenue over the last three entries
// against the three before that.
func classifyTrend(entries []*domain.DailyEntry) domain.Trend {
	if len(entries) < 6 {
		return domain.TrendStable
	}

	var recentTotal, olderTotal float64
	for _, e := range entries[:3] {
		recentTotal += e.TotalUpgradeValue
	}
	for _, e := range entries[3:6] {
		olderTotal += e.TotalUpgradeValue
	}

	change := (recentTotal - olderTotal) / math.Max(olderTotal, 1)

	switch {
	case change > 0.15:
		return domain.TrendImproving
	case change < -0.15:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func recommendations(m *domain.PerformanceMetrics, insights []*domain.Insight) []string {
	recs := make([]string, 0, 4)

	var firstHigh *domain.Insight
	for _, in := range insights {
		if in.Priority == domain.PriorityHigh {
			firstHigh = in
			break
		}
	}

	if firstHigh == nil {
		recs = append(recs,
			"🌟 You're performing well! Focus on consistency and small optimizations",
			"📚 Consider mentoring newer team members to share your expertise",
		)
	} else {
		recs = append(recs,
			fmt.Sprintf("🎯 Priority focus: %s", firstHigh.Category),
			"📅 Implement one improvement action per week for sustainable growth",
		)
	}

	if m.ConsistencyScore < 80 {
		recs = append(recs, "⏰ Make daily tracking your #1 habit - it drives all other improvements")
	}

	recs = append(recs, "🤝 Schedule weekly check-ins with your manager for personalized coaching")

	return recs
}

func nextGoals(m *domain.PerformanceMetrics) []string {
	goals := make([]string, 0, 4)

	if m.InsuranceRate < benchmarkInsuranceRate {
		goals = append(goals, fmt.Sprintf("Reach %.0f%% insurance rate within 2 weeks", benchmarkInsuranceRate))
	}
	if m.UpgradeRate < benchmarkUpgradeRate {
		goals = append(goals, fmt.Sprintf("Increase upgrade rate to %.0f%% this month", benchmarkUpgradeRate))
	}
	if m.ConsistencyScore < 90 {
		goals = append(goals, "Achieve 100% tracking consistency for 2 weeks straight")
	}

	goals = append(goals, "Beat your personal best revenue day within 1 week")

	if len(goals) > 3 {
		goals = goals[:3]
	}
	return goals
}

// strengthsAndWeaknesses ranks the four dimensions against their
// benchmarks. Ties keep the listed order, so the first listed area wins
// strongest and the last listed area wins weakest.
func strengthsAndWeaknesses(m *domain.PerformanceMetrics) (strongest, weakest string) {
	type area struct {
		name  string
		ratio float64
	}

	areas := []area{
		{"Insurance Sales", m.InsuranceRate / benchmarkInsuranceRate},
		{"Upgrade Sales", m.UpgradeRate / benchmarkUpgradeRate},
		{"Consistency", float64(m.ConsistencyScore) / 100},
		{"Revenue Optimization", m.RevenuePerContract / benchmarkRevenuePerContract},
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].ratio > areas[j].ratio
	})

	return areas[0].name, areas[len(areas)-1].name
}

func potentialInsuranceGain(m *domain.PerformanceMetrics) int {
	current := m.InsuranceRate / 100 * float64(m.TotalContracts)
	target := benchmarkInsuranceRate / 100 * float64(m.TotalContracts)
	return int(math.Round((target - current) * avgInsuranceValue))
}
