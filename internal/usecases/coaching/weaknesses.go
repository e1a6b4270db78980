package coaching

import (
	"github.com/rylessKechit/salesup/internal/domain"
)

// Detection thresholds for improvement areas. These are deliberately
// lower than the benchmarks in benchmarks.go: an area becomes a
// weakness only when it is clearly underwater, not merely sub-benchmark.
const (
	weakInsuranceRate    = 50.0
	weakUpgradeRate      = 30.0
	weakPerformanceScore = 70
	weakConsistencyScore = 60
	weakAvgDailyRevenue  = 50.0
	weakUpgradeRatio     = 0.3

	maxWeaknesses      = 5
	maxRecommendations = 6
)

var weaknessRecommendations = map[string][]string{
	"insurance_rate": {
		"Practice explaining insurance benefits clearly",
		"Work on building trust with reluctant customers",
		"Focus on value proposition rather than price",
	},
	"upgrade_rate": {
		"Improve upselling techniques",
		"Practice identifying customer needs",
		"Work on presenting upgrade value effectively",
	},
	"objection_handling": {
		"Practice responding to price objections",
		"Work on empathy and active listening",
		"Develop better rebuttals for common objections",
	},
	"overall_performance": {
		"Focus on overall sales technique improvement",
		"Practice complete sales conversations",
		"Work on closing techniques",
	},
	"consistency": {
		"Maintain regular daily entries",
		"Focus on consistent performance",
		"Develop daily routine habits",
	},
	"upselling": {
		"Practice identifying upselling opportunities",
		"Work on presenting additional value",
		"Improve cross-selling techniques",
	},
}

// DetectWeaknesses flags the improvement areas for one agent from its
// metrics snapshot and recent entries. The detected labels feed both
// the weaknesses endpoint and the voice trainer's scenario picker.
func DetectWeaknesses(metrics *domain.PerformanceMetrics, entries []*domain.DailyEntry) *domain.WeaknessReport {
	if metrics == nil {
		return &domain.WeaknessReport{Weaknesses: []string{}, Recommendations: []string{}}
	}

	weaknesses := make([]string, 0, maxWeaknesses)

	if metrics.InsuranceRate < weakInsuranceRate {
		weaknesses = append(weaknesses, "insurance_rate")
	}
	if metrics.UpgradeRate < weakUpgradeRate {
		weaknesses = append(weaknesses, "upgrade_rate")
	}
	if metrics.PerformanceScore < weakPerformanceScore {
		weaknesses = append(weaknesses, "overall_performance")
	}
	if metrics.ConsistencyScore < weakConsistencyScore {
		weaknesses = append(weaknesses, "consistency")
	}

	if len(entries) > 0 {
		var revenue float64
		var contracts int
		var ratioSum float64
		for _, e := range entries {
			revenue += e.TotalUpgradeValue
			contracts += e.ContractsCount
			if e.ContractsCount > 0 {
				ratioSum += float64(e.UpgradesCount) / float64(e.ContractsCount)
			}
		}

		n := float64(len(entries))
		avgRevenue := revenue / n
		avgContracts := float64(contracts) / n

		if avgRevenue < weakAvgDailyRevenue && avgContracts > 0 {
			weaknesses = append(weaknesses, "upselling")
		}
		if ratioSum/n < weakUpgradeRatio {
			weaknesses = append(weaknesses, "objection_handling")
		}
	}

	weaknesses = dedupe(weaknesses, maxWeaknesses)

	return &domain.WeaknessReport{
		Weaknesses:      weaknesses,
		Metrics:         metrics,
		Recommendations: recommendationsFor(weaknesses),
	}
}

func recommendationsFor(weaknesses []string) []string {
	recs := make([]string, 0, maxRecommendations)
	for _, w := range weaknesses {
		recs = append(recs, weaknessRecommendations[w]...)
	}
	return dedupe(recs, maxRecommendations)
}

func dedupe(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
