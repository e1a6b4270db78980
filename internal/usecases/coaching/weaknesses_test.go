package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rylessKechit/salesup/internal/domain"
)

func TestDetectWeaknesses(t *testing.T) {
	tests := []struct {
		name     string
		metrics  *domain.PerformanceMetrics
		entries  []*domain.DailyEntry
		expected []string
	}{
		{
			name: "healthy metrics yield no weaknesses",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    60,
				UpgradeRate:      35,
				PerformanceScore: 80,
				ConsistencyScore: 75,
			},
			entries: []*domain.DailyEntry{
				{ContractsCount: 5, UpgradesCount: 3, TotalUpgradeValue: 300},
			},
			expected: []string{},
		},
		{
			name: "metric thresholds flag their areas",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    40,
				UpgradeRate:      20,
				PerformanceScore: 60,
				ConsistencyScore: 50,
			},
			expected: []string{"insurance_rate", "upgrade_rate", "overall_performance", "consistency"},
		},
		{
			name: "low daily revenue with contracts flags upselling",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    60,
				UpgradeRate:      35,
				PerformanceScore: 80,
				ConsistencyScore: 75,
			},
			entries: []*domain.DailyEntry{
				{ContractsCount: 4, UpgradesCount: 2, TotalUpgradeValue: 30},
				{ContractsCount: 3, UpgradesCount: 2, TotalUpgradeValue: 40},
			},
			expected: []string{"upselling"},
		},
		{
			name: "zero contracts never flags upselling",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    60,
				UpgradeRate:      35,
				PerformanceScore: 80,
				ConsistencyScore: 75,
			},
			entries: []*domain.DailyEntry{
				{ContractsCount: 0, UpgradesCount: 0, TotalUpgradeValue: 0},
			},
			expected: []string{"objection_handling"},
		},
		{
			name: "low upgrade ratio flags objection handling",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    60,
				UpgradeRate:      35,
				PerformanceScore: 80,
				ConsistencyScore: 75,
			},
			entries: []*domain.DailyEntry{
				{ContractsCount: 10, UpgradesCount: 1, TotalUpgradeValue: 200},
				{ContractsCount: 10, UpgradesCount: 2, TotalUpgradeValue: 300},
			},
			expected: []string{"objection_handling"},
		},
		{
			name: "everything underwater caps at five weaknesses",
			metrics: &domain.PerformanceMetrics{
				InsuranceRate:    10,
				UpgradeRate:      5,
				PerformanceScore: 20,
				ConsistencyScore: 30,
			},
			entries: []*domain.DailyEntry{
				{ContractsCount: 5, UpgradesCount: 0, TotalUpgradeValue: 10},
				{ContractsCount: 4, UpgradesCount: 0, TotalUpgradeValue: 15},
			},
			expected: []string{"insurance_rate", "upgrade_rate", "overall_performance", "consistency", "upselling"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DetectWeaknesses(tt.metrics, tt.entries)

			require.NotNil(t, report)
			assert.Equal(t, tt.expected, report.Weaknesses)
			assert.Equal(t, tt.metrics, report.Metrics)
			assert.LessOrEqual(t, len(report.Weaknesses), 5)
			assert.LessOrEqual(t, len(report.Recommendations), 6)
		})
	}
}

func TestDetectWeaknesses_NilMetrics(t *testing.T) {
	report := DetectWeaknesses(nil, nil)

	require.NotNil(t, report)
	assert.Empty(t, report.Weaknesses)
	assert.Empty(t, report.Recommendations)
	assert.Nil(t, report.Metrics)
}

func TestDetectWeaknesses_Recommendations(t *testing.T) {
	metrics := &domain.PerformanceMetrics{
		InsuranceRate:    40,
		UpgradeRate:      35,
		PerformanceScore: 80,
		ConsistencyScore: 75,
	}

	report := DetectWeaknesses(metrics, nil)

	require.Equal(t, []string{"insurance_rate"}, report.Weaknesses)
	assert.Equal(t, []string{
		"Practice explaining insurance benefits clearly",
		"Work on building trust with reluctant customers",
		"Focus on value proposition rather than price",
	}, report.Recommendations)
}

func TestDetectWeaknesses_RecommendationsCapped(t *testing.T) {
	metrics := &domain.PerformanceMetrics{
		InsuranceRate:    10,
		UpgradeRate:      5,
		PerformanceScore: 20,
		ConsistencyScore: 30,
	}

	report := DetectWeaknesses(metrics, nil)

	// Four weaknesses carry twelve candidate recommendations
	require.Len(t, report.Weaknesses, 4)
	assert.Len(t, report.Recommendations, 6)
}
