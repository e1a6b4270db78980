package performing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rylessKechit/salesup/internal/domain"
)

func TestComputeSnapshot(t *testing.T) {
	endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	entry := func(contracts, upgrades int, upgradeValue float64, insurances int) *domain.DailyEntry {
		return &domain.DailyEntry{
			AgentID:           "agent-1",
			Date:              endDate,
			ContractsCount:    contracts,
			UpgradesCount:     upgrades,
			TotalUpgradeValue: upgradeValue,
			InsurancePackages: []domain.InsurancePackage{
				{PackageType: domain.PackageSmart, Count: insurances, Value: float64(insurances) * 30},
			},
		}
	}

	tests := []struct {
		name       string
		entries    []*domain.DailyEntry
		windowDays int
		validate   func(t *testing.T, snapshot *domain.PerformanceSnapshot)
	}{
		{
			name: "computes rates and totals over the window",
			entries: []*domain.DailyEntry{
				entry(10, 4, 600, 7),
				entry(10, 2, 200, 5),
			},
			windowDays: 30,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				assert.Equal(t, 20, snapshot.Metrics.TotalContracts)
				assert.Equal(t, 6, snapshot.Metrics.TotalUpgrades)
				assert.Equal(t, 800.0, snapshot.Metrics.TotalRevenue)
				// 12 insurances / 20 contracts
				assert.Equal(t, 60.0, snapshot.Metrics.InsuranceRate)
				assert.Equal(t, 30.0, snapshot.Metrics.UpgradeRate)
				// 800 / 6 upgrades, rounded to two decimals
				assert.Equal(t, 133.33, snapshot.Metrics.AverageUpgradePrice)
				assert.Equal(t, 40.0, snapshot.Metrics.RevenuePerContract)
				// 2 entries over 30 days
				assert.Equal(t, 7, snapshot.Metrics.ConsistencyScore)
			},
		},
		{
			name: "caps each dimension at its reference value",
			entries: func() []*domain.DailyEntry {
				entries := make([]*domain.DailyEntry, 0, 30)
				for i := 0; i < 30; i++ {
					// InsuranceRate 100 > cap 80, UpgradeRate 100 > cap 50,
					// AverageUpgradePrice 600 > cap 100, RevenuePerContract 600 > cap 500.
					entries = append(entries, entry(1, 1, 600, 1))
				}
				return entries
			}(),
			windowDays: 30,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				assert.Equal(t, 100, snapshot.Metrics.ConsistencyScore)
				assert.Equal(t, 100, snapshot.Metrics.PerformanceScore)
			},
		},
		{
			name: "zero contracts yields zero rates without dividing by zero",
			entries: []*domain.DailyEntry{
				entry(0, 0, 0, 0),
			},
			windowDays: 30,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				assert.Equal(t, 0.0, snapshot.Metrics.InsuranceRate)
				assert.Equal(t, 0.0, snapshot.Metrics.UpgradeRate)
				assert.Equal(t, 0.0, snapshot.Metrics.AverageUpgradePrice)
				assert.Equal(t, 0.0, snapshot.Metrics.RevenuePerContract)
				// 1 entry over 30 days still counts towards consistency
				assert.Equal(t, 3, snapshot.Metrics.ConsistencyScore)
			},
		},
		{
			name: "zero upgrades keeps average upgrade price at zero",
			entries: []*domain.DailyEntry{
				entry(5, 0, 0, 3),
			},
			windowDays: 30,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				assert.Equal(t, 0.0, snapshot.Metrics.AverageUpgradePrice)
				assert.Equal(t, 60.0, snapshot.Metrics.InsuranceRate)
			},
		},
		{
			name: "window defaults to thirty days when not positive",
			entries: []*domain.DailyEntry{
				entry(2, 1, 50, 1),
				entry(3, 1, 80, 2),
				entry(1, 0, 0, 0),
			},
			windowDays: 0,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				// 3 entries over the default 30-day window
				assert.Equal(t, 10, snapshot.Metrics.ConsistencyScore)
				assert.Equal(t, endDate.AddDate(0, 0, -DefaultWindowDays), snapshot.StartDate)
			},
		},
		{
			name: "consistency never exceeds one hundred",
			entries: func() []*domain.DailyEntry {
				entries := make([]*domain.DailyEntry, 0, 10)
				for i := 0; i < 10; i++ {
					entries = append(entries, entry(1, 0, 0, 0))
				}
				return entries
			}(),
			windowDays: 7,
			validate: func(t *testing.T, snapshot *domain.PerformanceSnapshot) {
				assert.Equal(t, 100, snapshot.Metrics.ConsistencyScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := ComputeSnapshot("agent-1", tt.entries, tt.windowDays, endDate)

			require.NoError(t, err)
			require.NotNil(t, snapshot)
			assert.Equal(t, "agent-1", snapshot.AgentID)
			assert.Equal(t, endDate, snapshot.EndDate)
			assert.Equal(t, endDate, snapshot.CalculatedAt)
			tt.validate(t, snapshot)
		})
	}
}

func TestComputeSnapshot_NoEntries(t *testing.T) {
	snapshot, err := ComputeSnapshot("agent-1", nil, 30, time.Now())

	assert.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestComputeSnapshot_InvalidEntries(t *testing.T) {
	endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry *domain.DailyEntry
	}{
		{
			name:  "negative contracts",
			entry: &domain.DailyEntry{AgentID: "agent-1", Date: endDate, ContractsCount: -1},
		},
		{
			name:  "negative upgrades",
			entry: &domain.DailyEntry{AgentID: "agent-1", Date: endDate, UpgradesCount: -2},
		},
		{
			name:  "negative upgrade value",
			entry: &domain.DailyEntry{AgentID: "agent-1", Date: endDate, TotalUpgradeValue: -10},
		},
		{
			name: "negative package count",
			entry: &domain.DailyEntry{
				AgentID: "agent-1",
				Date:    endDate,
				InsurancePackages: []domain.InsurancePackage{
					{PackageType: domain.PackageBasic, Count: -1, Value: 20},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := ComputeSnapshot("agent-1", []*domain.DailyEntry{tt.entry}, 30, endDate)

			assert.ErrorIs(t, err, ErrInvalidEntry)
			assert.Nil(t, snapshot)
		})
	}
}

func TestComputeSnapshot_Deterministic(t *testing.T) {
	endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	entries := []*domain.DailyEntry{
		{
			AgentID:           "agent-1",
			Date:              endDate,
			ContractsCount:    8,
			UpgradesCount:     3,
			TotalUpgradeValue: 420,
			InsurancePackages: []domain.InsurancePackage{
				{PackageType: domain.PackageAllInclusive, Count: 4, Value: 200},
			},
		},
	}

	first, err := ComputeSnapshot("agent-1", entries, 30, endDate)
	require.NoError(t, err)

	second, err := ComputeSnapshot("agent-1", entries, 30, endDate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
