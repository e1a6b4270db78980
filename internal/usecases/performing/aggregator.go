package performing

import (
	"fmt"
	"math"
	"time"

	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/utils"
)

// DefaultWindowDays is the trailing window used when the caller does not ask
// for a specific one.
const DefaultWindowDays = 30

// ErrInvalidEntry is returned when an entry violates the aggregator's
// precondition of validated, non-negative input.
var ErrInvalidEntry = fmt.Errorf("daily entry contains negative values")

// Weighted caps of the composite performance score. Each dimension is capped
// at its own reference value so no single dimension can exceed its weight.
const (
	insuranceRateCap  = 80.0
	upgradeRateCap    = 50.0
	upgradePriceCap   = 100.0
	revenuePerContCap = 500.0

	insuranceWeight   = 35.0
	upgradeWeight     = 25.0
	priceWeight       = 20.0
	revenueWeight     = 10.0
	consistencyWeight = 10.0
)

// ComputeSnapshot derives the KPI bundle for one agent over the window of
// windowDays ending at endDate. It is a pure function of its inputs: the same
// entry set always produces the same snapshot. Returns (nil, nil) when the
// entry set is empty; no data is a normal result, not an error.
func ComputeSnapshot(agentID string, entries []*domain.DailyEntry, windowDays int, endDate time.Time) (*domain.PerformanceSnapshot, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	if len(entries) == 0 {
		return nil, nil
	}

	totalContracts := 0
	totalUpgrades := 0
	totalRevenue := 0.0
	totalInsurances := 0

	for _, entry := range entries {
		if err := validateEntry(entry); err != nil {
			return nil, err
		}

		totalContracts += entry.ContractsCount
		totalUpgrades += entry.UpgradesCount
		totalRevenue += entry.TotalUpgradeValue
		totalInsurances += entry.InsuranceUnits()
	}

	insuranceRate := 0.0
	upgradeRate := 0.0
	revenuePerContract := 0.0
	if totalContracts > 0 {
		insuranceRate = float64(totalInsurances) / float64(totalContracts) * 100
		upgradeRate = float64(totalUpgrades) / float64(totalContracts) * 100
		revenuePerContract = totalRevenue / float64(totalContracts)
	}

	averageUpgradePrice := 0.0
	if totalUpgrades > 0 {
		averageUpgradePrice = totalRevenue / float64(totalUpgrades)
	}

	consistencyScore := math.Min(float64(len(entries))/float64(windowDays), 1) * 100

	performanceScore := math.Round(
		math.Min(insuranceRate/insuranceRateCap, 1)*insuranceWeight +
			math.Min(upgradeRate/upgradeRateCap, 1)*upgradeWeight +
			math.Min(averageUpgradePrice/upgradePriceCap, 1)*priceWeight +
			math.Min(revenuePerContract/revenuePerContCap, 1)*revenueWeight +
			consistencyScore/100*consistencyWeight,
	)

	return &domain.PerformanceSnapshot{
		AgentID:   agentID,
		Period:    domain.PeriodMonthly,
		StartDate: endDate.AddDate(0, 0, -windowDays),
		EndDate:   endDate,
		Metrics: domain.PerformanceMetrics{
			TotalContracts:      totalContracts,
			TotalUpgrades:       totalUpgrades,
			TotalRevenue:        totalRevenue,
			InsuranceRate:       utils.RoundWithOneDecimalPlace(insuranceRate),
			UpgradeRate:         utils.RoundWithOneDecimalPlace(upgradeRate),
			AverageUpgradePrice: utils.RoundWithTwoDecimalPlace(averageUpgradePrice),
			RevenuePerContract:  utils.RoundWithTwoDecimalPlace(revenuePerContract),
			ConsistencyScore:    int(math.Round(consistencyScore)),
			PerformanceScore:    int(performanceScore),
		},
		CalculatedAt: endDate,
	}, nil
}

// validateEntry fails loudly on malformed input instead of propagating
// negative rates. Validation proper lives at the API boundary; this is the
// aggregator's precondition check.
func validateEntry(entry *domain.DailyEntry) error {
	if entry.ContractsCount < 0 || entry.UpgradesCount < 0 || entry.TotalUpgradeValue < 0 {
		return fmt.Errorf("%w: agent %s, date %s", ErrInvalidEntry, entry.AgentID, entry.Date.Format(time.DateOnly))
	}

	for _, pkg := range entry.InsurancePackages {
		if pkg.Count < 0 || pkg.Value < 0 {
			return fmt.Errorf("%w: agent %s, date %s", ErrInvalidEntry, entry.AgentID, entry.Date.Format(time.DateOnly))
		}
	}

	return nil
}
