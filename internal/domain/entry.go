package domain

import "time"

// PackageTier is one of the three fixed insurance bundles sold with a rental
// contract.
type PackageTier string

const (
	PackageBasic        PackageTier = "Basic"
	PackageSmart        PackageTier = "Smart"
	PackageAllInclusive PackageTier = "All Inclusive"
)

func (t PackageTier) Valid() bool {
	switch t {
	case PackageBasic, PackageSmart, PackageAllInclusive:
		return true
	}
	return false
}

// InsurancePackage is the number of units of one tier sold on a given day
type InsurancePackage struct {
	PackageType PackageTier `json:"package_type"`
	Count       int         `json:"count"`
	Value       float64     `json:"value"`
}

// DailyEntry is one agent's logged activity for one calendar day. At most one
// entry exists per (agent, date).
type DailyEntry struct {
	ID                string             `json:"id"`
	AgentID           string             `json:"agent_id"`
	Date              time.Time          `json:"date"`
	ContractsCount    int                `json:"contracts_count"`
	UpgradesCount     int                `json:"upgrades_count"`
	TotalUpgradeValue float64            `json:"total_upgrade_value"`
	InsurancePackages []InsurancePackage `json:"insurance_packages"`
	Notes             string             `json:"notes,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// InsuranceUnits sums package counts across all tiers of the entry
func (e *DailyEntry) InsuranceUnits() int {
	total := 0
	for _, pkg := range e.InsurancePackages {
		total += pkg.Count
	}
	return total
}
