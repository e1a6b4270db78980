package tracking

import (
	"time"

	"github.com/rylessKechit/salesup/internal/domain"
)

// Tracker records and serves daily activity entries for agents
type Tracker interface {
	Create(agentID string, input *EntryInput) (*domain.DailyEntry, error)
	Update(agentID, entryID string, input *EntryInput) (*domain.DailyEntry, error)
	GetByDate(agentID string, date time.Time) (*domain.DailyEntry, error)
	List(agentID string, filters *ListFilters) ([]*domain.DailyEntry, error)
}

// EntryInput is the payload for creating or updating one daily entry
type EntryInput struct {
	Date              string                    `json:"date"`
	ContractsCount    int                       `json:"contracts_count"`
	UpgradesCount     int                       `json:"upgrades_count"`
	TotalUpgradeValue float64                   `json:"total_upgrade_value"`
	InsurancePackages []domain.InsurancePackage `json:"insurance_packages"`
	Notes             string                    `json:"notes"`
}

// ListFilters narrows an entry listing. Limit applies only when no
// date range is given.
type ListFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}
