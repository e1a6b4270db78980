package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
	"github.com/rylessKechit/salesup/pkg/utils"
)

const defaultListLimit = 30

var (
	ErrDateRequired            = errors.New("date is required")
	ErrInvalidDate             = errors.New("date must use the YYYY-MM-DD format")
	ErrNegativeValues          = errors.New("counts and values cannot be negative")
	ErrUpgradesExceedContracts = errors.New("upgrades count cannot exceed contracts count")
	ErrInvalidPackageTier      = errors.New("unknown insurance package type")
	ErrEntryNotFound           = errors.New("entry not found")
	ErrEntryDenied             = errors.New("entry belongs to another agent")

	// ErrDuplicateEntry mirrors the repository sentinel so callers only
	// depend on this package.
	ErrDuplicateEntry = repository.ErrDuplicateEntry
)

// Service implements Tracker. Every successful write refreshes the
// agent's performance snapshot so dashboards never serve stale metrics.
type Service struct {
	entryRepo   repository.DailyEntryRepository
	snapshotter performing.Snapshotter
}

func NewService(entryRepo repository.DailyEntryRepository, snapshotter performing.Snapshotter) *Service {
	return &Service{
		entryRepo:   entryRepo,
		snapshotter: snapshotter,
	}
}

func (s *Service) Create(agentID string, input *EntryInput) (*domain.DailyEntry, error) {
	date, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	entry := &domain.DailyEntry{
		ID:                uuid.NewString(),
		AgentID:           agentID,
		Date:              *date,
		ContractsCount:    input.ContractsCount,
		UpgradesCount:     input.UpgradesCount,
		TotalUpgradeValue: input.TotalUpgradeValue,
		InsurancePackages: normalizePackages(input.InsurancePackages),
		Notes:             input.Notes,
	}

	created, err := s.entryRepo.Create(entry)
	if err != nil {
		return nil, err
	}

	s.refreshSnapshot(agentID)

	logrus.WithFields(logrus.Fields{
		"agent_id": agentID,
		"entry_id": created.ID,
		"date":     created.Date.Format(time.DateOnly),
	}).Info("daily entry created")

	return created, nil
}

func (s *Service) Update(agentID, entryID string, input *EntryInput) (*domain.DailyEntry, error) {
	if _, err := validateInput(input); err != nil && !errors.Is(err, ErrDateRequired) {
		return nil, err
	}

	existing, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, errors.Wrap(err, "loading entry")
	}
	if existing == nil {
		return nil, ErrEntryNotFound
	}
	if existing.AgentID != agentID {
		return nil, ErrEntryDenied
	}

	existing.ContractsCount = input.ContractsCount
	existing.UpgradesCount = input.UpgradesCount
	existing.TotalUpgradeValue = input.TotalUpgradeValue
	existing.InsurancePackages = normalizePackages(input.InsurancePackages)
	existing.Notes = input.Notes

	if err := s.entryRepo.Update(existing); err != nil {
		return nil, err
	}

	s.refreshSnapshot(agentID)

	return existing, nil
}

func (s *Service) GetByDate(agentID string, date time.Time) (*domain.DailyEntry, error) {
	return s.entryRepo.GetByAgentAndDate(agentID, date)
}

func (s *Service) List(agentID string, filters *ListFilters) ([]*domain.DailyEntry, error) {
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		return s.entryRepo.ListByDateRange(agentID, *filters.StartDate, *filters.EndDate)
	}

	limit := defaultListLimit
	if filters != nil && filters.Limit > 0 {
		limit = filters.Limit
	}

	return s.entryRepo.ListByAgent(agentID, limit)
}

// refreshSnapshot is best effort. A failed refresh must not fail the
// write that triggered it; the nightly cron repairs any gap.
func (s *Service) refreshSnapshot(agentID string) {
	if _, err := s.snapshotter.Refresh(agentID); err != nil {
		logrus.WithError(err).WithField("agent_id", agentID).Warn("refreshing performance snapshot")
	}
}

func validateInput(input *EntryInput) (*time.Time, error) {
	if input.ContractsCount < 0 || input.UpgradesCount < 0 || input.TotalUpgradeValue < 0 {
		return nil, ErrNegativeValues
	}
	if input.UpgradesCount > input.ContractsCount {
		return nil, ErrUpgradesExceedContracts
	}
	for _, pkg := range input.InsurancePackages {
		if !pkg.PackageType.Valid() {
			return nil, ErrInvalidPackageTier
		}
		if pkg.Count < 0 || pkg.Value < 0 {
			return nil, ErrNegativeValues
		}
	}

	if input.Date == "" {
		return nil, ErrDateRequired
	}
	date := utils.ParseDate(input.Date)
	if date == nil {
		return nil, ErrInvalidDate
	}

	return date, nil
}

func normalizePackages(packages []domain.InsurancePackage) []domain.InsurancePackage {
	if packages == nil {
		return []domain.InsurancePackage{}
	}
	return packages
}
