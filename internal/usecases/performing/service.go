package performing

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/domain"
)

// Service recomputes the trailing-window snapshot after every entry write
// and persists it through the snapshot repository. The computation itself is
// ComputeSnapshot; this wrapper only feeds and stores it.
type Service struct {
	entryRepo    repository.DailyEntryRepository
	snapshotRepo repository.SnapshotRepository
	windowDays   int
	now          func() time.Time
}

func NewService(entryRepo repository.DailyEntryRepository, snapshotRepo repository.SnapshotRepository) *Service {
	return &Service{
		entryRepo:    entryRepo,
		snapshotRepo: snapshotRepo,
		windowDays:   DefaultWindowDays,
		now:          time.Now,
	}
}

func (s *Service) Refresh(agentID string) (*domain.PerformanceSnapshot, error) {
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -s.windowDays)

	entries, err := s.entryRepo.ListByDateRange(agentID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithField("agent_id", agentID).Error("performing: failed to load entries for snapshot")
		return nil, err
	}

	snapshot, err := ComputeSnapshot(agentID, entries, s.windowDays, endDate)
	if err != nil {
		return nil, err
	}

	if snapshot == nil {
		logrus.WithField("agent_id", agentID).Debug("performing: no entries in window, skipping snapshot")
		return nil, nil
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		logrus.WithError(err).WithField("agent_id", agentID).Error("performing: failed to persist snapshot")
		return nil, err
	}

	return snapshot, nil
}

func (s *Service) Latest(agentID string) (*domain.PerformanceSnapshot, error) {
	snapshot, err := s.snapshotRepo.GetByAgent(agentID, domain.PeriodMonthly)
	if err != nil {
		return nil, err
	}

	if snapshot == nil {
		// First access: compute on demand
		return s.Refresh(agentID)
	}

	return snapshot, nil
}
