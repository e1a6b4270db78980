// Package scheduler holds the cron driven background jobs
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
)

// SyncStatus reports the state of a background job for the cron
// status endpoint.
type SyncStatus struct {
	Enabled         bool       `json:"enabled"`
	CronSchedule    string     `json:"cron_schedule"`
	Running         bool       `json:"running"`
	LastStartedAt   *time.Time `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// SnapshotRefreshService recomputes every active agent's performance
// snapshot on a nightly schedule. The per-write refresh keeps snapshots
// current during the day; this job repairs agents whose refresh failed
// and rolls the trailing window forward for agents with no activity.
type SnapshotRefreshService struct {
	scheduler       *gocron.Scheduler
	userRepo        repository.UserRepository
	snapshotter     performing.Snapshotter
	cronSchedule    string
	enabled         bool
	syncRunning     bool
	syncMutex       sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewSnapshotRefreshService(
	userRepo repository.UserRepository,
	snapshotter performing.Snapshotter,
	cfg *config.Config,
) *SnapshotRefreshService {
	logrus.WithField("cron_schedule", cfg.SnapshotRefreshSync.CronSchedule).
		Info("snapshot refresh scheduler configured")

	return &SnapshotRefreshService{
		scheduler:    gocron.NewScheduler(time.Local),
		userRepo:     userRepo,
		snapshotter:  snapshotter,
		cronSchedule: cfg.SnapshotRefreshSync.CronSchedule,
		enabled:      cfg.SnapshotRefreshSync.Enabled,
	}
}

func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("snapshot refresh cron disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.cronSchedule).Info("starting snapshot refresh cron")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		if err := s.RefreshAllSnapshots(); err != nil {
			logrus.WithError(err).Error("snapshot refresh run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling snapshot refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping snapshot refresh cron")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshAllSnapshots recomputes the snapshot of every active agent.
// Individual failures are logged and skipped so one bad agent does not
// abort the whole run.
func (s *SnapshotRefreshService) RefreshAllSnapshots() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("snapshot refresh already running")
		return nil
	}
	s.syncRunning = true
	s.lastStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	agents, err := s.userRepo.ListActiveAgents()
	if err != nil {
		return fmt.Errorf("listing active agents: %w", err)
	}

	refreshed := 0
	for _, agent := range agents {
		if _, err := s.snapshotter.Refresh(agent.ID); err != nil {
			logrus.WithError(err).WithField("agent_id", agent.ID).Error("refreshing agent snapshot")
			continue
		}
		refreshed++
	}

	logrus.WithFields(logrus.Fields{
		"agents":    len(agents),
		"refreshed": refreshed,
	}).Info("snapshot refresh run completed")

	return nil
}

func (s *SnapshotRefreshService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{
		Enabled:      s.enabled,
		CronSchedule: s.cronSchedule,
		Running:      s.syncRunning,
	}
	if !s.lastStartedAt.IsZero() {
		started := s.lastStartedAt
		status.LastStartedAt = &started
	}
	if !s.lastCompletedAt.IsZero() {
		completed := s.lastCompletedAt
		status.LastCompletedAt = &completed
	}

	return status
}
