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
)

// InvitationExpiryService marks overdue pending invitations as expired.
// Expiry is also checked lazily when a token is validated; this job
// keeps the manager dashboards honest for links nobody ever opened.
type InvitationExpiryService struct {
	scheduler       *gocron.Scheduler
	invitationRepo  repository.InvitationRepository
	cronSchedule    string
	enabled         bool
	syncRunning     bool
	syncMutex       sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewInvitationExpiryService(
	invitationRepo repository.InvitationRepository,
	cfg *config.Config,
) *InvitationExpiryService {
	logrus.WithField("cron_schedule", cfg.InvitationExpirySync.CronSchedule).
		Info("invitation expiry scheduler configured")

	return &InvitationExpiryService{
		scheduler:      gocron.NewScheduler(time.Local),
		invitationRepo: invitationRepo,
		cronSchedule:   cfg.InvitationExpirySync.CronSchedule,
		enabled:        cfg.InvitationExpirySync.Enabled,
	}
}

func (s *InvitationExpiryService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("invitation expiry cron disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.cronSchedule).Info("starting invitation expiry cron")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		if err := s.ExpireInvitations(); err != nil {
			logrus.WithError(err).Error("invitation expiry run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling invitation expiry: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping invitation expiry cron")
		s.scheduler.Stop()
	}()

	return nil
}

// ExpireInvitations flips every overdue pending invitation to expired
func (s *InvitationExpiryService) ExpireInvitations() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("invitation expiry already running")
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

	expired, err := s.invitationRepo.ExpirePending(time.Now())
	if err != nil {
		return fmt.Errorf("expiring invitations: %w", err)
	}

	logrus.WithField("expired", expired).Info("invitation expiry run completed")
	return nil
}

func (s *InvitationExpiryService) Status() SyncStatus {
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
