package dashboarding

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
)

const recentEntriesCount = 7

// Dashboarder assembles the role specific landing page payloads
type Dashboarder interface {
	AgentDashboard(userID string) (*domain.AgentDashboard, error)
	ManagerDashboard(userID string) (*domain.ManagerDashboard, error)
}

type Service struct {
	userRepo       repository.UserRepository
	entryRepo      repository.DailyEntryRepository
	invitationRepo repository.InvitationRepository
	snapshotter    performing.Snapshotter
	now            func() time.Time
}

func NewService(
	userRepo repository.UserRepository,
	entryRepo repository.DailyEntryRepository,
	invitationRepo repository.InvitationRepository,
	snapshotter performing.Snapshotter,
) Dashboarder {
	return &Service{
		userRepo:       userRepo,
		entryRepo:      entryRepo,
		invitationRepo: invitationRepo,
		snapshotter:    snapshotter,
		now:            time.Now,
	}
}

// AgentDashboard bundles the agent's profile, last entries, current
// snapshot and today's entry status.
func (s *Service) AgentDashboard(userID string) (*domain.AgentDashboard, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading user")
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	user.PasswordHash = ""

	entries, err := s.entryRepo.ListByAgent(userID, recentEntriesCount)
	if err != nil {
		return nil, errors.Wrap(err, "loading recent entries")
	}

	snapshot, err := s.snapshotter.Latest(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading performance snapshot")
	}

	today := s.now().Truncate(24 * time.Hour)
	todayEntry, err := s.entryRepo.GetByAgentAndDate(userID, today)
	if err != nil {
		return nil, errors.Wrap(err, "loading today's entry")
	}

	return &domain.AgentDashboard{
		User:               user,
		RecentEntries:      entries,
		PerformanceMetrics: snapshot,
		TodayEntry:         todayEntry,
		HasFilledToday:     todayEntry != nil,
	}, nil
}

// ManagerDashboard bundles the manager's roster with per agent
// metrics, the invitation list and aggregate team stats.
func (s *Service) ManagerDashboard(userID string) (*domain.ManagerDashboard, error) {
	manager, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading user")
	}
	if manager == nil {
		return nil, errors.New("user not found")
	}
	manager.PasswordHash = ""

	agents, err := s.userRepo.ListAgentsByManager(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading agents")
	}

	roster := make([]*domain.AgentWithMetrics, 0, len(agents))
	activeAgents := 0
	for _, agent := range agents {
		agent.PasswordHash = ""
		if agent.Active {
			activeAgents++
		}

		row := &domain.AgentWithMetrics{User: agent}
		snapshot, err := s.snapshotter.Latest(agent.ID)
		if err != nil {
			logrus.WithError(err).WithField("agent_id", agent.ID).Warn("loading agent snapshot")
		} else if snapshot != nil {
			row.PerformanceMetrics = &snapshot.Metrics
		}
		roster = append(roster, row)
	}

	invitations, err := s.invitationRepo.ListByManager(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading invitations")
	}

	pending := 0
	for _, inv := range invitations {
		if inv.Status == domain.InvitationPending {
			pending++
		}
	}

	return &domain.ManagerDashboard{
		Manager:     manager,
		Agents:      roster,
		Invitations: invitations,
		TeamStats: domain.TeamStats{
			TotalAgents:        len(agents),
			ActiveAgents:       activeAgents,
			PendingInvitations: pending,
		},
	}, nil
}
