package coaching

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
)

const defaultAnalysisDays = 14

// ErrNotEnoughData is returned when the agent has no computed snapshot
// yet, meaning no daily entries have been recorded.
var ErrNotEnoughData = errors.New("not enough data for analysis")

// Service implements Coach on top of the aggregated snapshots and the
// raw daily entries.
type Service struct {
	snapshotter performing.Snapshotter
	entryRepo   repository.DailyEntryRepository
}

func NewService(snapshotter performing.Snapshotter, entryRepo repository.DailyEntryRepository) *Service {
	return &Service{
		snapshotter: snapshotter,
		entryRepo:   entryRepo,
	}
}

// Analyze loads the latest snapshot plus recent entries and runs the
// rule engine over them.
func (s *Service) Analyze(agentID string, opts AnalysisOptions) (*domain.Analysis, error) {
	days := opts.Days
	if days <= 0 {
		days = defaultAnalysisDays
	}

	snapshot, err := s.snapshotter.Latest(agentID)
	if err != nil {
		return nil, errors.Wrap(err, "loading performance snapshot")
	}
	if snapshot == nil {
		return nil, ErrNotEnoughData
	}

	entries, err := s.entryRepo.ListByAgent(agentID, days)
	if err != nil {
		return nil, errors.Wrap(err, "loading recent entries")
	}

	analysis, err := Analyze(&snapshot.Metrics, entries)
	if err != nil {
		return nil, err
	}

	if opts.FocusArea != "" {
		analysis.Insights = filterByCategory(analysis.Insights, opts.FocusArea)
	}

	logrus.WithFields(logrus.Fields{
		"agent_id":      agentID,
		"overall_score": analysis.OverallScore,
		"insights":      len(analysis.Insights),
	}).Info("coaching analysis generated")

	return analysis, nil
}

// Weaknesses flags the agent's improvement areas from its snapshot and
// last ten entries.
func (s *Service) Weaknesses(agentID string) (*domain.WeaknessReport, error) {
	snapshot, err := s.snapshotter.Latest(agentID)
	if err != nil {
		return nil, errors.Wrap(err, "loading performance snapshot")
	}
	if snapshot == nil {
		return nil, ErrNotEnoughData
	}

	entries, err := s.entryRepo.ListByAgent(agentID, 10)
	if err != nil {
		return nil, errors.Wrap(err, "loading recent entries")
	}

	return DetectWeaknesses(&snapshot.Metrics, entries), nil
}

func filterByCategory(insights []*domain.Insight, category domain.InsightCategory) []*domain.Insight {
	filtered := make([]*domain.Insight, 0, len(insights))
	for _, in := range insights {
		if in.Category == category {
			filtered = append(filtered, in)
		}
	}
	return filtered
}
