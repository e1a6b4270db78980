package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/rylessKechit/salesup/infrastructure/repository/mocks"
	"github.com/rylessKechit/salesup/internal/domain"
	performingmocks "github.com/rylessKechit/salesup/internal/usecases/performing/mocks"
)

func TestService_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotter := performingmocks.NewMockSnapshotter(ctrl)
	mockEntryRepo := repomocks.NewMockDailyEntryRepository(ctrl)

	service := NewService(mockSnapshotter, mockEntryRepo)

	snapshot := &domain.PerformanceSnapshot{
		AgentID: "agent-1",
		Metrics: *weakMetrics(),
	}

	t.Run("produces the analysis from snapshot and entries", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-1").Return(snapshot, nil)
		mockEntryRepo.EXPECT().ListByAgent("agent-1", defaultAnalysisDays).Return(nil, nil)

		analysis, err := service.Analyze("agent-1", AnalysisOptions{})

		require.NoError(t, err)
		require.NotNil(t, analysis)
		assert.NotEmpty(t, analysis.Insights)
		assert.NotEmpty(t, analysis.Recommendations)
	})

	t.Run("honors the requested window", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-1").Return(snapshot, nil)
		mockEntryRepo.EXPECT().ListByAgent("agent-1", 30).Return(nil, nil)

		_, err := service.Analyze("agent-1", AnalysisOptions{Days: 30})

		assert.NoError(t, err)
	})

	t.Run("filters insights by focus area", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-1").Return(snapshot, nil)
		mockEntryRepo.EXPECT().ListByAgent("agent-1", defaultAnalysisDays).Return(nil, nil)

		analysis, err := service.Analyze("agent-1", AnalysisOptions{FocusArea: domain.CategoryInsurance})

		require.NoError(t, err)
		require.NotEmpty(t, analysis.Insights)
		for _, insight := range analysis.Insights {
			assert.Equal(t, domain.CategoryInsurance, insight.Category)
		}
	})

	t.Run("returns not enough data without a snapshot", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-2").Return(nil, nil)

		analysis, err := service.Analyze("agent-2", AnalysisOptions{})

		assert.ErrorIs(t, err, ErrNotEnoughData)
		assert.Nil(t, analysis)
	})

	t.Run("wraps snapshot loading failures", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-3").Return(nil, assert.AnError)

		analysis, err := service.Analyze("agent-3", AnalysisOptions{})

		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, analysis)
	})
}

func TestService_Weaknesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotter := performingmocks.NewMockSnapshotter(ctrl)
	mockEntryRepo := repomocks.NewMockDailyEntryRepository(ctrl)

	service := NewService(mockSnapshotter, mockEntryRepo)

	t.Run("detects weaknesses from snapshot and last ten entries", func(t *testing.T) {
		snapshot := &domain.PerformanceSnapshot{
			AgentID: "agent-1",
			Metrics: domain.PerformanceMetrics{
				InsuranceRate:    40,
				UpgradeRate:      35,
				PerformanceScore: 80,
				ConsistencyScore: 75,
			},
		}

		mockSnapshotter.EXPECT().Latest("agent-1").Return(snapshot, nil)
		mockEntryRepo.EXPECT().ListByAgent("agent-1", 10).Return(nil, nil)

		report, err := service.Weaknesses("agent-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"insurance_rate"}, report.Weaknesses)
	})

	t.Run("returns not enough data without a snapshot", func(t *testing.T) {
		mockSnapshotter.EXPECT().Latest("agent-2").Return(nil, nil)

		report, err := service.Weaknesses("agent-2")

		assert.ErrorIs(t, err, ErrNotEnoughData)
		assert.Nil(t, report)
	})
}
