package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rylessKechit/salesup/infrastructure/integrator/openai"
	openaimocks "github.com/rylessKechit/salesup/infrastructure/integrator/openai/mocks"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(client openai.ConversationClient) *Service {
	store := NewSessionStore(30 * time.Minute)
	return &Service{
		client:       client,
		store:        store,
		maxExchanges: 10,
		now:          func() time.Time { return testNow },
		pickIndex:    func(n int) int { return 0 },
	}
}

func TestService_Start_DevMode(t *testing.T) {
	service := newTestService(nil)

	result, err := service.Start(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, result.DevMode)
	assert.NotEmpty(t, result.SessionID)
	// pickIndex pinned to zero selects the first persona and scenario
	assert.Equal(t, customerPersonas[0].Type, result.CustomerType)
	assert.Equal(t, scenarios[0], result.Scenario)
	assert.Equal(t, defaultOpenings[customerPersonas[0].Type], result.InitialMessage)

	session := service.store.Get(result.SessionID)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.Len(t, session.Messages, 2)
}

func TestService_Start_WithClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("opens with the generated customer line", func(t *testing.T) {
		client := openaimocks.NewMockConversationClient(ctrl)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("Hello, I booked a compact for this morning.", nil)

		service := newTestService(client)

		result, err := service.Start(context.Background(), "user-1")

		require.NoError(t, err)
		assert.False(t, result.DevMode)
		assert.Equal(t, "Hello, I booked a compact for this morning.", result.InitialMessage)
	})

	t.Run("falls back to the canned opening on failure", func(t *testing.T) {
		client := openaimocks.NewMockConversationClient(ctrl)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("", assert.AnError)

		service := newTestService(client)

		result, err := service.Start(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, fallbackOpening, result.InitialMessage)
	})
}

func TestService_Respond(t *testing.T) {
	startSession := func(service *Service) string {
		result, err := service.Start(context.Background(), "user-1")
		require.NoError(t, err)
		return result.SessionID
	}

	t.Run("returns the customer response and keeps the session alive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := openaimocks.NewMockConversationClient(ctrl)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("Opening line.", nil)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("That sounds expensive.", nil)

		service := newTestService(client)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-1", sessionID, "Would you like our Smart insurance package?")

		require.NoError(t, err)
		assert.False(t, result.SessionEnded)
		assert.Equal(t, "That sounds expensive.", result.CustomerResponse)
		assert.Equal(t, 1, result.ExchangeCount)
		assert.NotNil(t, service.store.Get(sessionID))
	})

	t.Run("dev mode echoes the canned customer line", func(t *testing.T) {
		service := newTestService(nil)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-1", sessionID, "Hello!")

		require.NoError(t, err)
		assert.Equal(t, "I don't understand, could you repeat that?", result.CustomerResponse)
	})

	t.Run("a goodbye ends the session with a neutral dev evaluation", func(t *testing.T) {
		service := newTestService(nil)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-1", sessionID, "Goodbye and thanks for your visit!")

		require.NoError(t, err)
		assert.True(t, result.SessionEnded)
		require.NotNil(t, result.Evaluation)
		assert.Equal(t, 7, result.Evaluation.Overall)
		assert.Nil(t, service.store.Get(sessionID))
	})

	t.Run("the exchange limit ends the session", func(t *testing.T) {
		service := newTestService(nil)
		service.maxExchanges = 2
		sessionID := startSession(service)

		first, err := service.Respond(context.Background(), "user-1", sessionID, "First line")
		require.NoError(t, err)
		assert.False(t, first.SessionEnded)

		second, err := service.Respond(context.Background(), "user-1", sessionID, "Second line")
		require.NoError(t, err)
		assert.True(t, second.SessionEnded)
	})

	t.Run("parses the evaluation returned by the model", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := openaimocks.NewMockConversationClient(ctrl)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("Opening line.", nil)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.3), 400).
			Return(`{"greeting": 8, "argumentation": 6, "objection_handling": 7, "closing": 5, "overall": 6, "feedback": ["Ask more questions"]}`, nil)

		service := newTestService(client)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-1", sessionID, "Goodbye!")

		require.NoError(t, err)
		require.NotNil(t, result.Evaluation)
		assert.Equal(t, 8, result.Evaluation.Greeting)
		assert.Equal(t, 6, result.Evaluation.Argumentation)
		// Overall is recomputed from the four dimensions, rounded
		assert.Equal(t, 7, result.Evaluation.Overall)
		assert.Equal(t, []string{"Ask more questions"}, result.Evaluation.Feedback)
	})

	t.Run("falls back to neutral scores on unparseable output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := openaimocks.NewMockConversationClient(ctrl)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.8), 150).
			Return("Opening line.", nil)
		client.EXPECT().
			Complete(gomock.Any(), gomock.Any(), float32(0.3), 400).
			Return("Sorry, I cannot evaluate that.", nil)

		service := newTestService(client)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-1", sessionID, "Goodbye!")

		require.NoError(t, err)
		require.NotNil(t, result.Evaluation)
		assert.Equal(t, 7, result.Evaluation.Greeting)
		assert.Equal(t, 7, result.Evaluation.Overall)
	})

	t.Run("rejects another user's session", func(t *testing.T) {
		service := newTestService(nil)
		sessionID := startSession(service)

		result, err := service.Respond(context.Background(), "user-2", sessionID, "Hello!")

		assert.ErrorIs(t, err, ErrSessionDenied)
		assert.Nil(t, result)
	})

	t.Run("rejects an unknown session", func(t *testing.T) {
		service := newTestService(nil)

		result, err := service.Respond(context.Background(), "user-1", "missing", "Hello!")

		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, result)
	})

	t.Run("rejects an empty message", func(t *testing.T) {
		service := newTestService(nil)

		result, err := service.Respond(context.Background(), "user-1", "any", "")

		assert.ErrorIs(t, err, ErrMissingMessage)
		assert.Nil(t, result)
	})
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 7},
		{-3, 7},
		{1, 1},
		{5, 5},
		{10, 10},
		{11, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, clampScore(tt.input))
	}
}
