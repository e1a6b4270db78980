package training

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/integrator/openai"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/utils"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionDenied   = errors.New("session belongs to another user")
	ErrMissingMessage  = errors.New("agent message is required")
)

// Trainer runs simulated customer conversations for sales practice
type Trainer interface {
	Start(ctx context.Context, userID string) (*StartResult, error)
	Respond(ctx context.Context, userID, sessionID, agentMessage string) (*RespondResult, error)
}

// StartResult is returned when a new roleplay session opens
type StartResult struct {
	SessionID      string `json:"session_id"`
	Scenario       string `json:"scenario"`
	CustomerType   string `json:"customer_type"`
	InitialMessage string `json:"initial_message"`
	Instructions   string `json:"instructions"`
	DevMode        bool   `json:"dev_mode,omitempty"`
}

// RespondResult is one turn of the conversation. Evaluation is set
// only when the session ends.
type RespondResult struct {
	CustomerResponse string                     `json:"customer_response,omitempty"`
	SessionEnded     bool                       `json:"session_ended"`
	ExchangeCount    int                        `json:"exchange_count,omitempty"`
	Evaluation       *domain.RoleplayEvaluation `json:"evaluation,omitempty"`
}

type Service struct {
	client       openai.ConversationClient
	store        *SessionStore
	maxExchanges int
	now          func() time.Time
	pickIndex    func(n int) int
}

func NewService(client openai.ConversationClient, store *SessionStore, cfg *config.Config) *Service {
	return &Service{
		client:       client,
		store:        store,
		maxExchanges: cfg.Training.MaxExchanges,
		now:          time.Now,
		pickIndex:    rand.Intn,
	}
}

// Start opens a roleplay session with a random persona and scenario.
// Without an OpenAI client the customer opens with a canned line.
func (s *Service) Start(ctx context.Context, userID string) (*StartResult, error) {
	persona := customerPersonas[s.pickIndex(len(customerPersonas))]
	scenario := scenarios[s.pickIndex(len(scenarios))]

	sessionID, err := utils.GenerateSessionID()
	if err != nil {
		return nil, errors.Wrap(err, "generating session id")
	}

	if s.client == nil {
		opening, ok := defaultOpenings[persona.Type]
		if !ok {
			opening = fallbackOpening
		}

		s.store.Put(&domain.RoleplaySession{
			ID:           sessionID,
			UserID:       userID,
			CustomerType: persona.Type,
			Scenario:     scenario,
			Messages: []domain.RoleplayMessage{
				{Role: "system", Content: fmt.Sprintf("Development mode, %s customer", persona.Type)},
				{Role: "assistant", Content: opening},
			},
			StartedAt: s.now(),
		})

		return &StartResult{
			SessionID:      sessionID,
			Scenario:       scenario,
			CustomerType:   persona.Type,
			InitialMessage: opening,
			Instructions:   fmt.Sprintf("DEV MODE, %s customer. Respond naturally!", persona.Type),
			DevMode:        true,
		}, nil
	}

	systemPrompt := buildSystemPrompt(persona, scenario, s.maxExchanges)
	messages := []domain.RoleplayMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Start the conversation. Introduce yourself briefly and express your need in English."},
	}

	opening, err := s.client.Complete(ctx, messages, 0.8, 150)
	if err != nil {
		logrus.WithError(err).Warn("generating roleplay opening")
		opening = fallbackOpening
	}

	s.store.Put(&domain.RoleplaySession{
		ID:           sessionID,
		UserID:       userID,
		CustomerType: persona.Type,
		Scenario:     scenario,
		Messages: []domain.RoleplayMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "assistant", Content: opening},
		},
		StartedAt: s.now(),
	})

	return &StartResult{
		SessionID:      sessionID,
		Scenario:       scenario,
		CustomerType:   persona.Type,
		InitialMessage: opening,
		Instructions:   fmt.Sprintf("You will interact with a %s customer. Discover their need and try to maximize the sale.", persona.Type),
	}, nil
}

// Respond feeds the agent's line into the session. The session ends
// after the exchange limit or a closing phrase, returning the final
// evaluation instead of a customer response.
func (s *Service) Respond(ctx context.Context, userID, sessionID, agentMessage string) (*RespondResult, error) {
	if agentMessage == "" {
		return nil, ErrMissingMessage
	}

	session := s.store.Get(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrSessionDenied
	}

	session.Messages = append(session.Messages, domain.RoleplayMessage{Role: "user", Content: agentMessage})
	session.ExchangeCount++

	if s.shouldEnd(session, agentMessage) {
		evaluation := s.evaluate(ctx, session)
		s.store.Delete(sessionID)

		return &RespondResult{
			SessionEnded: true,
			Evaluation:   evaluation,
		}, nil
	}

	customerResponse := "I don't understand, could you repeat that?"
	if s.client != nil {
		response, err := s.client.Complete(ctx, session.Messages, 0.8, 150)
		if err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Warn("generating customer response")
		} else {
			customerResponse = response
		}
	}

	session.Messages = append(session.Messages, domain.RoleplayMessage{Role: "assistant", Content: customerResponse})
	s.store.Put(session)

	return &RespondResult{
		CustomerResponse: customerResponse,
		SessionEnded:     false,
		ExchangeCount:    session.ExchangeCount,
	}, nil
}

func (s *Service) shouldEnd(session *domain.RoleplaySession, agentMessage string) bool {
	lower := strings.ToLower(agentMessage)
	return session.ExchangeCount >= s.maxExchanges ||
		strings.Contains(lower, "end of session") ||
		strings.Contains(lower, "goodbye")
}

// evaluate scores the finished conversation. Any OpenAI failure falls
// back to neutral scores so the agent always gets a result.
func (s *Service) evaluate(ctx context.Context, session *domain.RoleplaySession) *domain.RoleplayEvaluation {
	if s.client == nil {
		return neutralEvaluation("Keep up the effort!")
	}

	transcript := make([]string, 0, len(session.Messages))
	for _, m := range session.Messages {
		switch m.Role {
		case "user":
			transcript = append(transcript, "AGENT: "+m.Content)
		case "assistant":
			transcript = append(transcript, "CUSTOMER: "+m.Content)
		}
	}

	prompt := fmt.Sprintf(`You are a sales expert at a car rental company. Evaluate this conversation between an agent and a %s customer.

CONVERSATION:
%s

SCORE each dimension out of 10:
1. GREETING: politeness, warmth, building trust
2. ARGUMENTATION: clarity of benefits, adaptation to the customer
3. OBJECTION_HANDLING: techniques for answering reluctance
4. CLOSING: finalizing and concluding the sale

RETURN only a JSON object:
{
  "greeting": score,
  "argumentation": score,
  "objection_handling": score,
  "closing": score,
  "overall": average,
  "feedback": ["tip1", "tip2", "tip3"]
}

Be supportive but constructive in your tips.`, session.CustomerType, strings.Join(transcript, "\n"))

	messages := []domain.RoleplayMessage{
		{Role: "system", Content: "You are an expert evaluator. Answer only with valid JSON."},
		{Role: "user", Content: prompt},
	}

	raw, err := s.client.Complete(ctx, messages, 0.3, 400)
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.ID).Warn("evaluating roleplay session")
		return neutralEvaluation("Evaluation unavailable, but keep up the effort!")
	}

	var evaluation domain.RoleplayEvaluation
	if err := json.Unmarshal([]byte(raw), &evaluation); err != nil {
		logrus.WithError(err).WithField("session_id", session.ID).Warn("parsing roleplay evaluation")
		return neutralEvaluation("Evaluation unavailable, but keep up the effort!")
	}

	evaluation.Greeting = clampScore(evaluation.Greeting)
	evaluation.Argumentation = clampScore(evaluation.Argumentation)
	evaluation.ObjectionHandling = clampScore(evaluation.ObjectionHandling)
	evaluation.Closing = clampScore(evaluation.Closing)
	evaluation.Overall = (evaluation.Greeting + evaluation.Argumentation + evaluation.ObjectionHandling + evaluation.Closing + 2) / 4
	if len(evaluation.Feedback) == 0 {
		evaluation.Feedback = []string{"Keep up the effort!"}
	}

	return &evaluation
}

func neutralEvaluation(feedback string) *domain.RoleplayEvaluation {
	return &domain.RoleplayEvaluation{
		Greeting:          7,
		Argumentation:     7,
		ObjectionHandling: 7,
		Closing:           7,
		Overall:           7,
		Feedback:          []string{feedback},
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 7
	}
	if score > 10 {
		return 10
	}
	return score
}

func buildSystemPrompt(persona domain.CustomerPersona, scenario string, maxExchanges int) string {
	return fmt.Sprintf(`You are a %s customer at a car rental agency.

CONTEXT: %s
BEHAVIOR: %s

RULES:
1. Play the role realistically and consistently
2. NEVER reveal your type or scenario explicitly
3. React naturally to agent proposals
4. Be %s in your responses
5. Conversation lasts max %d exchanges
6. If the agent concludes well, accept or refuse according to your type
7. Stay polite but firm in your character
8. Speak ONLY in English

Start by briefly introducing yourself and expressing your need without revealing the scenario.`,
		persona.Type, scenario, persona.Behavior, persona.Type, maxExchanges)
}
