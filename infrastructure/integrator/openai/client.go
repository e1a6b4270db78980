package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/domain"
)

// ConversationClient turns a roleplay transcript into the next customer line.
// A nil implementation means OpenAI is not configured and callers fall back
// to canned responses.
type ConversationClient interface {
	Complete(ctx context.Context, messages []domain.RoleplayMessage, temperature float32, maxTokens int) (string, error)
}

type client struct {
	api   *goopenai.Client
	model string
}

// NewClient builds a ConversationClient, or nil when no API key is configured
func NewClient(cfg *config.Config) ConversationClient {
	if cfg.OpenAI.APIKey == "" {
		return nil
	}

	return &client{
		api:   goopenai.NewClient(cfg.OpenAI.APIKey),
		model: cfg.OpenAI.Model,
	}
}

func (c *client) Complete(ctx context.Context, messages []domain.RoleplayMessage, temperature float32, maxTokens int) (string, error) {
	chatMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
