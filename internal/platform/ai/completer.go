// Package ai wraps the upstream chat model behind a small Completer
// interface so domain code never touches the OpenAI SDK directly and tests
// can substitute a fake.
package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Message roles, matching the roles persisted in chat history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat completion prompt.
type Message struct {
	Role    string
	Content string
}

// Completer produces an assistant reply for a composed prompt.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client is a Completer backed by the OpenAI chat completions API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a Completer backed by the OpenAI chat completions API.
// baseURL overrides the API endpoint for compatible providers; leave empty
// for the default.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the prompt to the model and returns the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
