package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type Message struct {
	Role    string
	Content string
}

type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api       openai.Client
	model     string
	maxTokens int64
}

func NewClient(apiKey, baseURL, model string, maxTokens int) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		api:       openai.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (c *Client) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(c.maxTokens),
	}
	params.Messages = append(params.Messages, openai.SystemMessage(system))
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
