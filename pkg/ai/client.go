// Package ai wraps the OpenAI-compatible (Azure) endpoints used for product
// vectorization and optional report narration.
package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// ErrDisabled is returned by every operation when no credentials were configured.
var ErrDisabled = errors.New("AI service is not enabled")

type Config struct {
	Endpoint       string
	APIKey         string
	Deployment     string
	EmbeddingModel string
}

// Client holds one OpenAI client and the model names to call it with.
type Client struct {
	api            openai.Client
	deployment     string
	embeddingModel string
}

// NewClient returns nil when endpoint or key is missing; callers treat a nil
// client as the disabled service.
func NewClient(cfg Config, opts ...option.RequestOption) *Client {
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		return nil
	}
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = "gpt-35-turbo"
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}

	opts = append([]option.RequestOption{
		option.WithBaseURL(cfg.Endpoint),
		option.WithAPIKey(cfg.APIKey),
	}, opts...)

	return &Client{
		api:            openai.NewClient(opts...),
		deployment:     deployment,
		embeddingModel: embeddingModel,
	}
}

func (c *Client) Enabled() bool {
	return c != nil
}

func (c *Client) generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", &AIError{Message: "failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// AIError represents an AI service error
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
