package ai

import (
	"context"

	"github.com/openai/openai-go/v2"
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

type OpenAIEmbedder struct {
	client *Client
}

func NewOpenAIEmbedder(client *Client) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: client}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if !e.client.Enabled() {
		return nil, ErrDisabled
	}
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.client.embeddingModel),
	})
	if err != nil {
		return nil, &AIError{Message: "failed to create embeddings", Cause: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &AIError{Message: "embedding count does not match input count"}
	}

	vectors := make([][]float64, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || int(item.Index) >= len(texts) {
			return nil, &AIError{Message: "embedding index out of range"}
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// DisabledEmbedder stands in when no credentials are configured.
type DisabledEmbedder struct{}

func (DisabledEmbedder) Embed(context.Context, []string) ([][]float64, error) {
	return nil, ErrDisabled
}

// NewEmbedder picks the OpenAI embedder when the client is usable.
func NewEmbedder(client *Client) Embedder {
	if !client.Enabled() {
		return DisabledEmbedder{}
	}
	return NewOpenAIEmbedder(client)
}
