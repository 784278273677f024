package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"julianmorley.ca/con-plar/retail-assistant/pkg/ai"
)

const embeddingKeyPrefix = "embedding:"

// EmbeddingCache memoizes an ai.Embedder by text content. Only vectors
// returned by the embedding service are stored.
type EmbeddingCache struct {
	client *redisclient.Client
	inner  ai.Embedder
	ttl    time.Duration
	logger *slog.Logger
}

func NewEmbeddingCache(client *redisclient.Client, inner ai.Embedder, ttl time.Duration, logger *slog.Logger) *EmbeddingCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingCache{client: client, inner: inner, ttl: ttl, logger: logger}
}

func embeddingKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return embeddingKeyPrefix + hex.EncodeToString(sum[:])
}

// Embed serves cached vectors and forwards only the misses to the inner embedder.
// A Redis outage degrades to calling the inner embedder for everything.
func (c *EmbeddingCache) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = embeddingKey(text)
	}

	vectors := make([][]float64, len(texts))
	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("embedding cache read failed", slog.Any("error", err))
		cached = make([]any, len(texts))
	}

	var missIdx []int
	var missTexts []string
	for i, raw := range cached {
		s, ok := raw.(string)
		if ok {
			var vec []float64
			if err := json.Unmarshal([]byte(s), &vec); err == nil {
				vectors[i] = vec
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, texts[i])
	}
	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, errors.New("embedder returned wrong number of vectors")
	}

	pipe := c.client.Pipeline()
	for j, i := range missIdx {
		vectors[i] = fresh[j]
		encoded, err := json.Marshal(fresh[j])
		if err != nil {
			return nil, fmt.Errorf("encode embedding: %w", err)
		}
		pipe.Set(ctx, keys[i], encoded, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("embedding cache write failed", slog.Any("error", err))
	}
	return vectors, nil
}
