package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmbeddingProvider marks transport/auth failures of the embedding API.
var ErrEmbeddingProvider = errors.New("embedding provider failure")

// Many providers cap the number of inputs per embeddings call.
const defaultEmbeddingBatchSize = 10

// EmbeddingProvider adapts the OpenAI-compatible client to the generation
// pipeline's Embedder contract, batching large inputs.
type EmbeddingProvider struct {
	client    *OpenAICompatibleClient
	cfg       EmbeddingConfig
	batchSize int
}

func NewEmbeddingProvider(client *OpenAICompatibleClient, cfg EmbeddingConfig) *EmbeddingProvider {
	return &EmbeddingProvider{
		client:    client,
		cfg:       cfg,
		batchSize: defaultEmbeddingBatchSize,
	}
}

func (p *EmbeddingProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.client.Embeddings(ctx, p.cfg, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingProvider, err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrEmbeddingProvider)
	}
	return vectors[0], nil
}

func (p *EmbeddingProvider) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := p.client.Embeddings(ctx, p.cfg, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmbeddingProvider, err)
		}
		vectors = append(vectors, batch...)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbeddingProvider, len(vectors), len(texts))
	}
	return vectors, nil
}
