package mcq

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Embedder produces embedding vectors for chunks and probe queries. All
// vectors returned for one generation run must share a dimension.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

// defaultProbeQueries samples diverse relevant context; constant across all
// courses.
var defaultProbeQueries = []string{
	"key concepts and definitions",
	"important topics and theories",
	"main principles and methods",
	"fundamental concepts",
	"important examples and applications",
}

const (
	defaultProbeTopK       = 3
	defaultBackfillTrigger = 2
	defaultBackfillTarget  = 3
)

// Selector picks the chunks most relevant to a fixed probe-query set and
// backfills from the remaining pool when the selection is too small for the
// requested question count.
type Selector struct {
	embedder Embedder
	logger   zerolog.Logger

	ProbeQueries []string
	ProbeTopK    int
	// Backfill kicks in below numQuestions*BackfillTrigger selected chunks
	// and fills up to numQuestions*BackfillTarget.
	BackfillTrigger int
	BackfillTarget  int
}

func NewSelector(embedder Embedder, logger zerolog.Logger) *Selector {
	return &Selector{
		embedder:        embedder,
		logger:          logger,
		ProbeQueries:    defaultProbeQueries,
		ProbeTopK:       defaultProbeTopK,
		BackfillTrigger: defaultBackfillTrigger,
		BackfillTarget:  defaultBackfillTarget,
	}
}

// SelectContext embeds all chunks, runs one nearest-neighbor search per
// probe query and unions the hits (a chunk retrieved by several probes
// counts once). An embedding failure is fatal for the request; there is no
// partial degradation. Each call builds and owns its own VectorIndex.
func (s *Selector) SelectContext(ctx context.Context, chunks []string, numQuestions int) ([]string, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyContext
	}

	vectors, err := s.embedder.EmbedMany(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	index, err := NewVectorIndex(vectors)
	if err != nil {
		return nil, fmt.Errorf("build vector index failed: %w", err)
	}

	seen := make(map[int]struct{}, len(chunks))
	var selected []int
	for _, query := range s.ProbeQueries {
		qv, err := s.embedder.EmbedOne(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed probe query failed: %w", err)
		}
		hits, err := index.Search(qv, s.ProbeTopK)
		if err != nil {
			return nil, fmt.Errorf("probe search failed: %w", err)
		}
		for _, h := range hits {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			selected = append(selected, h)
		}
	}

	// Below the trigger there is not enough raw material for the generator's
	// own over-generation latitude; top up from unselected chunks in
	// document order.
	if len(selected) < numQuestions*s.BackfillTrigger {
		target := numQuestions * s.BackfillTarget
		for i := range chunks {
			if len(selected) >= target {
				break
			}
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			selected = append(selected, i)
		}
		s.logger.Debug().
			Int("selected", len(selected)).
			Int("num_questions", numQuestions).
			Msg("backfilled relevant context")
	}

	if len(selected) == 0 {
		return nil, ErrEmptyContext
	}

	result := make([]string, len(selected))
	for i, idx := range selected {
		result[i] = chunks[idx]
	}
	return result, nil
}
