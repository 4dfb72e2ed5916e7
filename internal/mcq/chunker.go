package mcq

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultChunkSize     = 1000
	defaultChunkOverlap  = 200
	defaultMinChunkChars = 50
)

// Chunker splits raw document text into overlapping, size-bounded segments.
// Returned order is the document's reading order; downstream windowing
// ("first N chunks") relies on it.
type Chunker struct {
	ChunkSize     int
	ChunkOverlap  int
	MinChunkChars int
}

func NewChunker(size, overlap, minChars int) *Chunker {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
	}
	if minChars <= 0 {
		minChars = defaultMinChunkChars
	}
	return &Chunker{
		ChunkSize:     size,
		ChunkOverlap:  overlap,
		MinChunkChars: minChars,
	}
}

// Chunk splits text recursively on paragraph breaks, then line breaks, then
// spaces, then single characters, and drops fragments at or below the
// minimum length (stray headers, footers and similar noise).
func (c *Chunker) Chunk(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.ChunkSize),
		textsplitter.WithChunkOverlap(c.ChunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
	)
	raw, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text failed: %w", err)
	}

	chunks := make([]string, 0, len(raw))
	for _, chunk := range raw {
		if len(strings.TrimSpace(chunk)) > c.MinChunkChars {
			chunks = append(chunks, chunk)
		}
	}
	if len(chunks) == 0 {
		return nil, ErrNoValidChunks
	}
	return chunks, nil
}
