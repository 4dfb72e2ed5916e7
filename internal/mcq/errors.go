package mcq

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput       = errors.New("empty input text")
	ErrNoValidChunks    = errors.New("no valid chunks after filtering")
	ErrEmptyContext     = errors.New("no relevant context selected")
	ErrGenerationFailed = errors.New("mcq generation failed")
)

// ParseError is returned when every parsing strategy failed to extract
// questions from the model output. Raw keeps the full text for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse mcq response (%d bytes of raw text)", len(e.Raw))
}
