package mcq

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Completer invokes the generative text provider with a system and a user
// prompt and returns its raw text output.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const systemPrompt = "You are an expert educational content creator specialized in creating high-quality multiple-choice questions."

// Generator drives prompt → completion → parse → validate, with one extra
// round over a fresh context window when the first yield falls short. The
// second round is a yield retry, not a fault retry: provider and parse
// errors are never retried, they fail the whole call.
type Generator struct {
	completer Completer
	validator *Validator
	logger    zerolog.Logger

	ContextWindow  int
	MaxPromptChars int
}

func NewGenerator(completer Completer, logger zerolog.Logger) *Generator {
	return &Generator{
		completer:      completer,
		validator:      NewValidator(logger),
		logger:         logger,
		ContextWindow:  defaultContextWindow,
		MaxPromptChars: defaultMaxPromptChars,
	}
}

// Generate returns at most numQuestions validated MCQs built from the given
// context chunks. Fewer is possible when both rounds under-yield; that is a
// success with a short list.
func (g *Generator) Generate(ctx context.Context, contextChunks []string, numQuestions int) ([]MCQ, error) {
	mcqs, err := g.round(ctx, contextChunks, numQuestions)
	if err != nil {
		return nil, err
	}

	if len(mcqs) < numQuestions && len(contextChunks) > g.ContextWindow {
		g.logger.Info().
			Int("valid", len(mcqs)).
			Int("requested", numQuestions).
			Msg("under-yield, retrying with next context window")

		window := contextChunks[g.ContextWindow:]
		more, err := g.round(ctx, window, numQuestions-len(mcqs))
		if err != nil {
			return nil, err
		}
		mcqs = append(mcqs, more...)
	}

	if len(mcqs) > numQuestions {
		mcqs = mcqs[:numQuestions]
	}
	return mcqs, nil
}

func (g *Generator) round(ctx context.Context, contextChunks []string, numQuestions int) ([]MCQ, error) {
	prompt := BuildPrompt(contextChunks, numQuestions, g.ContextWindow, g.MaxPromptChars)

	raw, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	candidates, err := ParseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return g.validator.Validate(candidates), nil
}
