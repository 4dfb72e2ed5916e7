package mcq

import "github.com/rs/zerolog"

// Validator enforces the structural invariants of an MCQ: required fields
// present, exactly four well-formed options, exactly one of them correct.
// A bad candidate is dropped and logged, never aborting the batch.
type Validator struct {
	logger zerolog.Logger
}

func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate checks each candidate independently and returns the surviving
// questions in input order. A candidate without a question_id gets its
// 1-based position in the input.
func (v *Validator) Validate(candidates []Candidate) []MCQ {
	validated := make([]MCQ, 0, len(candidates))

	for i, candidate := range candidates {
		position := i + 1
		if candidate.Question == "" || candidate.CorrectAnswer == "" {
			v.logger.Debug().Int("position", position).Msg("dropping candidate: missing question or correct_answer")
			continue
		}
		if len(candidate.Options) != 4 {
			v.logger.Debug().Int("position", position).Int("options", len(candidate.Options)).
				Msg("dropping candidate: option count is not 4")
			continue
		}

		options := make([]Option, 0, 4)
		correctCount := 0
		for _, opt := range candidate.Options {
			if opt.OptionID == "" || opt.Text == "" || opt.IsCorrect == nil {
				continue
			}
			options = append(options, Option{
				OptionID:  opt.OptionID,
				Text:      opt.Text,
				IsCorrect: *opt.IsCorrect,
			})
			if *opt.IsCorrect {
				correctCount++
			}
		}
		if len(options) != 4 || correctCount != 1 {
			v.logger.Debug().Int("position", position).Int("valid_options", len(options)).
				Int("correct_count", correctCount).
				Msg("dropping candidate: malformed options")
			continue
		}

		questionID := candidate.QuestionID
		if questionID == 0 {
			questionID = position
		}
		validated = append(validated, MCQ{
			QuestionID:    questionID,
			Question:      candidate.Question,
			Options:       options,
			CorrectAnswer: candidate.CorrectAnswer,
			Explanation:   candidate.Explanation,
		})
	}
	return validated
}
