package mcq

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	questionMarkerRe = regexp.MustCompile(`(?m)^\s*(?:Question\s+)?\d+[.:]\s*`)
	optionLineRe     = regexp.MustCompile(`^([A-D])[.)]\s*(.+)$`)
	answerLetterRe   = regexp.MustCompile(`[A-D]`)
)

// ParseResponse extracts candidate questions from free-form model output.
// Strategies are tried in order, first match wins: a brace-delimited JSON
// block, the whole text as JSON, then a heuristic line parser. When all
// three miss, a *ParseError carrying the raw text is returned.
func ParseResponse(raw string) ([]Candidate, error) {
	if block, ok := extractJSONBlock(raw); ok {
		if questions, ok := decodeQuestions(block); ok {
			return questions, nil
		}
	}

	if questions, ok := decodeQuestions(strings.TrimSpace(raw)); ok {
		return questions, nil
	}

	if questions := parseQuestionBlocks(raw); len(questions) > 0 {
		return questions, nil
	}
	return nil, &ParseError{Raw: raw}
}

// extractJSONBlock returns the substring from the first "{" to the last "}".
func extractJSONBlock(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// decodeQuestions matches whenever text is a valid JSON object. A missing
// "questions" key, or one that does not decode as a question list, yields
// zero candidates; only non-JSON text falls through to the next strategy.
func decodeQuestions(text string) ([]Candidate, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}
	raw, ok := fields["questions"]
	if !ok {
		return nil, true
	}
	var questions []Candidate
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, true
	}
	return questions, true
}

// parseQuestionBlocks splits the text on question-number markers and scans
// each block line by line for the question, options, answer and explanation.
func parseQuestionBlocks(text string) []Candidate {
	parts := questionMarkerRe.Split(text, -1)

	var questions []Candidate
	id := 0
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id++
		if candidate, ok := parseQuestionBlock(part, id); ok {
			questions = append(questions, candidate)
		}
	}
	return questions
}

func parseQuestionBlock(block string, questionID int) (Candidate, bool) {
	var (
		question      string
		options       []CandidateOption
		correctAnswer string
		explanation   string
	)

	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := optionLineRe.FindStringSubmatch(line); m != nil {
			isCorrect := false
			options = append(options, CandidateOption{
				OptionID:  m[1],
				Text:      strings.TrimSpace(m[2]),
				IsCorrect: &isCorrect,
			})
			continue
		}

		switch {
		case strings.HasPrefix(line, "Answer:") || strings.HasPrefix(line, "Correct:"):
			// Scan past the prefix so the "A" of "Answer" is not picked up.
			rest := line[strings.Index(line, ":")+1:]
			if letter := answerLetterRe.FindString(rest); letter != "" {
				correctAnswer = letter
			}
		case strings.HasPrefix(line, "Explanation:"):
			explanation = strings.TrimSpace(strings.TrimPrefix(line, "Explanation:"))
		case question == "":
			question = line
		}
	}

	for i := range options {
		if options[i].OptionID == correctAnswer {
			*options[i].IsCorrect = true
		}
	}

	if question == "" || len(options) != 4 || correctAnswer == "" {
		return Candidate{}, false
	}
	if explanation == "" {
		explanation = fmt.Sprintf("Option %s is correct.", correctAnswer)
	}
	return Candidate{
		QuestionID:    questionID,
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}, true
}
