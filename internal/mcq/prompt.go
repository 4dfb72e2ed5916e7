package mcq

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultContextWindow  = 10
	defaultMaxPromptChars = 15000
	promptEllipsis        = "..."
)

const promptTemplate = `You are an expert educational content creator. Generate %d high-quality multiple-choice questions based on the following course material.

COURSE MATERIAL:
%s

INSTRUCTIONS:
1. Generate exactly %d multiple-choice questions
2. Each question should have exactly 4 options (A, B, C, D)
3. Only ONE option should be correct
4. Questions should test understanding, not just memorization
5. Include a brief explanation for the correct answer
6. Questions should be clear, unambiguous, and educational
7. Cover different aspects of the material

REQUIRED JSON FORMAT:
{
    "questions": [
        {
            "question_id": 1,
            "question": "What is...?",
            "options": [
                {"option_id": "A", "text": "Option A text", "is_correct": false},
                {"option_id": "B", "text": "Option B text", "is_correct": true},
                {"option_id": "C", "text": "Option C text", "is_correct": false},
                {"option_id": "D", "text": "Option D text", "is_correct": false}
            ],
            "correct_answer": "B",
            "explanation": "Brief explanation why B is correct"
        }
    ]
}

Generate the questions now:`

// BuildPrompt assembles the generation instruction for at most the first
// contextWindow chunks, capped at maxChars characters of combined context.
// Pure: identical inputs yield the identical string.
func BuildPrompt(context []string, numQuestions, contextWindow, maxChars int) string {
	if contextWindow <= 0 {
		contextWindow = defaultContextWindow
	}
	if maxChars <= 0 {
		maxChars = defaultMaxPromptChars
	}
	if len(context) > contextWindow {
		context = context[:contextWindow]
	}

	combined := strings.Join(context, "\n\n")
	if len(combined) > maxChars {
		// Back off to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(combined[cut]) {
			cut--
		}
		combined = combined[:cut] + promptEllipsis
	}
	return fmt.Sprintf(promptTemplate, numQuestions, combined, numQuestions)
}
