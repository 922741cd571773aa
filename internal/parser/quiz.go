// Package parser extracts structure from free-text model responses.
// Parsing is best-effort and never fails.
package parser

import (
	"strings"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// questionPrefixes are matched literally; "6." and beyond are not stems.
var questionPrefixes = []string{"1.", "2.", "3.", "4.", "5."}

// ParseQuiz returns a stub for every line whose trimmed content starts with
// "1." through "5.". The stub keeps the raw line. Other enumeration styles,
// including the Q:/A) layout the quiz prompt asks for, are skipped.
func ParseQuiz(response string) []domain.QuizQuestionStub {
	questions := []domain.QuizQuestionStub{}
	for _, line := range strings.Split(response, "\n") {
		if !hasQuestionPrefix(strings.TrimSpace(line)) {
			continue
		}
		questions = append(questions, domain.QuizQuestionStub{
			QuestionText: line,
			Options:      []string{},
			CorrectIndex: 0,
		})
	}
	return questions
}

func hasQuestionPrefix(line string) bool {
	for _, p := range questionPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
