package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

func TestParseQuizNumberedLines(t *testing.T) {
	got := ParseQuiz("1. What is X?\n2. What is Y?\nsome other text")

	require.Len(t, got, 2)
	assert.Equal(t, domain.QuizQuestionStub{QuestionText: "1. What is X?", Options: []string{}, CorrectIndex: 0}, got[0])
	assert.Equal(t, domain.QuizQuestionStub{QuestionText: "2. What is Y?", Options: []string{}, CorrectIndex: 0}, got[1])
}

func TestParseQuizKeepsRawLine(t *testing.T) {
	got := ParseQuiz("intro\n   3. Indented question  \n")

	require.Len(t, got, 1)
	assert.Equal(t, "   3. Indented question  ", got[0].QuestionText)
}

func TestParseQuizOnlyFirstFivePrefixes(t *testing.T) {
	text := "5. five\n6. six\n7. seven\n10. ten\n1.5 half"
	got := ParseQuiz(text)

	// "1.5" matches the literal "1." prefix; "10." does not.
	require.Len(t, got, 2)
	assert.Equal(t, "5. five", got[0].QuestionText)
	assert.Equal(t, "1.5 half", got[1].QuestionText)
}

func TestParseQuizRequestedFormatIsSkipped(t *testing.T) {
	text := "Q: What is X?\nA) one\nB) two\nC) three\nD) four\nCorrect: A"
	got := ParseQuiz(text)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseQuizEmpty(t *testing.T) {
	assert.Empty(t, ParseQuiz(""))
}

func TestParseFlashcards(t *testing.T) {
	text := "Q1: What is a cell?\nA1: The basic unit of life.\n\nQ2: What is DNA?\nA2: Genetic material.\n\nQ3: Dangling?"
	got := ParseFlashcards(text)

	require.Len(t, got, 2)
	assert.Equal(t, domain.Flashcard{Front: "What is a cell?", Back: "The basic unit of life."}, got[0])
	assert.Equal(t, domain.Flashcard{Front: "What is DNA?", Back: "Genetic material."}, got[1])
}

func TestParseFlashcardsNoPairs(t *testing.T) {
	assert.Empty(t, ParseFlashcards("Error: 401 - unauthorized"))
}
