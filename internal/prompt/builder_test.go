package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

func TestExplanation(t *testing.T) {
	got := Explanation("photosynthesis", domain.ComplexitySimple)
	assert.Equal(t, "Explain 'photosynthesis' in a simple way. Include real-world examples and analogies.", got)
}

func TestSummary(t *testing.T) {
	got := Summary("cells divide\nDNA copies", domain.SummaryFormatKeyPointsOnly)
	assert.Equal(t, "Summarize the following notes in key points only format:\n\ncells divide\nDNA copies", got)
}

func TestQuiz(t *testing.T) {
	got := Quiz("gravity", 3, domain.DifficultyHard)
	want := "Create a 3-question multiple choice quiz about 'gravity' at hard level. Format each question as:\n" +
		"Q: [question]\nA) [option]\nB) [option]\nC) [option]\nD) [option]\nCorrect: [letter]"
	assert.Equal(t, want, got)
}

func TestFlashcards(t *testing.T) {
	got := Flashcards("the French revolution", 12)
	want := "Create 12 flashcard pairs about 'the French revolution'. Format as:\n" +
		"Q1: [question]\nA1: [answer]\n\nQ2: [question]\nA2: [answer]"
	assert.Equal(t, want, got)
}

func TestBuildersArePure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Quiz("x", 5, domain.DifficultyEasy), Quiz("x", 5, domain.DifficultyEasy))
		assert.Equal(t, Summary("n", domain.SummaryFormatParagraph), Summary("n", domain.SummaryFormatParagraph))
	}
}

func TestNoSanitization(t *testing.T) {
	got := Explanation("it's {odd} %s", domain.ComplexityAdvanced)
	assert.Equal(t, "Explain 'it's {odd} %s' in a advanced way. Include real-world examples and analogies.", got)
}
