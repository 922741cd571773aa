// Package prompt turns feature inputs into the instruction sent to the model.
//
// Builders are pure: the same inputs always produce the same bytes. They do no
// sanitization; callers reject empty topics and notes before building.
package prompt

import (
	"fmt"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// Explanation builds the concept explanation prompt.
func Explanation(topic string, complexity domain.Complexity) string {
	return fmt.Sprintf("Explain '%s' in a %s way. Include real-world examples and analogies.", topic, complexity)
}

// Summary builds the note summarization prompt.
func Summary(notes string, format domain.SummaryFormat) string {
	return fmt.Sprintf("Summarize the following notes in %s format:\n\n%s", format, notes)
}

// Quiz builds the multiple choice quiz prompt.
func Quiz(topic string, numQuestions int, difficulty domain.Difficulty) string {
	return fmt.Sprintf("Create a %d-question multiple choice quiz about '%s' at %s level. "+
		"Format each question as:\nQ: [question]\nA) [option]\nB) [option]\nC) [option]\nD) [option]\nCorrect: [letter]",
		numQuestions, topic, difficulty)
}

// Flashcards builds the flashcard pairs prompt.
func Flashcards(topic string, numCards int) string {
	return fmt.Sprintf("Create %d flashcard pairs about '%s'. "+
		"Format as:\nQ1: [question]\nA1: [answer]\n\nQ2: [question]\nA2: [answer]",
		numCards, topic)
}
