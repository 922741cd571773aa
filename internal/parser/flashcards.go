package parser

import (
	"regexp"
	"strings"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

var (
	cardQuestion = regexp.MustCompile(`^Q(\d+):\s*(.*)$`)
	cardAnswer   = regexp.MustCompile(`^A(\d+):\s*(.*)$`)
)

// ParseFlashcards pairs "Qn:" lines with the "An:" line of the same number.
// Questions without a matching answer are dropped; order follows the questions.
func ParseFlashcards(response string) []domain.Flashcard {
	var order []string
	fronts := map[string]string{}
	backs := map[string]string{}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if m := cardQuestion.FindStringSubmatch(line); m != nil {
			if _, seen := fronts[m[1]]; !seen {
				order = append(order, m[1])
			}
			fronts[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		if m := cardAnswer.FindStringSubmatch(line); m != nil {
			backs[m[1]] = strings.TrimSpace(m[2])
		}
	}

	cards := []domain.Flashcard{}
	for _, n := range order {
		back, ok := backs[n]
		if !ok {
			continue
		}
		cards = append(cards, domain.Flashcard{Front: fronts[n], Back: back})
	}
	return cards
}
