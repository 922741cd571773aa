package domain

import (
	"fmt"
	"time"
)

// StudySession is one completed feature action. Content is always the verbatim
// model output or the sentinel error string produced by the completion client.
type StudySession struct {
	Index     int       `json:"index"`
	Kind      Kind      `json:"kind"`
	Topic     string    `json:"topic,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Failed    bool      `json:"failed"`
}

// Title is the heading shown for the session in the history view.
func (s StudySession) Title() string {
	topic := s.Topic
	if topic == "" {
		topic = "Session"
	}
	return fmt.Sprintf("%s - %s (%s)", s.Kind, topic, s.CreatedAt.Format("2006-01-02"))
}

// QuizQuestionStub is a question stem pulled from a quiz response.
// Options is never populated and CorrectIndex is always 0.
type QuizQuestionStub struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Flashcard is one question/answer pair pulled from a flashcards response.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Reversed returns a copy of sessions ordered most-recent-first.
func Reversed(sessions []StudySession) []StudySession {
	out := make([]StudySession, len(sessions))
	for i, s := range sessions {
		out[len(sessions)-1-i] = s
	}
	return out
}
