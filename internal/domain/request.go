package domain

// ExplainRequest asks for a concept explanation.
type ExplainRequest struct {
	Topic      string     `json:"topic" form:"topic"`
	Complexity Complexity `json:"complexity" form:"complexity"`
}

// SummarizeRequest asks for a summary of pasted notes.
type SummarizeRequest struct {
	Notes  string        `json:"notes" form:"notes"`
	Format SummaryFormat `json:"format" form:"format"`
}

// QuizRequest asks for a multiple choice quiz. A nil NumQuestions takes the
// default; any given value, zero included, is validated.
type QuizRequest struct {
	Topic        string     `json:"topic" form:"topic"`
	NumQuestions *int       `json:"num_questions,omitempty"`
	Difficulty   Difficulty `json:"difficulty" form:"difficulty"`
}

// FlashcardsRequest asks for question/answer pairs. A nil NumCards takes the
// default.
type FlashcardsRequest struct {
	Topic    string `json:"topic" form:"topic"`
	NumCards *int   `json:"num_cards,omitempty"`
}

// IntOrDefault returns *n, or def when n is nil.
func IntOrDefault(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

// FeatureResult is what a feature action returns to the transport layer.
type FeatureResult struct {
	Session   StudySession       `json:"session"`
	Questions []QuizQuestionStub `json:"questions,omitempty"`
	Cards     []Flashcard        `json:"cards,omitempty"`
}

// HistoryResponse lists sessions most-recent-first.
type HistoryResponse struct {
	Sessions []StudySession `json:"sessions"`
	Count    int            `json:"count"`
}

// StatusResponse reports how the running session is configured.
type StatusResponse struct {
	SessionID        string `json:"session_id"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	Model            string `json:"model"`
	HistoryBackend   string `json:"history_backend"`
}

// WarningResponse is returned when input validation rejects a request.
type WarningResponse struct {
	Warning  string   `json:"warning"`
	Warnings []string `json:"warnings"`
}
