package llm

// ChatCompletionRequest represents the OpenAI chat completion request.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the OpenAI chat completion response.
// Only Choices is required; the rest is informational.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice represents a completion choice.
type Choice struct {
	Index        int              `json:"index"`
	Message      *ResponseMessage `json:"message"`
	FinishReason string           `json:"finish_reason,omitempty"`
}

// ResponseMessage is the assistant message inside a choice. Content is a
// pointer so a missing or null field can be told apart from an empty answer.
type ResponseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FirstContent returns choices[0].message.content, or a *DecodeError naming
// the first missing field.
func (r *ChatCompletionResponse) FirstContent() (string, error) {
	if len(r.Choices) == 0 {
		return "", &DecodeError{Field: "choices"}
	}
	msg := r.Choices[0].Message
	if msg == nil {
		return "", &DecodeError{Field: "choices[0].message"}
	}
	if msg.Content == nil {
		return "", &DecodeError{Field: "choices[0].message.content"}
	}
	return *msg.Content, nil
}
