package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockClient is a canned LLMClient for local runs without a credential.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response shaped after the prompt.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	content := m.generateMockResponse(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index:        0,
				Message:      &ResponseMessage{Role: "assistant", Content: &content},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(content) / 4,
			TotalTokens:      m.estimateTokens(req) + len(content)/4,
		},
	}, nil
}

// APIKeyConfigured is always true; the mock needs no credential.
func (m *MockClient) APIKeyConfigured() bool {
	return true
}

// generateMockResponse produces text in the format the prompt asks for.
func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var prompt string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			prompt = req.Messages[i].Content
			break
		}
	}

	switch {
	case prompt == "":
		return "[MOCK] This is a mock response from the LLM client."
	case strings.Contains(prompt, "multiple choice quiz"):
		return "[MOCK] Quiz\n\n1. Q: What is the first mock question?\nA) One\nB) Two\nC) Three\nD) Four\nCorrect: A\n\n" +
			"2. Q: What is the second mock question?\nA) One\nB) Two\nC) Three\nD) Four\nCorrect: B"
	case strings.Contains(prompt, "flashcard pairs"):
		return "Q1: What is a mock?\nA1: A stand-in used for testing.\n\nQ2: Why use one?\nA2: To run without a real model."
	}
	return fmt.Sprintf("[MOCK] Received your prompt: %q. This is a mock response.", truncate(prompt, 100))
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
