package llm

import "context"

// LLMClient defines the interface for chat completion calls.
type LLMClient interface {
	// CreateChatCompletion sends a chat completion request (non-streaming).
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)

	// APIKeyConfigured reports whether a credential is present.
	APIKeyConfigured() bool
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
