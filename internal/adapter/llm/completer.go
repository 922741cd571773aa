package llm

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultSystemMessage is sent when the caller supplies none.
	DefaultSystemMessage = "You are a helpful educational AI assistant."
	// Temperature is fixed for every request.
	Temperature = 0.7
	// MaxTokens caps the length of every answer.
	MaxTokens = 1000
)

// Result is the outcome of one completion. Text is always set: it is either
// the model output or the sentinel error string for Err.
type Result struct {
	Text string
	Err  error
}

// Failed reports whether Text is a sentinel error string.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Completer wraps an LLMClient with the fixed request shape and converts every
// failure into sentinel text, so callers always get a string back.
type Completer struct {
	client LLMClient
	model  string
	logger *slog.Logger
}

// NewCompleter creates a completer that sends requests for model.
func NewCompleter(client LLMClient, model string, logger *slog.Logger) *Completer {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Completer{client: client, model: model, logger: logger}
}

// Model returns the model identifier sent with each request.
func (c *Completer) Model() string {
	return c.model
}

// APIKeyConfigured reports whether the underlying client has a credential.
func (c *Completer) APIKeyConfigured() bool {
	return c.client.APIKeyConfigured()
}

// Complete returns the completion text or a sentinel error string. It never fails.
func (c *Completer) Complete(ctx context.Context, prompt, systemMessage string) string {
	return c.CompleteResult(ctx, prompt, systemMessage).Text
}

// CompleteResult is Complete with the underlying error kept alongside the text.
func (c *Completer) CompleteResult(ctx context.Context, prompt, systemMessage string) Result {
	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}
	req := &ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.logger.Warn("completion failed", "model", c.model, "latency_ms", latency, "error", err)
		return Result{Text: Sentinel(err), Err: err}
	}

	content, err := resp.FirstContent()
	if err != nil {
		c.logger.Warn("completion missing content", "model", c.model, "error", err)
		return Result{Text: Sentinel(err), Err: err}
	}

	attrs := []any{"model", c.model, "latency_ms", latency}
	if resp.Usage != nil {
		attrs = append(attrs, "total_tokens", resp.Usage.TotalTokens)
	}
	c.logger.Debug("completion done", attrs...)
	return Result{Text: content}
}
