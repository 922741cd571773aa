package llm

import (
	"log/slog"
	"strings"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "STUDYBUDDY_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient returns a MockClient when mode is MOCK, otherwise a real Client.
func NewLLMClient(mode, baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) LLMClient {
	if strings.EqualFold(mode, ModeMock) {
		logger.Info("mock mode detected, using mock LLM client", "env", EnvMode)
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
