// Package service implements the study features on top of the completion
// client, the request policy and the history store.
//
// A Service is the state of one running session: it is created once at
// startup, owns the history store, and is discarded when the process exits.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xiaot623/gogo/studybuddy/internal/adapter/llm"
	"github.com/xiaot623/gogo/studybuddy/internal/policy"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
)

// Completer issues one completion and always returns text.
type Completer interface {
	CompleteResult(ctx context.Context, prompt, systemMessage string) llm.Result
	APIKeyConfigured() bool
	Model() string
}

// Ensure llm.Completer satisfies Completer.
var _ Completer = (*llm.Completer)(nil)

type Service struct {
	store          repository.Store
	completer      Completer
	policyEngine   *policy.Engine
	historyBackend string
	sessionID      string
	logger         *slog.Logger
	now            func() time.Time
}

func New(store repository.Store, completer Completer, policyEngine *policy.Engine, historyBackend string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	sessionID := "sess_" + uuid.New().String()[:8]
	return &Service{
		store:          store,
		completer:      completer,
		policyEngine:   policyEngine,
		historyBackend: historyBackend,
		sessionID:      sessionID,
		logger:         logger.With("session_id", sessionID),
		now:            time.Now,
	}
}

// SessionID identifies this running session.
func (s *Service) SessionID() string {
	return s.sessionID
}

// Close releases the history store, discarding all sessions.
func (s *Service) Close() error {
	return s.store.Close()
}
