package service

import (
	"context"
	"fmt"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// History returns every recorded session, most recent first.
func (s *Service) History(ctx context.Context) ([]domain.StudySession, error) {
	sessions, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return domain.Reversed(sessions), nil
}

// Session returns the session recorded at index.
func (s *Service) Session(ctx context.Context, index int) (*domain.StudySession, error) {
	session, err := s.store.Get(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", index, err)
	}
	return session, nil
}

// Status reports the running session's configuration.
func (s *Service) Status() domain.StatusResponse {
	return domain.StatusResponse{
		SessionID:        s.sessionID,
		APIKeyConfigured: s.completer.APIKeyConfigured(),
		Model:            s.completer.Model(),
		HistoryBackend:   s.historyBackend,
	}
}
