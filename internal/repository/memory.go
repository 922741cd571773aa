package repository

import (
	"context"
	"sync"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// MemoryStore keeps history in a slice.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []domain.StudySession
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Ensure MemoryStore implements Store interface.
var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Append(ctx context.Context, session *domain.StudySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.Index = len(s.sessions)
	s.sessions = append(s.sessions, *session)
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]domain.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StudySession, len(s.sessions))
	copy(out, s.sessions)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, index int) (*domain.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.sessions) {
		return nil, ErrNotFound
	}
	session := s.sessions[index]
	return &session, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
