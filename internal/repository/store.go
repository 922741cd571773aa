// Package repository holds the session-scoped study history.
//
// History is append-only and lives only as long as the process: neither
// backend writes anything to disk.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// ErrNotFound is returned when no session exists at an index.
var ErrNotFound = errors.New("study session not found")

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store defines the history operations. Append assigns the session's Index;
// All returns sessions most-recent-last.
type Store interface {
	Append(ctx context.Context, session *domain.StudySession) error
	All(ctx context.Context) ([]domain.StudySession, error)
	Get(ctx context.Context, index int) (*domain.StudySession, error)
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// New opens the store for a backend name.
func New(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore()
	}
	return nil, fmt.Errorf("unknown history backend: %q", backend)
}
