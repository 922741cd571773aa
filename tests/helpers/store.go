package helpers

import (
	"context"
	"sync"
	"testing"

	"github.com/xiaot623/gogo/studybuddy/internal/adapter/llm"
	"github.com/xiaot623/gogo/studybuddy/internal/policy"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
)

func NewTestSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s, err := repository.NewSQLiteStore()
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func NewTestPolicyEngine(t *testing.T) *policy.Engine {
	t.Helper()

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

// StubCompleter returns a fixed result and records the prompts it was sent.
type StubCompleter struct {
	mu      sync.Mutex
	Result  llm.Result
	NoKey   bool
	prompts []string
}

// NewStubCompleter answers every prompt with text.
func NewStubCompleter(text string) *StubCompleter {
	return &StubCompleter{Result: llm.Result{Text: text}}
}

func (s *StubCompleter) CompleteResult(ctx context.Context, prompt, systemMessage string) llm.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.Result
}

func (s *StubCompleter) APIKeyConfigured() bool { return !s.NoKey }

func (s *StubCompleter) Model() string { return llm.DefaultModel }

// Prompts returns the prompts received so far.
func (s *StubCompleter) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}
