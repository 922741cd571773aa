package cli

import (
	"bytes"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/studybuddy/internal/config"
	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
	"github.com/xiaot623/gogo/studybuddy/internal/transport/ws"
	"github.com/xiaot623/gogo/studybuddy/tests/helpers"
)

func startServer(t *testing.T, stub *helpers.StubCompleter) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(repository.NewMemoryStore(), stub, helpers.NewTestPolicyEngine(t), repository.BackendMemory, logger)

	e := echo.New()
	ws.NewServer(config.Defaults(), svc, logger).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
}

func run(t *testing.T, addr, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append([]string{"--addr", addr, "--raw"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExplainCommand(t *testing.T) {
	stub := helpers.NewStubCompleter("Gravity pulls things together.")
	addr := startServer(t, stub)

	out, _, err := run(t, addr, "", "explain", "general", "relativity", "-c", "advanced")
	require.NoError(t, err)
	assert.Equal(t, "Gravity pulls things together.\n", out)

	prompts := stub.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "general relativity")
	assert.Contains(t, prompts[0], "advanced")
}

func TestSummarizeReadsStdin(t *testing.T) {
	stub := helpers.NewStubCompleter("- cells divide")
	addr := startServer(t, stub)

	out, _, err := run(t, addr, "Mitosis is cell division.", "summarize")
	require.NoError(t, err)
	assert.Contains(t, out, "- cells divide")

	prompts := stub.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Mitosis is cell division.")
}

func TestEmptyTopicPrintsWarning(t *testing.T) {
	stub := helpers.NewStubCompleter("unused")
	addr := startServer(t, stub)

	out, errOut, err := run(t, addr, "", "quiz")
	assert.ErrorIs(t, err, errRejected)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Warning: Please enter a topic")
	assert.Empty(t, stub.Prompts())
}

func TestFlashcardsCommandPrintsTable(t *testing.T) {
	addr := startServer(t, helpers.NewStubCompleter("Q1: What is H2O?\nA1: Water"))

	out, _, err := run(t, addr, "", "flashcards", "chemistry", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "| 1 | What is H2O? | Water |")
}

func TestHistoryCommand(t *testing.T) {
	addr := startServer(t, helpers.NewStubCompleter("answer"))

	out, _, err := run(t, addr, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No study history yet.")

	_, _, err = run(t, addr, "", "explain", "atoms")
	require.NoError(t, err)

	out, _, err = run(t, addr, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "## Explanation - atoms (")
	assert.Contains(t, out, "answer")
}

func TestStatusCommand(t *testing.T) {
	stub := helpers.NewStubCompleter("unused")
	stub.NoKey = true
	addr := startServer(t, stub)

	out, _, err := run(t, addr, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key Status: Not Set")
	assert.Contains(t, out, "Session:        sess_")
}

func TestDialFailure(t *testing.T) {
	_, _, err := run(t, "ws://127.0.0.1:1/v1/ws", "", "status")
	assert.Error(t, err)
}

func TestRenderedOutputKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	p.result(&domain.FeatureResult{Session: domain.StudySession{Content: "# Gravity\n\nThings fall."}})
	assert.Contains(t, buf.String(), "Gravity")
	assert.Contains(t, buf.String(), "Things fall.")
}

func TestCardsTableEscapesPipes(t *testing.T) {
	table := cardsTable([]domain.Flashcard{{Front: "a|b", Back: "c"}})
	assert.Contains(t, table, `| 1 | a\|b | c |`)
}
