package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompleter(url, apiKey string, timeout time.Duration) *Completer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCompleter(NewClient(url, apiKey, timeout), "", logger)
}

func TestClientCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "m",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	content, err := resp.FirstContent()
	require.NoError(t, err)
	assert.Equal(t, "hi", content)
	assert.Equal(t, 3, resp.Usage.TotalTokens)
}

func TestCompleteRequestShape(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "StudyBuddy AI", r.Header.Get("X-Title"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	c := newTestCompleter(server.URL, "secret", time.Second)
	assert.Equal(t, "ok", c.Complete(context.Background(), "explain atoms", ""))

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, ChatMessage{Role: "system", Content: DefaultSystemMessage}, got.Messages[0])
	assert.Equal(t, ChatMessage{Role: "user", Content: "explain atoms"}, got.Messages[1])
}

func TestCompleteCustomSystemMessage(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	c := newTestCompleter(server.URL, "", time.Second)
	c.Complete(context.Background(), "p", "You are a tutor.")
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "You are a tutor.", got.Messages[0].Content)
}

func TestCompleteSuccessVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`)
	}))
	defer server.Close()

	res := newTestCompleter(server.URL, "k", time.Second).CompleteResult(context.Background(), "p", "")
	assert.Equal(t, "hello", res.Text)
	assert.False(t, res.Failed())
}

func TestCompleteStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "unauthorized")
	}))
	defer server.Close()

	res := newTestCompleter(server.URL, "", time.Second).CompleteResult(context.Background(), "p", "")
	assert.Equal(t, "Error: 401 - unauthorized", res.Text)
	assert.True(t, res.Failed())

	var statusErr *StatusError
	require.ErrorAs(t, res.Err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestCompleteStatusErrorKeepsRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"slow down"}}`)
	}))
	defer server.Close()

	got := newTestCompleter(server.URL, "k", time.Second).Complete(context.Background(), "p", "")
	assert.Equal(t, `Error: 429 - {"error":{"message":"slow down"}}`, got)
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	got := newTestCompleter(server.URL, "k", 50*time.Millisecond).Complete(context.Background(), "p", "")
	assert.True(t, strings.HasPrefix(got, "Error calling AI API: "), got)
}

func TestCompleteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	got := newTestCompleter(url, "k", time.Second).Complete(context.Background(), "p", "")
	assert.True(t, strings.HasPrefix(got, "Error calling AI API: "), got)
}

func TestCompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	got := newTestCompleter(server.URL, "k", time.Second).Complete(context.Background(), "p", "")
	assert.True(t, strings.HasPrefix(got, "Error calling AI API: "), got)
}

func TestCompleteMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no choices", `{"choices":[]}`, "Error decoding AI API response: missing choices"},
		{"no message", `{"choices":[{"index":0}]}`, "Error decoding AI API response: missing choices[0].message"},
		{"null content", `{"choices":[{"message":{"role":"assistant","content":null}}]}`, "Error decoding AI API response: missing choices[0].message.content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			res := newTestCompleter(server.URL, "k", time.Second).CompleteResult(context.Background(), "p", "")
			assert.Equal(t, tt.want, res.Text)
			var decodeErr *DecodeError
			assert.ErrorAs(t, res.Err, &decodeErr)
		})
	}
}

func TestCompleteEmptyContentIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":""}}]}`)
	}))
	defer server.Close()

	res := newTestCompleter(server.URL, "k", time.Second).CompleteResult(context.Background(), "p", "")
	assert.Equal(t, "", res.Text)
	assert.False(t, res.Failed())
}

func TestClientOmitsAuthorizationWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("unexpected Authorization header: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "No auth credentials found")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	assert.False(t, client.APIKeyConfigured())
	got := NewCompleter(client, "", nil).Complete(context.Background(), "p", "")
	assert.Equal(t, "Error: 401 - No auth credentials found", got)
}

func TestMockClient(t *testing.T) {
	c := NewCompleter(NewMockClient(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.True(t, c.APIKeyConfigured())

	quiz := c.Complete(context.Background(), "Create a 2-question multiple choice quiz about 'x'", "")
	assert.Contains(t, quiz, "1. Q:")

	cards := c.Complete(context.Background(), "Create 2 flashcard pairs about 'x'", "")
	assert.Contains(t, cards, "Q1:")

	other := c.Complete(context.Background(), "Explain 'x'", "")
	assert.Contains(t, other, "[MOCK]")
}

func TestNewLLMClientMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, isMock := NewLLMClient("mock", "", "", time.Second, logger).(*MockClient)
	assert.True(t, isMock)
	_, isReal := NewLLMClient("", "http://x", "k", time.Second, logger).(*Client)
	assert.True(t, isReal)
}

func TestNewClientDefaults(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"zero", 0, DefaultTimeout},
		{"negative", -time.Second, DefaultTimeout},
		{"set", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("", "", tt.timeout)
			assert.Equal(t, tt.want, client.httpClient.Timeout)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
		})
	}
}
