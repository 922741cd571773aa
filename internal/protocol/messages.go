// Package protocol defines the WebSocket message protocol between clients and
// the study service.
package protocol

import "github.com/xiaot623/gogo/studybuddy/internal/domain"

// Message types from client to server
const (
	TypeHello          = "hello"
	TypeFeatureRequest = "feature_request"
	TypeHistoryRequest = "history_request"
)

// Message types from server to client
const (
	TypeHelloAck      = "hello_ack"
	TypeFeatureResult = "feature_result"
	TypeWarning       = "warning"
	TypeHistory       = "history"
	TypeError         = "error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// HelloMessage is sent by the client to open the conversation.
type HelloMessage struct {
	BaseMessage
	ClientMeta map[string]string `json:"client_meta,omitempty"`
}

// HelloAckMessage answers hello with the session's status.
type HelloAckMessage struct {
	BaseMessage
	APIKeyConfigured bool   `json:"api_key_configured"`
	Model            string `json:"model"`
}

// FeatureRequestMessage asks for one feature action. Text is the topic, or
// the notes for summarize. A missing Count takes the feature default.
type FeatureRequestMessage struct {
	BaseMessage
	Feature    string `json:"feature"`
	Text       string `json:"text"`
	Complexity string `json:"complexity,omitempty"`
	Format     string `json:"format,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      *int   `json:"count,omitempty"`
}

// FeatureResultMessage carries the recorded session and any parsed structure.
type FeatureResultMessage struct {
	BaseMessage
	Result domain.FeatureResult `json:"result"`
}

// WarningMessage reports rejected input. Nothing was recorded.
type WarningMessage struct {
	BaseMessage
	Warnings []string `json:"warnings"`
}

// HistoryRequestMessage asks for the session history.
type HistoryRequestMessage struct {
	BaseMessage
}

// HistoryMessage lists sessions most-recent-first.
type HistoryMessage struct {
	BaseMessage
	Sessions []domain.StudySession `json:"sessions"`
}

// ErrorMessage is sent when a request cannot be handled.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeHelloRequired  = "hello_required"
	ErrorCodeUnknownFeature = "unknown_feature"
	ErrorCodeInternalError  = "internal_error"
)
