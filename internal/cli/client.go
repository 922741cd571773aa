package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/protocol"
)

// Client is a WebSocket client for the study service.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
	hello   protocol.HelloAckMessage
}

// Dial connects to the server and completes the hello exchange.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	c := &Client{conn: conn, timeout: timeout}
	if err := c.sendHello(); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

// Status returns what the server reported in hello_ack.
func (c *Client) Status() protocol.HelloAckMessage {
	return c.hello
}

func (c *Client) sendHello() error {
	msg := protocol.HelloMessage{
		BaseMessage: c.base(protocol.TypeHello),
		ClientMeta: map[string]string{
			"client": "studybuddy-cli",
		},
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}
	if err := c.readReply(protocol.TypeHelloAck, &c.hello); err != nil {
		return fmt.Errorf("hello failed: %w", err)
	}
	return nil
}

// Feature runs one feature request. Rejected input comes back as a
// *domain.ValidationError.
func (c *Client) Feature(msg protocol.FeatureRequestMessage) (*domain.FeatureResult, error) {
	msg.BaseMessage = c.base(protocol.TypeFeatureRequest)
	if err := c.conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("write feature_request: %w", err)
	}

	var reply protocol.FeatureResultMessage
	if err := c.readReply(protocol.TypeFeatureResult, &reply); err != nil {
		return nil, err
	}
	return &reply.Result, nil
}

// History returns the server's sessions, most recent first.
func (c *Client) History() ([]domain.StudySession, error) {
	msg := protocol.HistoryRequestMessage{BaseMessage: c.base(protocol.TypeHistoryRequest)}
	if err := c.conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("write history_request: %w", err)
	}

	var reply protocol.HistoryMessage
	if err := c.readReply(protocol.TypeHistory, &reply); err != nil {
		return nil, err
	}
	return reply.Sessions, nil
}

func (c *Client) base(msgType string) protocol.BaseMessage {
	return protocol.BaseMessage{
		Type:      msgType,
		Ts:        time.Now().UnixMilli(),
		RequestID: "req_" + uuid.New().String()[:8],
		SessionID: c.hello.SessionID,
	}
}

// readReply reads one message and decodes it into v if it has type want.
func (c *Client) readReply(want string, v interface{}) error {
	if c.timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read %s: %w", want, err)
	}

	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("unmarshal %s: %w", want, err)
	}

	switch base.Type {
	case want:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshal %s: %w", want, err)
		}
		return nil
	case protocol.TypeWarning:
		var msg protocol.WarningMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("unmarshal warning: %w", err)
		}
		return &domain.ValidationError{Warnings: msg.Warnings}
	case protocol.TypeError:
		var msg protocol.ErrorMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}
		return fmt.Errorf("server error: %s - %s", msg.Code, msg.Message)
	}
	return fmt.Errorf("expected %s, got: %s", want, base.Type)
}
