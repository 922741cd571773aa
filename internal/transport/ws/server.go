// Package ws serves the study features over a WebSocket connection.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/studybuddy/internal/config"
	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/protocol"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
)

// Server handles WebSocket connections.
type Server struct {
	cfg      *config.Config
	service  *service.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, svc *service.Service, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		service: svc,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/ws", s.HandleWebSocket)
}

// connection is one client. Requests on a connection are handled one at a
// time, in the order they arrive.
type connection struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	greeted   bool
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("failed to upgrade websocket", "error", err)
		return err
	}

	conn := &connection{
		id:   "conn_" + uuid.New().String()[:8],
		conn: ws,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}
	ws.SetReadLimit(s.cfg.MaxMessageSize)
	s.logger.Info("websocket connected", "conn_id", conn.id)

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads and handles messages until the connection closes.
func (s *Server) readPump(conn *connection) {
	defer func() {
		conn.close()
		s.logger.Info("websocket disconnected", "conn_id", conn.id)
	}()

	conn.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.conn.SetPongHandler(func(string) error {
		conn.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read error", "conn_id", conn.id, "error", err)
			}
			return
		}
		// A feature call can outlast the read deadline; the client is idle meanwhile.
		conn.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout + s.cfg.Timeout))

		s.handleMessage(conn, message)
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (s *Server) writePump(conn *connection) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		conn.close()
	}()

	for {
		select {
		case message := <-conn.send:
			conn.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("failed to write message", "conn_id", conn.id, "error", err)
				return
			}

		case <-ticker.C:
			conn.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-conn.done:
			return
		}
	}
}

// handleMessage dispatches incoming messages to appropriate handlers.
func (s *Server) handleMessage(conn *connection, data []byte) {
	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", protocol.ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	if base.Type != protocol.TypeHello && !conn.greeted {
		s.sendError(conn, base.RequestID, protocol.ErrorCodeHelloRequired, "send hello first")
		return
	}

	switch base.Type {
	case protocol.TypeHello:
		s.handleHello(conn, base)
	case protocol.TypeFeatureRequest:
		s.handleFeatureRequest(conn, data)
	case protocol.TypeHistoryRequest:
		s.handleHistoryRequest(conn, base)
	default:
		s.sendError(conn, base.RequestID, protocol.ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

func (s *Server) handleHello(conn *connection, base protocol.BaseMessage) {
	conn.greeted = true
	status := s.service.Status()
	s.send(conn, protocol.HelloAckMessage{
		BaseMessage:      s.base(protocol.TypeHelloAck, base.RequestID),
		APIKeyConfigured: status.APIKeyConfigured,
		Model:            status.Model,
	})
}

func (s *Server) handleFeatureRequest(conn *connection, data []byte) {
	var msg protocol.FeatureRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", protocol.ErrorCodeInvalidMessage, "invalid feature_request")
		return
	}

	feature, err := domain.ParseFeature(msg.Feature)
	if err != nil || feature.Kind() == "" {
		s.sendError(conn, msg.RequestID, protocol.ErrorCodeUnknownFeature, "unknown feature: "+msg.Feature)
		return
	}

	result, err := s.runFeature(context.Background(), feature, msg)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.send(conn, protocol.WarningMessage{
				BaseMessage: s.base(protocol.TypeWarning, msg.RequestID),
				Warnings:    verr.Warnings,
			})
			return
		}
		s.logger.Error("feature request failed", "conn_id", conn.id, "feature", feature, "error", err)
		s.sendError(conn, msg.RequestID, protocol.ErrorCodeInternalError, err.Error())
		return
	}

	s.send(conn, protocol.FeatureResultMessage{
		BaseMessage: s.base(protocol.TypeFeatureResult, msg.RequestID),
		Result:      *result,
	})
}

func (s *Server) runFeature(ctx context.Context, feature domain.Feature, msg protocol.FeatureRequestMessage) (*domain.FeatureResult, error) {
	switch feature {
	case domain.FeatureExplain:
		return s.service.Explain(ctx, domain.ExplainRequest{
			Topic:      msg.Text,
			Complexity: domain.Complexity(msg.Complexity),
		})
	case domain.FeatureSummarize:
		return s.service.Summarize(ctx, domain.SummarizeRequest{
			Notes:  msg.Text,
			Format: domain.SummaryFormat(msg.Format),
		})
	case domain.FeatureQuiz:
		return s.service.Quiz(ctx, domain.QuizRequest{
			Topic:        msg.Text,
			NumQuestions: msg.Count,
			Difficulty:   domain.Difficulty(msg.Difficulty),
		})
	default:
		return s.service.Flashcards(ctx, domain.FlashcardsRequest{
			Topic:    msg.Text,
			NumCards: msg.Count,
		})
	}
}

func (s *Server) handleHistoryRequest(conn *connection, base protocol.BaseMessage) {
	sessions, err := s.service.History(context.Background())
	if err != nil {
		s.sendError(conn, base.RequestID, protocol.ErrorCodeInternalError, err.Error())
		return
	}
	s.send(conn, protocol.HistoryMessage{
		BaseMessage: s.base(protocol.TypeHistory, base.RequestID),
		Sessions:    sessions,
	})
}

func (s *Server) base(msgType, requestID string) protocol.BaseMessage {
	return protocol.BaseMessage{
		Type:      msgType,
		Ts:        time.Now().UnixMilli(),
		RequestID: requestID,
		SessionID: s.service.SessionID(),
	}
}

func (s *Server) sendError(conn *connection, requestID, code, message string) {
	s.send(conn, protocol.ErrorMessage{
		BaseMessage: s.base(protocol.TypeError, requestID),
		Code:        code,
		Message:     message,
	})
}

// send queues msg for the write pump, dropping it if the connection is gone.
func (s *Server) send(conn *connection, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal message", "error", err)
		return
	}
	select {
	case conn.send <- data:
	case <-conn.done:
	}
}
