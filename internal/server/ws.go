package server

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/session"
	"ctchen222/growing-tic-tac-toe/internal/validator"
	"ctchen222/growing-tic-tac-toe/pkg/proto"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	heartbeatInterval = 10 * time.Second
	pongWait          = 3 * heartbeatInterval
	writeWait         = 5 * time.Second
)

// handleWebSocket upgrades the connection, tells the client its session id
// and then answers each client message in order.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// Reuse the client's session id if it sent a valid one.
	sessionID := c.Query("sessionId")
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.New().String()
	}

	if err := s.writeJSON(conn, &proto.SessionAssignmentMessage{Type: proto.TypeSession, SessionID: sessionID}); err != nil {
		slog.WarnContext(ctx, "failed to send session assignment", "session.id", sessionID, "error", err)
		return
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go heartbeat(conn, done)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket connection error", "session.id", sessionID, "error", err)
			}
			return
		}

		reply := s.handleMessage(ctx, sessionID, raw)
		if reply == nil {
			continue
		}
		if err := s.writeJSON(conn, reply); err != nil {
			slog.WarnContext(ctx, "failed to write update", "session.id", sessionID, "error", err)
			return
		}
	}
}

// handleMessage dispatches one client message. Messages that do not parse
// or validate are dropped without a reply.
func (s *Server) handleMessage(ctx context.Context, sessionID string, raw []byte) *proto.ServerToClientMessage {
	ctx, span := tracer.Start(ctx, "server.handleMessage", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "session.id", sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return nil
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "session.id", sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return nil
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var (
		view *session.View
		err  error
	)
	switch message.Type {
	case proto.TypeStart:
		view, err = s.sessions.Start(ctx, sessionID, message.Mark)
	case proto.TypeMove:
		view, err = s.sessions.Move(ctx, sessionID, message.Position[0], message.Position[1])
	case proto.TypeReset:
		view, err = s.sessions.Reset(ctx, sessionID)
	case proto.TypeState:
		view, err = s.sessions.State(ctx, sessionID)
	}

	if err != nil {
		slog.ErrorContext(ctx, "session operation failed", "session.id", sessionID, "message.type", message.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session operation failed")
		return &proto.ServerToClientMessage{Type: proto.TypeError, Reason: "session unavailable"}
	}
	return proto.NewUpdate(view.Snapshot, view.Result)
}

func (s *Server) writeJSON(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// heartbeat pings the client until done is closed or a ping fails.
func heartbeat(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
