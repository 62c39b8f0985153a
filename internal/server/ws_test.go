package server

import (
	"ctchen222/growing-tic-tac-toe/internal/engine"
	"ctchen222/growing-tic-tac-toe/pkg/proto"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, ts *httptest.Server, sessionID string) (*websocket.Conn, string) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?sessionId=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var assignment proto.SessionAssignmentMessage
	require.NoError(t, conn.ReadJSON(&assignment))
	require.Equal(t, proto.TypeSession, assignment.Type)
	require.NotEmpty(t, assignment.SessionID)
	return conn, assignment.SessionID
}

func exchange(t *testing.T, conn *websocket.Conn, msg any) proto.ServerToClientMessage {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var reply proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestWebSocketGameFlow(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Engine())
	defer ts.Close()

	conn, sessionID := dialWS(t, ts, "")

	reply := exchange(t, conn, proto.ClientToServerMessage{Type: proto.TypeStart, Mark: "O"})
	assert.Equal(t, proto.TypeUpdate, reply.Type)
	assert.True(t, reply.Active)
	require.NotNil(t, reply.BotMove)
	assert.Nil(t, reply.PlayerMove)
	assert.Equal(t, engine.TurnPlayer, reply.Turn)

	reply = exchange(t, conn, proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{0, 0}})
	assert.Equal(t, engine.Continue, reply.Outcome)
	require.NotNil(t, reply.PlayerMove)

	// A second connection with the same id sees the same game.
	other, otherID := dialWS(t, ts, sessionID)
	assert.Equal(t, sessionID, otherID)
	state := exchange(t, other, proto.ClientToServerMessage{Type: proto.TypeState})
	assert.Equal(t, reply.Board, state.Board)

	reply = exchange(t, conn, proto.ClientToServerMessage{Type: proto.TypeReset})
	assert.False(t, reply.Active)
}

func TestWebSocketDropsInvalidMessages(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Engine())
	defer ts.Close()

	conn, _ := dialWS(t, ts, "not-a-uuid")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: "rematch"}))
	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: proto.TypeMove}))

	// Only the valid message gets an answer.
	reply := exchange(t, conn, proto.ClientToServerMessage{Type: proto.TypeState})
	assert.Equal(t, proto.TypeUpdate, reply.Type)
	assert.Equal(t, engine.None, reply.Outcome)
}
