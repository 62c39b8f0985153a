package proto

import (
	"ctchen222/growing-tic-tac-toe/internal/engine"
	"ctchen222/growing-tic-tac-toe/internal/game"
)

// Client message types
const (
	TypeStart = "start"
	TypeMove  = "move"
	TypeReset = "reset"
	TypeState = "state"
)

// Server message types
const (
	TypeSession = "session"
	TypeUpdate  = "update"
	TypeError   = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string          `json:"type" validate:"required,oneof=start move reset state"`
	Mark     game.PlayerMark `json:"mark,omitempty" validate:"required_if=Type start,omitempty,mark"`
	Position []int           `json:"position,omitempty" validate:"required_if=Type move,omitempty,len=2"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type       string          `json:"type" validate:"required"`
	Reason     string          `json:"reason,omitempty"`
	Outcome    engine.Outcome  `json:"outcome,omitempty"`
	Board      game.Board      `json:"board,omitempty"`
	BoardSize  int             `json:"boardSize,omitempty"`
	Active     bool            `json:"active"`
	Turn       engine.Turn     `json:"turn,omitempty"`
	PlayerMark game.PlayerMark `json:"playerMark,omitempty"`
	BotMark    game.PlayerMark `json:"botMark,omitempty"`
	PlayerMove *engine.Move    `json:"playerMove,omitempty"`
	BotMove    *engine.Move    `json:"botMove,omitempty"`
	// FinalBoard is the board the round ended or was won on.
	FinalBoard game.Board `json:"finalBoard,omitempty"`
}

// SessionAssignmentMessage informs a client of its session id.
type SessionAssignmentMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// NewUpdate builds the update message for a snapshot and the result of the
// call that produced it.
func NewUpdate(snap engine.Snapshot, res engine.Result) *ServerToClientMessage {
	msg := &ServerToClientMessage{
		Type:       TypeUpdate,
		Outcome:    res.Outcome,
		Board:      snap.Board,
		BoardSize:  snap.BoardSize,
		Active:     snap.Active,
		Turn:       snap.Turn,
		PlayerMark: snap.PlayerMark,
		BotMark:    snap.BotMark,
		PlayerMove: res.PlayerMove,
		BotMove:    res.BotMove,
	}
	if res.Outcome == engine.PlayerWin || res.Outcome.Terminal() {
		msg.FinalBoard = res.Board
	}
	return msg
}
