package engine

import "ctchen222/growing-tic-tac-toe/internal/game"

// Outcome is the result of evaluating a move.
type Outcome string

const (
	None      Outcome = "none"
	Continue  Outcome = "continue"
	PlayerWin Outcome = "player_win"
	BotWin    Outcome = "bot_win"
	Draw      Outcome = "draw"
)

// Terminal reports whether the outcome ends the session and returns it to
// the start screen.
func (o Outcome) Terminal() bool {
	return o == BotWin || o == Draw
}

// Turn names the party expected to move next.
type Turn string

const (
	TurnPlayer Turn = "player"
	TurnBot    Turn = "bot"
)

// State is the session-level lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateActive     State = "active"
)

// Move addresses one cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Result is what the engine hands back to the presentation layer after an
// inbound call.
type Result struct {
	Outcome Outcome
	// BoardSize is the size of the new board after a PlayerWin.
	BoardSize int
	// PlayerMove and BotMove are the cells marked during the call, if any.
	PlayerMove *Move
	BotMove    *Move
	// Board is the board as it stood when the call resolved, before a win
	// or a round end replaced it.
	Board game.Board
}
