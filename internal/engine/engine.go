// Package engine holds the rules of growing tic-tac-toe: a human player
// against a bot on a square board that gets one size larger every time the
// player wins.
//
// An Engine is not safe for concurrent use. Every call runs to completion,
// including the bot's reply, before it returns.
package engine

import (
	"ctchen222/growing-tic-tac-toe/internal/bot"
	"ctchen222/growing-tic-tac-toe/internal/game"
)

type Engine struct {
	board      game.Board
	boardSize  int
	playerMark game.PlayerMark
	botMark    game.PlayerMark
	turn       Turn
	active     bool
	calculator bot.MoveCalculator
}

// Option configures an Engine.
type Option func(*Engine)

// WithMoveCalculator replaces the uniform-random bot.
func WithMoveCalculator(c bot.MoveCalculator) Option {
	return func(e *Engine) {
		if c != nil {
			e.calculator = c
		}
	}
}

// New returns an engine on the start screen with an empty 3x3 board.
func New(opts ...Option) *Engine {
	e := &Engine{
		boardSize:  game.MinBoardSize,
		playerMark: game.PlayerX,
		botMark:    game.PlayerO,
		turn:       TurnPlayer,
		calculator: bot.NewRandomMoveCalculator(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initializeBoard()
	return e
}

// Start begins a session with the player owning mark. X always moves first,
// so choosing O makes the bot play its opening move before Start returns.
// Marks other than X and O are ignored.
func (e *Engine) Start(mark game.PlayerMark) Result {
	if !mark.Valid() {
		return Result{Outcome: None, Board: e.board.Clone()}
	}

	e.playerMark = mark
	e.botMark = game.Opponent(mark)
	e.boardSize = game.MinBoardSize
	e.initializeBoard()
	e.active = true
	e.turn = TurnPlayer

	if e.playerMark == game.PlayerO {
		e.turn = TurnBot
		return e.BotMove()
	}
	return Result{Outcome: Continue, Board: e.board.Clone()}
}

// ApplyPlayerMove marks (row, col) for the player and, unless the move ends
// the round, lets the bot answer. Moves off the board, onto an occupied
// cell, out of turn or outside an active session are ignored and yield None.
func (e *Engine) ApplyPlayerMove(row, col int) Result {
	if !e.active || e.turn != TurnPlayer || !e.board.InBounds(row, col) || e.board[row][col] != game.None {
		return Result{Outcome: None, Board: e.board.Clone()}
	}

	e.board[row][col] = e.playerMark
	move := &Move{Row: row, Col: col}

	if e.CheckWin(e.playerMark) {
		final := e.board.Clone()
		if e.boardSize < game.MaxBoardSize {
			e.boardSize++
		}
		e.initializeBoard()
		e.turn = TurnPlayer
		return Result{Outcome: PlayerWin, BoardSize: e.boardSize, PlayerMove: move, Board: final}
	}

	if e.CheckDraw() {
		final := e.board.Clone()
		e.endRound()
		return Result{Outcome: Draw, PlayerMove: move, Board: final}
	}

	e.turn = TurnBot
	res := e.BotMove()
	res.PlayerMove = move
	return res
}

// BotMove lets the bot mark one empty cell. The engine calls it itself after
// every continuing player move; it is a no-op outside an active session.
func (e *Engine) BotMove() Result {
	if !e.active {
		return Result{Outcome: None, Board: e.board.Clone()}
	}

	row, col := e.calculator.CalculateNextMove(e.board.Clone(), e.botMark)
	if !e.board.InBounds(row, col) || e.board[row][col] != game.None {
		return Result{Outcome: None, Board: e.board.Clone()}
	}

	e.board[row][col] = e.botMark
	move := &Move{Row: row, Col: col}

	if e.CheckWin(e.botMark) {
		final := e.board.Clone()
		e.endRound()
		return Result{Outcome: BotWin, BotMove: move, Board: final}
	}

	if e.CheckDraw() {
		final := e.board.Clone()
		e.endRound()
		return Result{Outcome: Draw, BotMove: move, Board: final}
	}

	e.turn = TurnPlayer
	return Result{Outcome: Continue, BotMove: move, Board: e.board.Clone()}
}

// ResetToStart abandons the session and returns to the start screen.
func (e *Engine) ResetToStart() {
	e.endRound()
}

// CheckWin reports whether mark fills a row, column or diagonal of the
// current board.
func (e *Engine) CheckWin(mark game.PlayerMark) bool {
	return e.board.CheckWin(mark)
}

// CheckDraw reports whether every cell is taken. Callers check for a win first.
func (e *Engine) CheckDraw() bool {
	return e.board.IsFull()
}

// Board returns a copy of the current board.
func (e *Engine) Board() game.Board {
	return e.board.Clone()
}

func (e *Engine) BoardSize() int {
	return e.boardSize
}

func (e *Engine) Active() bool {
	return e.active
}

func (e *Engine) Turn() Turn {
	return e.turn
}

func (e *Engine) PlayerMark() game.PlayerMark {
	return e.playerMark
}

func (e *Engine) BotMark() game.PlayerMark {
	return e.botMark
}

func (e *Engine) State() State {
	if e.active {
		return StateActive
	}
	return StateNotStarted
}

// endRound deactivates the session and shrinks the board back to 3x3.
func (e *Engine) endRound() {
	e.active = false
	e.boardSize = game.MinBoardSize
	e.turn = TurnPlayer
	e.initializeBoard()
}

func (e *Engine) initializeBoard() {
	e.board = game.NewBoard(e.boardSize)
}
