package engine

import (
	"ctchen222/growing-tic-tac-toe/internal/game"
	"errors"
	"fmt"
)

var ErrInvalidSnapshot = errors.New("invalid engine snapshot")

// Snapshot is a serialisable copy of an engine's state.
type Snapshot struct {
	BoardSize  int             `json:"board_size"`
	PlayerMark game.PlayerMark `json:"player_mark"`
	BotMark    game.PlayerMark `json:"bot_mark"`
	Turn       Turn            `json:"turn"`
	Active     bool            `json:"active"`
	Board      game.Board      `json:"board"`
}

// Snapshot captures the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		BoardSize:  e.boardSize,
		PlayerMark: e.playerMark,
		BotMark:    e.botMark,
		Turn:       e.turn,
		Active:     e.active,
		Board:      e.board.Clone(),
	}
}

// Restore rebuilds an engine from s. It fails with ErrInvalidSnapshot when s
// breaks a board or session invariant.
func Restore(s Snapshot, opts ...Option) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	e := New(opts...)
	e.boardSize = s.BoardSize
	e.playerMark = s.PlayerMark
	e.botMark = s.BotMark
	e.turn = s.Turn
	e.active = s.Active
	e.board = s.Board.Clone()
	return e, nil
}

// Validate checks the invariants Restore relies on.
func (s Snapshot) Validate() error {
	if s.BoardSize < game.MinBoardSize || s.BoardSize > game.MaxBoardSize {
		return fmt.Errorf("%w: board size %d", ErrInvalidSnapshot, s.BoardSize)
	}
	if s.Board.Size() != s.BoardSize || !s.Board.IsSquare() {
		return fmt.Errorf("%w: board is not %dx%d", ErrInvalidSnapshot, s.BoardSize, s.BoardSize)
	}
	if !s.PlayerMark.Valid() || s.BotMark != game.Opponent(s.PlayerMark) {
		return fmt.Errorf("%w: marks %q/%q", ErrInvalidSnapshot, s.PlayerMark, s.BotMark)
	}
	if s.Turn != TurnPlayer && s.Turn != TurnBot {
		return fmt.Errorf("%w: turn %q", ErrInvalidSnapshot, s.Turn)
	}
	for _, row := range s.Board {
		for _, cell := range row {
			if cell != game.None && !cell.Valid() {
				return fmt.Errorf("%w: cell %q", ErrInvalidSnapshot, cell)
			}
		}
	}
	return nil
}
