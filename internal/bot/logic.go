package bot

import (
	"ctchen222/growing-tic-tac-toe/internal/game"
	"math/rand/v2"
	"sync"
)

// MoveCalculator picks the cell an automated player marks next.
// It returns (-1, -1) when the board has no empty cell.
type MoveCalculator interface {
	CalculateNextMove(board game.Board, mark game.PlayerMark) (row, col int)
}

// RandomMoveCalculator chooses uniformly among the empty cells.
// It never looks at marks, so mark is accepted only to satisfy MoveCalculator.
type RandomMoveCalculator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomMoveCalculator returns a calculator drawing from src. A nil src
// uses the process-wide generator.
func NewRandomMoveCalculator(src rand.Source) *RandomMoveCalculator {
	c := &RandomMoveCalculator{}
	if src != nil {
		c.rng = rand.New(src)
	}
	return c
}

// CalculateNextMove implements MoveCalculator.
func (c *RandomMoveCalculator) CalculateNextMove(board game.Board, _ game.PlayerMark) (row, col int) {
	return c.randomMove(board)
}

// randomMove makes a completely random move.
func (c *RandomMoveCalculator) randomMove(board game.Board) (row, col int) {
	availableMoves := board.AvailableMoves()
	if len(availableMoves) == 0 {
		return -1, -1 // No moves left
	}

	randomMove := availableMoves[c.intN(len(availableMoves))]
	return randomMove[0], randomMove[1]
}

func (c *RandomMoveCalculator) intN(n int) int {
	if c.rng == nil {
		return rand.IntN(n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}
