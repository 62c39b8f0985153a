package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board sizes
	MinBoardSize = 3
	MaxBoardSize = 10
)

// Valid reports whether m is a mark a party can own.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other party's mark. None maps to None.
func Opponent(m PlayerMark) PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Board is a square grid of marks indexed as Board[row][col].
type Board [][]PlayerMark

// NewBoard returns an empty size x size board.
func NewBoard(size int) Board {
	board := make(Board, size)
	for i := range board {
		board[i] = make([]PlayerMark, size)
	}
	return board
}

func (b Board) Size() int {
	return len(b)
}

// InBounds reports whether (row, col) addresses a cell on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(b) && col >= 0 && col < len(b)
}

// IsSquare reports whether every row has as many cells as there are rows.
func (b Board) IsSquare() bool {
	for _, row := range b {
		if len(row) != len(b) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	board := make(Board, len(b))
	for i, row := range b {
		board[i] = append([]PlayerMark(nil), row...)
	}
	return board
}

// CheckWin reports whether any full row, column or either diagonal is
// made up entirely of mark.
func (b Board) CheckWin(mark PlayerMark) bool {
	n := len(b)
	if n == 0 || mark == None {
		return false
	}

	// Check rows and columns
	for i := 0; i < n; i++ {
		rowWin, colWin := true, true
		for j := 0; j < n; j++ {
			if b[i][j] != mark {
				rowWin = false
			}
			if b[j][i] != mark {
				colWin = false
			}
		}
		if rowWin || colWin {
			return true
		}
	}

	// Check diagonals
	mainWin, antiWin := true, true
	for i := 0; i < n; i++ {
		if b[i][i] != mark {
			mainWin = false
		}
		if b[i][n-1-i] != mark {
			antiWin = false
		}
	}
	return mainWin || antiWin
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == None {
				return false
			}
		}
	}
	return true
}

// AvailableMoves lists every empty cell in row-major order.
func (b Board) AvailableMoves() [][2]int {
	var moves [][2]int
	for r, row := range b {
		for c, cell := range row {
			if cell == None {
				moves = append(moves, [2]int{r, c})
			}
		}
	}
	return moves
}
