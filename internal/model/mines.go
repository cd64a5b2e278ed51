package model

import (
	"encoding/json"
	"time"
)

// MinesState represents the current phase of a mines session
type MinesState string

const (
	MinesStateChooseField     MinesState = "choose_field"      // Waiting for board size
	MinesStateChooseOption    MinesState = "choose_option"     // Waiting for default/custom
	MinesStateChooseMineCount MinesState = "choose_mine_count" // Waiting for custom mine count
	MinesStateChooseCell      MinesState = "choose_cell"       // Grid committed, waiting for pick
)

// MinesOption selects how the mine count is chosen
type MinesOption string

const (
	OptionDefault MinesOption = "default" // fixed count of DefaultMineCount
	OptionCustom  MinesOption = "custom"  // player supplies the count
)

// DefaultMineCount is the mine count used by the default option
const DefaultMineCount = 2

// ParseMinesOption validates a mines option string
func ParseMinesOption(s string) (MinesOption, error) {
	switch MinesOption(s) {
	case OptionDefault:
		return OptionDefault, nil
	case OptionCustom:
		return OptionCustom, nil
	default:
		return "", ErrInvalidOption
	}
}

// Cell is a single grid cell, serialized as 'M' (mine) or '0' (safe)
type Cell byte

const (
	CellSafe Cell = '0'
	CellMine Cell = 'M'
)

// Grid is a square board of mine and safe cells
type Grid [][]Cell

// Serialize flattens the grid row-major into the canonical string form
// that gets digested for the fairness commitment
func (g Grid) Serialize() string {
	buf := make([]byte, 0, len(g)*len(g))
	for _, row := range g {
		for _, c := range row {
			buf = append(buf, byte(c))
		}
	}
	return string(buf)
}

// MineCount counts the mines currently placed on the grid
func (g Grid) MineCount() int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c == CellMine {
				n++
			}
		}
	}
	return n
}

// MarshalJSON encodes the grid as a list of row strings ("0M00")
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([]string, len(g))
	for i, row := range g {
		rows[i] = string(rowBytes(row))
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes the row-string form
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j := range row {
			cells[j] = Cell(row[j])
		}
		grid[i] = cells
	}
	*g = grid
	return nil
}

func rowBytes(row []Cell) []byte {
	b := make([]byte, len(row))
	for i, c := range row {
		b[i] = byte(c)
	}
	return b
}

// ValidBoardSizes are the board sizes a player may choose
var ValidBoardSizes = []int{4, 5, 6}

// ValidBoardSize reports whether size is an allowed board size
func ValidBoardSize(size int) bool {
	for _, s := range ValidBoardSizes {
		if s == size {
			return true
		}
	}
	return false
}

// CellPosition maps a 1-based cell number to (row, col) coordinates
func CellPosition(cellNumber, boardSize int) (row, col int) {
	return (cellNumber - 1) / boardSize, (cellNumber - 1) % boardSize
}

// MinesSession is an in-progress mines game. The stake is debited when the
// session is created; the grid and its hash exist only once the session
// reaches MinesStateChooseCell.
type MinesSession struct {
	PlayerID  PlayerID
	Stake     int64
	State     MinesState
	BoardSize int
	MineCount int
	Grid      Grid
	GridHash  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCells returns the number of cells on the board
func (s *MinesSession) TotalCells() int {
	return s.BoardSize * s.BoardSize
}
