// Package game tracks one player's progress through one puzzle: cell
// edits, clue reveals and the final submission verdict.
package game

import (
	"errors"
	"fmt"

	"shorashim.app/game/internal/bank"
	"shorashim.app/game/internal/hebrew"
	"shorashim.app/game/internal/puzzle"
)

var (
	// ErrPrefilledCell is returned for writes to a clue cell.
	ErrPrefilledCell = errors.New("cell is prefilled")
	// ErrOutOfRange is returned for positions outside the grid.
	ErrOutOfRange = errors.New("cell position out of range")
)

// Cell is one grid position as the player sees it.
type Cell struct {
	Value     rune
	Prefilled bool
	Revealed  bool
}

// Result is the verdict on a submitted grid. Alternative marks a
// solved grid that differs from the one the generator minted.
type Result struct {
	Valid       bool
	Alternative bool
}

// Session is the mutable play state over one immutable bank puzzle.
// It is not safe for concurrent use; each player owns one session.
type Session struct {
	solution puzzle.Grid
	v        *puzzle.Validator
	cells    [3][3]Cell
}

// NewSession starts a fresh session: the puzzle's prefilled cells are
// populated from the solution, everything else is empty.
func NewSession(p *bank.Puzzle, v *puzzle.Validator) (*Session, error) {
	solution, err := p.SolutionGrid()
	if err != nil {
		return nil, err
	}

	s := &Session{solution: solution, v: v}
	for _, pos := range p.PrefilledCells {
		if pos.Row < 0 || pos.Row > 2 || pos.Col < 0 || pos.Col > 2 {
			return nil, fmt.Errorf("puzzle %d: prefilled cell %d:%d out of range", p.ID, pos.Row, pos.Col)
		}
		s.cells[pos.Row][pos.Col] = Cell{
			Value:     solution[pos.Row][pos.Col],
			Prefilled: true,
		}
	}
	return s, nil
}

func checkPos(row, col int) error {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return ErrOutOfRange
	}
	return nil
}

// SetCell writes a letter into an open cell.
func (s *Session) SetCell(row, col int, letter rune) error {
	if err := checkPos(row, col); err != nil {
		return err
	}
	if s.cells[row][col].Prefilled {
		return ErrPrefilledCell
	}
	s.cells[row][col].Value = hebrew.NormalizeLetter(letter)
	return nil
}

// ClearCell empties an open cell.
func (s *Session) ClearCell(row, col int) error {
	if err := checkPos(row, col); err != nil {
		return err
	}
	if s.cells[row][col].Prefilled {
		return ErrPrefilledCell
	}
	s.cells[row][col] = Cell{}
	return nil
}

// RevealCell fills a cell with its solution letter and marks it
// revealed. Revealing a prefilled cell just returns its letter.
func (s *Session) RevealCell(row, col int) (rune, error) {
	if err := checkPos(row, col); err != nil {
		return 0, err
	}
	letter := s.solution[row][col]
	if s.cells[row][col].Prefilled {
		return letter, nil
	}
	s.cells[row][col] = Cell{Value: letter, Revealed: true}
	return letter, nil
}

// Reset empties every cell the player or a reveal filled in,
// keeping the prefilled clues.
func (s *Session) Reset() {
	for row := range 3 {
		for col := range 3 {
			if !s.cells[row][col].Prefilled {
				s.cells[row][col] = Cell{}
			}
		}
	}
}

// Apply bulk-writes a whole grid of single-letter cells, as submitted
// by a client. Empty strings clear. Writes to prefilled cells are
// rejected unless they agree with the clue letter.
func (s *Session) Apply(cells [3][3]string) error {
	g, err := puzzle.FromCells(cells)
	if err != nil {
		return err
	}
	for row := range 3 {
		for col := range 3 {
			if s.cells[row][col].Prefilled {
				if g[row][col] != 0 && g[row][col] != s.solution[row][col] {
					return fmt.Errorf("%w: %d:%d", ErrPrefilledCell, row, col)
				}
				continue
			}
			s.cells[row][col] = Cell{Value: g[row][col]}
		}
	}
	return nil
}

// Cells returns the board as the player sees it.
func (s *Session) Cells() [3][3]Cell {
	return s.cells
}

// Grid returns the current letters as a grid, prefilled clues
// included.
func (s *Session) Grid() puzzle.Grid {
	var g puzzle.Grid
	for row := range 3 {
		for col := range 3 {
			g[row][col] = s.cells[row][col].Value
		}
	}
	return g
}

// Hints returns the letters that could legally fill a cell given the
// current board.
func (s *Session) Hints(row, col int) ([]rune, error) {
	if err := checkPos(row, col); err != nil {
		return nil, err
	}
	return s.v.HintsForPosition(s.Grid(), row, col), nil
}

// Submit judges the current board. A solved board that differs from
// the minted solution counts as valid with Alternative set.
func (s *Session) Submit() Result {
	g := s.Grid()
	if !s.v.ValidateGrid(g) {
		return Result{}
	}
	return Result{
		Valid:       true,
		Alternative: g.Key() != s.solution.Key(),
	}
}
