// Package puzzle holds the 3x3 grid model and the validation rules
// shared by the offline generator and the play-time API.
package puzzle

import (
	"fmt"
	"strings"

	"shorashim.app/game/internal/hebrew"
)

// Grid is a 3x3 letter grid in row-major order. Cells hold canonical
// letters; zero marks an empty cell. Constructors normalize their
// input, so grids compare directly.
type Grid [3][3]rune

// FromRows builds a full grid from three row words.
func FromRows(rows [3]string) (Grid, error) {
	var g Grid
	for i, row := range rows {
		letters := hebrew.Letters(row)
		if len(letters) != 3 {
			return Grid{}, fmt.Errorf("row %d: want 3 letters, got %d", i, len(letters))
		}
		copy(g[i][:], letters)
	}
	return g, nil
}

// FromCells builds a possibly partial grid from single-letter cells.
// Empty strings mark empty cells.
func FromCells(cells [3][3]string) (Grid, error) {
	var g Grid
	for i := range cells {
		for j, cell := range cells[i] {
			if cell == "" {
				continue
			}
			letters := hebrew.Letters(cell)
			if len(letters) != 1 {
				return Grid{}, fmt.Errorf("cell %d:%d: want a single letter, got %q", i, j, cell)
			}
			g[i][j] = letters[0]
		}
	}
	return g, nil
}

// Row returns the letters of row i filled in so far, reading from the
// left and stopping at the first empty cell.
func (g Grid) Row(i int) string {
	var b strings.Builder
	for j := range 3 {
		if g[i][j] == 0 {
			break
		}
		b.WriteRune(g[i][j])
	}
	return b.String()
}

// Col returns the letters of column j filled in so far, reading from
// the top and stopping at the first empty cell.
func (g Grid) Col(j int) string {
	var b strings.Builder
	for i := range 3 {
		if g[i][j] == 0 {
			break
		}
		b.WriteRune(g[i][j])
	}
	return b.String()
}

// Rows returns the three row words of a full grid.
func (g Grid) Rows() [3]string {
	return [3]string{g.Row(0), g.Row(1), g.Row(2)}
}

// IsFull reports whether every cell holds a letter.
func (g Grid) IsFull() bool {
	for i := range 3 {
		for j := range 3 {
			if g[i][j] == 0 {
				return false
			}
		}
	}
	return true
}

// Key returns the canonical row-major serialization of the grid, one
// rune per cell with '.' standing for empty. Two grids are the same
// solution iff their keys are equal.
func (g Grid) Key() string {
	var b strings.Builder
	for i := range 3 {
		for j := range 3 {
			if g[i][j] == 0 {
				b.WriteRune('.')
			} else {
				b.WriteRune(g[i][j])
			}
		}
	}
	return b.String()
}

func (g Grid) String() string {
	var b strings.Builder
	for i := range 3 {
		for j := range 3 {
			if g[i][j] == 0 {
				b.WriteRune('.')
			} else {
				b.WriteRune(g[i][j])
			}
			if j < 2 {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
