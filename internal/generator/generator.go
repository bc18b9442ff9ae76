// Package generator mints puzzles offline: a backtracking search
// fills grids whose rows and columns are all dictionary roots, and a
// batch builder packs them into a bank, tier by tier.
package generator

import (
	"log/slog"
	"math/rand/v2"

	"shorashim.app/game/internal/dictionary"
	"shorashim.app/game/internal/puzzle"
)

var Log *slog.Logger = slog.Default()

// Generator produces solved grids from one dictionary. Not safe for
// concurrent use; generation is a single-threaded batch affair.
type Generator struct {
	dict *dictionary.Dictionary
	v    *puzzle.Validator
	rnd  *rand.Rand
}

func New(dict *dictionary.Dictionary, rnd *rand.Rand) *Generator {
	return &Generator{
		dict: dict,
		v:    puzzle.NewValidator(dict),
		rnd:  rnd,
	}
}

// Grid runs one generation attempt: a uniformly random root seeds row
// 0, then the remaining cells are filled by depth-first backtracking.
// ok is false when the seed admits no solved grid; the caller simply
// tries again.
func (g *Generator) Grid() (puzzle.Grid, bool) {
	seed := g.dict.RandomRoot(g.rnd)

	var grid puzzle.Grid
	copy(grid[0][:], []rune(seed))

	if !g.fill(&grid, 3) {
		Log.Debug("seed root admits no grid", slog.String("seed", seed))
		return puzzle.Grid{}, false
	}

	if !g.v.ValidateGrid(grid) {
		// the pruning rules should make this unreachable
		Log.Error("search accepted an unsolved grid", slog.String("key", grid.Key()))
		return puzzle.Grid{}, false
	}

	return grid, true
}

// fill assigns cells idx..8 in row-major order, trying the
// dictionary's letters in first-appearance order and pruning any
// branch whose partial row or column cannot extend to a root.
func (g *Generator) fill(grid *puzzle.Grid, idx int) bool {
	if idx == 9 {
		return true
	}

	row, col := idx/3, idx%3
	for _, letter := range g.dict.Letters() {
		grid[row][col] = letter
		if g.viable(grid, row, col) && g.fill(grid, idx+1) {
			return true
		}
	}
	grid[row][col] = 0
	return false
}

// viable checks the two lines the cell at (row, col) just extended:
// a completed line must be a root, a partial one a root prefix.
func (g *Generator) viable(grid *puzzle.Grid, row, col int) bool {
	if col == 2 {
		if !g.dict.IsValidRoot(grid.Row(row)) {
			return false
		}
	} else if !g.dict.HasPrefix(grid.Row(row)) {
		return false
	}

	if row == 2 {
		return g.dict.IsValidRoot(grid.Col(col))
	}
	return g.dict.HasPrefix(grid.Col(col))
}
