package puzzle

import (
	"shorashim.app/game/internal/dictionary"
)

// Validator answers whether grids are solved and which letters could
// legally fill a position. All methods are pure and safe for
// concurrent use.
type Validator struct {
	dict *dictionary.Dictionary
}

func NewValidator(dict *dictionary.Dictionary) *Validator {
	return &Validator{dict: dict}
}

// ValidateGrid reports whether every row and every column of g is a
// dictionary root. Partial grids are never valid.
func (v *Validator) ValidateGrid(g Grid) bool {
	for i := range 3 {
		if !v.dict.IsValidRoot(g.Row(i)) {
			return false
		}
		if !v.dict.IsValidRoot(g.Col(i)) {
			return false
		}
	}
	return true
}

// HintsForPosition returns the letters that could fill (row, col):
// the intersection of letters some root allows at col given the other
// filled cells of the row, and letters some root allows at row given
// the other filled cells of the column. Empty cells impose no
// constraint; the queried cell's own value is ignored. The result is
// ordered like [dictionary.Dictionary.Letters] and empty when no root
// satisfies both lines.
func (v *Validator) HintsForPosition(g Grid, row, col int) []rune {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return nil
	}

	byRow := make(map[rune]bool)
	byCol := make(map[rune]bool)
	for _, root := range v.dict.Roots() {
		letters := []rune(root)
		if matchesRow(g, row, col, letters) {
			byRow[letters[col]] = true
		}
		if matchesCol(g, row, col, letters) {
			byCol[letters[row]] = true
		}
	}

	var hints []rune
	for _, letter := range v.dict.Letters() {
		if byRow[letter] && byCol[letter] {
			hints = append(hints, letter)
		}
	}
	return hints
}

// matchesRow reports whether root could be the word of row i with its
// letter at col replaced, holding the row's other filled cells fixed.
func matchesRow(g Grid, i, col int, root []rune) bool {
	for j := range 3 {
		if j == col {
			continue
		}
		if g[i][j] != 0 && g[i][j] != root[j] {
			return false
		}
	}
	return true
}

func matchesCol(g Grid, row, j int, root []rune) bool {
	for i := range 3 {
		if i == row {
			continue
		}
		if g[i][j] != 0 && g[i][j] != root[i] {
			return false
		}
	}
	return true
}
