package generator

import (
	"math"

	"shorashim.app/game/internal/dictionary"
	"shorashim.app/game/internal/puzzle"
)

// Difficulty scores a grid 0-100 by letter rarity: each cell
// contributes 1000 divided by its letter's frequency across the
// dictionary, with unseen letters counted as frequency 1. The cell
// scores are averaged, rounded and clamped. The score is independent
// of the discrete day tier.
func Difficulty(dict *dictionary.Dictionary, g puzzle.Grid) int {
	var sum float64
	for i := range 3 {
		for j := range 3 {
			freq := dict.LetterFrequency(g[i][j])
			if freq < 1 {
				freq = 1
			}
			sum += 1000 / float64(freq)
		}
	}

	score := int(math.Round(sum / 9))
	return min(max(score, 0), 100)
}
