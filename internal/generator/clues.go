package generator

import (
	"math/rand/v2"

	"shorashim.app/game/internal/bank"
)

// PrefilledCells picks which cells are revealed as clues for the
// puzzle with the given ordinal in a run. The shuffle is keyed by the
// ordinal alone, so regenerating a bank reproduces the same layouts
// without being guessable from the puzzle content.
func PrefilledCells(ordinal, tier int) []bank.Position {
	cells := make([]bank.Position, 9)
	for i := range cells {
		cells[i] = bank.Position{Row: i / 3, Col: i % 3}
	}

	rnd := rand.New(rand.NewPCG(uint64(ordinal), 0))
	rnd.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	return cells[:bank.CluesForTier(tier)]
}
