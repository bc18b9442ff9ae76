// Package bank defines the puzzle bank file: the single artifact the
// offline generator hands to the play-time server. The JSON layout is
// a stable contract; renaming a field breaks every deployed bank.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"shorashim.app/game/internal/puzzle"
)

// Position is a grid coordinate, zero-based from the top-left.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Puzzle is one generated puzzle. The grid is the intended solution;
// prefilled cells are the positions revealed to the player as clues.
type Puzzle struct {
	ID             int        `json:"id"`
	Grid           [3]string  `json:"grid"`
	Difficulty     int        `json:"difficulty"`
	PrefilledCells []Position `json:"prefilledCells"`
	DayDifficulty  int        `json:"dayDifficulty"`
}

// SolutionGrid parses the stored row words back into a grid.
func (p *Puzzle) SolutionGrid() (puzzle.Grid, error) {
	g, err := puzzle.FromRows(p.Grid)
	if err != nil {
		return puzzle.Grid{}, fmt.Errorf("puzzle %d: %w", p.ID, err)
	}
	return g, nil
}

// Bank is a full generation run.
type Bank struct {
	Generated    time.Time `json:"generated"`
	TotalPuzzles int       `json:"totalPuzzles"`
	RootsUsed    int       `json:"rootsUsed"`
	Puzzles      []Puzzle  `json:"puzzles"`
}

// CluesForTier returns how many cells are prefilled for a day tier.
// Unknown tiers get the midweek default.
func CluesForTier(tier int) int {
	switch tier {
	case 1, 2:
		return 6
	case 3, 4:
		return 5
	case 5, 6:
		return 4
	default:
		return 5
	}
}

// ByTier returns the puzzles of one day tier, in bank order.
func (b *Bank) ByTier(tier int) []Puzzle {
	var out []Puzzle
	for _, p := range b.Puzzles {
		if p.DayDifficulty == tier {
			out = append(out, p)
		}
	}
	return out
}

// WriteFile writes the bank as indented JSON.
func (b *Bank) WriteFile(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize bank: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write bank %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a bank written by [Bank.WriteFile].
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read bank %s: %w", path, err)
	}
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unable to parse bank %s: %w", path, err)
	}
	return &b, nil
}

// Verify checks the bank against the dictionary it will be served
// with. It fails on the first defect found: an unsolved or malformed
// grid, a clue count that disagrees with the tier table, duplicate or
// out-of-range clue positions, a duplicate id, an inconsistent total,
// or a day tier with no puzzles at all. A bank that fails Verify must
// not be deployed.
func (b *Bank) Verify(v *puzzle.Validator) error {
	if b.TotalPuzzles != len(b.Puzzles) {
		return fmt.Errorf("bank reports %d puzzles but contains %d", b.TotalPuzzles, len(b.Puzzles))
	}

	ids := make(map[int]bool, len(b.Puzzles))
	var tiers [8]int

	for i := range b.Puzzles {
		p := &b.Puzzles[i]

		if ids[p.ID] {
			return fmt.Errorf("duplicate puzzle id %d", p.ID)
		}
		ids[p.ID] = true

		if p.DayDifficulty < 1 || p.DayDifficulty > 7 {
			return fmt.Errorf("puzzle %d: day tier %d out of range", p.ID, p.DayDifficulty)
		}
		tiers[p.DayDifficulty]++

		if p.Difficulty < 0 || p.Difficulty > 100 {
			return fmt.Errorf("puzzle %d: difficulty %d out of range", p.ID, p.Difficulty)
		}

		g, err := p.SolutionGrid()
		if err != nil {
			return err
		}
		if !v.ValidateGrid(g) {
			return fmt.Errorf("puzzle %d: grid is not a valid solution", p.ID)
		}

		want := CluesForTier(p.DayDifficulty)
		if len(p.PrefilledCells) != want {
			return fmt.Errorf("puzzle %d: %d prefilled cells, tier %d wants %d",
				p.ID, len(p.PrefilledCells), p.DayDifficulty, want)
		}

		seen := make(map[Position]bool, len(p.PrefilledCells))
		for _, pos := range p.PrefilledCells {
			if pos.Row < 0 || pos.Row > 2 || pos.Col < 0 || pos.Col > 2 {
				return fmt.Errorf("puzzle %d: prefilled cell %d:%d out of range", p.ID, pos.Row, pos.Col)
			}
			if seen[pos] {
				return fmt.Errorf("puzzle %d: prefilled cell %d:%d repeated", p.ID, pos.Row, pos.Col)
			}
			seen[pos] = true
		}
	}

	for tier := 1; tier <= 7; tier++ {
		if tiers[tier] == 0 {
			return fmt.Errorf("day tier %d has no puzzles", tier)
		}
	}

	return nil
}
