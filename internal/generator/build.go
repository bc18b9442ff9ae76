package generator

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"shorashim.app/game/internal/bank"
	"shorashim.app/game/internal/dictionary"
)

// Options bound a generation run.
type Options struct {
	// TotalTarget is the number of puzzles wanted across all seven
	// tiers; each tier targets ceil(TotalTarget/7).
	TotalTarget int
	// MaxAttempts is the global attempt budget. Dead seeds and
	// duplicate grids spend budget without producing puzzles.
	MaxAttempts int
}

// Stats reports what a run actually did. Produced lags Requested when
// the attempt budget ran out first.
type Stats struct {
	Requested int
	Produced  int
	Attempts  int
	PerTier   [8]int // indexed by day tier 1..7
}

// Build mints a puzzle bank: seven day tiers filled in order under
// one global attempt budget, skipping any grid already produced in
// this run. Exhausting the budget is not an error; the remaining
// tiers simply stay short and the caller reads the shortfall off
// Stats.
func Build(dict *dictionary.Dictionary, opts Options, rnd *rand.Rand) (*bank.Bank, Stats, error) {
	var stats Stats

	if opts.TotalTarget <= 0 {
		return nil, stats, errors.New("total target must be positive")
	}
	if opts.MaxAttempts <= 0 {
		return nil, stats, errors.New("attempt budget must be positive")
	}

	gen := New(dict, rnd)
	perTier := (opts.TotalTarget + 6) / 7
	stats.Requested = opts.TotalTarget

	b := &bank.Bank{
		Generated: time.Now().UTC(),
		RootsUsed: dict.Len(),
	}
	seen := make(map[string]bool)

	for tier := 1; tier <= 7; tier++ {
		for stats.PerTier[tier] < perTier && stats.Attempts < opts.MaxAttempts {
			stats.Attempts++

			grid, ok := gen.Grid()
			if !ok {
				continue
			}

			key := grid.Key()
			if seen[key] {
				continue
			}
			seen[key] = true

			id := stats.Produced + 1
			p := bank.Puzzle{
				ID:             id,
				Grid:           grid.Rows(),
				Difficulty:     Difficulty(dict, grid),
				PrefilledCells: PrefilledCells(id, tier),
				DayDifficulty:  tier,
			}
			b.Puzzles = append(b.Puzzles, p)
			stats.Produced++
			stats.PerTier[tier]++

			Log.Debug("minted puzzle",
				slog.Int("id", id),
				slog.Int("tier", tier),
				slog.Int("difficulty", p.Difficulty),
			)
		}

		if stats.PerTier[tier] < perTier {
			Log.Warn("tier short of target",
				slog.Int("tier", tier),
				slog.Int("produced", stats.PerTier[tier]),
				slog.Int("target", perTier),
				slog.Int("attempts", stats.Attempts),
			)
		}
	}

	b.TotalPuzzles = len(b.Puzzles)
	return b, stats, nil
}
