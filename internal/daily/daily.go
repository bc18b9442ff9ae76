// Package daily deterministically maps calendar dates to bank
// puzzles: the weekday picks a difficulty tier, a rolling hash of the
// date string picks the puzzle inside it.
package daily

import (
	"errors"
	"fmt"
	"time"

	"shorashim.app/game/internal/bank"
)

// DefaultTimezone is where the daily puzzle flips at midnight.
const DefaultTimezone = "Asia/Jerusalem"

// ErrEmptyTier means a date mapped to a tier the bank holds no
// puzzles for. A verified bank can never trigger it.
var ErrEmptyTier = errors.New("day tier has no puzzles")

// TierForDate maps the weekday of t in loc to a day tier: Sunday gets
// the hardest tier 7, Monday through Saturday get tiers 1 through 6.
func TierForDate(t time.Time, loc *time.Location) int {
	weekday := int(t.In(loc).Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}

// DateKey returns the calendar date of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Hash is the rolling hash the selector indexes tiers with:
// h = h*31 + byte, wrapping in uint32. Changing it remaps every date
// in every deployed bank, so don't.
func Hash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// Selector picks the puzzle of the day from a fixed bank.
type Selector struct {
	loc    *time.Location
	byTier [8][]bank.Puzzle
}

func NewSelector(b *bank.Bank, loc *time.Location) *Selector {
	s := &Selector{loc: loc}
	for tier := 1; tier <= 7; tier++ {
		s.byTier[tier] = b.ByTier(tier)
	}
	return s
}

// Location returns the timezone the selector resolves dates in.
func (s *Selector) Location() *time.Location {
	return s.loc
}

// PuzzleForDate returns the puzzle for the calendar date of t. The
// same date always yields the same puzzle for a given bank.
func (s *Selector) PuzzleForDate(t time.Time) (*bank.Puzzle, error) {
	tier := TierForDate(t, s.loc)
	puzzles := s.byTier[tier]
	if len(puzzles) == 0 {
		return nil, fmt.Errorf("%w: tier %d on %s", ErrEmptyTier, tier, DateKey(t, s.loc))
	}

	i := int(Hash(DateKey(t, s.loc)) % uint32(len(puzzles)))
	return &puzzles[i], nil
}

// Today returns the puzzle for the current date in the selector's
// timezone.
func (s *Selector) Today() (*bank.Puzzle, error) {
	return s.PuzzleForDate(time.Now())
}
