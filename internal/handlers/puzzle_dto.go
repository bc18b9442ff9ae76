package handlers

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gorilla/schema"

	"shorashim.app/game/internal/bank"
)

type DateQueryDTO struct {
	Date string `schema:"date"`
}

func ParseDateQueryDTO(src map[string][]string) (DateQueryDTO, error) {
	var dto DateQueryDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GridDTO carries the player's current grid. Empty strings are empty
// cells.
type GridDTO struct {
	Cells [3][3]string `json:"cells"`
}

func ParseGridDTO(r io.Reader) (GridDTO, error) {
	var dto GridDTO
	err := json.NewDecoder(r).Decode(&dto)
	return dto, err
}

type PrefilledCellDTO struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// PuzzleDTO is what the client gets for a day's puzzle. The solution
// grid never ships; only the prefilled clue letters do.
type PuzzleDTO struct {
	ID            int                `json:"id"`
	Date          string             `json:"date"`
	Difficulty    int                `json:"difficulty"`
	DayDifficulty int                `json:"dayDifficulty"`
	Prefilled     []PrefilledCellDTO `json:"prefilled"`
}

func NewPuzzleDTO(date string, p *bank.Puzzle) (*PuzzleDTO, error) {
	g, err := p.SolutionGrid()
	if err != nil {
		return nil, err
	}
	prefilled := make([]PrefilledCellDTO, 0, len(p.PrefilledCells))
	for _, pos := range p.PrefilledCells {
		prefilled = append(prefilled, PrefilledCellDTO{
			Row:    pos.Row,
			Col:    pos.Col,
			Letter: string(g[pos.Row][pos.Col]),
		})
	}
	dto := &PuzzleDTO{
		ID:            p.ID,
		Date:          date,
		Difficulty:    p.Difficulty,
		DayDifficulty: p.DayDifficulty,
		Prefilled:     prefilled,
	}
	return dto, nil
}

type CheckResultDTO struct {
	Valid       bool `json:"valid"`
	Alternative bool `json:"alternative"`
}

type HintsDTO struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Letters []string `json:"letters"`
}

type RevealDTO struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

type RootDTO struct {
	Root    string `json:"root"`
	Valid   bool   `json:"valid"`
	Meaning string `json:"meaning,omitempty"`
}

type StatusDTO struct {
	Status       string    `json:"status"`
	TotalPuzzles int       `json:"totalPuzzles"`
	RootsUsed    int       `json:"rootsUsed"`
	Generated    time.Time `json:"generated"`
}
