package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shorashim.app/game/internal/bank"
	"shorashim.app/game/internal/daily"
	"shorashim.app/game/internal/dictionary"
	"shorashim.app/game/internal/game"
	"shorashim.app/game/internal/hebrew"
	"shorashim.app/game/internal/puzzle"
)

type PuzzleHandler struct {
	logger   *slog.Logger
	dict     *dictionary.Dictionary
	v        *puzzle.Validator
	bank     *bank.Bank
	selector *daily.Selector
}

func NewPuzzleHandler(
	logger *slog.Logger,
	dict *dictionary.Dictionary,
	b *bank.Bank,
	selector *daily.Selector,
) *PuzzleHandler {
	handler := &PuzzleHandler{
		logger:   logger,
		dict:     dict,
		v:        puzzle.NewValidator(dict),
		bank:     b,
		selector: selector,
	}

	return handler
}

// resolveDate parses a YYYY-MM-DD query value in the selector's
// timezone. An empty value means today.
func (h *PuzzleHandler) resolveDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, h.selector.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func (h *PuzzleHandler) sendPuzzle(w http.ResponseWriter, date time.Time) {
	p, err := h.selector.PuzzleForDate(date)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to pick a daily puzzle", "error", err)
		return
	}

	resp, err := NewPuzzleDTO(daily.DateKey(date, h.selector.Location()), p)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("bank holds an unparsable puzzle", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, resp)
}

// sessionFor opens a fresh game session for the puzzle of the given
// date. Failures here mean a broken bank, not a bad request.
func (h *PuzzleHandler) sessionFor(date time.Time) (*game.Session, error) {
	p, err := h.selector.PuzzleForDate(date)
	if err != nil {
		return nil, err
	}
	return game.NewSession(p, h.v)
}

// dateFromQuery reads the optional date parameter, defaulting to
// today.
func (h *PuzzleHandler) dateFromQuery(query map[string][]string) (time.Time, error) {
	dto, err := ParseDateQueryDTO(query)
	if err != nil {
		return time.Time{}, err
	}
	return h.resolveDate(dto.Date)
}

func (h *PuzzleHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.logger, StatusDTO{
		Status:       "ok",
		TotalPuzzles: h.bank.TotalPuzzles,
		RootsUsed:    h.bank.RootsUsed,
		Generated:    h.bank.Generated,
	})
}

func (h *PuzzleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	h.sendPuzzle(w, time.Now())
}

func (h *PuzzleHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseDateQueryDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	if dto.Date == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("date query parameter is required")))
		return
	}

	date, err := h.resolveDate(dto.Date)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	h.sendPuzzle(w, date)
}

func (h *PuzzleHandler) CheckGrid(w http.ResponseWriter, r *http.Request) {
	grid, err := ParseGridDTO(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	date, err := h.dateFromQuery(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, err := h.sessionFor(date)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to open a game session", "error", err)
		return
	}

	if err := session.Apply(grid.Cells); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	result := session.Submit()

	sendJSONOrLog(w, h.logger, CheckResultDTO{
		Valid:       result.Valid,
		Alternative: result.Alternative,
	})
}

func (h *PuzzleHandler) Hints(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	if pos.Row < 0 || pos.Row > 2 || pos.Col < 0 || pos.Col > 2 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	dto, err := ParseGridDTO(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	g, err := puzzle.FromCells(dto.Cells)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	letters := h.v.HintsForPosition(g, pos.Row, pos.Col)
	out := make([]string, 0, len(letters))
	for _, l := range letters {
		out = append(out, string(l))
	}

	sendJSONOrLog(w, h.logger, HintsDTO{Row: pos.Row, Col: pos.Col, Letters: out})
}

func (h *PuzzleHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	date, err := h.dateFromQuery(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, err := h.sessionFor(date)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to open a game session", "error", err)
		return
	}

	letter, err := session.RevealCell(pos.Row, pos.Col)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	sendJSONOrLog(w, h.logger, RevealDTO{
		Row:    pos.Row,
		Col:    pos.Col,
		Letter: string(letter),
	})
}

func (h *PuzzleHandler) Root(w http.ResponseWriter, r *http.Request) {
	letters := r.PathValue("root")

	meaning, _ := h.dict.Meaning(letters)

	sendJSONOrLog(w, h.logger, RootDTO{
		Root:    hebrew.Normalize(letters),
		Valid:   h.dict.IsValidRoot(letters),
		Meaning: meaning,
	})
}
