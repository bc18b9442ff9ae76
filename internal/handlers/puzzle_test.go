package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorashim.app/game/internal/bank"
	"shorashim.app/game/internal/daily"
	"shorashim.app/game/internal/dictionary"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDict admits exactly two solutions: the scenario grid below and
// its חתמ/תפר/מרח counterpart.
func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dict, err := dictionary.New([]dictionary.Record{
		{Root: "אבד", Meaning: "to perish"},
		{Root: "בנה", Meaning: "to build"},
		{Root: "דהש", Meaning: "to fade"},
		{Root: "חתם", Meaning: "to seal"},
		{Root: "תפר", Meaning: "to sew"},
		{Root: "מרח", Meaning: "to smear"},
	})
	require.NoError(t, err)
	return dict
}

var scenarioRows = [3]string{"אבד", "בנה", "דהש"}

// fullBank has one puzzle per tier; 2024-01-01 was a Monday, so
// date 2024-01-0N resolves to tier N. The tier 2 puzzle carries a
// clue at the top-left corner, the rest carry none.
func fullBank() *bank.Bank {
	puzzles := []bank.Puzzle{
		{ID: 1, Grid: scenarioRows, Difficulty: 100, DayDifficulty: 1},
		{
			ID: 2, Grid: scenarioRows, Difficulty: 100,
			PrefilledCells: []bank.Position{{Row: 0, Col: 0}},
			DayDifficulty:  2,
		},
	}
	for tier := 3; tier <= 7; tier++ {
		puzzles = append(puzzles, bank.Puzzle{
			ID: tier, Grid: scenarioRows, Difficulty: 100, DayDifficulty: tier,
		})
	}
	return &bank.Bank{
		Generated:    time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
		TotalPuzzles: len(puzzles),
		RootsUsed:    6,
		Puzzles:      puzzles,
	}
}

func newTestHandler(t *testing.T) *PuzzleHandler {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	b := fullBank()
	return NewPuzzleHandler(testLogger(), testDict(t), b, daily.NewSelector(b, loc))
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestStatus(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var dto StatusDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "ok", dto.Status)
	assert.Equal(t, 7, dto.TotalPuzzles)
	assert.Equal(t, 6, dto.RootsUsed)
	assert.True(t, dto.Generated.Equal(time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)))
}

func TestByDate(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ByDate(rec, httptest.NewRequest(http.MethodGet, "/v1/puzzle?date=2024-01-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto PuzzleDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, 1, dto.ID)
	assert.Equal(t, "2024-01-01", dto.Date)
	assert.Equal(t, 1, dto.DayDifficulty)
	assert.Equal(t, 100, dto.Difficulty)
	assert.Empty(t, dto.Prefilled)

	// the solution must never ship
	body := rec.Body.String()
	assert.NotContains(t, body, "grid")
	assert.NotContains(t, body, "אבד")
}

func TestByDateSendsClueLetters(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ByDate(rec, httptest.NewRequest(http.MethodGet, "/v1/puzzle?date=2024-01-02", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto PuzzleDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, 2, dto.ID)
	assert.Equal(t, 2, dto.DayDifficulty)
	require.Len(t, dto.Prefilled, 1)
	assert.Equal(t, PrefilledCellDTO{Row: 0, Col: 0, Letter: "א"}, dto.Prefilled[0])

	assert.NotContains(t, rec.Body.String(), "בנה")
}

func TestByDateParamRequired(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ByDate(rec, httptest.NewRequest(http.MethodGet, "/v1/puzzle", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "date")
}

func TestByDateBadDate(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ByDate(rec, httptest.NewRequest(http.MethodGet, "/v1/puzzle?date=01/02/2024", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestByDateEmptyTier(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	b := &bank.Bank{
		Generated:    time.Now(),
		TotalPuzzles: 1,
		RootsUsed:    6,
		Puzzles: []bank.Puzzle{
			{ID: 1, Grid: scenarioRows, Difficulty: 100, DayDifficulty: 1},
		},
	}
	h := NewPuzzleHandler(testLogger(), testDict(t), b, daily.NewSelector(b, loc))

	// Tuesday wants tier 2, which this bank does not have
	rec := httptest.NewRecorder()
	h.ByDate(rec, httptest.NewRequest(http.MethodGet, "/v1/puzzle?date=2024-01-02", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDaily(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Daily(rec, httptest.NewRequest(http.MethodGet, "/v1/daily", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto PuzzleDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	loc := h.selector.Location()
	assert.Equal(t, daily.TierForDate(time.Now(), loc), dto.DayDifficulty)
	assert.Equal(t, daily.DateKey(time.Now(), loc), dto.Date)
	// fullBank assigns each tier's puzzle an ID equal to its tier
	assert.Equal(t, dto.DayDifficulty, dto.ID)
}

func TestCheckGrid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want CheckResultDTO
	}{
		{
			"minted solution",
			`{"cells":[["א","ב","ד"],["ב","נ","ה"],["ד","ה","ש"]]}`,
			CheckResultDTO{Valid: true, Alternative: false},
		},
		{
			"alternative solution with final forms",
			`{"cells":[["ח","ת","ם"],["ת","פ","ר"],["מ","ר","ח"]]}`,
			CheckResultDTO{Valid: true, Alternative: true},
		},
		{
			"letters that solve nothing",
			`{"cells":[["א","א","א"],["א","א","א"],["א","א","א"]]}`,
			CheckResultDTO{},
		},
		{
			"incomplete grid",
			`{"cells":[["א","ב","ד"],["","",""],["","",""]]}`,
			CheckResultDTO{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.CheckGrid(rec, postJSON("/v1/grid/check?date=2024-01-01", tt.body))

			require.Equal(t, http.StatusOK, rec.Code)

			var dto CheckResultDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
			assert.Equal(t, tt.want, dto)
		})
	}
}

func TestCheckGridPrefilledContradiction(t *testing.T) {
	h := newTestHandler(t)

	// tier 2 pins א at the top-left corner
	rec := httptest.NewRecorder()
	h.CheckGrid(rec, postJSON(
		"/v1/grid/check?date=2024-01-02",
		`{"cells":[["ח","ת","ם"],["ת","פ","ר"],["מ","ר","ח"]]}`,
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "prefilled")
}

func TestCheckGridPrefilledAgreement(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CheckGrid(rec, postJSON(
		"/v1/grid/check?date=2024-01-02",
		`{"cells":[["א","ב","ד"],["ב","נ","ה"],["ד","ה","ש"]]}`,
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto CheckResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, CheckResultDTO{Valid: true}, dto)
}

func TestCheckGridBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{
			"truncated body",
			"/v1/grid/check?date=2024-01-01",
			`{"cells":[`,
		},
		{
			"more than one letter in a cell",
			"/v1/grid/check?date=2024-01-01",
			`{"cells":[["אב","",""],["","",""],["","",""]]}`,
		},
		{
			"unparsable date",
			"/v1/grid/check?date=jan1",
			`{"cells":[["","",""],["","",""],["","",""]]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.CheckGrid(rec, postJSON(tt.target, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHints(t *testing.T) {
	empty := `{"cells":[["","",""],["","",""],["","",""]]}`

	tests := []struct {
		name    string
		target  string
		body    string
		letters []string
	}{
		{
			"empty grid corner",
			"/v1/grid/hints?row=0&col=0",
			empty,
			[]string{"א", "ב", "ד", "ח", "ת", "מ"},
		},
		{
			"row narrows to one letter",
			"/v1/grid/hints?row=0&col=2",
			`{"cells":[["א","ב",""],["","",""],["","",""]]}`,
			[]string{"ד"},
		},
		{
			"no candidates",
			"/v1/grid/hints?row=0&col=2",
			`{"cells":[["א","ת",""],["","",""],["","",""]]}`,
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.Hints(rec, postJSON(tt.target, tt.body))

			require.Equal(t, http.StatusOK, rec.Code)

			var dto HintsDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
			assert.Equal(t, tt.letters, dto.Letters)
		})
	}
}

func TestHintsBadRequests(t *testing.T) {
	empty := `{"cells":[["","",""],["","",""],["","",""]]}`

	tests := []struct {
		name   string
		target string
	}{
		{"col missing", "/v1/grid/hints?row=0"},
		{"position out of range", "/v1/grid/hints?row=3&col=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.Hints(rec, postJSON(tt.target, empty))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReveal(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Reveal(rec, httptest.NewRequest(
		http.MethodGet, "/v1/daily/reveal?date=2024-01-01&row=1&col=1", nil,
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto RevealDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, RevealDTO{Row: 1, Col: 1, Letter: "נ"}, dto)
}

func TestRevealPrefilledCell(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Reveal(rec, httptest.NewRequest(
		http.MethodGet, "/v1/daily/reveal?date=2024-01-02&row=0&col=0", nil,
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto RevealDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "א", dto.Letter)
}

func TestRevealBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"row missing", "/v1/daily/reveal?date=2024-01-01&col=0"},
		{"position out of range", "/v1/daily/reveal?date=2024-01-01&row=9&col=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.Reveal(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RootDTO
	}{
		{"known root", "אבד", RootDTO{Root: "אבד", Valid: true, Meaning: "to perish"}},
		{"final form folds", "חתם", RootDTO{Root: "חתמ", Valid: true, Meaning: "to seal"}},
		{"niqqud stripped", "אָבַד", RootDTO{Root: "אבד", Valid: true, Meaning: "to perish"}},
		{"unknown root", "קלט", RootDTO{Root: "קלט", Valid: false}},
		{"not three letters", "אב", RootDTO{Root: "אב", Valid: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/v1/root/x", nil)
			req.SetPathValue("root", tt.raw)

			rec := httptest.NewRecorder()
			h.Root(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var dto RootDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
			assert.Equal(t, tt.want, dto)
		})
	}
}
