package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorashim.app/game/internal/dictionary"
)

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	d, err := dictionary.New([]dictionary.Record{
		{Root: "אבד", Meaning: "to lose"},
		{Root: "בנה", Meaning: "to build"},
		{Root: "דהש", Meaning: ""},
	})
	require.NoError(t, err)
	return d
}

func TestValidateGrid(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromRows([3]string{"אבד", "בנה", "דהש"})
	require.NoError(t, err)
	assert.True(t, v.ValidateGrid(g))
}

func TestValidateGridRejectsNonRootRow(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromRows([3]string{"אבד", "אאא", "דהש"})
	require.NoError(t, err)
	assert.False(t, v.ValidateGrid(g))
}

func TestValidateGridRejectsNonRootColumn(t *testing.T) {
	v := NewValidator(testDict(t))

	// rows valid, columns are not
	g, err := FromRows([3]string{"אבד", "אבד", "אבד"})
	require.NoError(t, err)
	assert.False(t, v.ValidateGrid(g))
}

func TestValidateGridRejectsPartial(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromCells([3][3]string{
		{"א", "ב", "ד"},
		{"ב", "", "ה"},
		{"ד", "ה", "ש"},
	})
	require.NoError(t, err)
	assert.False(t, v.ValidateGrid(g))
}

func TestHintsForPositionEmptyGrid(t *testing.T) {
	v := NewValidator(testDict(t))

	var g Grid
	assert.Equal(t, []rune{'א', 'ב', 'ד'}, v.HintsForPosition(g, 0, 0))
}

func TestHintsForPositionRowConstrained(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromCells([3][3]string{{"א", "ב", ""}, {}, {}})
	require.NoError(t, err)

	// row fixes אב?, column 2 is unconstrained
	assert.Equal(t, []rune{'ד'}, v.HintsForPosition(g, 0, 2))
}

func TestHintsForPositionBothLinesConstrained(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromCells([3][3]string{
		{"א", "ב", "ד"},
		{"ב", "", "ה"},
		{"ד", "ה", "ש"},
	})
	require.NoError(t, err)

	assert.Equal(t, []rune{'נ'}, v.HintsForPosition(g, 1, 1))
}

func TestHintsForPositionIgnoresOwnCell(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromRows([3]string{"אבד", "בנה", "דהש"})
	require.NoError(t, err)

	// the hint for a filled cell is computed as if it were empty
	assert.Equal(t, []rune{'נ'}, v.HintsForPosition(g, 1, 1))
}

func TestHintsForPositionNoCandidates(t *testing.T) {
	v := NewValidator(testDict(t))

	g, err := FromCells([3][3]string{{"ד", "ד", ""}, {}, {}})
	require.NoError(t, err)

	assert.Empty(t, v.HintsForPosition(g, 0, 2))
}

func TestHintsForPositionOutOfRange(t *testing.T) {
	v := NewValidator(testDict(t))

	var g Grid
	assert.Nil(t, v.HintsForPosition(g, -1, 0))
	assert.Nil(t, v.HintsForPosition(g, 0, 3))
}
