package join

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRecord_Distance_ScalesRawSubunits(t *testing.T) {
	rec := ValueRecord{Row: 1, Columns: []string{"A", "Dist"}, Values: []string{"x", "1003000"}}

	d, err := rec.Distance("Dist", 100_000, DecimalComma)

	require.NoError(t, err)
	assert.InDelta(t, 10.03, d, 1e-12)
	assert.Equal(t, []string{"x", "1003000"}, rec.Values, "derivation must not mutate the row")
}

func TestValueRecord_Distance_MissingColumn(t *testing.T) {
	rec := ValueRecord{Row: 4, Columns: []string{"A", "Dist"}, Values: []string{"x"}}

	_, err := rec.Distance("Dist", 100_000, DecimalComma)

	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, 4, mc.Row)
	assert.Contains(t, err.Error(), "values row 4")
}

func TestValueRecord_Distance_GarbledCell_ReturnsParseError(t *testing.T) {
	// GIVEN a distance cell with whitespace splitting the digits mid-group
	rec := ValueRecord{Row: 7, Columns: []string{"Dist"}, Values: []string{"12 34"}}

	// WHEN the distance is derived
	_, err := rec.Distance("Dist", 100_000, DecimalComma)

	// THEN it is a parse error, not distance 1234
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 7, pe.Row)
	assert.Equal(t, "12 34", pe.Value)
}

func TestValueRecord_Get(t *testing.T) {
	rec := ValueRecord{Columns: []string{"A", "B"}, Values: []string{"1", "2"}}
	v, ok := rec.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = rec.Get("C")
	assert.False(t, ok)
}

func TestErrors_UnwrapToCause(t *testing.T) {
	cause := errors.New("cause")
	assert.ErrorIs(t, &ParseError{Err: cause}, cause)
	assert.ErrorIs(t, &IOError{Op: "open", Path: "x", Err: cause}, cause)
	assert.Equal(t, "defects header: missing required column Dist", (&MissingColumnError{Source: "defects", Column: "Dist"}).Error())
}
