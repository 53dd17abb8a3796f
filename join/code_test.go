package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertLabel_KnownLabels_ReturnFixedCodes(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"язва", 1},
		{"Язва", 1},
		{"ПИТТИНГ", 2},
		{"Поперечная канавка", 3},
	}
	for _, tc := range tests {
		// Two conversions of the same label must agree.
		for i := 0; i < 2; i++ {
			code, ok := ConvertLabel(tc.label).Int()
			assert.True(t, ok, "label %q should be known", tc.label)
			assert.Equal(t, tc.want, code, "label %q", tc.label)
		}
	}
}

func TestConvertLabel_UnknownLabel_ReturnsUnknownMarker(t *testing.T) {
	for _, label := range []string{"", "pitting", "коррозия", " язва"} {
		code := ConvertLabel(label)
		assert.False(t, code.IsKnown(), "label %q", label)
		assert.Equal(t, UnknownLabel, code.String())
		assert.Equal(t, UnknownCode, code)
	}
}

func TestDefectCode_String(t *testing.T) {
	assert.Equal(t, "2", KnownCode(2).String())
	assert.Equal(t, "unknown", UnknownCode.String())
}

func TestCodes_OrderedByCode(t *testing.T) {
	codes := Codes()
	if assert.Len(t, codes, 3) {
		assert.Equal(t, LabelCode{Label: "язва", Code: 1}, codes[0])
		assert.Equal(t, LabelCode{Label: "питтинг", Code: 2}, codes[1])
		assert.Equal(t, LabelCode{Label: "поперечная канавка", Code: 3}, codes[2])
	}
}

func TestAnnotation_Fields(t *testing.T) {
	// GIVEN a miss, a known match and an unknown-label match
	miss := Annotation{}
	known := Annotation{Matched: true, Code: KnownCode(1), Depth: 1.25}
	unknown := Annotation{Matched: true, Code: UnknownCode, Depth: 3}

	// THEN the miss uses the sentinel in both cells, distinct from every code and from unknown
	assert.Equal(t, NoDefect, miss.NameField())
	assert.Equal(t, NoDefect, miss.DepthField())
	assert.NotEqual(t, UnknownLabel, NoDefect)

	assert.Equal(t, "1", known.NameField())
	assert.Equal(t, "1.25", known.DepthField())
	assert.Equal(t, "unknown", unknown.NameField())
	assert.Equal(t, "3.0", unknown.DepthField())
}

func TestFormatDepth(t *testing.T) {
	assert.Equal(t, "2.0", FormatDepth(2))
	assert.Equal(t, "0.0", FormatDepth(0))
	assert.Equal(t, "0.35", FormatDepth(0.35))
	assert.Equal(t, "-1.5", FormatDepth(-1.5))
}
