package join

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_AreValid(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 0.05, s.Tolerance)
	assert.Equal(t, []string{"Tag", "Size", "Index", "CRC", "Time"}, s.ExcludedColumns)
	assert.Equal(t, "Dist", s.DistanceColumn)
	assert.Equal(t, 100_000.0, s.DistanceDivisor)
}

func TestSettings_Validate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative tolerance", func(s *Settings) { s.Tolerance = -0.1 }},
		{"NaN tolerance", func(s *Settings) { s.Tolerance = math.NaN() }},
		{"infinite tolerance", func(s *Settings) { s.Tolerance = math.Inf(1) }},
		{"unknown decimal", func(s *Settings) { s.Decimal = "dot" }},
		{"empty distance column", func(s *Settings) { s.DistanceColumn = "" }},
		{"zero divisor", func(s *Settings) { s.DistanceDivisor = 0 }},
		{"negative progress", func(s *Settings) { s.ProgressEvery = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestSettings_IsExcluded(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.IsExcluded("CRC"))
	assert.False(t, s.IsExcluded("crc"), "column names are case-sensitive")
	assert.False(t, s.IsExcluded(DefectNameColumn))
}
