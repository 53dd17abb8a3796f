package join

import (
	"fmt"
	"math"
)

// Settings groups the parameters of one join run. Immutable once the run starts.
type Settings struct {
	Tolerance       float64           // max |value distance - defect distance| in meters for a match
	ExcludedColumns []string          // dropped from the output header, annotation columns included
	Decimal         DecimalConvention // separator used by numeric fields in both sources
	DistanceColumn  string            // value-source column holding the raw distance
	DistanceDivisor float64           // raw value distance / divisor = meters
	ProgressEvery   int               // log a progress line every N rows; 0 disables
}

// DefaultSettings returns the settings the inspection pipeline has always used.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:       0.05,
		ExcludedColumns: []string{"Tag", "Size", "Index", "CRC", "Time"},
		Decimal:         DecimalComma,
		DistanceColumn:  "Dist",
		DistanceDivisor: 100_000,
		ProgressEvery:   1000,
	}
}

// Validate checks that all settings can drive a run.
func (s Settings) Validate() error {
	if math.IsNaN(s.Tolerance) || math.IsInf(s.Tolerance, 0) || s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be a finite non-negative number, got %f", s.Tolerance)
	}
	if !IsValidDecimalConvention(string(s.Decimal)) {
		return fmt.Errorf("unknown decimal convention %q; valid: comma, period", s.Decimal)
	}
	if s.DistanceColumn == "" {
		return fmt.Errorf("distance column must not be empty")
	}
	if math.IsNaN(s.DistanceDivisor) || math.IsInf(s.DistanceDivisor, 0) || s.DistanceDivisor <= 0 {
		return fmt.Errorf("distance divisor must be a finite positive number, got %f", s.DistanceDivisor)
	}
	if s.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must be non-negative, got %d", s.ProgressEvery)
	}
	return nil
}

// IsExcluded reports whether column is dropped from the output.
func (s Settings) IsExcluded(column string) bool {
	for _, c := range s.ExcludedColumns {
		if c == column {
			return true
		}
	}
	return false
}
