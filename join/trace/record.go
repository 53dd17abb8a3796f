// Package trace provides per-row match recording for join runs.
// This package has no dependencies on join/ — it stores pure data types.
package trace

// MatchRecord captures the match decision for a single value row.
type MatchRecord struct {
	Row            int     // 1-based data row in the value source
	Distance       float64 // derived value-row distance in meters
	Matched        bool
	DefectIndex    int     // position in the sorted defect list; -1 when unmatched
	DefectDistance float64 // 0 when unmatched
	Label          string  // raw defect label; empty when unmatched
	Code           string  // output Defect_name cell
	KnownLabel     bool    // false when matched against a label outside the code table
	Delta          float64 // |Distance - DefectDistance|; 0 when unmatched
}
