package trace

// JoinSummary aggregates statistics from a JoinTrace.
type JoinSummary struct {
	Rows             int
	Matched          int
	Unmatched        int
	UnknownLabels    int // matched rows whose label is outside the code table
	MeanDelta        float64
	MaxDelta         float64
	DefectHits       map[int]int // defect index → number of value rows matched to it
	UnmatchedDefects []int       // defect indices no value row matched, ascending
}

// Summarize computes aggregate statistics from a JoinTrace.
// numDefects is the length of the defect list the run matched against.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(jt *JoinTrace, numDefects int) *JoinSummary {
	summary := &JoinSummary{
		DefectHits: make(map[int]int),
	}
	if jt != nil {
		totalDelta := 0.0
		for _, m := range jt.Matches {
			summary.Rows++
			if !m.Matched {
				summary.Unmatched++
				continue
			}
			summary.Matched++
			if !m.KnownLabel {
				summary.UnknownLabels++
			}
			summary.DefectHits[m.DefectIndex]++
			totalDelta += m.Delta
			if m.Delta > summary.MaxDelta {
				summary.MaxDelta = m.Delta
			}
		}
		if summary.Matched > 0 {
			summary.MeanDelta = totalDelta / float64(summary.Matched)
		}
	}

	for i := 0; i < numDefects; i++ {
		if summary.DefectHits[i] == 0 {
			summary.UnmatchedDefects = append(summary.UnmatchedDefects, i)
		}
	}
	return summary
}
