package trace

// JoinTrace collects match records during a join run.
type JoinTrace struct {
	Matches []MatchRecord
}

// NewJoinTrace creates a JoinTrace ready for recording.
func NewJoinTrace() *JoinTrace {
	return &JoinTrace{
		Matches: make([]MatchRecord, 0),
	}
}

// ObserveRow appends a match record.
func (jt *JoinTrace) ObserveRow(record MatchRecord) {
	jt.Matches = append(jt.Matches, record)
}
