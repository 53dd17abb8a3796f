package trace

import (
	"testing"
)

func TestJoinTrace_ObserveRow_AppendsRecord(t *testing.T) {
	// GIVEN an empty trace
	jt := NewJoinTrace()

	// WHEN a match record is observed
	jt.ObserveRow(MatchRecord{
		Row:            1,
		Distance:       10.03,
		Matched:        true,
		DefectIndex:    0,
		DefectDistance: 10.0,
		Label:          "язва",
		Code:           "1",
		KnownLabel:     true,
		Delta:          0.03,
	})

	// THEN the trace contains one record with correct data
	if len(jt.Matches) != 1 {
		t.Fatalf("expected 1 record, got %d", len(jt.Matches))
	}
	if jt.Matches[0].Code != "1" {
		t.Errorf("expected code 1, got %s", jt.Matches[0].Code)
	}
	if !jt.Matches[0].Matched {
		t.Error("expected matched=true")
	}
}

func TestJoinTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	jt := NewJoinTrace()

	// WHEN several rows are observed
	for row := 1; row <= 3; row++ {
		jt.ObserveRow(MatchRecord{Row: row, DefectIndex: -1})
	}

	// THEN they are kept in arrival order
	for i, m := range jt.Matches {
		if m.Row != i+1 {
			t.Errorf("record %d: row = %d, want %d", i, m.Row, i+1)
		}
	}
}
