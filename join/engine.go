package join

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pipescan/defectjoin/join/trace"
)

// RowWriter receives the output header once, then one row per value row.
type RowWriter interface {
	WriteHeader(columns []string) error
	WriteRow(values []string) error
}

// RowObserver is notified of every match decision, in row order.
type RowObserver interface {
	ObserveRow(record trace.MatchRecord)
}

// Result reports the counts of a completed run.
type Result struct {
	Rows          int
	Matched       int
	Unmatched     int
	UnknownLabels int
}

// Joiner annotates value rows with the defects they fall next to.
type Joiner struct {
	settings  Settings
	index     *DefectIndex
	observers []RowObserver
}

// NewJoiner validates settings and indexes the defect list.
func NewJoiner(settings Settings, defects []DefectEntry, observers ...RowObserver) (*Joiner, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid join settings: %w", err)
	}
	return &Joiner{
		settings:  settings,
		index:     NewDefectIndex(defects),
		observers: observers,
	}, nil
}

// Defects returns the number of defects the joiner matches against.
func (j *Joiner) Defects() int { return j.index.Len() }

// Defect returns the i-th defect in ascending distance order.
func (j *Joiner) Defect(i int) DefectEntry { return j.index.At(i) }

// OutputHeader returns the input header minus excluded columns, followed by
// the two annotation columns unless they are excluded too.
func (j *Joiner) OutputHeader(input []string) []string {
	out := make([]string, 0, len(input)+2)
	for _, c := range append(append([]string{}, input...), DefectNameColumn, DefectDepthColumn) {
		if !j.settings.IsExcluded(c) {
			out = append(out, c)
		}
	}
	return out
}

// Run streams every row of values through the matcher and writes one annotated
// row per input row, in input order. Malformed numbers and missing distance
// cells abort the run; rows already written stay written.
func (j *Joiner) Run(values RowReader, sink RowWriter) (*Result, error) {
	header := values.Header()
	if !containsColumn(header, j.settings.DistanceColumn) {
		return nil, &MissingColumnError{Source: valuesSource, Column: j.settings.DistanceColumn}
	}

	outHeader := j.OutputHeader(header)
	positions := outputPositions(header, outHeader)
	if err := sink.WriteHeader(outHeader); err != nil {
		return nil, fmt.Errorf("writing output header: %w", err)
	}

	result := &Result{}
	out := make([]string, len(outHeader))
	for row := 1; ; row++ {
		fields, err := values.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("reading value row %d: %w", row, err)
		}

		rec := ValueRecord{Row: row, Columns: header, Values: fields}
		ann, match, err := j.annotate(rec)
		if err != nil {
			return result, err
		}

		for i, pos := range positions {
			switch {
			case pos == namePosition:
				out[i] = ann.NameField()
			case pos == depthPosition:
				out[i] = ann.DepthField()
			case pos < len(fields):
				out[i] = fields[pos]
			default:
				out[i] = ""
			}
		}
		if err := sink.WriteRow(out); err != nil {
			return result, fmt.Errorf("writing output row %d: %w", row, err)
		}

		result.Rows++
		if ann.Matched {
			result.Matched++
			if !ann.Code.IsKnown() {
				result.UnknownLabels++
			}
		} else {
			result.Unmatched++
		}
		for _, o := range j.observers {
			o.ObserveRow(match)
		}
		if j.settings.ProgressEvery > 0 && row%j.settings.ProgressEvery == 0 {
			logrus.Infof("%d records processed...", row)
		}
	}
	return result, nil
}

// annotate matches one value row and builds both its annotation and its trace record.
func (j *Joiner) annotate(rec ValueRecord) (Annotation, trace.MatchRecord, error) {
	distance, err := rec.Distance(j.settings.DistanceColumn, j.settings.DistanceDivisor, j.settings.Decimal)
	if err != nil {
		return Annotation{}, trace.MatchRecord{}, err
	}

	i, ok := j.index.Match(distance, j.settings.Tolerance)
	if !ok {
		ann := Annotation{}
		return ann, trace.MatchRecord{
			Row:         rec.Row,
			Distance:    distance,
			DefectIndex: -1,
			Code:        ann.NameField(),
		}, nil
	}

	defect := j.index.At(i)
	ann := Annotation{Matched: true, Code: ConvertLabel(defect.Label), Depth: defect.Depth}
	logrus.Debugf("value row %d at %.5f m matched defect %d at %.5f m (%s)", rec.Row, distance, i, defect.Distance, defect.Label)
	return ann, trace.MatchRecord{
		Row:            rec.Row,
		Distance:       distance,
		Matched:        true,
		DefectIndex:    i,
		DefectDistance: defect.Distance,
		Label:          defect.Label,
		Code:           ann.NameField(),
		KnownLabel:     ann.Code.IsKnown(),
		Delta:          math.Abs(distance - defect.Distance),
	}, nil
}

const (
	namePosition  = -1
	depthPosition = -2
)

// outputPositions maps each output column to its input position, or to one of
// the annotation markers. Duplicate input names resolve to the first occurrence.
func outputPositions(input, output []string) []int {
	positions := make([]int, len(output))
	for i, c := range output {
		switch c {
		case DefectNameColumn:
			positions[i] = namePosition
		case DefectDepthColumn:
			positions[i] = depthPosition
		default:
			positions[i] = indexOf(input, c)
		}
	}
	return positions
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}

func containsColumn(columns []string, name string) bool {
	return indexOf(columns, name) >= 0
}
