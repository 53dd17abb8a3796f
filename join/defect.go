package join

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// DefectEntry is one physical defect from the defect table.
type DefectEntry struct {
	Distance float64 `yaml:"distance"` // meters
	Label    string  `yaml:"label"`
	Depth    float64 `yaml:"depth"`
	Row      int     `yaml:"row"` // 1-based data row in the defect source
}

// DefectColumns holds the zero-based field positions of the defect table.
type DefectColumns struct {
	Distance int
	Label    int
	Depth    int
}

// DefaultDefectColumns is the layout exported by the inspection software.
func DefaultDefectColumns() DefectColumns {
	return DefectColumns{Distance: 1, Label: 4, Depth: 5}
}

// Validate rejects negative field positions.
func (c DefectColumns) Validate() error {
	if c.Distance < 0 || c.Label < 0 || c.Depth < 0 {
		return fmt.Errorf("defect column positions must be non-negative, got distance=%d label=%d depth=%d",
			c.Distance, c.Label, c.Depth)
	}
	return nil
}

// RowReader yields the data rows of a table whose header has already been read.
// Next returns io.EOF after the last row.
type RowReader interface {
	Header() []string
	Next() ([]string, error)
}

const defectsSource = "defects"

// LoadDefects reads every row of the defect table and returns the entries
// sorted ascending by distance. Entries with equal distances keep their source order.
func LoadDefects(rows RowReader, cols DefectColumns, conv DecimalConvention) ([]DefectEntry, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	var defects []DefectEntry
	for row := 1; ; row++ {
		fields, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading defect row %d: %w", row, err)
		}
		entry, err := parseDefectRow(fields, row, cols, conv)
		if err != nil {
			return nil, err
		}
		defects = append(defects, entry)
	}
	SortDefects(defects)
	return defects, nil
}

func parseDefectRow(fields []string, row int, cols DefectColumns, conv DecimalConvention) (DefectEntry, error) {
	field := func(pos int) (string, error) {
		if pos >= len(fields) {
			return "", &MissingColumnError{Source: defectsSource, Row: row, Column: "#" + strconv.Itoa(pos)}
		}
		return fields[pos], nil
	}
	number := func(pos int) (float64, error) {
		text, err := field(pos)
		if err != nil {
			return 0, err
		}
		v, err := ParseDecimal(text, conv)
		if err != nil {
			return 0, &ParseError{Source: defectsSource, Row: row, Column: "#" + strconv.Itoa(pos), Value: text, Err: err}
		}
		return v, nil
	}

	distance, err := number(cols.Distance)
	if err != nil {
		return DefectEntry{}, err
	}
	label, err := field(cols.Label)
	if err != nil {
		return DefectEntry{}, err
	}
	depth, err := number(cols.Depth)
	if err != nil {
		return DefectEntry{}, err
	}
	return DefectEntry{Distance: distance, Label: label, Depth: depth, Row: row}, nil
}

// SortDefects sorts defects ascending by distance in place. Stable and idempotent.
func SortDefects(defects []DefectEntry) {
	sort.SliceStable(defects, func(i, j int) bool {
		return defects[i].Distance < defects[j].Distance
	})
}
