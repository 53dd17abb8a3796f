package join

const valuesSource = "values"

// ValueRecord is one row of the value stream, keyed by the source header.
type ValueRecord struct {
	Row     int      // 1-based data row
	Columns []string // source header, shared by every record of a run
	Values  []string // raw cells; may be shorter than Columns
}

// Get returns the raw cell for column and whether the row holds it.
func (v ValueRecord) Get(column string) (string, bool) {
	for i, c := range v.Columns {
		if c == column {
			if i >= len(v.Values) {
				return "", false
			}
			return v.Values[i], true
		}
	}
	return "", false
}

// Distance parses the designated column and converts it to meters.
func (v ValueRecord) Distance(column string, divisor float64, conv DecimalConvention) (float64, error) {
	text, ok := v.Get(column)
	if !ok {
		return 0, &MissingColumnError{Source: valuesSource, Row: v.Row, Column: column}
	}
	raw, err := ParseDecimal(text, conv)
	if err != nil {
		return 0, &ParseError{Source: valuesSource, Row: v.Row, Column: column, Value: text, Err: err}
	}
	return raw / divisor, nil
}
