package join

import "fmt"

// ParseError reports a numeric field that could not be parsed under the
// configured decimal convention.
type ParseError struct {
	Source string // "defects" or "values", or a file path
	Row    int    // 1-based data row; 0 when not row-bound
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: invalid number %q in column %s: %v", e.Source, e.Row, e.Value, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a required column absent from a header or row.
type MissingColumnError struct {
	Source string
	Row    int // 0 means the header
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s header: missing required column %s", e.Source, e.Column)
	}
	return fmt.Sprintf("%s row %d: missing required column %s", e.Source, e.Row, e.Column)
}

// IOError reports an unreadable source or unwritable destination.
type IOError struct {
	Op   string // "open", "read", "create", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
