package join

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	// Progress lines are noise in test output.
	// Set DEBUG_TESTS=1 to see them: DEBUG_TESTS=1 go test ./join/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

// sliceReader is an in-memory RowReader.
type sliceReader struct {
	header []string
	rows   [][]string
	next   int
	err    error // returned instead of io.EOF once rows are exhausted, when set
}

func newSliceReader(header []string, rows ...[]string) *sliceReader {
	return &sliceReader{header: header, rows: rows}
}

func (r *sliceReader) Header() []string { return r.header }

func (r *sliceReader) Next() ([]string, error) {
	if r.next >= len(r.rows) {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

// memWriter is an in-memory RowWriter that copies every row it receives.
type memWriter struct {
	header     []string
	rows       [][]string
	headerHits int
	failAfter  int // fail WriteRow once this many rows are stored; 0 = never
}

func (w *memWriter) WriteHeader(columns []string) error {
	w.headerHits++
	w.header = append([]string{}, columns...)
	return nil
}

func (w *memWriter) WriteRow(values []string) error {
	if w.failAfter > 0 && len(w.rows) >= w.failAfter {
		return errors.New("disk full")
	}
	w.rows = append(w.rows, append([]string{}, values...))
	return nil
}

// column returns the cells of the named output column.
func (w *memWriter) column(name string) []string {
	idx := -1
	for i, c := range w.header {
		if c == name {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, len(w.rows))
	for i, r := range w.rows {
		out[i] = r[idx]
	}
	return out
}
