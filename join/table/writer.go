package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatArrow Format = "arrow"
)

var validFormats = map[Format]bool{
	FormatCSV:   true,
	FormatArrow: true,
}

// IsValidFormat returns true if name is a recognized output format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// WriterOptions configures an output table.
type WriterOptions struct {
	Delimiter rune // CSV only; ',' when zero
	CRLF      bool // CSV only; terminate records with \r\n
	BatchSize int  // Arrow only; rows per record batch, DefaultBatchSize when zero
}

// Writer is an output sink. It satisfies join.RowWriter; Close flushes
// buffered rows and must be called once the run ends.
type Writer interface {
	WriteHeader(columns []string) error
	WriteRow(values []string) error
	Close() error
}

// NewWriter returns a Writer for the given format.
func NewWriter(format Format, w io.Writer, opts WriterOptions) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVWriter(w, opts), nil
	case FormatArrow:
		return NewArrowWriter(w, opts.BatchSize), nil
	default:
		return nil, fmt.Errorf("unknown output format %q; valid: csv, arrow", format)
	}
}

// CSVWriter writes delimited rows.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter wraps w.
func NewCSVWriter(w io.Writer, opts WriterOptions) *CSVWriter {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	cw.UseCRLF = opts.CRLF
	return &CSVWriter{w: cw}
}

// WriteHeader writes the header row.
func (c *CSVWriter) WriteHeader(columns []string) error {
	if err := c.w.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	return nil
}

// WriteRow writes one data row.
func (c *CSVWriter) WriteRow(values []string) error {
	return c.w.Write(values)
}

// Close flushes buffered rows.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}
