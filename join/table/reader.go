// Package table reads and writes the delimited tables a join run consumes and
// produces: CSV sources with optional legacy charsets, and CSV or Arrow IPC sinks.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/pipescan/defectjoin/join"
)

// ReaderOptions configures a source table.
type ReaderOptions struct {
	Delimiter rune   // field delimiter; ',' when zero
	Charset   string // WHATWG encoding label ("windows-1251", "koi8-r", ...); empty or utf-8 means no decoding
	Source    string // name used in error messages
}

// Reader streams the data rows of a delimited table with a header row.
// It satisfies join.RowReader.
type Reader struct {
	csv    *csv.Reader
	header []string
	row    int // data rows returned so far
	source string
}

// NewReader decodes r with the configured charset and reads the header row.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	decoded, err := decodeCharset(r, opts.Charset)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	// Short rows are reported by the join with the missing column's name.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &join.IOError{Op: "read", Path: opts.Source, Err: fmt.Errorf("no header row")}
	}
	if err != nil {
		return nil, &join.IOError{Op: "read", Path: opts.Source, Err: fmt.Errorf("reading header: %w", err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return &Reader{csv: cr, header: header, source: opts.Source}, nil
}

// Header returns the header row.
func (r *Reader) Header() []string { return r.header }

// Next returns the next data row, or io.EOF after the last one.
func (r *Reader) Next() ([]string, error) {
	fields, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &join.IOError{Op: "read", Path: r.source, Err: fmt.Errorf("data row %d: %w", r.row+1, err)}
	}
	r.row++
	return fields, nil
}

func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// IsValidCharset reports whether charset names a supported encoding.
func IsValidCharset(charset string) bool {
	_, err := decodeCharset(strings.NewReader(""), charset)
	return err == nil
}
