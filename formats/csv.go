package formats

import (
	"encoding/csv"
	"io"
)

var _ = Register(&Format{
	Name:        "csv",
	Description: "Comma separated values (RFC 4180 quoting)",
	Extensions:  []string{".csv"},
	NewReader: func(r io.Reader, opts Options) (Reader, error) {
		return NewCSV(r, opts)
	},
	NewWriter: func(w io.Writer, opts Options) (Writer, error) {
		return NewCSVWriter(w, opts)
	},
})

// CSV supports reading tabular records from a csv file.
type CSV struct {
	r *csv.Reader

	stickyErr error
}

// NewCSV returns a formats.Reader over a csv document.
// Rows may have differing numbers of fields.
func NewCSV(in io.Reader, opts Options) (*CSV, error) {
	comma, err := opts.delimiter(',')
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(in)
	r.Comma = comma
	r.Comment = opts.Comment
	r.FieldsPerRecord = -1

	return &CSV{r: r}, nil
}

// Next returns the next Record in the document.
// (Implements the formats.Reader interface)
func (x *CSV) Next() (*Record, error) {
	cols, err := x.r.Read()
	if err != nil {
		x.stickyErr = err
		return nil, x.stickyErr
	}
	line, _ := x.r.FieldPos(0)

	return &Record{
		Line:   line,
		Values: cols,
	}, nil
}

// Err returns the last error that occured.
func (x *CSV) Err() error {
	return x.stickyErr
}

// CSVWriter writes rows as csv.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter returns a formats.Writer producing csv.
func NewCSVWriter(out io.Writer, opts Options) (*CSVWriter, error) {
	comma, err := opts.delimiter(',')
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(out)
	w.Comma = comma
	return &CSVWriter{w: w}, nil
}

// Write serializes one row.
func (x *CSVWriter) Write(values []string) error {
	return x.w.Write(values)
}

// Flush writes buffered rows.
func (x *CSVWriter) Flush() error {
	x.w.Flush()
	return x.w.Error()
}
