package formats

import (
	"bufio"
	"io"
	"strings"
)

var _ = Register(&Format{
	Name:        "tsv",
	Description: "Delimited text without quoting (tab separated by default)",
	Extensions:  []string{".tsv", ".tab", ".txt", ".dat"},
	NewReader: func(r io.Reader, opts Options) (Reader, error) {
		return NewTSV(r, opts)
	},
	NewWriter: func(w io.Writer, opts Options) (Writer, error) {
		return NewTSVWriter(w, opts)
	},
})

// TSV supports reading tabular records from delimited text. Fields are split
// on every delimiter; there is no quoting.
type TSV struct {
	r *bufio.Reader

	sep     string
	comment rune
	line    int

	stickyErr error
}

// NewTSV returns a formats.Reader over delimited text.
func NewTSV(in io.Reader, opts Options) (*TSV, error) {
	sep, err := opts.delimiter('\t')
	if err != nil {
		return nil, err
	}
	return &TSV{
		r:       bufio.NewReader(in),
		sep:     string(sep),
		comment: opts.Comment,
	}, nil
}

// Next returns the next Record in the document.
// (Implements the formats.Reader interface)
func (x *TSV) Next() (*Record, error) {
	if x.stickyErr != nil {
		return nil, x.stickyErr
	}
	for {
		text, err := x.r.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			x.stickyErr = err
			return nil, x.stickyErr
		}
		x.line++
		text = strings.TrimRight(text, "\r\n")
		if x.comment != 0 && strings.HasPrefix(text, string(x.comment)) {
			continue
		}
		if text == "" {
			// matches encoding/csv, which never returns empty lines
			continue
		}
		return &Record{
			Line:   x.line,
			Values: strings.Split(text, x.sep),
		}, nil
	}
}

// Err returns the last error that occured.
func (x *TSV) Err() error {
	return x.stickyErr
}

// TSVWriter writes rows as delimited text.
type TSVWriter struct {
	w   *bufio.Writer
	sep string
}

// NewTSVWriter returns a formats.Writer producing delimited text.
func NewTSVWriter(out io.Writer, opts Options) (*TSVWriter, error) {
	sep, err := opts.delimiter('\t')
	if err != nil {
		return nil, err
	}
	return &TSVWriter{w: bufio.NewWriter(out), sep: string(sep)}, nil
}

// Write serializes one row.
func (x *TSVWriter) Write(values []string) error {
	if _, err := x.w.WriteString(strings.Join(values, x.sep)); err != nil {
		return err
	}
	return x.w.WriteByte('\n')
}

// Flush writes buffered rows.
func (x *TSVWriter) Flush() error {
	return x.w.Flush()
}
