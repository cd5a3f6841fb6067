package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/formats"
)

// Load reads a delimited text (or xlsx) file into a Matrix. The format is
// chosen from the file extension unless WithFormat is given; unknown
// extensions are read as csv. Blank lines are skipped; a line holding only
// delimiters is a row of empty fields and fails to parse.
//
// The file is closed before Load returns. On failure no Matrix is returned
// and the error is a *dataio.FileAccessError, *dataio.ParseError or
// *dataio.RowLengthError.
func Load(path string, opts ...Option) (*Matrix, error) {
	cfg := newConfig(opts)

	f, err := dataio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := openReader(f, cfg)
	if err != nil {
		return nil, &dataio.ParseError{Path: path, Err: err}
	}

	m, err := load(path, r, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("loaded matrix",
		zap.String("path", path),
		zap.Int("rows", m.rows),
		zap.Int("cols", m.cols))
	return m, nil
}

// LoadReader reads delimited text from r into a Matrix. The format is csv
// unless WithFormat is given.
func LoadReader(r io.Reader, opts ...Option) (*Matrix, error) {
	cfg := newConfig(opts)
	if cfg.format == "" {
		cfg.format = formats.DefaultFormat
	}
	fr, err := newReader(r, cfg)
	if err != nil {
		return nil, &dataio.ParseError{Path: "<stream>", Err: err}
	}
	return load("<stream>", fr, cfg)
}

func openReader(f *os.File, cfg *config) (formats.Reader, error) {
	if cfg.format != "" {
		return newReader(f, cfg)
	}
	return formats.Open(f, cfg.formatOptions())
}

func newReader(r io.Reader, cfg *config) (formats.Reader, error) {
	f := formats.Lookup(cfg.format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", formats.ErrUnsupportedFormat, cfg.format)
	}
	return f.NewReader(r, cfg.formatOptions())
}

func load(path string, r formats.Reader, cfg *config) (*Matrix, error) {
	var rows [][]float64
	skipped := 0
	width := -1
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(path, err)
		}
		if rec.Blank() {
			continue
		}
		if skipped < cfg.skipRows {
			skipped++
			continue
		}

		if width < 0 {
			width = len(rec.Values)
		} else if cfg.strict && len(rec.Values) != width {
			return nil, &dataio.RowLengthError{Path: path, Line: rec.Line, Want: width, Got: len(rec.Values)}
		}

		row, err := parseRow(path, rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if cfg.strict {
		return NewMatrix(rows)
	}
	return fromRagged(rows), nil
}

func parseRow(path string, rec *formats.Record) ([]float64, error) {
	row := make([]float64, len(rec.Values))
	for i, s := range rec.Values {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			var ne *strconv.NumError
			if errors.As(err, &ne) {
				err = fmt.Errorf("%q: %w", ne.Num, ne.Err)
			}
			return nil, &dataio.ParseError{Path: path, Line: rec.Line, Column: i + 1, Err: err}
		}
		row[i] = v
	}
	return row, nil
}

func readError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &dataio.ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &dataio.FileAccessError{Path: path, Err: err}
}
