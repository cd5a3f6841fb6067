package tabular

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sbinet/npyio"
	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/formats"
)

// SaveText writes m as delimited text (or xlsx), one row per line. The
// format follows the file extension unless WithFormat is given. Values are
// written in the shortest form that parses back to the same float64.
func SaveText(path string, m *Matrix, opts ...Option) (err error) {
	cfg := newConfig(opts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w formats.Writer
	if cfg.format != "" {
		fm := formats.Lookup(cfg.format)
		if fm == nil {
			return fmt.Errorf("%w: %q", formats.ErrUnsupportedFormat, cfg.format)
		}
		w, err = fm.NewWriter(f, cfg.formatOptions())
	} else {
		w, err = formats.Create(f, cfg.formatOptions())
	}
	if err != nil {
		return err
	}

	line := make([]string, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := range line {
			line[j] = strconv.FormatFloat(m.data[i*m.cols+j], 'g', -1, 64)
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cfg.logger.Debug("saved matrix", zap.String("path", path), zap.Int("rows", m.rows))
	return nil
}

// SaveNPY writes m in the NumPy .npy format as a float64 array of shape
// (rows, cols). An empty matrix is written with shape (0,).
func SaveNPY(path string, m *Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return writeNPY(f, m)
}

func writeNPY(w io.Writer, m *Matrix) error {
	if m.Empty() {
		return npyio.Write(w, []float64{})
	}
	return npyio.Write(w, m.Dense())
}

// LoadNPY reads a float64 .npy file written by SaveNPY or numpy.save.
// One-dimensional arrays load as a single row.
func LoadNPY(path string) (*Matrix, error) {
	f, err := dataio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readNPY(path, f)
}

func readNPY(path string, in io.Reader) (*Matrix, error) {
	r, err := npyio.NewReader(in)
	if err != nil {
		return nil, &dataio.ParseError{Path: path, Err: err}
	}
	if r.Header.Descr.Fortran {
		return nil, &dataio.ParseError{Path: path, Err: fmt.Errorf("fortran ordered arrays are not supported")}
	}

	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, &dataio.ParseError{Path: path, Err: err}
	}

	shape := r.Header.Descr.Shape
	m := &Matrix{data: data}
	switch len(shape) {
	case 1:
		if shape[0] > 0 {
			m.rows, m.cols = 1, shape[0]
		}
	case 2:
		m.rows, m.cols = shape[0], shape[1]
	default:
		return nil, &dataio.ParseError{Path: path, Err: fmt.Errorf("unsupported array shape %v", shape)}
	}
	if len(data) != m.rows*m.cols {
		return nil, &dataio.ParseError{Path: path, Err: fmt.Errorf("array shape %v holds %d values", shape, len(data))}
	}
	if m.rows*m.cols == 0 {
		m.rows, m.cols, m.data = 0, 0, nil
	}
	return m, nil
}
