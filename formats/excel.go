package formats

import (
	"io"
	"sort"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
)

var _ = Register(&Format{
	Name:        "xlsx",
	Description: "Excel workbook (first sheet)",
	Extensions:  []string{".xlsx"},
	NewReader: func(r io.Reader, opts Options) (Reader, error) {
		return OpenXLSX(r)
	},
	NewWriter: func(w io.Writer, opts Options) (Writer, error) {
		return NewXLSXWriter(w), nil
	},
})

// XLSX supports reading tabular records from the first sheet of an excel file.
type XLSX struct {
	f *excelize.File

	sheet string
	rows  [][]string
	next  int

	stickyErr error
}

// OpenXLSX opens an excel document and returns a formats.Reader.
func OpenXLSX(in io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	sheetMap := f.GetSheetMap()
	if len(sheetMap) == 0 {
		return nil, ErrUnsupportedFormat
	}
	ids := make([]int, 0, len(sheetMap))
	for id := range sheetMap {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	x := &XLSX{
		f:     f,
		sheet: sheetMap[ids[0]],
	}
	x.rows = f.GetRows(x.sheet)
	return x, nil
}

// Sheet returns the name of the sheet being read.
func (x *XLSX) Sheet() string {
	return x.sheet
}

// Next returns the next Record in the document.
// (Implements the formats.Reader interface)
func (x *XLSX) Next() (*Record, error) {
	for x.next < len(x.rows) {
		cols := x.rows[x.next]
		x.next++

		// GetRows pads every row to the widest one in the sheet
		n := len(cols)
		for n > 0 && cols[n-1] == "" {
			n--
		}
		if n == 0 {
			continue
		}
		return &Record{
			Line:   x.next,
			Values: cols[:n],
		}, nil
	}
	x.stickyErr = io.EOF
	return nil, x.stickyErr
}

// Err returns the last error that occured.
func (x *XLSX) Err() error {
	return x.stickyErr
}

// XLSXWriter collects rows into a single-sheet workbook which is written
// to the underlying stream on Flush.
type XLSXWriter struct {
	out io.Writer
	f   *excelize.File
	row int
}

const xlsxSheetName = "Sheet1"

// NewXLSXWriter returns a formats.Writer producing an excel workbook.
// Values that parse as numbers are stored as numeric cells.
func NewXLSXWriter(out io.Writer) *XLSXWriter {
	return &XLSXWriter{out: out, f: excelize.NewFile()}
}

// Write adds one row to the sheet.
func (x *XLSXWriter) Write(values []string) error {
	x.row++
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if fv, err := strconv.ParseFloat(v, 64); err == nil {
			cells[i] = fv
		} else {
			cells[i] = v
		}
	}
	x.f.SetSheetRow(xlsxSheetName, "A"+strconv.Itoa(x.row), &cells)
	return nil
}

// Flush writes the workbook.
func (x *XLSXWriter) Flush() error {
	return x.f.Write(x.out)
}
