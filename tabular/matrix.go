package tabular

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/joiningdata/dataio"
)

// Matrix is a rectangular, row-major collection of float64 values.
// It is not modified after construction; accessors return copies.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix copies rows into a Matrix. All rows must have equal length.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	m := &Matrix{rows: len(rows)}
	if len(rows) == 0 {
		return m, nil
	}
	m.cols = len(rows[0])
	m.data = make([]float64, 0, m.rows*m.cols)
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, &dataio.RowLengthError{Path: "<memory>", Line: i + 1, Want: m.cols, Got: len(row)}
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// fromRagged builds a Matrix from rows of any length, padding with NaN.
func fromRagged(rows [][]float64) *Matrix {
	m := &Matrix{rows: len(rows)}
	for _, row := range rows {
		if len(row) > m.cols {
			m.cols = len(row)
		}
	}
	m.data = make([]float64, m.rows*m.cols)
	for i, row := range rows {
		dst := m.data[i*m.cols : (i+1)*m.cols]
		n := copy(dst, row)
		for j := n; j < m.cols; j++ {
			dst[j] = math.NaN()
		}
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// Empty reports whether the matrix has no values.
func (m *Matrix) Empty() bool {
	return len(m.data) == 0
}

// At returns the value at row i, column j. It panics if either is out of range.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("tabular: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("tabular: row %d out of range for %d rows", i, m.rows))
	}
	return append([]float64(nil), m.data[i*m.cols:(i+1)*m.cols]...)
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("tabular: column %d out of range for %d columns", j, m.cols))
	}
	res := make([]float64, m.rows)
	for i := range res {
		res[i] = m.data[i*m.cols+j]
	}
	return res
}

// Rows returns a copy of the matrix as a slice of rows.
func (m *Matrix) Rows() [][]float64 {
	res := make([][]float64, m.rows)
	for i := range res {
		res[i] = m.Row(i)
	}
	return res
}

// Dense returns a gonum copy of the matrix, or nil when it is empty
// since gonum does not represent zero-sized matrices.
func (m *Matrix) Dense() *mat.Dense {
	if m.Empty() {
		return nil
	}
	return mat.NewDense(m.rows, m.cols, append([]float64(nil), m.data...))
}

// RowSums returns the sum of each row.
func (m *Matrix) RowSums() []float64 {
	res := make([]float64, m.rows)
	for i := range res {
		res[i] = floats.Sum(m.data[i*m.cols : (i+1)*m.cols])
	}
	return res
}

// ColSums returns the sum of each column.
func (m *Matrix) ColSums() []float64 {
	res := make([]float64, m.cols)
	for i := 0; i < m.rows; i++ {
		floats.Add(res, m.data[i*m.cols:(i+1)*m.cols])
	}
	return res
}

// Sum returns the sum of every value.
func (m *Matrix) Sum() float64 {
	return floats.Sum(m.data)
}

// Equal reports whether both matrices have the same shape and values.
// NaN compares equal to NaN.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.rows == o.rows && m.cols == o.cols && floats.Same(m.data, o.data)
}
