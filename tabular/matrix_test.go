package tabular

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/joiningdata/dataio"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{4, 5, 6}, m.Row(1))
	assert.Equal(t, []float64{3, 6}, m.Col(2))
	assert.Equal(t, 5.0, m.At(1, 1))

	_, err = NewMatrix([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, dataio.ErrRowLength)
}

func TestMatrixCopies(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	m, err := NewMatrix(src)
	require.NoError(t, err)

	src[0][0] = 100
	row := m.Row(0)
	row[1] = 200
	rows := m.Rows()
	rows[1][0] = 300
	d := m.Dense()
	d.Set(1, 1, 400)

	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.Rows())
}

func TestMatrixOutOfRange(t *testing.T) {
	m, err := NewMatrix([][]float64{{1}})
	require.NoError(t, err)
	assert.Panics(t, func() { m.At(1, 0) })
	assert.Panics(t, func() { m.Row(-1) })
	assert.Panics(t, func() { m.Col(1) })
}

func TestMatrixSums(t *testing.T) {
	m, err := NewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(t, err)

	assert.Equal(t, []float64{6, 15, 24}, m.RowSums())
	assert.Equal(t, []float64{12, 15, 18}, m.ColSums())
	assert.Equal(t, 45.0, m.Sum())

	empty, err := NewMatrix(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.RowSums())
	assert.Empty(t, empty.ColSums())
	assert.Zero(t, empty.Sum())
}

func TestMatrixDense(t *testing.T) {
	m, err := NewMatrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	d := m.Dense()
	require.NotNil(t, d)
	want := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.True(t, mat.Equal(want, d))
	assert.InDelta(t, -2.0, mat.Det(d), 1e-12)
}

func TestMatrixEqual(t *testing.T) {
	a := fromRagged([][]float64{{1, 2}, {3}})
	b := fromRagged([][]float64{{1, 2}, {3}})
	assert.True(t, math.IsNaN(a.At(1, 1)))
	assert.True(t, a.Equal(b))

	c, err := NewMatrix([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	d, err := NewMatrix([][]float64{{1}, {2}, {3}})
	require.NoError(t, err)
	assert.False(t, c.Equal(d))

	var nilm *Matrix
	assert.True(t, nilm.Equal(nil))
	assert.False(t, c.Equal(nil))
}
