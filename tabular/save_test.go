package tabular

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joiningdata/dataio"
)

func sampleMatrix(t *testing.T) *Matrix {
	t.Helper()
	m, err := NewMatrix([][]float64{
		{1, 2.5, -3},
		{1e-9, 123456789.125, 0},
		{math.Pi, math.MaxFloat64, -0.1},
	})
	require.NoError(t, err)
	return m
}

func TestSaveTextRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := sampleMatrix(t)

	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"copy.csv", nil},
		{"copy.tsv", nil},
		{"copy.dat", []Option{WithDelimiter(' ')}},
		{"copy.out", []Option{WithFormat("tsv"), WithDelimiter('|')}},
		{"copy.xlsx", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			require.NoError(t, SaveText(path, m, tc.opts...))

			got, err := Load(path, tc.opts...)
			require.NoError(t, err)
			assert.True(t, m.Equal(got), "got %v", got.Rows())
		})
	}
}

func TestSaveTextContent(t *testing.T) {
	m, err := NewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, SaveText(path, m))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,2,3\n4,5,6\n", string(b))
}

func TestSaveTextUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	assert.Error(t, SaveText(path, sampleMatrix(t), WithFormat("parquet")))
}

func TestNPYRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := sampleMatrix(t)

	path := filepath.Join(dir, "some_tabular_data.npy")
	require.NoError(t, SaveNPY(path, m))

	got, err := LoadNPY(path)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))

	empty, err := NewMatrix(nil)
	require.NoError(t, err)
	path = filepath.Join(dir, "empty.npy")
	require.NoError(t, SaveNPY(path, empty))
	got, err = LoadNPY(path)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestLoadNPYErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadNPY(filepath.Join(dir, "missing.npy"))
	assert.ErrorIs(t, err, dataio.ErrFileAccess)

	path := filepath.Join(dir, "garbage.npy")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n"), 0644))
	_, err = LoadNPY(path)
	assert.ErrorIs(t, err, dataio.ErrParse)
}

func TestNPZRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.npz")
	m := sampleMatrix(t)
	single, err := NewMatrix([][]float64{{0.5}})
	require.NoError(t, err)
	empty, err := NewMatrix(nil)
	require.NoError(t, err)

	require.NoError(t, SaveNPZ(path, map[string]*Matrix{"arr": m, "x": single, "none": empty}))

	got, err := LoadNPZ(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, m.Equal(got["arr"]))
	assert.True(t, single.Equal(got["x"]))
	assert.True(t, got["none"].Empty())
}

func TestNPZErrors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, SaveNPZ(filepath.Join(dir, "bad.npz"), map[string]*Matrix{"": sampleMatrix(t)}))

	_, err := LoadNPZ(filepath.Join(dir, "missing.npz"))
	assert.ErrorIs(t, err, dataio.ErrFileAccess)

	path := filepath.Join(dir, "garbage.npz")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))
	_, err = LoadNPZ(path)
	assert.ErrorIs(t, err, dataio.ErrParse)

	// a valid .npy is not an archive
	npy := filepath.Join(dir, "single.npy")
	require.NoError(t, SaveNPY(npy, sampleMatrix(t)))
	_, err = LoadNPZ(npy)
	assert.ErrorIs(t, err, dataio.ErrParse)
}
