package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joiningdata/dataio"
)

func TestInspect(t *testing.T) {
	path := writeFile(t, "genes.csv", ""+
		"id,score,xref,name\n"+
		"1,0.5,HGNC:5,alpha\n"+
		"2,1.25,HGNC:6,beta\n"+
		"3,2,HGNC:7,gamma\n")

	cols, err := Inspect(path)
	require.NoError(t, err)
	require.Len(t, cols, 4)

	assert.Equal(t, &ColumnInfo{Order: 0, Header: "id", Type: Integers, Samples: 3}, cols[0])
	assert.Equal(t, &ColumnInfo{Order: 1, Header: "score", Type: Floats, Samples: 3}, cols[1])
	assert.Equal(t, &ColumnInfo{Order: 2, Header: "xref", Type: PrefixedIntegers, Samples: 3, Invalid: 3}, cols[2])
	assert.Equal(t, &ColumnInfo{Order: 3, Header: "name", Type: Text, Samples: 3, Invalid: 3}, cols[3])
}

func TestInspectNoHeader(t *testing.T) {
	cols, err := Inspect(writeFile(t, "data.csv", "1,2\n3,\n"))
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "", cols[0].Header)
	assert.Equal(t, Integers, cols[0].Type)
	assert.Equal(t, 2, cols[0].Samples)
	assert.Equal(t, 1, cols[1].Samples)
}

func TestInspectModalWidth(t *testing.T) {
	// a title line above the table is not the header
	path := writeFile(t, "titled.tsv", "Expression values\nx\ty\n1\t2\n3\t4\n")
	cols, err := Inspect(path)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "x", cols[0].Header)
	assert.Equal(t, "y", cols[1].Header)
	assert.Equal(t, Integers, cols[1].Type)
}

func TestInspectEmptyAndMissing(t *testing.T) {
	cols, err := Inspect(writeFile(t, "empty.csv", ""))
	require.NoError(t, err)
	assert.Empty(t, cols)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, dataio.ErrFileAccess)
}
