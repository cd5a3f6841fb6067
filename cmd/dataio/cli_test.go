package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/internal/config"
	"github.com/joiningdata/dataio/records"
	"github.com/joiningdata/dataio/tabular"
)

// setup resets the command globals and returns a bare command whose
// output is captured.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cfg = config.DefaultConfig()
	logger = zap.NewNop()

	oldOut := dataio.OutputDirectory
	dataio.OutputDirectory = t.TempDir()
	t.Cleanup(func() {
		dataio.OutputDirectory = oldOut
		matrixSums, matrixQuiet = false, false
		matrixSaveNPY, matrixSaveText = "", ""
		countSave = false
		inspectSave = false
	})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMatrixCmd(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "data.csv", "1,2,3\n4,5,6\n7,8,9\n")

	matrixSums = true
	require.NoError(t, runMatrix(cmd, []string{path}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, path+": 3 x 3", lines[0])
	assert.Equal(t, "1\t2\t3", lines[1])
	assert.Equal(t, "7\t8\t9", lines[3])
	assert.Equal(t, "row sums:\t6\t15\t24", lines[4])
	assert.Equal(t, "col sums:\t12\t15\t18", lines[5])
	assert.Equal(t, "total:\t45", lines[6])
}

func TestMatrixCmdSave(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "data.tsv", "1\t2\n3\t4\n")
	dir := t.TempDir()

	matrixQuiet = true
	matrixSaveNPY = filepath.Join(dir, "m.npy")
	matrixSaveText = filepath.Join(dir, "m.csv")
	require.NoError(t, runMatrix(cmd, []string{path}))
	assert.Equal(t, path+": 2 x 2\n", out.String())

	want, err := tabular.NewMatrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	fromNPY, err := tabular.LoadNPY(matrixSaveNPY)
	require.NoError(t, err)
	assert.True(t, want.Equal(fromNPY))

	text, err := os.ReadFile(matrixSaveText)
	require.NoError(t, err)
	assert.Equal(t, "1,2\n3,4\n", string(text))

	// .npy input is read back through the same command
	out.Reset()
	matrixSaveNPY, matrixSaveText = "", ""
	require.NoError(t, runMatrix(cmd, []string{filepath.Join(dir, "m.npy")}))
	assert.Contains(t, out.String(), ": 2 x 2")
}

func TestMatrixCmdConfig(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "data.csv", "# a comment\n1;2\n3\n")

	cfg.Tabular.Delimiter = ";"
	cfg.Tabular.Comment = "#"
	err := runMatrix(cmd, []string{path})
	assert.ErrorIs(t, err, dataio.ErrRowLength)

	cfg.Tabular.Lenient = true
	require.NoError(t, runMatrix(cmd, []string{path}))
	assert.Contains(t, out.String(), "3\tNaN")

	cfg.Tabular.Delimiter = "::"
	assert.Error(t, runMatrix(cmd, []string{path}))
}

func TestMatrixCmdErrors(t *testing.T) {
	cmd, _ := setup(t)

	err := runMatrix(cmd, []string{filepath.Join(t.TempDir(), "missing.csv")})
	assert.ErrorIs(t, err, dataio.ErrFileAccess)

	err = runMatrix(cmd, []string{writeFile(t, "bad.csv", "1,2\n3,x\n")})
	assert.ErrorIs(t, err, dataio.ErrParse)
}

const tweets = `{"place":{"full_name":"San Francisco, CA"}}
{"place":{"full_name":"Austin, TX"}}
{"place":{"full_name":"Dallas, TX"}}
{"user":{"lang":"en"}}
`

func TestCountCmd(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "coffee-tweets.json", tweets)

	cmd.Flags().String("last-token", "", "")
	require.NoError(t, cmd.Flags().Set("last-token", ","))
	countLastToken = ","
	require.NoError(t, runCount(cmd, []string{path, "place.full_name"}))
	assert.Equal(t, "CA\t1\nTX\t2\n", out.String())

	out.Reset()
	cfg.Records.Order = "count"
	require.NoError(t, runCount(cmd, []string{path, "place.full_name"}))
	assert.Equal(t, "TX\t2\nCA\t1\n", out.String())

	cfg.Records.FailMissing = true
	err := runCount(cmd, []string{path, "place.full_name"})
	assert.ErrorIs(t, err, dataio.ErrFieldMissing)
}

func TestCountCmdSave(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "coffee-tweets.json", tweets)

	countSave = true
	require.NoError(t, runCount(cmd, []string{path, "place.full_name"}))

	token, err := dataio.Fingerprint(path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), dataio.GetResultPath(token, "count"))

	var res countResult
	notready, err := dataio.GetResult(token, "count", &res)
	require.NoError(t, err)
	assert.False(t, notready)
	assert.Equal(t, 4, res.Records)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []records.Entry{
		{Key: "San Francisco, CA", Count: 1},
		{Key: "Austin, TX", Count: 1},
		{Key: "Dallas, TX", Count: 1},
	}, res.Entries)
}

func TestInspectCmd(t *testing.T) {
	cmd, out := setup(t)
	a := writeFile(t, "genes.csv", "gene,score\nGO:0001,1.5\nGO:0002,2.5\n")
	b := writeFile(t, "plain.csv", "1,2\n3,4\n")

	inspectSave = true
	require.NoError(t, runInspect(cmd, []string{a, b}))

	text := out.String()
	assert.Less(t, strings.Index(text, a), strings.Index(text, b))
	assert.Contains(t, text, "prefixed integers")
	assert.Contains(t, text, "floats")

	token, err := dataio.Fingerprint(b)
	require.NoError(t, err)
	var res inspectResult
	_, err = dataio.GetResult(token, "inspect", &res)
	require.NoError(t, err)
	require.Len(t, res.Columns, 2)
	assert.Equal(t, tabular.Integers, res.Columns[0].Type)

	assert.Error(t, runInspect(cmd, []string{a, filepath.Join(t.TempDir(), "missing.csv")}))
}

func TestFingerprintCmd(t *testing.T) {
	cmd, out := setup(t)
	a := writeFile(t, "a.csv", "1,2\n")
	b := writeFile(t, "b.csv", "1,2\n")

	require.NoError(t, runFingerprint(cmd, []string{a, b}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Fields(lines[0])[0], strings.Fields(lines[1])[0])
	assert.True(t, strings.HasSuffix(lines[1], b))
}

func TestRootCmdConfig(t *testing.T) {
	setup(t)
	outDir := filepath.Join(t.TempDir(), "results")
	confPath := writeFile(t, "dataio.yaml", "output_directory: "+outDir+"\nlogging:\n  level: info\n")
	data := writeFile(t, "a.csv", "1,2\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"fingerprint", "--config", confPath, "--log-level", "error", data})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, outDir, dataio.OutputDirectory)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Contains(t, buf.String(), data)
}

func TestMatrixCmdNPYRejectsTextFlags(t *testing.T) {
	cmd, _ := setup(t)
	m, err := tabular.NewMatrix([][]float64{{1, 2}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "m.npy")
	require.NoError(t, tabular.SaveNPY(path, m))

	for _, name := range textFlags {
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})
		cmd.Flags().String(name, "", "")
		require.NoError(t, cmd.Flags().Set(name, "1"))
		err := runMatrix(cmd, []string{path})
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "--"+name)
	}

	require.NoError(t, runMatrix(cmd, []string{path}))
}

func TestInspectCmdRepeatedFiles(t *testing.T) {
	cmd, out := setup(t)
	a := writeFile(t, "a.csv", "1,2\n3,4\n")
	b := writeFile(t, "b.csv", "1,2\n3,4\n")

	inspectSave = true
	require.NoError(t, runInspect(cmd, []string{a, a, b, filepath.Join(filepath.Dir(a), ".", "a.csv")}))
	assert.Equal(t, 1, strings.Count(out.String(), a+":"))
	assert.Equal(t, 1, strings.Count(out.String(), b+":"))

	token, err := dataio.Fingerprint(a)
	require.NoError(t, err)
	var res inspectResult
	_, err = dataio.GetResult(token, "inspect", &res)
	require.NoError(t, err)
	assert.Equal(t, a, res.Path)

	entries, err := os.ReadDir(dataio.OutputDirectory)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Equal(t, []string{"x", "y"}, uniquePaths([]string{"x", "./x", "y", "x"}))
}
