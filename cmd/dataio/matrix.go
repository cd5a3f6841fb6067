package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joiningdata/dataio/tabular"
)

var (
	matrixDelimiter string
	matrixComment   string
	matrixSkipRows  int
	matrixLenient   bool
	matrixSums      bool
	matrixQuiet     bool
	matrixSaveNPY   string
	matrixSaveText  string
)

var matrixCmd = &cobra.Command{
	Use:   "matrix FILE",
	Short: "Load a numeric matrix and print it",
	Long: `Loads a delimited text, xlsx or .npy file into a matrix of floats.

The format follows the file extension: .xlsx reads the first sheet, .tsv,
.tab, .txt and .dat split on tabs, .npy reads a NumPy array and everything
else is read as CSV. Every field must parse as a number.

The text options --delimiter, --comment, --skip-rows and --lenient do not
apply to .npy input and are rejected with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatrix,
}

func init() {
	f := matrixCmd.Flags()
	f.StringVarP(&matrixDelimiter, "delimiter", "d", "", "field delimiter `char` (default per format)")
	f.StringVar(&matrixComment, "comment", "", "ignore lines starting with `char`")
	f.IntVar(&matrixSkipRows, "skip-rows", 0, "skip the first `n` rows")
	f.BoolVar(&matrixLenient, "lenient", false, "pad short rows with NaN instead of failing")
	f.BoolVar(&matrixSums, "sums", false, "print row, column and total sums")
	f.BoolVarP(&matrixQuiet, "quiet", "q", false, "do not print the matrix values")
	f.StringVar(&matrixSaveNPY, "save-npy", "", "write the matrix to a .npy `file`")
	f.StringVar(&matrixSaveText, "save-text", "", "write the matrix to a delimited text or xlsx `file`")
}

// textFlags only affect delimited text input.
var textFlags = []string{"delimiter", "comment", "skip-rows", "lenient"}

// tabularOptions merges flags over the configured defaults.
func tabularOptions(cmd *cobra.Command) ([]tabular.Option, error) {
	tc := cfg.Tabular
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		tc.Delimiter = matrixDelimiter
	}
	if flags.Changed("comment") {
		tc.Comment = matrixComment
	}
	if flags.Changed("skip-rows") {
		tc.SkipRows = matrixSkipRows
	}
	if flags.Changed("lenient") {
		tc.Lenient = matrixLenient
	}

	check := *cfg
	check.Tabular = tc
	if err := check.Validate(); err != nil {
		return nil, err
	}

	opts := []tabular.Option{
		tabular.WithLogger(logger),
		tabular.WithStrict(!tc.Lenient),
		tabular.WithSkipRows(tc.SkipRows),
	}
	if d := tc.DelimiterRune(); d != 0 {
		opts = append(opts, tabular.WithDelimiter(d))
	}
	if c := tc.CommentRune(); c != 0 {
		opts = append(opts, tabular.WithComment(c))
	}
	return opts, nil
}

func runMatrix(cmd *cobra.Command, args []string) error {
	opts, err := tabularOptions(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	var m *tabular.Matrix
	if strings.EqualFold(filepath.Ext(path), ".npy") {
		for _, name := range textFlags {
			if cmd.Flags().Changed(name) {
				return fmt.Errorf("--%s does not apply to .npy input", name)
			}
		}
		m, err = tabular.LoadNPY(path)
	} else {
		m, err = tabular.Load(path, opts...)
	}
	if err != nil {
		return err
	}
	rows, cols := m.Dims()
	logger.Info("loaded matrix", zap.String("path", path), zap.Int("rows", rows), zap.Int("cols", cols))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d x %d\n", path, rows, cols)
	if !matrixQuiet {
		for _, row := range m.Rows() {
			fmt.Fprintln(out, joinFloats(row, "\t"))
		}
	}
	if matrixSums {
		printSums(out, m)
	}

	if matrixSaveNPY != "" {
		if err := tabular.SaveNPY(matrixSaveNPY, m); err != nil {
			return err
		}
		logger.Info("saved npy", zap.String("path", matrixSaveNPY))
	}
	if matrixSaveText != "" {
		if err := tabular.SaveText(matrixSaveText, m, opts...); err != nil {
			return err
		}
		logger.Info("saved text", zap.String("path", matrixSaveText))
	}
	return nil
}

func printSums(out io.Writer, m *tabular.Matrix) {
	if m.Empty() {
		fmt.Fprintln(out, "total:\t0")
		return
	}
	fmt.Fprintln(out, "row sums:\t"+joinFloats(m.RowSums(), "\t"))
	fmt.Fprintln(out, "col sums:\t"+joinFloats(m.ColSums(), "\t"))
	fmt.Fprintln(out, "total:\t"+strconv.FormatFloat(m.Sum(), 'g', -1, 64))
}

func joinFloats(xs []float64, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, sep)
}
