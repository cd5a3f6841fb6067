package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/tabular"
)

// maxWorkers bounds the files processed at once.
const maxWorkers = 4

var inspectSave bool

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Report the type of each column of tabular files",
	Long: `Samples up to 5000 rows of each file and reports whether every column
holds integers, floats, prefixed integers (such as GO:0008150) or text.
Columns reported as text will not load as a matrix.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectSave, "save", false, "write each report to the output directory")
	inspectCmd.Flags().StringVarP(&matrixDelimiter, "delimiter", "d", "", "field delimiter `char` (default per format)")
	inspectCmd.Flags().StringVar(&matrixComment, "comment", "", "ignore lines starting with `char`")
}

type inspectResult struct {
	Path    string                `json:"path"`
	Columns []*tabular.ColumnInfo `json:"columns"`

	token string
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := tabularOptions(cmd)
	if err != nil {
		return err
	}
	paths := uniquePaths(args)

	results := make([]inspectResult, len(paths))
	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			cols, err := tabular.Inspect(path, opts...)
			if err != nil {
				return err
			}
			results[i] = inspectResult{Path: path, Columns: cols}
			logger.Info("inspected", zap.String("path", path), zap.Int("columns", len(cols)))

			if inspectSave {
				results[i].token, err = dataio.Fingerprint(path)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// files with equal contents share a result file; write each once
	if inspectSave {
		if err := dataio.CheckDirectories(); err != nil {
			return err
		}
		saved := make(map[string]bool, len(results))
		for _, res := range results {
			if saved[res.token] {
				continue
			}
			saved[res.token] = true
			if err := dataio.PutResult(res.token, "inspect", res); err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		printColumns(out, res)
	}
	return nil
}

// uniquePaths drops repeated paths, keeping the first occurrence.
func uniquePaths(args []string) []string {
	seen := make(map[string]bool, len(args))
	var res []string
	for _, p := range args {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, p)
	}
	return res
}

func printColumns(out io.Writer, res inspectResult) {
	fmt.Fprintf(out, "%s: %d columns\n", res.Path, len(res.Columns))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\theader\ttype\tsamples\tinvalid")
	for _, c := range res.Columns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", c.Order+1, c.Header, c.Type, c.Samples, c.Invalid)
	}
	tw.Flush()
}
