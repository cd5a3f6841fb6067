package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/records"
)

var (
	countLastToken   string
	countDesc        bool
	countFailMissing bool
	countKeepBlank   bool
	countSave        bool
)

var countCmd = &cobra.Command{
	Use:   "count FILE PATH",
	Short: "Tally the values of a field across JSON-lines records",
	Long: `Loads a file holding one JSON object per line and counts the distinct
values found at a dotted field path.

Example:
  dataio count coffee-tweets.json place.full_name --last-token ,`,
	Args: cobra.ExactArgs(2),
	RunE: runCount,
}

func init() {
	f := countCmd.Flags()
	f.StringVar(&countLastToken, "last-token", "", "count only the last `sep`-separated token of each value")
	f.BoolVar(&countDesc, "desc", false, "order by count, highest first")
	f.BoolVar(&countFailMissing, "fail-missing", false, "fail when a record lacks the field")
	f.BoolVar(&countKeepBlank, "keep-blank", false, "treat blank lines as errors")
	f.BoolVar(&countSave, "save", false, "write the tally to the output directory")
}

// countResult is the saved form of a tally.
type countResult struct {
	Path    string          `json:"path"`
	Field   string          `json:"field"`
	Records int             `json:"records"`
	Total   int             `json:"total"`
	Entries []records.Entry `json:"entries"`
}

func runCount(cmd *cobra.Command, args []string) error {
	path, field := args[0], args[1]
	flags := cmd.Flags()

	keepBlank := cfg.Records.KeepBlank
	if flags.Changed("keep-blank") {
		keepBlank = countKeepBlank
	}
	seq, err := records.Load(path, records.WithSkipBlank(!keepBlank), records.WithLogger(logger))
	if err != nil {
		return err
	}

	var opts []records.CountOption
	if flags.Changed("last-token") {
		opts = append(opts, records.WithTransform(records.LastToken(countLastToken)))
	}
	if (flags.Changed("desc") && countDesc) || (!flags.Changed("desc") && cfg.Records.Order == "count") {
		opts = append(opts, records.WithOrder(records.CountDescending))
	}
	failMissing := cfg.Records.FailMissing
	if flags.Changed("fail-missing") {
		failMissing = countFailMissing
	}
	if failMissing {
		opts = append(opts, records.WithMissing(records.FailMissing))
	}

	tally, err := records.Count(seq, field, opts...)
	if err != nil {
		return err
	}
	logger.Info("counted field",
		zap.String("path", path),
		zap.String("field", field),
		zap.Int("records", len(seq)),
		zap.Int("distinct", tally.Len()))

	out := cmd.OutOrStdout()
	for _, e := range tally.Entries() {
		fmt.Fprintf(out, "%s\t%d\n", e.Key, e.Count)
	}

	if !countSave {
		return nil
	}
	token, err := dataio.Fingerprint(path)
	if err != nil {
		return err
	}
	if err := dataio.CheckDirectories(); err != nil {
		return err
	}
	res := countResult{
		Path:    path,
		Field:   field,
		Records: len(seq),
		Total:   tally.Total(),
		Entries: tally.Entries(),
	}
	if err := dataio.PutResult(token, "count", res); err != nil {
		return err
	}
	fmt.Fprintln(out, "saved", dataio.GetResultPath(token, "count"))
	return nil
}
