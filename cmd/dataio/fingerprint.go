package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joiningdata/dataio"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint FILE...",
	Short: "Print the content fingerprint of files",
	Long: `Prints a 64-bit HighwayHash of each file's contents. Files with equal
fingerprints load to equal matrices or records, and saved results are
named by the fingerprint of their input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFingerprint,
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	sums := make([]string, len(args))
	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			sum, err := dataio.Fingerprint(path)
			sums[i] = sum
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		fmt.Fprintf(out, "%s  %s\n", sums[i], path)
	}
	return nil
}
