// Command dataio loads numeric matrices and JSON-lines records from files
// and reports on them.
//
//	dataio matrix data.csv --sums
//	dataio count coffee-tweets.json place.full_name --last-token ,
//	dataio inspect genes.tsv
//	dataio fingerprint data.csv coffee-tweets.json
//
// Settings come from an optional YAML file (--config), then DATAIO_*
// environment variables, then flags.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joiningdata/dataio"
	"github.com/joiningdata/dataio/internal/config"
	"github.com/joiningdata/dataio/internal/logging"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dataio",
	Short: "Load tabular matrices and JSON-lines records",
	Long: `dataio reads delimited text, xlsx and .npy files into numeric matrices,
and line-delimited JSON files into records whose fields can be tallied.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		dataio.OutputDirectory, err = filepath.Abs(cfg.OutputDirectory)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("DATAIO_CONFIG"), "YAML configuration `file`")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logging `level` (debug, info, warn, error)")

	rootCmd.AddCommand(matrixCmd, countCmd, inspectCmd, fingerprintCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
