// ABOUTME: Root cobra command with global flags and shared config/client construction.
// ABOUTME: Configuration is loaded once in PersistentPreRunE and overridden by flags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/backend"
	"github.com/algoscope/algoscope/config"
)

var (
	flagServer  string
	flagVerbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "algoscope",
	Short: "Terminal client for the algorithm complexity analysis service",
	Long: `algoscope submits pseudocode to an analysis backend, streams the
agent pipeline's progress live, and renders the resulting complexity
report in the terminal.

Examples:
  algoscope analyze algorithm.py       # analyze a file
  algoscope analyze --sample merge-sort
  algoscope samples                    # list built-in samples
  algoscope history                    # past runs
  algoscope demo                       # run a local demo backend`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServer != "" {
			cfg.ServerURL = flagServer
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend base URL (overrides config and ALGOSCOPE_SERVER)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every stream entry with details")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(demoCmd)
}

// newClient builds a backend client from the loaded config.
func newClient() *backend.Client {
	return backend.NewClient(cfg.ServerURL, cfg.RequestTimeout())
}

// historyPath resolves the configured or default history database location.
func historyPath() (string, error) {
	if cfg.HistoryPath != "" {
		return cfg.HistoryPath, nil
	}
	return config.DefaultHistoryPath()
}
