// ABOUTME: The demo command: serves a local canned backend speaking the analysis API.
// ABOUTME: Useful for trying the client without a real analysis service.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/demoserver"
)

var (
	demoAddr  string
	demoDelay time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local demo backend with canned analyses",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Fprintf(os.Stderr, "demo backend listening on %s\n", demoAddr)
		fmt.Fprintf(os.Stderr, "try: algoscope analyze --server http://%s --sample merge-sort\n", demoAddr)
		return demoserver.New(demoAddr, demoDelay).ListenAndServe()
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", "127.0.0.1:8080", "listen address")
	demoCmd.Flags().DurationVar(&demoDelay, "delay", 250*time.Millisecond, "pause between replayed stream events")
}
