// ABOUTME: The history command: lists saved runs or renders one saved run's report.
// ABOUTME: Reads the local sqlite archive; the backend is never contacted.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/history"
	"github.com/algoscope/algoscope/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List saved runs, or show one saved run's report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path, err := historyPath()
		if err != nil {
			return err
		}
		store, err := history.Open(path)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		if len(args) == 1 {
			return showRun(store, args[0])
		}
		return listRuns(store)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
}

func listRuns(store *history.Store) error {
	runs, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs yet.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %-12s %-10s %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.TimeBound,
			r.Verdict,
			r.AnalysisID)
	}
	return nil
}

func showRun(store *history.Store, runID string) error {
	run, err := store.Get(runID)
	if err != nil {
		return err
	}

	renderer, err := render.NewReportRenderer()
	if err != nil {
		return err
	}
	width := 100
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}
	fmt.Println(renderer.Render(run.Report, width))
	return nil
}
