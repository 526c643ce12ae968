// ABOUTME: The report command: fetches and renders the report for a completed analysis.
// ABOUTME: Talks to the backend directly; no streaming is involved.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/history"
	"github.com/algoscope/algoscope/render"
	"github.com/algoscope/algoscope/report"
)

var (
	reportExportPath string
	reportLocal      bool
)

var reportCmd = &cobra.Command{
	Use:   "report <analysis-id>",
	Short: "Fetch and render the report of a past analysis",
	Long: `Fetches the report for an analysis ID from the backend and renders it.
With --local the argument is a history run ID and the report is read
from the local archive instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := loadReport(args[0])
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
		fmt.Println(renderer.Render(rep, width))

		if reportExportPath != "" {
			if err := exportReport(rep, reportExportPath); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "report exported to %s\n", reportExportPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportExportPath, "export", "", "write the report as HTML to this file")
	reportCmd.Flags().BoolVar(&reportLocal, "local", false, "read a saved run from local history instead of the backend")
}

// loadReport resolves the report from the backend or the local archive.
func loadReport(id string) (*report.AnalysisReport, error) {
	if !reportLocal {
		return newClient().FetchReport(context.Background(), id, "")
	}

	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	run, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	return run.Report, nil
}
