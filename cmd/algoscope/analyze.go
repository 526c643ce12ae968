// ABOUTME: The analyze command: submits pseudocode and shows live progress plus the final report.
// ABOUTME: Uses the full-screen TUI on a terminal; plain streaming output otherwise or with --plain.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/backend"
	"github.com/algoscope/algoscope/events"
	"github.com/algoscope/algoscope/history"
	"github.com/algoscope/algoscope/render"
	"github.com/algoscope/algoscope/report"
	"github.com/algoscope/algoscope/samples"
	"github.com/algoscope/algoscope/tui"
)

var (
	flagSample string
	flagExport string
	flagNoSave bool
	flagWatch  bool
	flagPlain  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze pseudocode from a file, a sample, or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagSample, "sample", "", "analyze a built-in sample by name")
	analyzeCmd.Flags().StringVar(&flagExport, "export", "", "write the report as HTML to this file")
	analyzeCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "do not record the run in history")
	analyzeCmd.Flags().BoolVar(&flagWatch, "watch", false, "re-analyze the file whenever it changes")
	analyzeCmd.Flags().BoolVar(&flagPlain, "plain", false, "stream plain output instead of the TUI")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	if flagWatch {
		if path == "" {
			return fmt.Errorf("--watch requires a file argument")
		}
		return watchAndAnalyze(ctx, path)
	}

	code, err := resolveCode(path)
	if err != nil {
		return err
	}

	if term.IsTerminal(os.Stdout.Fd()) && !flagPlain {
		return runTUI(ctx, code)
	}
	return runPlain(ctx, code)
}

// resolveCode loads the pseudocode to analyze: a file argument, a named
// sample, or piped stdin, in that order.
func resolveCode(path string) (string, error) {
	if path != "" && flagSample != "" {
		return "", fmt.Errorf("pass a file or --sample, not both")
	}

	if path != "" {
		if !tui.IsAllowedFile(path) {
			return "", fmt.Errorf("unsupported file type %q (accepted: %s)",
				filepath.Ext(path), strings.Join(tui.AllowedExtensions, " "))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	if flagSample != "" {
		s, ok := samples.Find(flagSample)
		if !ok {
			return "", fmt.Errorf("unknown sample %q (run: algoscope samples)", flagSample)
		}
		return s.Code, nil
	}

	// Piped input.
	if !term.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	return "", nil
}

// runTUI launches the full-screen interface, pre-filled with code when given.
func runTUI(ctx context.Context, code string) error {
	save, closeStore, err := saveFunc()
	if err != nil {
		return err
	}
	defer closeStore()

	bridge := tui.NewEventBridge()
	model, err := tui.NewAppModel(ctx, newClient(), bridge, cfg.ServerURL, code, save)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Bind(p.Send)

	final, err := p.Run()
	if err != nil {
		return err
	}

	if flagExport != "" {
		app, ok := final.(tui.AppModel)
		if !ok {
			return nil
		}
		rep := app.LastReport()
		if rep == nil {
			return fmt.Errorf("--export: no completed analysis to export")
		}
		if err := exportReport(rep, flagExport); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report exported to %s\n", flagExport)
	}
	return nil
}

// runPlain streams progress to stderr and prints the rendered report to stdout.
func runPlain(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("nothing to analyze: pass a file, --sample, or pipe pseudocode on stdin")
	}

	client := newClient()
	hooks := backend.RunHooks{
		OnEntry: plainEntryHandler,
		OnPhase: func(p backend.Phase) {
			fmt.Fprintf(os.Stderr, "-- %s\n", p)
		},
	}

	rep, err := client.Run(ctx, code, hooks)
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

	if !flagNoSave {
		if err := saveRun(rep.AnalysisID, code, rep); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history save failed: %v\n", err)
		}
	}
	if flagExport != "" {
		if err := exportReport(rep, flagExport); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report exported to %s\n", flagExport)
	}
	return nil
}

// plainEntryHandler prints one stream entry per line to stderr.
func plainEntryHandler(e events.LogEntry) {
	line := fmt.Sprintf("%s %s", e.Timestamp.Format("15:04:05"), e.Message)
	if flagVerbose && e.Details != "" {
		line += " " + e.Details
	}
	fmt.Fprintln(os.Stderr, line)
}

// watchAndAnalyze re-runs a plain analysis every time the file is written.
func watchAndAnalyze(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch set on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	runOnce := func() {
		code, err := resolveCode(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if err := runPlain(ctx, code); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	runOnce()
	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl+c to stop)\n", path)

	target := filepath.Clean(path)
	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}
			// Coalesce editor write bursts.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(300*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case <-rerun:
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// saveFunc opens the history store and returns a TUI save hook plus a closer.
// With --no-save the hook is nil and the closer is a no-op.
func saveFunc() (tui.SaveFunc, func(), error) {
	if flagNoSave {
		return nil, func() {}, nil
	}
	path, err := historyPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	save := func(analysisID, code string, rep *report.AnalysisReport) error {
		_, err := store.Save(analysisID, code, rep)
		return err
	}
	return save, func() { store.Close() }, nil
}

// saveRun records one completed plain-mode run.
func saveRun(analysisID, code string, rep *report.AnalysisReport) error {
	path, err := historyPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Save(analysisID, code, rep)
	return err
}

// exportReport writes the report as a standalone HTML file.
func exportReport(rep *report.AnalysisReport, path string) error {
	html, err := render.ExportHTML(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
