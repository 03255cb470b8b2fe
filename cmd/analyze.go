package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/constellate/internal/analysis"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/logging"
	"github.com/papapumpkin/constellate/internal/telemetry"
	"github.com/papapumpkin/constellate/internal/ui"
)

// Output formats for analyze.
const (
	formatJSON    = "json"
	formatSummary = "summary"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Analyze one or more chart files",
	Long: `Each file holds the charts of one run. Files are validated and analyzed
concurrently; reports are written to stdout in argument order.

With --watch, the settings file and every chart file are watched and the
analysis is repeated whenever one of them changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", formatJSON, "output format: json or summary")
	analyzeCmd.Flags().Bool("watch", false, "re-run when the settings or chart files change")
	analyzeCmd.Flags().String("telemetry", "", "append JSONL run events to this file")
	rootCmd.AddCommand(analyzeCmd)
}

// checkSettings reports every settings error before an engine is built.
func checkSettings(p *ui.Printer, s config.Settings) error {
	errs := s.Validate()
	if len(errs) == 0 {
		return nil
	}
	p.SettingsValidateResult(errs)
	return fmt.Errorf("settings rejected: %d error(s)", len(errs))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	watch, _ := cmd.Flags().GetBool("watch")
	telemetryPath, _ := cmd.Flags().GetString("telemetry")
	if format != formatJSON && format != formatSummary {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatSummary)
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	printer := ui.New()
	if err := checkSettings(printer, settings); err != nil {
		return err
	}
	logger := logging.New(logging.LevelFor(settings.Verbose))

	var emitter *telemetry.Emitter
	if telemetryPath != "" {
		emitter, err = telemetry.NewEmitter(telemetryPath)
		if err != nil {
			return err
		}
		defer emitter.Close()
	}

	a := &analyzer{
		engine:  analysis.New(settings, analysis.WithLogger(logger)),
		printer: printer,
		emitter: emitter,
		out:     cmd.OutOrStdout(),
		format:  format,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if !watch {
		return a.runAll(ctx, args)
	}
	if err := a.runAll(ctx, args); err != nil {
		a.printer.Error(err.Error())
	}
	return a.watch(ctx, viper.ConfigFileUsed(), args)
}

// analyzer runs chart files through one engine and writes their reports.
type analyzer struct {
	engine  *analysis.Engine
	printer *ui.Printer
	emitter *telemetry.Emitter
	out     io.Writer
	format  string
}

// fileResult is the outcome of analyzing one chart file.
type fileResult struct {
	source  string
	report  *analysis.Report
	charts  int
	invalid []chart.ValidationError
	err     error
}

// sourceReport is the JSON document written per file.
type sourceReport struct {
	Source string           `json:"source"`
	Report *analysis.Report `json:"report"`
}

// runAll analyzes every file concurrently and writes the reports in argument
// order. A failing file does not stop the others; the returned error counts
// the failures.
func (a *analyzer) runAll(ctx context.Context, files []string) error {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.invalid != nil {
			a.printer.ChartValidateResult(r.source, r.charts, r.invalid)
		}
		if r.err != nil {
			failed++
			a.printer.Error(fmt.Sprintf("%s: %v", r.source, r.err))
			continue
		}
		if err := a.write(r); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("analysis failed for %d of %d file(s)", failed, len(files))
	}
	return nil
}

// errInvalidCharts is wrapped by load when chart validation fails.
var errInvalidCharts = errors.New("invalid charts")

func (a *analyzer) analyzeFile(file string) fileResult {
	start := time.Now()
	runID := fmt.Sprintf("%s-%d", filepath.Base(file), start.UnixNano())
	a.emit(telemetry.KindAnalysisStart, runID, file, nil)

	r := a.load(file)
	if r.err != nil {
		a.emit(telemetry.KindAnalysisFailed, runID, file, telemetry.Failure{Error: r.err.Error()})
		return r
	}

	a.emit(telemetry.KindAnalysisDone, runID, file, telemetry.RunSummary{
		Charts:       len(r.report.Charts),
		Observations: r.report.ObservationCount(),
		Patterns:     r.report.PatternCount(),
		DurationMs:   time.Since(start).Milliseconds(),
	})
	return r
}

func (a *analyzer) load(file string) fileResult {
	r := fileResult{source: file}
	charts, err := chart.LoadFile(file)
	if err != nil {
		r.err = err
		return r
	}
	r.charts = len(charts)
	if errs := chart.Validate(charts); len(errs) > 0 {
		r.invalid = errs
		r.err = fmt.Errorf("%w: %d error(s)", errInvalidCharts, len(errs))
		return r
	}
	r.report, r.err = a.engine.Analyze(charts)
	return r
}

func (a *analyzer) write(r fileResult) error {
	if a.format == formatSummary {
		ui.NewWithWriter(a.out).Summary(r.source, r.report, a.engine.Settings().AspectCategories)
		return nil
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sourceReport{Source: r.source, Report: r.report}); err != nil {
		return fmt.Errorf("writing report for %s: %w", r.source, err)
	}
	return nil
}

func (a *analyzer) emit(kind, runID, source string, data any) {
	if err := a.emitter.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      kind,
		RunID:     runID,
		Source:    source,
		Data:      data,
	}); err != nil {
		a.printer.Error(err.Error())
	}
}
