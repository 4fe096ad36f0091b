package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/domspec/packages/assert"
	"github.com/abdul-hamid-achik/domspec/packages/config"
	"github.com/abdul-hamid-achik/domspec/packages/driver"
	"github.com/abdul-hamid-achik/domspec/packages/history"
	"github.com/abdul-hamid-achik/domspec/packages/remote"
	"github.com/abdul-hamid-achik/domspec/packages/report"
	"github.com/abdul-hamid-achik/domspec/packages/scenario"
	"github.com/abdul-hamid-achik/domspec/packages/stats"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run scenario files against a driver",
	Long: `Run browser checks defined in scenario YAML files.

Answers come from a live WebSocket driver, or from canned responses
embedded in the scenario when the replay driver is selected.

Examples:
  domspec run smoke.yaml
  domspec run ./scenarios/ --driver ws://localhost:8077/driver
  domspec run smoke.yaml --output json --history runs.db
  domspec run smoke.yaml --strict-order --stats
  domspec run ./scenarios/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	configFlag  string
	driverFlag  string
	outputFlag  string
	verboseFlag bool
	noColorFlag bool
	rateFlag    float64
	strictFlag  bool
	settleFlag  time.Duration
	historyFlag string
	statsFlag   bool
	watchFlag   bool
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", "", "Config file (default: .domspec.yaml in the working directory)")
	runCmd.Flags().StringVarP(&driverFlag, "driver", "d", "", "Driver endpoint: a ws:// URL, or \"replay\"")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output format: console, json")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show passing checks and driver traffic")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	runCmd.Flags().Float64VarP(&rateFlag, "rate", "r", 0, "Cap command issuance at n commands per second (0 = unlimited)")
	runCmd.Flags().BoolVar(&strictFlag, "strict-order", false, "Hold each command until the previous check is answered")
	runCmd.Flags().DurationVar(&settleFlag, "settle", 0, "How long to wait for outstanding answers (0 = config default)")
	runCmd.Flags().StringVar(&historyFlag, "history", "", "Record run results into this SQLite database")
	runCmd.Flags().BoolVar(&statsFlag, "stats", false, "Print answer latency percentiles per check kind")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch scenario files and re-run on change")
}

// runSettings is the merged view of config file, environment, and
// flags. A flag wins when it was set on the command line; otherwise
// the config value (itself already env-overridden) stands.
type runSettings struct {
	driver  string
	output  string
	rate    float64
	history string
	settle  time.Duration
	verbose bool
	noColor bool
	strict  bool
	stats   bool
}

func resolveSettings(cmd *cobra.Command) (runSettings, error) {
	cfg, err := config.Load(configFlag, ".")
	if err != nil {
		return runSettings{}, err
	}

	s := runSettings{
		driver:  cfg.Driver,
		output:  cfg.Output,
		rate:    cfg.Rate,
		history: cfg.History,
		settle:  cfg.Settle(),
		verbose: cfg.GetVerbose(),
		noColor: cfg.GetNoColor(),
		strict:  cfg.GetStrictOrder(),
		stats:   cfg.GetStats(),
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		s.driver = driverFlag
	}
	if flags.Changed("output") {
		s.output = outputFlag
	}
	if flags.Changed("rate") {
		s.rate = rateFlag
	}
	if flags.Changed("history") {
		s.history = historyFlag
	}
	if flags.Changed("settle") {
		s.settle = settleFlag
	}
	if flags.Changed("verbose") {
		s.verbose = verboseFlag
	}
	if flags.Changed("no-color") {
		s.noColor = noColorFlag
	}
	if flags.Changed("strict-order") {
		s.strict = strictFlag
	}
	if flags.Changed("stats") {
		s.stats = statsFlag
	}

	return s, nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	files, err := collectScenarios(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .yaml or .yml scenario files found")
	}

	failed, err := executeScenarios(cmd, settings, files)
	if err != nil {
		return err
	}

	if !watchFlag {
		if failed > 0 {
			os.Exit(ExitCheckFailure)
		}
		return nil
	}

	return watchScenarios(cmd, settings, files, args)
}

// executeScenarios runs every scenario file once and returns how many
// checks failed across all of them. A scenario that cannot be loaded
// or bound is reported and counted as one failure, and the remaining
// files still run.
func executeScenarios(cmd *cobra.Command, settings runSettings, files []string) (int, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	log := zap.NewNop()
	if settings.verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			log = dev
			defer func() { _ = log.Sync() }()
		}
	}

	var (
		console *report.Console
		jsonOut *report.JSONLines
		sink    report.Sink
	)
	switch strings.ToLower(settings.output) {
	case "json", "jsonlines":
		jsonOut = report.NewJSONLines(report.JSONLinesWithWriter(out))
		sink = jsonOut
	default:
		console = report.NewConsole(
			report.WithWriter(out),
			report.WithVerbose(settings.verbose),
			report.WithNoColor(settings.noColor),
		)
		console.Header(version)
		sink = console
	}

	var store *history.Store
	if settings.history != "" {
		st, err := history.Open(settings.history)
		if err != nil {
			return 0, err
		}
		store = st
		defer func() { _ = store.Close() }()
	}

	var recorder *stats.Recorder
	if settings.stats {
		recorder = stats.NewRecorder()
	}

	totalExpectations := 0
	totalFailed := 0
	runStart := time.Now()

	for _, file := range files {
		sc, err := scenario.Load(file)
		if err == nil {
			if console != nil {
				console.Section(sc.Name)
			}
			var expectations, failures int
			expectations, failures, err = runScenario(ctx, settings, log, sink, recorder, store, sc)
			totalExpectations += expectations
			totalFailed += failures
		}
		if err != nil {
			reportError(console, fmt.Errorf("%s: %w", file, err))
			totalFailed++
		}
	}

	elapsed := time.Since(runStart)
	if console != nil {
		console.Summary(totalExpectations, totalFailed, elapsed)
	} else {
		jsonOut.Summary(totalExpectations, totalFailed, elapsed)
	}

	if recorder != nil && console != nil {
		printLatencies(out, recorder)
	}

	return totalFailed, nil
}

// runScenario binds one scenario to a fresh asserter, drains its
// command queue, waits out late answers, and records the run.
func runScenario(ctx context.Context, settings runSettings, log *zap.Logger, sink report.Sink, recorder *stats.Recorder, store *history.Store, sc *scenario.Scenario) (expectations, failures int, err error) {
	endpoint := settings.driver
	if endpoint == "" && sc.HasResponses() {
		endpoint = "replay"
	}

	var (
		drv  driver.Driver
		live bool
	)
	switch {
	case endpoint == "replay":
		rep := driver.NewReplay(driver.WithReplayLogger(log))
		sc.SeedReplay(rep)
		drv = rep
	case strings.HasPrefix(endpoint, "ws://"), strings.HasPrefix(endpoint, "wss://"):
		client, dialErr := remote.Dial(ctx, endpoint, remote.WithLogger(log))
		if dialErr != nil {
			return 0, 0, dialErr
		}
		defer func() { _ = client.Close() }()
		drv = client
		live = true
	case endpoint == "":
		return 0, 0, fmt.Errorf("scenario %q carries no responses: pass --driver or set one in the config", sc.Name)
	default:
		return 0, 0, fmt.Errorf("unknown driver %q (want a ws:// URL or \"replay\")", endpoint)
	}

	collector := report.NewCollector()
	opts := []assert.Option{
		assert.WithSink(report.Multi{sink, collector}),
		assert.WithLogger(log),
	}
	if settings.rate > 0 {
		opts = append(opts, assert.WithRate(settings.rate))
	}
	if settings.strict {
		opts = append(opts, assert.WithStrictResolution())
	}
	if recorder != nil {
		opts = append(opts, assert.WithStats(recorder))
	}

	a := assert.New(drv, opts...)
	if err := sc.Bind(a); err != nil {
		return 0, 0, err
	}

	started := time.Now()
	if err := a.Run(ctx); err != nil {
		return 0, 0, err
	}

	if live {
		settleCtx, cancel := context.WithTimeout(ctx, settings.settle)
		settleErr := a.Settle(settleCtx)
		cancel()
		if settleErr != nil && a.Pending() > 0 {
			fmt.Fprintf(os.Stderr, "warning: %s: %d checks never answered\n", sc.Name, a.Pending())
		}
	} else if n := a.Pending(); n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: %d checks had no canned response\n", sc.Name, n)
	}
	elapsed := time.Since(started)

	expectations, failures = a.Totals()

	if store != nil {
		run := history.Run{
			Scenario:     sc.Name,
			Expectations: expectations,
			Failures:     failures,
			Duration:     elapsed,
			StartedAt:    started,
		}
		if err := store.Append(ctx, run, historyFailures(collector)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
		}
	}

	return expectations, failures, nil
}

func reportError(console *report.Console, err error) {
	if console != nil {
		console.Error(err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func historyFailures(c *report.Collector) []history.Failure {
	events := c.Failures()
	out := make([]history.Failure, 0, len(events))
	for _, e := range events {
		out = append(out, history.Failure{
			Type:     e.Type,
			Message:  e.Message,
			Expected: fmt.Sprintf("%v", e.Expected),
			Value:    fmt.Sprintf("%v", e.Value),
		})
	}
	return out
}

func printLatencies(out io.Writer, recorder *stats.Recorder) {
	summaries := recorder.Summary()
	if len(summaries) == 0 {
		return
	}
	fmt.Fprintf(out, "\nAnswer latency:\n")
	for _, s := range summaries {
		fmt.Fprintf(out, "  %-26s n=%-5d p50=%-10v p95=%-10v p99=%-10v max=%v\n",
			s.Key, s.Count, s.P50, s.P95, s.P99, s.Max)
	}
	o := recorder.Overall()
	fmt.Fprintf(out, "  %-26s n=%-5d p50=%-10v p95=%-10v p99=%-10v max=%v\n",
		o.Key, o.Count, o.P50, o.P95, o.P99, o.Max)
}

// watchScenarios re-runs the collected files whenever one of them
// changes on disk. Rapid write bursts are debounced.
func watchScenarios(cmd *cobra.Command, settings runSettings, files, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(os.Stderr, "failed to watch %s: %v\n", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	// Also watch the original args if they're directories
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && isScenarioFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running scenarios...\n\n", event.Name)

					if _, err := executeScenarios(cmd, settings, files); err != nil {
						fmt.Fprintf(os.Stderr, "error: %v\n", err)
					}

					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}

func collectScenarios(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isScenarioFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			if isScenarioFile(arg) {
				files = append(files, arg)
			}
		}
	}

	return files, nil
}

func isScenarioFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
