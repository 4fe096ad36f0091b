package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/domspec/packages/config"
	"github.com/abdul-hamid-achik/domspec/packages/history"
	"github.com/spf13/cobra"
)

var (
	historyDBFlag       string
	historyLimitFlag    int
	historyFailuresFlag bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs from a history database",
	Long: `Show recent runs recorded with "domspec run --history".

Examples:
  domspec history --db runs.db
  domspec history --db runs.db -n 25 --failures`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().StringVar(&historyDBFlag, "db", "", "History database (default: the history path from config)")
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 10, "How many runs to show")
	historyCmd.Flags().BoolVar(&historyFailuresFlag, "failures", false, "Show failure detail under each run")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	path := historyDBFlag
	if path == "" {
		cfg, err := config.Load(configFlag, ".")
		if err != nil {
			return err
		}
		path = cfg.History
	}
	if path == "" {
		return fmt.Errorf("no history database: pass --db or set history in the config")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, run := range runs {
		status := "ok"
		if run.Failures > 0 {
			status = fmt.Sprintf("%d failed", run.Failures)
		}
		fmt.Fprintf(out, "%s  %-30s %3d checks  %-10s %v\n",
			run.StartedAt.Format("2006-01-02 15:04:05"), run.Scenario, run.Expectations, status, run.Duration)

		if historyFailuresFlag && run.Failures > 0 {
			failures, err := store.FailuresFor(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			for _, f := range failures {
				fmt.Fprintf(out, "    %s: expected %s, got %s", f.Type, f.Expected, f.Value)
				if f.Message != "" {
					fmt.Fprintf(out, " (%s)", f.Message)
				}
				fmt.Fprintln(out)
			}
		}
	}

	return nil
}
