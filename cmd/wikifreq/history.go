package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/database"
	"github.com/nao1215/wikifreq/internal/report"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded crawl and count runs",
		Long: `History lists the runs recorded in the crawl history database, newest
first. With a run ID it prints every page of that run with its level,
status and word counts.

Examples:
  # The last 20 runs
  wikifreq history

  # Pages of one run as JSON
  wikifreq history --json 01JAB3C4D5E6F7G8H9J0K1M2N3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", defaultHistoryLimit, "Maximum number of runs listed (0 lists all)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().String("db-dir", "", "Directory of the history database (default: XDG data dir)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(a.cfg.DBDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			fmt.Fprintln(a.out, "No runs recorded.")
			return nil
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if len(args) == 1 {
		run, err := db.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		pages, err := db.GetRunPages(ctx, run.ID)
		if err != nil {
			return err
		}
		if jsonOut {
			_, err = report.NewJSONWriter(a.out, report.WithPrettyPrint()).WriteRun(*run, pages)
		} else {
			_, err = report.NewSimpleWriter(a.out).WritePages(*run, pages)
		}
		return err
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOut {
		_, err = report.NewJSONWriter(a.out, report.WithPrettyPrint()).WriteRuns(runs)
	} else {
		_, err = report.NewSimpleWriter(a.out).WriteRuns(runs)
	}
	return err
}
