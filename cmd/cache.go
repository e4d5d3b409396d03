package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	cacheClear string
	cacheRuns  int
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "List cached payloads and recent valuation runs",
	Args:  cobra.NoArgs,
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().StringVar(&cacheClear, "clear", "", "delete cached payloads of a kind (players, league, projections, ...) or 'all'")
	cacheCmd.Flags().IntVar(&cacheRuns, "runs", 10, "number of recent runs to show (0 = all)")
}

func runCache(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	if cacheClear != "" {
		kind := cacheClear
		if kind == "all" {
			kind = ""
		}
		n, err := db.DeletePayloads(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted %d cached payload(s).\n", n)
		return nil
	}

	if err := printPayloads(db); err != nil {
		return err
	}

	runs, err := db.ListRuns(cacheRuns)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n%-36s  %-20s  %-6s  %7s  %7s  %7s  %9s  %s\n",
		"RUN", "LEAGUE", "SEASON", "PLAYERS", "REMOVED", "BUDGET", "TEAM", "WHEN")
	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %7s  %7s  %7s  %9s  %s\n",
		"────────────────────────────────────", "────────────────────", "──────", "───────", "───────", "───────", "─────────", "────")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %7d  %7d  %7.0f  %9.1f  %s\n",
			r.RunID, r.LeagueID, r.Season, r.Players, r.Removed, r.Budget, r.TeamTotal, humanize.Time(r.StartedAt))
	}
	return nil
}

func printPayloads(db *storage.DB) error {
	payloads, err := db.ListPayloads()
	if err != nil {
		return fmt.Errorf("list payloads: %w", err)
	}
	if len(payloads) == 0 {
		fmt.Fprintln(os.Stdout, "Cache is empty. Run 'draftmetrics fetch --league <id>' to fill it.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-24s  %10s  %10s  %s\n", "KIND", "KEY", "SIZE", "STORED", "FETCHED")
	fmt.Fprintf(os.Stdout, "%-12s  %-24s  %10s  %10s  %s\n",
		"────────────", "────────────────────────", "──────────", "──────────", "───────")
	for _, p := range payloads {
		fmt.Fprintf(os.Stdout, "%-12s  %-24s  %10s  %10s  %s\n",
			p.Kind, p.Key, humanize.Bytes(uint64(p.Size)), humanize.Bytes(uint64(p.StoredSize)), humanize.Time(p.FetchedAt))
	}
	return nil
}
