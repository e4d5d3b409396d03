package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/loader"
)

var fetchForce bool

// fetchCmd refreshes the payload cache from the Sleeper API.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh cached league data and projections",
	Long: `Downloads the league, its drafts, picks, users and rosters, and the season
projections, and stores them in the local cache. The player catalog is large and
is only refetched when older than catalog_ttl, or with --force.

Examples:
  draftmetrics fetch --league 1048302711233331200
  draftmetrics fetch --username alice --season 2025 --force`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "also refetch the player catalog")
}

func runFetch(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := loaderOptions(loadFlags{refresh: true}, fetchForce)
	_, leagueID, err := loader.New(db, newClient(), log).Load(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Cached payloads for league %s:\n\n", leagueID)
	return printPayloads(db)
}
