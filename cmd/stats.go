package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/report"
)

var statsLoad loadFlags

// statsCmd prints the replacement-level snapshot the values are computed from.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show replacement-level statistics per position",
	Long: `Display, for each rostered position, the number of starting slots, the
replacement window size, and the mean, median and population standard deviation
of projections inside that window, plus how many players the filter removed.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsLoad.register(statsCmd.Flags())
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	res, _, err := runValuation(cmd.Context(), db, statsLoad, log)
	if err != nil {
		return err
	}

	report.PrintLeagueSummary(os.Stdout, res)
	report.PrintPositionStats(os.Stdout, res)

	f := res.Filter
	fmt.Fprintf(os.Stdout, "\n  Kept          : %d\n", f.Kept)
	fmt.Fprintf(os.Stdout, "  Unrostered    : %d\n", f.Unrostered)
	fmt.Fprintf(os.Stdout, "  Unprojected   : %d\n", f.Unprojected)
	fmt.Fprintf(os.Stdout, "  Inactive      : %d\n", f.Inactive)
	fmt.Fprintf(os.Stdout, "  Projected     : %d\n", res.Projected)
	return nil
}
