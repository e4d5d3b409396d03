package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/pipeline"
)

var (
	exportLoad loadFlags
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export valued players as CSV",
	Long: `Writes one row per valued player, sorted by dollar value, with projection,
VORP, standard deviations, team share and draft outcome.

Example:
  draftmetrics export --league 1048302711233331200 --out values.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportLoad.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	res, _, err := runValuation(cmd.Context(), db, exportLoad, log)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}
	if err := writeCSV(w, res); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d players to %s\n", res.Players.Len(), exportOut)
	}
	return nil
}

func writeCSV(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"player_id", "name", "position", "team", "projection",
		"vorp", "std_devs", "team_share", "raw_value", "cost", "surplus", "buyer",
	}); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for _, p := range res.Ranked() {
		row := []string{p.ID, p.Name(), p.ResolvedPosition.String(), p.Team, ff(p.ProjectedPoints())}
		if v := p.Valuation; v != nil {
			row = append(row, ff(v.VORP), ff(v.StdDevs), ff(v.TeamShare), ff(v.RawValue))
		} else {
			row = append(row, "", "", "", "")
		}
		cost, surplus := "", ""
		if pick, ok := res.Pick(p.ID); ok && pick.Cost != nil {
			cost = ff(*pick.Cost)
		}
		if s, ok := res.Surplus(p); ok {
			surplus = ff(s)
		}
		row = append(row, cost, surplus, res.Buyer(p.ID))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
