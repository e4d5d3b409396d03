package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/pipeline"
	"github.com/pable/go-draft-metrics/internal/report"
	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	valueLoad      loadFlags
	valuePos       string
	valueTop       int
	valueAvailable bool
	valueFocus     string
	valueManagers  bool
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value every player in the league's pool for an auction draft",
	Long: `Projects each player with the league's scoring settings, removes players the
roster cannot start, computes replacement-level statistics per position and
prints VORP, standard deviations above replacement and a dollar value.

Drafted players show their auction cost, buyer and surplus (value - cost).`,
	Args: cobra.NoArgs,
	RunE: runValue,
}

func init() {
	valueLoad.register(valueCmd.Flags())
	valueCmd.Flags().StringVar(&valuePos, "pos", "", "only show this position (QB, RB, WR, TE, K, DEF, DL, LB, DB)")
	valueCmd.Flags().IntVarP(&valueTop, "top", "n", 50, "number of rows to show (0 = all)")
	valueCmd.Flags().BoolVar(&valueAvailable, "available", false, "hide players already drafted")
	valueCmd.Flags().StringVar(&valueFocus, "focus", "", "highlight a player id")
	valueCmd.Flags().BoolVar(&valueManagers, "managers", false, "also print spend and surplus per manager")
}

func runValue(cmd *cobra.Command, args []string) error {
	pos := model.PosUnknown
	if valuePos != "" {
		pos = model.ParsePosition(valuePos)
		if pos == model.PosUnknown {
			return fmt.Errorf("unknown position %q", valuePos)
		}
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	runID := uuid.NewString()
	started := time.Now()
	res, leagueID, err := runValuation(cmd.Context(), db, valueLoad, log.WithField("run_id", runID))
	if err != nil {
		return err
	}

	if err := db.InsertRun(storage.Run{
		RunID:     runID,
		LeagueID:  leagueID,
		Season:    res.League.Season,
		StartedAt: started,
		Players:   res.Players.Len(),
		Removed:   res.Filter.Removed(),
		Budget:    res.Budget,
		TeamTotal: res.TeamTotal,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "[warn] record run: %v\n", err)
	}

	report.PrintLeagueSummary(os.Stdout, res)
	report.PrintValueTable(os.Stdout, selectPlayers(res, pos, valueAvailable), res,
		report.ValueOptions{FocusID: valueFocus, Limit: valueTop})
	if valueManagers {
		fmt.Fprintln(os.Stdout)
		report.PrintManagerTable(os.Stdout, res)
	}
	return nil
}

// selectPlayers returns ranked players, optionally limited to one position
// and to players not yet drafted.
func selectPlayers(res *pipeline.Result, pos model.Position, availableOnly bool) []*model.Player {
	var atPos map[string]bool
	if pos != model.PosUnknown {
		atPos = make(map[string]bool)
		for _, p := range res.Players.ByPosition(pos) {
			atPos[p.ID] = true
		}
	}
	var out []*model.Player
	for _, p := range res.Ranked() {
		if atPos != nil && !atPos[p.ID] {
			continue
		}
		if availableOnly {
			if _, drafted := res.Pick(p.ID); drafted {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
