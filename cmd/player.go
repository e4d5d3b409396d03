package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/pipeline"
	"github.com/pable/go-draft-metrics/internal/report"
)

var playerLoad loadFlags

// playerCmd shows the valuation card of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name-or-id> [<name-or-id>...]",
	Short: "Show valuation details for players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerLoad.register(playerCmd.Flags())
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	res, _, err := runValuation(cmd.Context(), db, playerLoad, log)
	if err != nil {
		return err
	}

	for _, arg := range args {
		matches := findPlayers(res, arg)
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No player in the valued pool matches %q\n", arg)
			continue
		}
		for _, p := range matches {
			fmt.Fprintln(os.Stdout)
			report.PrintPlayerDetail(os.Stdout, p, res)
		}
	}
	return nil
}

// findPlayers resolves a query as an exact id first, then as a name search.
func findPlayers(res *pipeline.Result, q string) []*model.Player {
	q = strings.TrimSpace(q)
	if p, ok := res.Players.Get(q); ok {
		return []*model.Player{p}
	}
	return res.Players.SearchName(q)
}
