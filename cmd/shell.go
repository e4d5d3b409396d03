package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/pipeline"
	"github.com/pable/go-draft-metrics/internal/report"
	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellLoad loadFlags

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Value the league once and explore the results interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	shellLoad.register(shellCmd.Flags())
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	res, _, err := runValuation(ctx, db, shellLoad, log)
	if err != nil {
		return err
	}

	cGreeting.Println("draftmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	report.PrintLeagueSummary(os.Stdout, res)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("draftmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "top":
			shellTop(res, args, false)
		case "avail":
			shellTop(res, args, true)
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name-or-id>")
				continue
			}
			shellPlayer(res, strings.Join(args, " "))
		case "team":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: team <abbr>")
				continue
			}
			shellTeam(res, args[0])
		case "stats":
			report.PrintPositionStats(os.Stdout, res)
		case "managers":
			report.PrintManagerTable(os.Stdout, res)
		case "reload":
			if next, ok := shellReload(ctx, db); ok {
				res = next
				report.PrintLeagueSummary(os.Stdout, res)
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"top [pos] [n]", "top n players by value (default 20), optionally one position"},
		{"avail [pos] [n]", "same, hiding players already drafted"},
		{"player <name-or-id>", "valuation card for matching players"},
		{"team <abbr>", "valued players of one NFL team"},
		{"stats", "replacement-level statistics per position"},
		{"managers", "auction spend and surplus per manager"},
		{"reload", "refetch league data and picks (cache only when offline), then revalue"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-24s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

// parseTopArgs accepts an optional position and an optional count in either order.
func parseTopArgs(args []string) (model.Position, int, error) {
	pos, n := model.PosUnknown, 20
	for _, a := range args {
		if v, err := strconv.Atoi(a); err == nil {
			n = v
			continue
		}
		pos = model.ParsePosition(a)
		if pos == model.PosUnknown {
			return pos, 0, fmt.Errorf("unknown position %q", a)
		}
	}
	return pos, n, nil
}

func shellTop(res *pipeline.Result, args []string, availableOnly bool) {
	pos, n, err := parseTopArgs(args)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	players := selectPlayers(res, pos, availableOnly)
	if len(players) == 0 {
		cMuted.Println("No players.")
		return
	}
	report.PrintValueTable(os.Stdout, players, res, report.ValueOptions{Limit: n})
}

func shellPlayer(res *pipeline.Result, q string) {
	matches := findPlayers(res, q)
	if len(matches) == 0 {
		cWarn.Fprintf(os.Stderr, "no player matches %q\n", q)
		return
	}
	for _, p := range matches {
		cHeader.Fprintf(os.Stdout, "\n--- %s ---\n", p.Name())
		report.PrintPlayerDetail(os.Stdout, p, res)
	}
}

func shellTeam(res *pipeline.Result, abbr string) {
	var players []*model.Player
	onTeam := make(map[string]bool)
	for _, p := range res.Players.ByTeam(abbr) {
		onTeam[p.ID] = true
	}
	for _, p := range res.Ranked() {
		if onTeam[p.ID] {
			players = append(players, p)
		}
	}
	if len(players) == 0 {
		cMuted.Printf("No valued players on %s.\n", strings.ToUpper(abbr))
		return
	}
	report.PrintValueTable(os.Stdout, players, res, report.ValueOptions{})
}

// reloadFlags refetches on reload unless the session is offline, in which
// case the cache is revalued as is.
func reloadFlags(session loadFlags) loadFlags {
	return loadFlags{refresh: !session.offline, offline: session.offline}
}

func shellReload(ctx context.Context, db *storage.DB) (*pipeline.Result, bool) {
	res, _, err := runValuation(ctx, db, reloadFlags(shellLoad), log)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	return res, true
}
