package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/pipeline"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintLeagueSummary prints a one-line header describing the league and run.
func PrintLeagueSummary(w io.Writer, res *pipeline.Result) {
	l := res.League
	name := l.Name
	if name == "" {
		name = l.ID
	}
	fmt.Fprintf(w, "\nLeague: %s  |  Season: %s  |  Teams: %d  |  Budget: $%.0f  |  Pool: %d (removed %d)  |  Median lineup: %.1f pts\n\n",
		name, l.Season, l.TotalRosters, res.Budget, res.Players.Len(), res.Filter.Removed(), res.TeamTotal)
}

// ValueOptions controls the value table.
type ValueOptions struct {
	FocusID string // row marked with ">"
	Limit   int    // 0 = no limit
}

// PrintValueTable prints players with their valuation and draft outcome.
// Columns: RK | NAME | POS | TEAM | PROJ | VORP | SD | SHARE% | $VALUE | COST | SURPLUS | BUYER
func PrintValueTable(w io.Writer, players []*model.Player, res *pipeline.Result, opts ValueOptions) {
	table := newTable(w)
	table.Header(" ", "RK", "NAME", "POS", "TEAM", "PROJ", "VORP", "SD", "SHARE%", "$VALUE", "COST", "SURPLUS", "BUYER")

	for i, p := range players {
		if opts.Limit > 0 && i >= opts.Limit {
			break
		}
		marker := " "
		if opts.FocusID != "" && p.ID == opts.FocusID {
			marker = ">"
		}
		v := p.Valuation
		if v == nil {
			v = &model.Valuation{}
		}
		cost, surplus := "—", "—"
		if pick, ok := res.Pick(p.ID); ok && pick.Cost != nil {
			cost = fmt.Sprintf("$%.0f", *pick.Cost)
		}
		if s, ok := res.Surplus(p); ok {
			surplus = fmt.Sprintf("%+.1f", s)
		}
		buyer := res.Buyer(p.ID)
		if buyer == "" {
			buyer = "—"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			p.Name(),
			p.ResolvedPosition.String(),
			orDash(p.Team),
			fmt.Sprintf("%.1f", p.ProjectedPoints()),
			fmt.Sprintf("%+.1f", v.VORP),
			fmt.Sprintf("%+.2f", v.StdDevs),
			fmt.Sprintf("%.2f%%", v.TeamShare*100),
			fmt.Sprintf("$%.1f", v.RawValue),
			cost,
			surplus,
			buyer,
		)
	}
	table.Render()
}

// PrintPositionStats prints the replacement-level snapshot per position.
// Columns: POS | SLOTS | WINDOW | N | MEAN | MEDIAN | STDDEV | REPL
func PrintPositionStats(w io.Writer, res *pipeline.Result) {
	table := newTable(w)
	table.Header("POS", "SLOTS", "WINDOW", "N", "MEAN", "MEDIAN", "STDDEV", "REPL")

	for _, pos := range model.AllPositions {
		st, ok := res.Stats[pos]
		slots := res.Slots[pos]
		if !ok {
			if slots == 0 {
				continue
			}
			table.Append(pos.String(), strconv.Itoa(slots), "—", "0", "—", "—", "—", "—")
			continue
		}
		table.Append(
			pos.String(),
			strconv.Itoa(slots),
			strconv.Itoa(st.Window),
			strconv.Itoa(st.Count),
			fmt.Sprintf("%.1f", st.Mean),
			fmt.Sprintf("%.1f", st.Median),
			fmt.Sprintf("%.2f", st.StdDev),
			fmt.Sprintf("%.1f", st.Replacement),
		)
	}
	table.Render()
}

// PrintPlayerDetail prints a key/value card for one player.
func PrintPlayerDetail(w io.Writer, p *model.Player, res *pipeline.Result) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{PerColumn: []tw.Align{tw.AlignLeft, tw.AlignRight}},
		},
	}))
	table.Header("FIELD", "VALUE")

	row := func(k, v string) { table.Append(k, v) }
	row("Name", p.Name())
	row("ID", p.ID)
	row("Position", p.ResolvedPosition.String())
	if len(p.FantasyPositions) > 0 {
		row("Eligible", strings.Join(p.FantasyPositions, ", "))
	}
	row("Team", orDash(p.Team))
	if p.InjuryStatus != "" {
		row("Injury", p.InjuryStatus)
	}
	if p.Age > 0 {
		row("Age", strconv.Itoa(p.Age))
	}
	row("Projection", fmt.Sprintf("%.1f", p.ProjectedPoints()))
	if v := p.Valuation; v != nil {
		row("VORP", fmt.Sprintf("%+.1f", v.VORP))
		row("Std devs", fmt.Sprintf("%+.2f", v.StdDevs))
		row("Team share", fmt.Sprintf("%.2f%%", v.TeamShare*100))
		row("Value", fmt.Sprintf("$%.1f", v.RawValue))
	}
	if st, ok := res.Stats[p.ResolvedPosition]; ok {
		row("Pos median", fmt.Sprintf("%.1f", st.Median))
		row("Replacement", fmt.Sprintf("%.1f", st.Replacement))
	}
	if pick, ok := res.Pick(p.ID); ok {
		row("Drafted", fmt.Sprintf("round %d, pick %d", pick.Round, pick.PickNo))
		if pick.Cost != nil {
			row("Cost", fmt.Sprintf("$%.0f", *pick.Cost))
		}
		if s, ok := res.Surplus(p); ok {
			row("Surplus", fmt.Sprintf("%+.1f", s))
		}
		if b := res.Buyer(p.ID); b != "" {
			row("Buyer", b)
		}
	}
	table.Render()
}

// PrintManagerTable summarizes auction spend and value bought per manager.
// Columns: MANAGER | PLAYERS | SPENT | VALUE | SURPLUS
func PrintManagerTable(w io.Writer, res *pipeline.Result) {
	type agg struct {
		name                  string
		players               int
		spent, value, surplus float64
	}
	byBuyer := make(map[string]*agg)
	var order []string
	for _, p := range res.Ranked() {
		name := res.Buyer(p.ID)
		if name == "" {
			continue
		}
		a, ok := byBuyer[name]
		if !ok {
			a = &agg{name: name}
			byBuyer[name] = a
			order = append(order, name)
		}
		a.players++
		if pick, ok := res.Pick(p.ID); ok && pick.Cost != nil {
			a.spent += *pick.Cost
		}
		if p.Valuation != nil {
			a.value += p.Valuation.RawValue
		}
		if s, ok := res.Surplus(p); ok {
			a.surplus += s
		}
	}

	table := newTable(w)
	table.Header("MANAGER", "PLAYERS", "SPENT", "VALUE", "SURPLUS")
	for _, name := range order {
		a := byBuyer[name]
		table.Append(
			a.name,
			strconv.Itoa(a.players),
			fmt.Sprintf("$%.0f", a.spent),
			fmt.Sprintf("$%.1f", a.value),
			fmt.Sprintf("%+.1f", a.surplus),
		)
	}
	table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
