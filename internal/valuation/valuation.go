// Package valuation derives auction draft metrics from projections and
// positional replacement statistics.
package valuation

import "github.com/pable/go-draft-metrics/internal/model"

// DefaultBudget is the per-team auction budget when neither the league nor
// its draft carries one.
const DefaultBudget = 200.0

// VORP returns projection minus the position's replacement median, or 0 when
// the position has no statistics.
func VORP(projection float64, st model.PositionStat, ok bool) float64 {
	if !ok {
		return 0
	}
	return projection - st.Median
}

// TeamTotal returns Σ median × slot count over positions with statistics: the
// projected output of a median starting lineup. Only dedicated slots count.
func TeamTotal(stats model.PositionStats, slots map[model.Position]int) float64 {
	var total float64
	for _, pos := range model.AllPositions {
		st, ok := stats[pos]
		if !ok {
			continue
		}
		total += st.Median * float64(slots[pos])
	}
	return total
}

// TeamShare returns projection / total, or 0 unless total is positive.
func TeamShare(projection, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return projection / total
}

// StdDevs returns vorp in units of the position's standard deviation, or 0
// when the deviation is not positive.
func StdDevs(vorp float64, st model.PositionStat, ok bool) float64 {
	if !ok || st.StdDev <= 0 {
		return 0
	}
	return vorp / st.StdDev
}

// RawValue converts a team share into auction dollars.
func RawValue(teamShare, budget float64) float64 {
	return teamShare * budget
}

// Summary reports what Apply computed.
type Summary struct {
	TeamTotal float64
	Valued    int
	NoStats   int // players whose position had no statistics
}

// Apply sets Valuation on every player using one statistics snapshot.
func Apply(players []*model.Player, stats model.PositionStats, slots map[model.Position]int, budget float64) Summary {
	sum := Summary{TeamTotal: TeamTotal(stats, slots)}
	for _, p := range players {
		proj := p.ProjectedPoints()
		st, ok := stats[p.ResolvedPosition]
		if !ok {
			sum.NoStats++
		}
		vorp := VORP(proj, st, ok)
		share := TeamShare(proj, sum.TeamTotal)
		p.Valuation = &model.Valuation{
			VORP:      vorp,
			TeamShare: share,
			StdDevs:   StdDevs(vorp, st, ok),
			RawValue:  RawValue(share, budget),
		}
		sum.Valued++
	}
	return sum
}

// ResolveBudget picks the auction budget: the league's own, else the first
// draft carrying one (preferring draftID), else fallback.
func ResolveBudget(league model.League, drafts []model.Draft, fallback float64) float64 {
	if league.DraftBudget != nil && *league.DraftBudget > 0 {
		return *league.DraftBudget
	}
	for _, d := range drafts {
		if d.ID == league.DraftID && d.Budget != nil && *d.Budget > 0 {
			return *d.Budget
		}
	}
	for _, d := range drafts {
		if d.Budget != nil && *d.Budget > 0 {
			return *d.Budget
		}
	}
	return fallback
}
