package aggregator

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-draft-metrics/internal/model"
)

// DefaultBuffer is the number of extra players added to every replacement window.
const DefaultBuffer = 1

// WindowSize returns the replacement window for a position: every rostered
// slot across the league plus a buffer. Never negative.
func WindowSize(slots, totalRosters, buffer int) int {
	n := slots*totalRosters + buffer
	if n < 0 {
		return 0
	}
	return n
}

// PositionStats computes replacement-level statistics for every resolved
// position among players.
//
// For each position the players are sorted by projection descending (stable,
// so ties keep collection order) and truncated to the window. Mean, median and
// population standard deviation are computed over the window. Positions whose
// window is empty are omitted.
func PositionStats(players []*model.Player, slots map[model.Position]int, totalRosters, buffer int) model.PositionStats {
	byPos := make(map[model.Position][]float64)
	for _, p := range players {
		if p.ResolvedPosition == model.PosUnknown || p.Projection == nil {
			continue
		}
		byPos[p.ResolvedPosition] = append(byPos[p.ResolvedPosition], *p.Projection)
	}

	out := make(model.PositionStats)
	for pos, projections := range byPos {
		window := WindowSize(slots[pos], totalRosters, buffer)
		st, ok := windowStats(projections, window)
		if !ok {
			continue
		}
		out[pos] = st
	}
	return out
}

func windowStats(projections []float64, window int) (model.PositionStat, bool) {
	sorted := append([]float64(nil), projections...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	if len(sorted) > window {
		sorted = sorted[:window]
	}
	if len(sorted) == 0 {
		return model.PositionStat{}, false
	}

	mean, std := stat.PopMeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return model.PositionStat{
		Mean:        mean,
		Median:      median(sorted),
		StdDev:      std,
		Window:      window,
		Count:       len(sorted),
		Replacement: sorted[len(sorted)-1],
	}, true
}

// median returns the median of a sorted slice (either direction).
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
