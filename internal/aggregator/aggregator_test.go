package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/model"
)

// makePlayers creates resolved players at pos with the given projections.
func makePlayers(pos model.Position, projections ...float64) []*model.Player {
	var out []*model.Player
	for i, v := range projections {
		p := &model.Player{ID: pos.String() + string(rune('a'+i)), ResolvedPosition: pos}
		p.SetProjection(v)
		out = append(out, p)
	}
	return out
}

func TestWindowSize(t *testing.T) {
	assert.Equal(t, 5, WindowSize(2, 2, 1))
	assert.Equal(t, 1, WindowSize(0, 12, 1))
	assert.Equal(t, 0, WindowSize(0, 12, -3))
}

// ---- Replacement windows ----

func TestPositionStats_FullWindow(t *testing.T) {
	players := makePlayers(model.PosRB, 30, 25, 20, 15, 10)
	stats := PositionStats(players, map[model.Position]int{model.PosRB: 2}, 2, 1)

	rb, ok := stats[model.PosRB]
	require.True(t, ok)
	assert.Equal(t, 5, rb.Window)
	assert.Equal(t, 5, rb.Count)
	assert.InDelta(t, 20.0, rb.Median, 1e-9)
	assert.InDelta(t, 20.0, rb.Mean, 1e-9)
	assert.InDelta(t, 7.0711, rb.StdDev, 1e-4)
	assert.InDelta(t, 10.0, rb.Replacement, 1e-9)
}

func TestPositionStats_Truncates(t *testing.T) {
	players := makePlayers(model.PosWR, 10, 50, 30, 40, 20, 60)
	stats := PositionStats(players, map[model.Position]int{model.PosWR: 1}, 3, 0)

	wr := stats[model.PosWR]
	assert.Equal(t, 3, wr.Count)
	assert.InDelta(t, 50.0, wr.Median, 1e-9)
	assert.InDelta(t, 50.0, wr.Mean, 1e-9)
	assert.InDelta(t, 40.0, wr.Replacement, 1e-9)
}

func TestPositionStats_WindowIsMinOfAvailable(t *testing.T) {
	for available := 0; available <= 8; available++ {
		proj := make([]float64, available)
		for i := range proj {
			proj[i] = float64(100 - i)
		}
		stats := PositionStats(makePlayers(model.PosTE, proj...), map[model.Position]int{model.PosTE: 1}, 4, 1)
		te, ok := stats[model.PosTE]
		if available == 0 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, min(available, 5), te.Count)
	}
}

func TestPositionStats_EvenCountMedian(t *testing.T) {
	stats := PositionStats(makePlayers(model.PosQB, 40, 10, 30, 20), map[model.Position]int{model.PosQB: 1}, 4, 0)
	assert.InDelta(t, 25.0, stats[model.PosQB].Median, 1e-9)
}

func TestPositionStats_SinglePlayer(t *testing.T) {
	stats := PositionStats(makePlayers(model.PosK, 140), map[model.Position]int{model.PosK: 1}, 10, 1)
	k := stats[model.PosK]
	assert.Equal(t, 1, k.Count)
	assert.Equal(t, 0.0, k.StdDev)
	assert.InDelta(t, 140.0, k.Median, 1e-9)
}

func TestPositionStats_OmitsUnresolvedAndEmpty(t *testing.T) {
	unresolved := &model.Player{ID: "x"}
	unresolved.SetProjection(99)
	players := append(makePlayers(model.PosQB, 300), unresolved)

	stats := PositionStats(players, map[model.Position]int{model.PosQB: 1, model.PosRB: 2}, 10, 1)
	assert.Len(t, stats, 1)
	_, ok := stats[model.PosRB]
	assert.False(t, ok)

	stats = PositionStats(makePlayers(model.PosQB, 300), map[model.Position]int{model.PosQB: 0}, 10, 0)
	assert.Empty(t, stats, "a zero-sized window omits the position")
}

func TestPositionStats_TieAtCutoffKeepsOrder(t *testing.T) {
	// Window 2: the first two of the three tied players survive.
	players := makePlayers(model.PosRB, 50, 20, 20, 20)
	stats := PositionStats(players, map[model.Position]int{model.PosRB: 1}, 1, 1)
	rb := stats[model.PosRB]
	assert.Equal(t, 2, rb.Count)
	assert.InDelta(t, 35.0, rb.Mean, 1e-9)
	assert.InDelta(t, 20.0, rb.Replacement, 1e-9)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 3.0, median([]float64{5, 3, 1}))
	assert.Equal(t, 2.5, median([]float64{4, 3, 2, 1}))
}
