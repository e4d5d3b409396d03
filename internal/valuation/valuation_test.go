package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/model"
)

func makePlayer(id string, pos model.Position, proj float64) *model.Player {
	p := &model.Player{ID: id, ResolvedPosition: pos}
	p.SetProjection(proj)
	return p
}

func fptr(v float64) *float64 { return &v }

func TestVORP(t *testing.T) {
	st := model.PositionStat{Median: 20}
	assert.Equal(t, 10.0, VORP(30, st, true))
	assert.Equal(t, -5.0, VORP(15, st, true))
	assert.Equal(t, 0.0, VORP(30, st, false))
}

func TestTeamTotal(t *testing.T) {
	stats := model.PositionStats{
		model.PosQB: {Median: 300},
		model.PosRB: {Median: 200},
		model.PosK:  {Median: 120},
	}
	slots := map[model.Position]int{model.PosQB: 1, model.PosRB: 2, model.PosWR: 3}
	assert.InDelta(t, 700.0, TeamTotal(stats, slots), 1e-9)
}

func TestTeamShare_ZeroTotal(t *testing.T) {
	stats := model.PositionStats{model.PosQB: {Median: 0}, model.PosRB: {Median: 0}}
	slots := map[model.Position]int{model.PosQB: 1, model.PosRB: 2}
	players := []*model.Player{makePlayer("1", model.PosQB, 10), makePlayer("2", model.PosRB, 5)}

	sum := Apply(players, stats, slots, 200)
	assert.Equal(t, 0.0, sum.TeamTotal)
	for _, p := range players {
		require.NotNil(t, p.Valuation)
		assert.Equal(t, 0.0, p.Valuation.TeamShare)
		assert.Equal(t, 0.0, p.Valuation.RawValue)
	}
	assert.Equal(t, 0.0, TeamShare(10, -4))
}

func TestStdDevs(t *testing.T) {
	assert.InDelta(t, 2.0, StdDevs(10, model.PositionStat{StdDev: 5}, true), 1e-9)
	assert.Equal(t, 0.0, StdDevs(10, model.PositionStat{StdDev: 0}, true))
	assert.Equal(t, 0.0, StdDevs(10, model.PositionStat{StdDev: 5}, false))
}

func TestApply(t *testing.T) {
	stats := model.PositionStats{
		model.PosRB: {Median: 20, StdDev: 5},
		model.PosQB: {Median: 30, StdDev: 0},
	}
	slots := map[model.Position]int{model.PosRB: 2, model.PosQB: 1}
	rb := makePlayer("rb", model.PosRB, 30)
	qb := makePlayer("qb", model.PosQB, 30)
	te := makePlayer("te", model.PosTE, 12)

	sum := Apply([]*model.Player{rb, qb, te}, stats, slots, 200)
	assert.InDelta(t, 70.0, sum.TeamTotal, 1e-9)
	assert.Equal(t, 3, sum.Valued)
	assert.Equal(t, 1, sum.NoStats)

	assert.InDelta(t, 10.0, rb.Valuation.VORP, 1e-9)
	assert.InDelta(t, 2.0, rb.Valuation.StdDevs, 1e-9)
	assert.InDelta(t, 30.0/70.0, rb.Valuation.TeamShare, 1e-9)
	assert.InDelta(t, 200*30.0/70.0, rb.Valuation.RawValue, 1e-9)

	assert.Equal(t, 0.0, qb.Valuation.StdDevs, "single-player position has no spread")
	assert.Equal(t, 0.0, te.Valuation.VORP)
	assert.InDelta(t, 12.0/70.0, te.Valuation.TeamShare, 1e-9)
}

func TestResolveBudget(t *testing.T) {
	league := model.League{DraftID: "d2"}
	drafts := []model.Draft{
		{ID: "d1", Budget: fptr(150)},
		{ID: "d2", Budget: fptr(250)},
	}
	assert.Equal(t, 250.0, ResolveBudget(league, drafts, DefaultBudget))

	league.DraftID = "other"
	assert.Equal(t, 150.0, ResolveBudget(league, drafts, DefaultBudget))

	league.DraftBudget = fptr(300)
	assert.Equal(t, 300.0, ResolveBudget(league, drafts, DefaultBudget))

	assert.Equal(t, DefaultBudget, ResolveBudget(model.League{}, nil, DefaultBudget))
}
