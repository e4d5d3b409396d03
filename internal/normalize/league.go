package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Leagues decodes one or more league objects in document order.
func Leagues(data []byte) ([]model.League, Report) {
	shape, items := entries(data, leagueEntity)
	rep := Report{Shape: shape}
	var out []model.League
	for _, e := range items {
		l, ok := decodeLeague(e.key, e.value)
		rep.add(e, ok)
		out = append(out, l)
	}
	return out, rep
}

// League decodes a league payload and returns its first league. An empty
// payload yields a zero League.
func League(data []byte) (model.League, Report) {
	leagues, rep := Leagues(data)
	if len(leagues) == 0 {
		return model.League{}, rep
	}
	return leagues[0], rep
}

func decodeLeague(key string, v gjson.Result) (model.League, bool) {
	if !v.IsObject() {
		return model.League{ID: key, Extra: model.NewExtra(v.Raw)}, false
	}
	l := model.League{
		ID:              key,
		Name:            str(v, "name"),
		Season:          str(v, "season"),
		Sport:           str(v, "sport"),
		Status:          str(v, "status"),
		ScoringSettings: weights(v.Get("scoring_settings")),
		TotalRosters:    intField(v, "total_rosters"),
		DraftID:         str(v, "draft_id"),
		Extra:           model.NewExtra(v.Raw),
	}
	for _, slot := range v.Get("roster_positions").Array() {
		if slot.Type == gjson.String && slot.Str != "" {
			l.RosterPositions = append(l.RosterPositions, slot.Str)
		}
	}
	l.DraftBudget = optFloat(v, "draft_budget")
	if l.DraftBudget == nil {
		l.DraftBudget = optFloat(v, "settings.budget")
	}
	return l, true
}

// weights reads a stat-code → weight object, skipping non-numeric values.
func weights(r gjson.Result) map[string]float64 {
	out := make(map[string]float64)
	r.ForEach(func(k, v gjson.Result) bool {
		if f, ok := num(v); ok {
			out[k.String()] = f
		}
		return true
	})
	return out
}
