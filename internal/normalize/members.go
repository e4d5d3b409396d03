package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Users decodes league members into a map keyed by user id.
func Users(data []byte) (map[string]model.User, Report) {
	shape, items := entries(data, userEntity)
	rep := Report{Shape: shape}
	out := make(map[string]model.User, len(items))
	for _, e := range items {
		if !e.value.IsObject() {
			rep.add(e, false)
			out[e.key] = model.User{ID: e.key, Extra: model.NewExtra(e.value.Raw)}
			continue
		}
		rep.add(e, true)
		out[e.key] = model.User{
			ID:          e.key,
			Username:    str(e.value, "username"),
			DisplayName: str(e.value, "display_name"),
			Avatar:      str(e.value, "avatar"),
			Extra:       model.NewExtra(e.value.Raw),
		}
	}
	return out, rep
}

// Rosters decodes league rosters in document order.
func Rosters(data []byte) ([]model.Roster, Report) {
	shape, items := entries(data, rosterEntity)
	rep := Report{Shape: shape}
	var out []model.Roster
	for _, e := range items {
		if !e.value.IsObject() {
			rep.add(e, false)
			out = append(out, model.Roster{RosterID: e.key, Extra: model.NewExtra(e.value.Raw)})
			continue
		}
		rep.add(e, true)
		out = append(out, model.Roster{
			RosterID: e.key,
			OwnerID:  str(e.value, "owner_id"),
			LeagueID: str(e.value, "league_id"),
			Players:  strList(e.value, "players"),
			Starters: strList(e.value, "starters"),
			Reserve:  strList(e.value, "reserve"),
			Extra:    model.NewExtra(e.value.Raw),
		})
	}
	return out, rep
}

// Drafts decodes league drafts in document order.
func Drafts(data []byte) ([]model.Draft, Report) {
	shape, items := entries(data, draftEntity)
	rep := Report{Shape: shape}
	var out []model.Draft
	for _, e := range items {
		d, ok := decodeDraft(e.key, e.value)
		rep.add(e, ok)
		out = append(out, d)
	}
	return out, rep
}

func decodeDraft(key string, v gjson.Result) (model.Draft, bool) {
	if !v.IsObject() {
		return model.Draft{ID: key, Extra: model.NewExtra(v.Raw)}, false
	}
	return model.Draft{
		ID:       key,
		LeagueID: str(v, "league_id"),
		Type:     str(v, "type"),
		Status:   str(v, "status"),
		Season:   str(v, "season"),
		Budget:   optFloat(v, "settings.budget"),
		Rounds:   intField(v, "settings.rounds"),
		Extra:    model.NewExtra(v.Raw),
	}, true
}
