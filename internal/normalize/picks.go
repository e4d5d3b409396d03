package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/model"
)

// DraftPicks decodes draft picks in document order. A pick without
// metadata.amount has a nil Cost.
func DraftPicks(data []byte) ([]model.DraftPick, Report) {
	shape, items := entries(data, pickEntity)
	rep := Report{Shape: shape}
	var out []model.DraftPick
	for _, e := range items {
		p, ok := decodePick(e.value)
		rep.add(e, ok)
		out = append(out, p)
	}
	return out, rep
}

func decodePick(v gjson.Result) (model.DraftPick, bool) {
	if !v.IsObject() {
		return model.DraftPick{Extra: model.NewExtra(v.Raw)}, false
	}
	p := model.DraftPick{
		PickedBy:  str(v, "picked_by"),
		RosterID:  str(v, "roster_id"),
		Cost:      optFloat(v, "metadata.amount"),
		Round:     intField(v, "round"),
		DraftSlot: intField(v, "draft_slot"),
		PickNo:    intField(v, "pick_no"),
		IsKeeper:  boolField(v, "is_keeper"),
		DraftID:   str(v, "draft_id"),
		Extra:     model.NewExtra(v.Raw),
	}
	p.PlayerID, _ = normalizeID(v.Get("player_id"))
	return p, true
}

// PicksByPlayer indexes picks by player id. Picks without a player are skipped;
// a later pick of the same player wins.
func PicksByPlayer(picks []model.DraftPick) map[string]model.DraftPick {
	out := make(map[string]model.DraftPick, len(picks))
	for _, p := range picks {
		if p.PlayerID != "" {
			out[p.PlayerID] = p
		}
	}
	return out
}
