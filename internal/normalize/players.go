package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Players decodes the player catalog. Entries that are not objects are kept as
// fallback players carrying only their id and raw payload. A repeated id
// replaces the earlier player in place.
func Players(data []byte) (*model.PlayerCollection, Report) {
	shape, items := entries(data, playerEntity)
	rep := Report{Shape: shape}
	players := model.NewPlayerCollection()
	for _, e := range items {
		p, ok := decodePlayer(e.key, e.value)
		rep.add(e, ok)
		players.Put(p)
	}
	return players, rep
}

func decodePlayer(key string, v gjson.Result) (*model.Player, bool) {
	if !v.IsObject() {
		return &model.Player{ID: key, Extra: model.NewExtra(v.Raw)}, false
	}
	id := key
	if pid, ok := normalizeID(v.Get("player_id")); ok {
		id = pid
	}
	return &model.Player{
		ID:               id,
		FirstName:        str(v, "first_name"),
		LastName:         str(v, "last_name"),
		FullName:         str(v, "full_name"),
		SearchFullName:   str(v, "search_full_name"),
		Position:         str(v, "position"),
		FantasyPositions: strList(v, "fantasy_positions"),
		Team:             str(v, "team"),
		Status:           str(v, "status"),
		InjuryStatus:     str(v, "injury_status"),
		Active:           boolField(v, "active"),
		Age:              intField(v, "age"),
		YearsExp:         intField(v, "years_exp"),
		Number:           intField(v, "number"),
		SearchRank:       intField(v, "search_rank"),
		Extra:            model.NewExtra(v.Raw),
	}, true
}
