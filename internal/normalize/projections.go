package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/model"
)

// StatsProfiles decodes projection or stats payloads into per-player profiles.
//
// A mapping is keyed by player id and each value is either one entry (an object
// with a "stats" member), a set of entries keyed "0", "1", ..., or a flat stat
// map. A list holds entries that name their player_id; entries for the same
// player are grouped in document order.
func StatsProfiles(data []byte) (*model.ProfileSet, Report) {
	shape, items := entries(data, profileEntity)
	rep := Report{Shape: shape}
	set := model.NewProfileSet()
	for _, e := range items {
		if shape == ShapeList && e.synthesized {
			// {"4034": {...}} wrapped in a list.
			if key, inner, ok := soleMember(e.value); ok {
				e = entry{key: key, value: inner}
			}
		}
		got, ok := decodeProfile(e.key, e.value)
		rep.add(e, ok)
		sp := set.Append(e.key, got...)
		if sp.Extra.Raw() == "" {
			sp.Extra = model.NewExtra(e.value.Raw)
		}
	}
	return set, rep
}

func soleMember(v gjson.Result) (string, gjson.Result, bool) {
	if !v.IsObject() {
		return "", gjson.Result{}, false
	}
	var (
		key   string
		inner gjson.Result
		n     int
	)
	v.ForEach(func(k, val gjson.Result) bool {
		n++
		key, inner = k.String(), val
		return n < 2
	})
	if n != 1 || !inner.IsObject() {
		return "", gjson.Result{}, false
	}
	return key, inner, true
}

func decodeProfile(playerID string, v gjson.Result) ([]model.StatsEntry, bool) {
	if !v.IsObject() {
		return nil, false
	}
	if v.Get("stats").Exists() {
		return []model.StatsEntry{decodeEntry(playerID, "0", v)}, true
	}
	if indexed(v) {
		var out []model.StatsEntry
		v.ForEach(func(k, inner gjson.Result) bool {
			if inner.IsObject() {
				out = append(out, decodeEntry(playerID, k.String(), inner))
			}
			return true
		})
		return out, true
	}
	// flat stat map
	return []model.StatsEntry{{Key: "0", PlayerID: playerID, Stats: statMap(v), Extra: model.NewExtra(v.Raw)}}, true
}

// indexed reports whether every member name is a non-negative integer and
// every value an object.
func indexed(v gjson.Result) bool {
	ok, n := true, 0
	v.ForEach(func(k, inner gjson.Result) bool {
		n++
		if _, err := strconv.Atoi(k.String()); err != nil || !inner.IsObject() {
			ok = false
		}
		return ok
	})
	return ok && n > 0
}

func decodeEntry(playerID, key string, v gjson.Result) model.StatsEntry {
	e := model.StatsEntry{
		Key:          key,
		PlayerID:     playerID,
		Season:       str(v, "season"),
		SeasonType:   str(v, "season_type"),
		Category:     str(v, "category"),
		Company:      str(v, "company"),
		Team:         str(v, "team"),
		Week:         intField(v, "week"),
		LastModified: int64Field(v, "last_modified"),
		UpdatedAt:    int64Field(v, "updated_at"),
		Stats:        statMap(v.Get("stats")),
		Extra:        model.NewExtra(v.Raw),
	}
	if pl := v.Get("player"); pl.IsObject() {
		p, _ := decodePlayer(e.PlayerID, pl)
		p.ID = e.PlayerID
		e.Player = p
	}
	return e
}

func statMap(r gjson.Result) map[string]model.StatValue {
	out := make(map[string]model.StatValue)
	r.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = statValue(v)
		return true
	})
	return out
}

// statValue reads a number, a numeric string, or {source, parsedValue}.
func statValue(v gjson.Result) model.StatValue {
	sv := model.StatValue{Raw: v.Raw}
	switch {
	case v.IsObject():
		sv.Source = strings.TrimSpace(v.Get("source").String())
		if f, ok := num(v.Get("parsedValue")); ok {
			sv.Value, sv.OK = f, true
		} else if f, ok := num(v.Get("source")); ok {
			sv.Value, sv.OK = f, true
		}
	default:
		sv.Value, sv.OK = num(v)
	}
	return sv
}
