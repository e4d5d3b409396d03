// Package normalize decodes raw Sleeper payloads into typed model entities.
//
// Upstream data arrives as a mapping keyed by id, a list of objects, or a
// single object, and individual entries are frequently incomplete. Every
// decoder here classifies the payload first, then walks it in document order,
// recovering malformed entries as fallback records instead of failing.
package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Shape is the top-level layout of a payload.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeMapping
	ShapeList
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeMapping:
		return "mapping"
	case ShapeList:
		return "list"
	case ShapeSingle:
		return "single"
	default:
		return "empty"
	}
}

// Report describes what a decode produced.
type Report struct {
	Shape       Shape
	Decoded     int // entries decoded cleanly
	Fallback    int // malformed entries kept as fallback records
	Synthesized int // entries keyed by ordinal because they carried no id
}

func (r *Report) add(e entry, ok bool) {
	if ok {
		r.Decoded++
	} else {
		r.Fallback++
	}
	if e.synthesized {
		r.Synthesized++
	}
}

// entity describes how to recognise one kind of record.
type entity struct {
	ids   []string // id fields, first present wins
	hints []string // fields only a single record would carry at top level
}

var (
	playerEntity  = entity{ids: []string{"player_id"}, hints: []string{"first_name", "last_name", "full_name", "position", "fantasy_positions"}}
	leagueEntity  = entity{ids: []string{"league_id"}, hints: []string{"scoring_settings", "roster_positions", "total_rosters"}}
	pickEntity    = entity{ids: []string{"pick_no"}, hints: []string{"picked_by", "draft_slot", "round", "metadata"}}
	userEntity    = entity{ids: []string{"user_id"}, hints: []string{"username", "display_name"}}
	rosterEntity  = entity{ids: []string{"roster_id"}, hints: []string{"owner_id", "starters", "players"}}
	draftEntity   = entity{ids: []string{"draft_id"}, hints: []string{"draft_order", "slot_to_roster_id"}}
	profileEntity = entity{ids: []string{"player_id"}, hints: []string{"stats", "season", "season_type", "week"}}
)

// entry is one element of a payload, keyed by a stable string id.
type entry struct {
	key         string
	value       gjson.Result
	synthesized bool
}

// DetectShape classifies a parsed payload for the given entity kind.
// Arrays are lists. Objects carrying an id or hint field at the top level are a
// single record; otherwise an object is a mapping when any of its values is an
// object, and a single record when none is.
func DetectShape(res gjson.Result, ids ...string) Shape {
	return detect(res, entity{ids: ids})
}

func detect(res gjson.Result, ent entity) Shape {
	switch {
	case res.IsArray():
		if len(res.Array()) == 0 {
			return ShapeEmpty
		}
		return ShapeList
	case res.IsObject():
		var members, objects int
		single := false
		res.ForEach(func(k, v gjson.Result) bool {
			members++
			if v.IsObject() {
				objects++
			}
			if isField(k.String(), ent.ids) && v.Type != gjson.JSON && v.Type != gjson.Null {
				single = true
			}
			if isField(k.String(), ent.hints) {
				single = true
			}
			return true
		})
		switch {
		case members == 0:
			return ShapeEmpty
		case single:
			return ShapeSingle
		case objects > 0:
			return ShapeMapping
		default:
			return ShapeSingle
		}
	default:
		return ShapeEmpty
	}
}

func isField(name string, fields []string) bool {
	for _, f := range fields {
		if name == f {
			return true
		}
	}
	return false
}

// entries walks a payload in document order.
func entries(data []byte, ent entity) (Shape, []entry) {
	res := gjson.ParseBytes(data)
	shape := detect(res, ent)
	var out []entry
	switch shape {
	case ShapeMapping:
		res.ForEach(func(k, v gjson.Result) bool {
			out = append(out, entry{key: strings.TrimSpace(k.String()), value: v})
			return true
		})
	case ShapeList:
		for i, v := range res.Array() {
			if id, ok := recordID(v, ent.ids); ok {
				out = append(out, entry{key: id, value: v})
				continue
			}
			out = append(out, entry{key: strconv.Itoa(i), value: v, synthesized: true})
		}
	case ShapeSingle:
		if id, ok := recordID(res, ent.ids); ok {
			out = append(out, entry{key: id, value: res})
		} else {
			out = append(out, entry{key: "0", value: res, synthesized: true})
		}
	}
	return shape, out
}

func recordID(v gjson.Result, ids []string) (string, bool) {
	if !v.IsObject() {
		return "", false
	}
	for _, f := range ids {
		if id, ok := normalizeID(v.Get(f)); ok {
			return id, true
		}
	}
	return "", false
}

// normalizeID renders a scalar id as a string so 1234, "1234" and 1234.0 agree.
func normalizeID(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		return s, s != ""
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return strconv.FormatInt(int64(r.Num), 10), true
		}
		return strconv.FormatFloat(r.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// ---- tolerant field readers ----

func str(v gjson.Result, path string) string {
	r := v.Get(path)
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return r.String()
	default:
		return ""
	}
}

func num(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func intField(v gjson.Result, path string) int {
	f, ok := num(v.Get(path))
	if !ok {
		return 0
	}
	return int(f)
}

func int64Field(v gjson.Result, path string) int64 {
	f, ok := num(v.Get(path))
	if !ok {
		return 0
	}
	return int64(f)
}

func optFloat(v gjson.Result, path string) *float64 {
	f, ok := num(v.Get(path))
	if !ok {
		return nil
	}
	return &f
}

func boolField(v gjson.Result, path string) bool {
	r := v.Get(path)
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		b, _ := strconv.ParseBool(strings.TrimSpace(r.Str))
		return b
	case gjson.Number:
		return r.Num != 0
	default:
		return false
	}
}

// strList accepts an array of scalars or a lone scalar.
func strList(v gjson.Result, path string) []string {
	r := v.Get(path)
	if !r.IsArray() {
		if s, ok := normalizeID(r); ok {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range r.Array() {
		if s, ok := normalizeID(item); ok {
			out = append(out, s)
		}
	}
	return out
}
