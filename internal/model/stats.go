package model

import (
	"sort"
	"strconv"
)

// StatValue is a single stat as sent upstream. Sleeper sends plain numbers,
// numeric strings, or {"source": "23.0", "parsedValue": 23} objects.
type StatValue struct {
	Raw    string
	Value  float64
	OK     bool // false when the raw value could not be read as a number
	Source string
}

// StatsEntry is one dated projection or stat line for a player.
type StatsEntry struct {
	Key          string // index key within the profile ("0", "1", ...)
	PlayerID     string
	Season       string
	SeasonType   string
	Category     string
	Company      string
	Team         string
	Week         int
	LastModified int64
	UpdatedAt    int64
	Stats        map[string]StatValue

	// Player carries the embedded player object, when present.
	Player *Player

	Extra Extra
}

// StatsProfile groups every entry known for one player.
type StatsProfile struct {
	PlayerID string
	Entries  []StatsEntry

	Extra Extra
}

// Latest returns the most recently updated entry, ordering by UpdatedAt, then
// LastModified, then numeric index key.
func (sp *StatsProfile) Latest() (StatsEntry, bool) {
	if len(sp.Entries) == 0 {
		return StatsEntry{}, false
	}
	best := 0
	for i := 1; i < len(sp.Entries); i++ {
		if entryAfter(sp.Entries[i], sp.Entries[best]) {
			best = i
		}
	}
	return sp.Entries[best], true
}

// ForSeason returns the entries matching season and, when non-empty, seasonType.
func (sp *StatsProfile) ForSeason(season, seasonType string) []StatsEntry {
	var out []StatsEntry
	for _, e := range sp.Entries {
		if e.Season != season {
			continue
		}
		if seasonType != "" && e.SeasonType != seasonType {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryAfter(a, b StatsEntry) bool {
	ta, tb := a.UpdatedAt, b.UpdatedAt
	if ta == 0 {
		ta = a.LastModified
	}
	if tb == 0 {
		tb = b.LastModified
	}
	if ta != tb {
		return ta > tb
	}
	ia, _ := strconv.Atoi(a.Key)
	ib, _ := strconv.Atoi(b.Key)
	return ia > ib
}

// ProfileSet is an ordered set of stats profiles keyed by player id.
type ProfileSet struct {
	ids  []string
	byID map[string]*StatsProfile
}

// NewProfileSet returns an empty ProfileSet.
func NewProfileSet() *ProfileSet {
	return &ProfileSet{byID: make(map[string]*StatsProfile)}
}

// Get returns the profile for a player id.
func (s *ProfileSet) Get(playerID string) (*StatsProfile, bool) {
	sp, ok := s.byID[playerID]
	return sp, ok
}

// Append adds entries to a player's profile, creating it on first use.
func (s *ProfileSet) Append(playerID string, entries ...StatsEntry) *StatsProfile {
	sp, ok := s.byID[playerID]
	if !ok {
		sp = &StatsProfile{PlayerID: playerID}
		s.byID[playerID] = sp
		s.ids = append(s.ids, playerID)
	}
	sp.Entries = append(sp.Entries, entries...)
	return sp
}

// IDs returns player ids in first-seen order.
func (s *ProfileSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of profiles.
func (s *ProfileSet) Len() int { return len(s.ids) }

// StatCodes returns the sorted stat codes of an entry.
func (e StatsEntry) StatCodes() []string {
	codes := make([]string, 0, len(e.Stats))
	for c := range e.Stats {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
