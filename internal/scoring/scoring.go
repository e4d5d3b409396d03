// Package scoring converts raw stat lines into league-specific fantasy points.
package scoring

import (
	"sort"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Project returns Σ stats[c] × weights[c] over the stat codes present in both.
// Stats that could not be parsed are skipped. Codes are summed in sorted order
// so the result is bit-for-bit stable across runs.
func Project(stats map[string]model.StatValue, weights map[string]float64) float64 {
	codes := make([]string, 0, len(stats))
	for code, sv := range stats {
		if !sv.OK {
			continue
		}
		if _, ok := weights[code]; ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	var total float64
	for _, code := range codes {
		total += stats[code].Value * weights[code]
	}
	return total
}

// SelectEntry picks the entry of a profile used for valuation: the latest entry
// of the requested season and season type when any match, otherwise the latest
// entry overall.
func SelectEntry(sp *model.StatsProfile, season, seasonType string) (model.StatsEntry, bool) {
	if sp == nil {
		return model.StatsEntry{}, false
	}
	if season != "" {
		if matching := sp.ForSeason(season, seasonType); len(matching) > 0 {
			sub := model.StatsProfile{PlayerID: sp.PlayerID, Entries: matching}
			return sub.Latest()
		}
	}
	return sp.Latest()
}

// ProjectProfile scores the selected entry of a profile. ok is false when the
// profile has no entries.
func ProjectProfile(sp *model.StatsProfile, weights map[string]float64, season, seasonType string) (float64, bool) {
	e, ok := SelectEntry(sp, season, seasonType)
	if !ok {
		return 0, false
	}
	return Project(e.Stats, weights), true
}
