// Package pipeline runs the valuation stages in order over one set of raw
// payloads: normalize, project, filter, positional statistics, value metrics.
package pipeline

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/normalize"
	"github.com/pable/go-draft-metrics/internal/roster"
	"github.com/pable/go-draft-metrics/internal/scoring"
	"github.com/pable/go-draft-metrics/internal/valuation"
)

// Payloads holds the raw upstream documents for one run. Only Players, League
// and Projections are required; the rest enrich the result.
type Payloads struct {
	Players     []byte
	League      []byte
	Projections []byte
	Drafts      []byte
	Picks       []byte
	Users       []byte
	Rosters     []byte
}

// Options configures one run.
type Options struct {
	Season      string
	SeasonType  string
	DraftBudget float64 // fallback when neither league nor draft has a budget
	Buffer      int
	ActiveOnly  bool
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{
		SeasonType:  "regular",
		DraftBudget: valuation.DefaultBudget,
		Buffer:      aggregator.DefaultBuffer,
		ActiveOnly:  true,
	}
}

// Result is the valued player pool with the snapshot it was valued against.
type Result struct {
	League  model.League
	Players *model.PlayerCollection
	Stats   model.PositionStats
	Slots   map[model.Position]int
	Budget  float64

	TeamTotal float64
	Filter    roster.FilterResult
	Projected int // players that received a projection

	Picks    []model.DraftPick
	ByPlayer map[string]model.DraftPick
	Users    map[string]model.User
	Rosters  []model.Roster
	Drafts   []model.Draft
}

// Run executes every stage once. It never fails on data quality: malformed
// entries, missing weights and empty windows degrade the result and are logged.
func Run(p Payloads, opts Options, log logrus.FieldLogger) *Result {
	league, rep := normalize.League(p.League)
	logReport(log, "league", rep)
	players, rep := normalize.Players(p.Players)
	logReport(log, "players", rep)
	profiles, rep := normalize.StatsProfiles(p.Projections)
	logReport(log, "projections", rep)
	picks, rep := normalize.DraftPicks(p.Picks)
	logReport(log, "picks", rep)
	users, rep := normalize.Users(p.Users)
	logReport(log, "users", rep)
	rosters, rep := normalize.Rosters(p.Rosters)
	logReport(log, "rosters", rep)
	drafts, rep := normalize.Drafts(p.Drafts)
	logReport(log, "drafts", rep)

	season := opts.Season
	if season == "" {
		season = league.Season
	}

	res := &Result{
		League:   league,
		Players:  players,
		Picks:    picks,
		ByPlayer: normalize.PicksByPlayer(picks),
		Users:    users,
		Rosters:  rosters,
		Drafts:   drafts,
	}

	res.Projected = assignProjections(players, profiles, league.ScoringSettings, season, opts.SeasonType)
	log.WithFields(logrus.Fields{
		"players":   players.Len(),
		"projected": res.Projected,
		"weights":   len(league.ScoringSettings),
	}).Debug("projections assigned")

	layout := roster.ParseLayout(league.RosterPositions)
	res.Slots = layout.SlotCounts()
	res.Filter = roster.Filter(players, layout, roster.FilterOptions{ActiveOnly: opts.ActiveOnly})
	log.WithFields(logrus.Fields{
		"kept":        res.Filter.Kept,
		"removed":     res.Filter.Removed(),
		"unrostered":  res.Filter.Unrostered,
		"unprojected": res.Filter.Unprojected,
		"inactive":    res.Filter.Inactive,
	}).Info("player pool filtered")

	pool := players.All()
	res.Stats = aggregator.PositionStats(pool, res.Slots, league.TotalRosters, opts.Buffer)
	for _, pos := range model.AllPositions {
		if res.Slots[pos] > 0 {
			if _, ok := res.Stats[pos]; !ok {
				log.WithField("position", pos.String()).Warn("no players in replacement window, position omitted")
			}
		}
	}

	res.Budget = valuation.ResolveBudget(league, drafts, opts.DraftBudget)
	sum := valuation.Apply(pool, res.Stats, res.Slots, res.Budget)
	res.TeamTotal = sum.TeamTotal
	if sum.TeamTotal <= 0 && sum.Valued > 0 {
		log.Warn("median team projection is not positive, team share is zero for every player")
	}
	log.WithFields(logrus.Fields{
		"valued":     sum.Valued,
		"team_total": sum.TeamTotal,
		"budget":     res.Budget,
	}).Info("valuation complete")
	return res
}

// assignProjections scores each catalog player's profile. Profiles for players
// missing from the catalog are added when they embed player details.
func assignProjections(players *model.PlayerCollection, profiles *model.ProfileSet, weights map[string]float64, season, seasonType string) int {
	n := 0
	for _, id := range profiles.IDs() {
		sp, _ := profiles.Get(id)
		entry, ok := scoring.SelectEntry(sp, season, seasonType)
		if !ok {
			continue
		}
		p, found := players.Get(id)
		if !found {
			if entry.Player == nil {
				continue
			}
			p = entry.Player
			players.Put(p)
		}
		p.SetProjection(scoring.Project(entry.Stats, weights))
		n++
	}
	return n
}

func logReport(log logrus.FieldLogger, kind string, rep normalize.Report) {
	fields := logrus.Fields{
		"payload":     kind,
		"shape":       rep.Shape.String(),
		"decoded":     rep.Decoded,
		"fallback":    rep.Fallback,
		"synthesized": rep.Synthesized,
	}
	if rep.Fallback > 0 {
		log.WithFields(fields).Warn("malformed entries kept as fallback records")
		return
	}
	log.WithFields(fields).Debug("payload decoded")
}

// Ranked returns the valued players sorted by raw value descending, then
// projection descending, then name.
func (r *Result) Ranked() []*model.Player {
	out := r.Players.All()
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := rawValue(out[i]), rawValue(out[j])
		if vi != vj {
			return vi > vj
		}
		pi, pj := out[i].ProjectedPoints(), out[j].ProjectedPoints()
		if pi != pj {
			return pi > pj
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

func rawValue(p *model.Player) float64 {
	if p.Valuation == nil {
		return 0
	}
	return p.Valuation.RawValue
}

// Pick returns the draft pick of a player, if drafted.
func (r *Result) Pick(playerID string) (model.DraftPick, bool) {
	pick, ok := r.ByPlayer[playerID]
	return pick, ok
}

// Buyer returns the display name of the manager who drafted a player.
func (r *Result) Buyer(playerID string) string {
	pick, ok := r.ByPlayer[playerID]
	if !ok || pick.PickedBy == "" {
		return ""
	}
	if u, ok := r.Users[pick.PickedBy]; ok {
		return u.Label()
	}
	return pick.PickedBy
}

// Surplus returns raw value minus auction cost for a drafted player.
func (r *Result) Surplus(p *model.Player) (float64, bool) {
	pick, ok := r.ByPlayer[p.ID]
	if !ok || pick.Cost == nil || p.Valuation == nil {
		return 0, false
	}
	return p.Valuation.RawValue - *pick.Cost, true
}
