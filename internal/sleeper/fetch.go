package sleeper

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-draft-metrics/internal/pipeline"
)

// Kind names one payload of a valuation run.
type Kind string

const (
	KindPlayers     Kind = "players"
	KindLeague      Kind = "league"
	KindProjections Kind = "projections"
	KindDrafts      Kind = "drafts"
	KindPicks       Kind = "picks"
	KindUsers       Kind = "users"
	KindRosters     Kind = "rosters"
	KindLeagues     Kind = "user_leagues"
)

// AllKinds lists the payloads a valuation run uses.
var AllKinds = []Kind{KindPlayers, KindLeague, KindProjections, KindDrafts, KindPicks, KindUsers, KindRosters}

// Request selects what FetchAll downloads.
type Request struct {
	LeagueID   string
	DraftID    string // optional; resolved from the league or its drafts when empty
	Sport      string
	Season     string
	SeasonType string
	Kinds      []Kind // nil means AllKinds
}

// Bundle holds fetched payloads by kind.
type Bundle map[Kind][]byte

// Payloads converts a bundle into pipeline input.
func (b Bundle) Payloads() pipeline.Payloads {
	return pipeline.Payloads{
		Players:     b[KindPlayers],
		League:      b[KindLeague],
		Projections: b[KindProjections],
		Drafts:      b[KindDrafts],
		Picks:       b[KindPicks],
		Users:       b[KindUsers],
		Rosters:     b[KindRosters],
	}
}

// FetchAll downloads the requested payloads concurrently. Picks need a draft
// id, so the league (and if necessary its draft list) is fetched first on that
// path. The first error cancels the remaining requests.
func (c *Client) FetchAll(ctx context.Context, req Request) (Bundle, error) {
	kinds := req.Kinds
	if kinds == nil {
		kinds = AllKinds
	}
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	if req.LeagueID == "" && (want[KindLeague] || want[KindUsers] || want[KindRosters] || want[KindDrafts] || want[KindPicks]) {
		return nil, fmt.Errorf("fetch: league id required")
	}

	var (
		mu  sync.Mutex
		out = make(Bundle, len(kinds))
	)
	put := func(k Kind, body []byte) {
		mu.Lock()
		out[k] = body
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)
	simple := map[Kind]func(context.Context) ([]byte, error){
		KindPlayers: func(ctx context.Context) ([]byte, error) { return c.GetPlayers(ctx, req.Sport) },
		KindProjections: func(ctx context.Context) ([]byte, error) {
			return c.GetProjections(ctx, req.Sport, req.Season, req.SeasonType)
		},
		KindUsers:   func(ctx context.Context) ([]byte, error) { return c.GetLeagueUsers(ctx, req.LeagueID) },
		KindRosters: func(ctx context.Context) ([]byte, error) { return c.GetLeagueRosters(ctx, req.LeagueID) },
	}
	for _, k := range kinds {
		fn, ok := simple[k]
		if !ok {
			continue
		}
		g.Go(func() error {
			body, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", k, err)
			}
			put(k, body)
			return nil
		})
	}

	if want[KindLeague] || want[KindDrafts] || want[KindPicks] {
		g.Go(func() error {
			return c.fetchLeagueChain(ctx, req, want, put)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"league_id": req.LeagueID,
		"payloads":  len(out),
	}).Info("sleeper payloads fetched")
	return out, nil
}

// fetchLeagueChain fetches league, drafts and picks, which depend on each other.
func (c *Client) fetchLeagueChain(ctx context.Context, req Request, want map[Kind]bool, put func(Kind, []byte)) error {
	draftID := req.DraftID

	if want[KindLeague] || (want[KindPicks] && draftID == "") {
		league, err := c.GetLeague(ctx, req.LeagueID)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", KindLeague, err)
		}
		if want[KindLeague] {
			put(KindLeague, league)
		}
		if draftID == "" {
			draftID = gjson.GetBytes(league, "draft_id").String()
		}
	}

	if want[KindDrafts] || (want[KindPicks] && draftID == "") {
		drafts, err := c.GetLeagueDrafts(ctx, req.LeagueID)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", KindDrafts, err)
		}
		if want[KindDrafts] {
			put(KindDrafts, drafts)
		}
		if draftID == "" {
			draftID = gjson.GetBytes(drafts, "0.draft_id").String()
		}
	}

	if !want[KindPicks] {
		return nil
	}
	if draftID == "" {
		c.log.WithField("league_id", req.LeagueID).Warn("league has no draft, skipping picks")
		put(KindPicks, []byte("[]"))
		return nil
	}
	picks, err := c.GetDraftPicks(ctx, draftID)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", KindPicks, err)
	}
	put(KindPicks, picks)
	return nil
}

// ResolveLeagueID returns the first league of a user for a sport and season,
// along with the raw league list.
func (c *Client) ResolveLeagueID(ctx context.Context, username, sport, season string) (string, []byte, error) {
	userID, err := c.GetUserID(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("resolve league: %w", err)
	}
	leagues, err := c.GetUserLeagues(ctx, userID, sport, season)
	if err != nil {
		return "", nil, fmt.Errorf("resolve league: %w", err)
	}
	id := FirstLeagueID(leagues)
	if id == "" {
		return "", leagues, fmt.Errorf("resolve league: user %q has no %s leagues in %s", username, sport, season)
	}
	return id, leagues, nil
}

// FirstLeagueID extracts the first league id from a user's league list.
func FirstLeagueID(leagues []byte) string {
	return gjson.GetBytes(leagues, "0.league_id").String()
}
