package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/logger"
)

// newTestServer serves fixed bodies by path and 404s everything else.
func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL+"/v1", srv.URL, 5*time.Second, logger.Discard())
}

func TestGetLeague(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/v1/league/123": `{"league_id":"123"}`,
	})
	c := newTestClient(srv)

	body, err := c.GetLeague(context.Background(), "123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"league_id":"123"}`, string(body))
}

func TestGetProjections_Query(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/projections/nfl/2025?order_by=pts_std&season_type=regular": `[]`,
	})
	body, err := newTestClient(srv).GetProjections(context.Background(), "nfl", "2025", "regular")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestHTTPError(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	_, err := newTestClient(srv).GetDraft(context.Background(), "nope")
	require.Error(t, err)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Contains(t, he.URL, "/v1/draft/nope")
	assert.True(t, NotFound(err))
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := newTestClient(srv)

	for i := 0; i < 3; i++ {
		_, err := c.GetPlayers(context.Background(), "nfl")
		require.Error(t, err)
	}
	_, err := c.GetPlayers(context.Background(), "nfl")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestNotFoundDoesNotTripBreaker(t *testing.T) {
	srv, hits := newTestServer(t, nil)
	c := newTestClient(srv)
	for i := 0; i < 5; i++ {
		_, err := c.GetLeague(context.Background(), "missing")
		assert.True(t, NotFound(err))
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(hits))
}

func TestGetUserID(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/v1/user/someone": `{"user_id":"u42","username":"someone"}`,
		"/v1/user/ghost":   `null`,
	})
	c := newTestClient(srv)

	id, err := c.GetUserID(context.Background(), "someone")
	require.NoError(t, err)
	assert.Equal(t, "u42", id)

	_, err = c.GetUserID(context.Background(), "ghost")
	assert.Error(t, err)
}

// ---- FetchAll ----

func leagueRoutes() map[string]string {
	return map[string]string{
		"/v1/players/nfl":          `{"1":{"position":"QB"}}`,
		"/v1/league/L1":            `{"league_id":"L1","draft_id":"D9"}`,
		"/v1/league/L1/users":      `[{"user_id":"u1"}]`,
		"/v1/league/L1/rosters":    `[{"roster_id":1}]`,
		"/v1/league/L1/drafts":     `[{"draft_id":"D9"}]`,
		"/v1/draft/D9/picks":       `[{"player_id":"1","pick_no":1}]`,
		"/projections/nfl/2025?order_by=pts_std&season_type=regular": `{"1":{"stats":{"pts_ppr":10}}}`,
	}
}

func TestFetchAll(t *testing.T) {
	srv, _ := newTestServer(t, leagueRoutes())
	c := newTestClient(srv)

	b, err := c.FetchAll(context.Background(), Request{
		LeagueID: "L1", Sport: "nfl", Season: "2025", SeasonType: "regular",
	})
	require.NoError(t, err)
	for _, k := range AllKinds {
		assert.NotEmpty(t, b[k], k)
	}
	assert.JSONEq(t, `[{"player_id":"1","pick_no":1}]`, string(b[KindPicks]))

	p := b.Payloads()
	assert.Equal(t, b[KindLeague], p.League)
	assert.Equal(t, b[KindProjections], p.Projections)
}

func TestFetchAll_PicksOnlyWithDraftID(t *testing.T) {
	srv, hits := newTestServer(t, leagueRoutes())
	c := newTestClient(srv)

	b, err := c.FetchAll(context.Background(), Request{LeagueID: "L1", DraftID: "D9", Kinds: []Kind{KindPicks}})
	require.NoError(t, err)
	assert.Len(t, b, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "known draft id skips the league lookup")
}

func TestFetchAll_DraftFromDraftList(t *testing.T) {
	routes := leagueRoutes()
	routes["/v1/league/L1"] = `{"league_id":"L1"}`
	srv, _ := newTestServer(t, routes)

	b, err := newTestClient(srv).FetchAll(context.Background(), Request{LeagueID: "L1", Kinds: []Kind{KindLeague, KindPicks}})
	require.NoError(t, err)
	assert.NotEmpty(t, b[KindPicks])
	_, fetchedDrafts := b[KindDrafts]
	assert.False(t, fetchedDrafts, "draft list used for lookup only")
}

func TestFetchAll_Error(t *testing.T) {
	routes := leagueRoutes()
	delete(routes, "/v1/league/L1/rosters")
	srv, _ := newTestServer(t, routes)

	_, err := newTestClient(srv).FetchAll(context.Background(), Request{LeagueID: "L1", Sport: "nfl", Season: "2025", SeasonType: "regular"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch rosters")
	assert.True(t, NotFound(err))
}

func TestFetchAll_RequiresLeague(t *testing.T) {
	srv, _ := newTestServer(t, leagueRoutes())
	_, err := newTestClient(srv).FetchAll(context.Background(), Request{Sport: "nfl"})
	assert.Error(t, err)

	b, err := newTestClient(srv).FetchAll(context.Background(), Request{Sport: "nfl", Kinds: []Kind{KindPlayers}})
	require.NoError(t, err)
	assert.NotEmpty(t, b[KindPlayers])
}

func TestResolveLeagueID(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/v1/user/someone":                 `{"user_id":"u42"}`,
		"/v1/user/u42/leagues/nfl/2025":    `[{"league_id":"L7"},{"league_id":"L8"}]`,
		"/v1/user/lonely":                  `{"user_id":"u0"}`,
		"/v1/user/u0/leagues/nfl/2025":     `[]`,
	})
	c := newTestClient(srv)

	id, raw, err := c.ResolveLeagueID(context.Background(), "someone", "nfl", "2025")
	require.NoError(t, err)
	assert.Equal(t, "L7", id)
	assert.NotEmpty(t, raw)

	_, _, err = c.ResolveLeagueID(context.Background(), "lonely", "nfl", "2025")
	assert.Error(t, err)
}
