package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/sleeper"
	"github.com/pable/go-draft-metrics/internal/storage"
)

type fakeFetcher struct {
	calls    []sleeper.Request
	resolved int
	err      error
}

func (f *fakeFetcher) FetchAll(_ context.Context, req sleeper.Request) (sleeper.Bundle, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	out := make(sleeper.Bundle)
	for _, k := range req.Kinds {
		out[k] = []byte(`{"kind":"` + string(k) + `"}`)
	}
	return out, nil
}

func (f *fakeFetcher) ResolveLeagueID(_ context.Context, username, sport, season string) (string, []byte, error) {
	f.resolved++
	return "L9", []byte(`[{"league_id":"L9"}]`), nil
}

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func baseOptions() Options {
	return Options{LeagueID: "L1", Sport: "nfl", Season: "2025", SeasonType: "regular", CatalogTTL: 24 * time.Hour}
}

func TestLoad_FetchesThenServesFromCache(t *testing.T) {
	db := openMemDB(t)
	f := &fakeFetcher{}
	l := New(db, f, logger.Discard())

	p, id, err := l.Load(context.Background(), baseOptions())
	require.NoError(t, err)
	assert.Equal(t, "L1", id)
	assert.JSONEq(t, `{"kind":"players"}`, string(p.Players))
	require.Len(t, f.calls, 1)
	assert.Len(t, f.calls[0].Kinds, len(sleeper.AllKinds))

	_, _, err = l.Load(context.Background(), baseOptions())
	require.NoError(t, err)
	assert.Len(t, f.calls, 1, "second load is fully cached")
}

func TestLoad_StaleCatalog(t *testing.T) {
	db := openMemDB(t)
	f := &fakeFetcher{}
	l := New(db, f, logger.Discard())
	start := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return start }

	_, _, err := l.Load(context.Background(), baseOptions())
	require.NoError(t, err)

	l.now = func() time.Time { return start.Add(25 * time.Hour) }
	_, _, err = l.Load(context.Background(), baseOptions())
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	assert.Equal(t, []sleeper.Kind{sleeper.KindPlayers}, f.calls[1].Kinds)
}

func TestLoad_RefreshKeepsCatalog(t *testing.T) {
	db := openMemDB(t)
	f := &fakeFetcher{}
	l := New(db, f, logger.Discard())
	_, _, err := l.Load(context.Background(), baseOptions())
	require.NoError(t, err)

	o := baseOptions()
	o.Refresh = true
	_, _, err = l.Load(context.Background(), o)
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	assert.NotContains(t, f.calls[1].Kinds, sleeper.KindPlayers)
	assert.Contains(t, f.calls[1].Kinds, sleeper.KindPicks)
}

func TestLoad_DraftIDFromCachedLeague(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.PutPayload("league", "L1", []byte(`{"league_id":"L1","draft_id":"D7"}`), time.Now()))
	f := &fakeFetcher{}
	l := New(db, f, logger.Discard())

	_, _, err := l.Load(context.Background(), baseOptions())
	require.NoError(t, err)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "D7", f.calls[0].DraftID)
	assert.NotContains(t, f.calls[0].Kinds, sleeper.KindLeague)
}

func TestLoad_Offline(t *testing.T) {
	db := openMemDB(t)
	at := time.Now()
	require.NoError(t, db.PutPayload("players", "nfl", []byte(`{}`), at))
	require.NoError(t, db.PutPayload("league", "L1", []byte(`{}`), at))

	o := baseOptions()
	o.Offline = true
	l := New(db, nil, logger.Discard())
	_, _, err := l.Load(context.Background(), o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projections")

	require.NoError(t, db.PutPayload("projections", "nfl/2025/regular", []byte(`{}`), at))
	p, _, err := l.Load(context.Background(), o)
	require.NoError(t, err, "optional payloads may be missing offline")
	assert.Nil(t, p.Picks)
}

func TestLoad_FetchError(t *testing.T) {
	l := New(openMemDB(t), &fakeFetcher{err: errors.New("boom")}, logger.Discard())
	_, _, err := l.Load(context.Background(), baseOptions())
	assert.EqualError(t, err, "boom")
}

func TestLoad_ResolvesLeagueByUsername(t *testing.T) {
	db := openMemDB(t)
	f := &fakeFetcher{}
	l := New(db, f, logger.Discard())
	o := baseOptions()
	o.LeagueID = ""
	o.Username = "Alice"

	_, id, err := l.Load(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "L9", id)
	assert.Equal(t, "L9", f.calls[0].LeagueID)

	_, id, err = l.Load(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "L9", id)
	assert.Equal(t, 1, f.resolved, "league list served from cache")
}

func TestLoad_NoLeague(t *testing.T) {
	l := New(openMemDB(t), &fakeFetcher{}, logger.Discard())
	o := baseOptions()
	o.LeagueID = ""
	_, _, err := l.Load(context.Background(), o)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	o := baseOptions()
	o.Username = "Alice"
	assert.Equal(t, "nfl", Key(sleeper.KindPlayers, o))
	assert.Equal(t, "nfl/2025/regular", Key(sleeper.KindProjections, o))
	assert.Equal(t, "alice/nfl/2025", Key(sleeper.KindLeagues, o))
	assert.Equal(t, "L1", Key(sleeper.KindPicks, o))
}
