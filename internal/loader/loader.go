// Package loader assembles pipeline input from the payload cache, fetching
// only what is missing or stale.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/pable/go-draft-metrics/internal/pipeline"
	"github.com/pable/go-draft-metrics/internal/sleeper"
	"github.com/pable/go-draft-metrics/internal/storage"
)

// Store is the subset of the payload cache the loader needs.
type Store interface {
	PutPayload(kind, key string, body []byte, fetchedAt time.Time) error
	GetPayload(kind, key string, maxAge time.Duration, now time.Time) ([]byte, time.Time, error)
}

// Fetcher is the subset of the Sleeper client the loader needs.
type Fetcher interface {
	FetchAll(ctx context.Context, req sleeper.Request) (sleeper.Bundle, error)
	ResolveLeagueID(ctx context.Context, username, sport, season string) (string, []byte, error)
}

// Options selects the league and how aggressively to hit the network.
type Options struct {
	LeagueID   string
	Username   string
	Sport      string
	Season     string
	SeasonType string

	CatalogTTL     time.Duration // max age of the player catalog; 0 = any age
	Refresh        bool          // refetch league payloads and projections
	RefreshCatalog bool          // also refetch the player catalog
	Offline        bool          // never fetch
}

// Required payloads; the rest only enrich the report.
var required = map[sleeper.Kind]bool{
	sleeper.KindPlayers:     true,
	sleeper.KindLeague:      true,
	sleeper.KindProjections: true,
}

// Loader combines a cache and a fetcher.
type Loader struct {
	store Store
	fetch Fetcher // nil when offline only
	log   logrus.FieldLogger
	now   func() time.Time
}

// New returns a loader. fetch may be nil, in which case every load is offline.
func New(store Store, fetch Fetcher, log logrus.FieldLogger) *Loader {
	return &Loader{store: store, fetch: fetch, log: log, now: time.Now}
}

// Key returns the cache key of a payload kind.
func Key(kind sleeper.Kind, o Options) string {
	switch kind {
	case sleeper.KindPlayers:
		return o.Sport
	case sleeper.KindProjections:
		return strings.Join([]string{o.Sport, o.Season, o.SeasonType}, "/")
	case sleeper.KindLeagues:
		return strings.Join([]string{strings.ToLower(o.Username), o.Sport, o.Season}, "/")
	default:
		return o.LeagueID
	}
}

// Load returns the payloads for one run and the league id they belong to.
func (l *Loader) Load(ctx context.Context, o Options) (pipeline.Payloads, string, error) {
	leagueID, err := l.leagueID(ctx, o)
	if err != nil {
		return pipeline.Payloads{}, "", err
	}
	o.LeagueID = leagueID

	bundle := make(sleeper.Bundle, len(sleeper.AllKinds))
	var missing []sleeper.Kind
	for _, kind := range sleeper.AllKinds {
		if l.stale(kind, o) {
			missing = append(missing, kind)
			continue
		}
		maxAge := time.Duration(0)
		if kind == sleeper.KindPlayers {
			maxAge = o.CatalogTTL
		}
		body, at, err := l.store.GetPayload(string(kind), Key(kind, o), maxAge, l.now())
		switch {
		case errors.Is(err, storage.ErrNotCached):
			missing = append(missing, kind)
		case err != nil:
			return pipeline.Payloads{}, "", err
		default:
			l.log.WithFields(logrus.Fields{"kind": kind, "fetched_at": at}).Debug("payload served from cache")
			bundle[kind] = body
		}
	}

	if len(missing) > 0 {
		if err := l.fill(ctx, o, bundle, missing); err != nil {
			return pipeline.Payloads{}, "", err
		}
	}
	return bundle.Payloads(), leagueID, nil
}

// stale reports whether a refresh flag forces a refetch of kind.
func (l *Loader) stale(kind sleeper.Kind, o Options) bool {
	if o.Offline {
		return false
	}
	if kind == sleeper.KindPlayers {
		return o.RefreshCatalog
	}
	return o.Refresh || o.RefreshCatalog
}

func (l *Loader) fill(ctx context.Context, o Options, bundle sleeper.Bundle, missing []sleeper.Kind) error {
	if o.Offline || l.fetch == nil {
		var gone []string
		for _, k := range missing {
			if required[k] {
				gone = append(gone, string(k))
				continue
			}
			l.log.WithField("kind", k).Warn("payload not cached, continuing without it")
		}
		if len(gone) > 0 {
			return fmt.Errorf("offline: not cached: %s", strings.Join(gone, ", "))
		}
		return nil
	}

	req := sleeper.Request{
		LeagueID:   o.LeagueID,
		Sport:      o.Sport,
		Season:     o.Season,
		SeasonType: o.SeasonType,
		Kinds:      missing,
	}
	if league, ok := bundle[sleeper.KindLeague]; ok {
		req.DraftID = gjson.GetBytes(league, "draft_id").String()
	}
	fetched, err := l.fetch.FetchAll(ctx, req)
	if err != nil {
		return err
	}
	now := l.now()
	for kind, body := range fetched {
		bundle[kind] = body
		if err := l.store.PutPayload(string(kind), Key(kind, o), body, now); err != nil {
			return err
		}
	}
	l.log.WithFields(logrus.Fields{"league_id": o.LeagueID, "fetched": len(fetched)}).Info("payload cache updated")
	return nil
}

// leagueID returns the explicit league id, or the first league of the
// configured user for the sport and season.
func (l *Loader) leagueID(ctx context.Context, o Options) (string, error) {
	if o.LeagueID != "" {
		return o.LeagueID, nil
	}
	if o.Username == "" {
		return "", errors.New("no league: set --league or --username")
	}
	key := Key(sleeper.KindLeagues, o)
	if !o.Refresh || o.Offline {
		body, _, err := l.store.GetPayload(string(sleeper.KindLeagues), key, 0, l.now())
		if err == nil {
			if id := sleeper.FirstLeagueID(body); id != "" {
				return id, nil
			}
		} else if !errors.Is(err, storage.ErrNotCached) {
			return "", err
		}
	}
	if o.Offline || l.fetch == nil {
		return "", fmt.Errorf("offline: no cached leagues for user %q", o.Username)
	}
	id, leagues, err := l.fetch.ResolveLeagueID(ctx, o.Username, o.Sport, o.Season)
	if err != nil {
		return "", err
	}
	if err := l.store.PutPayload(string(sleeper.KindLeagues), key, leagues, l.now()); err != nil {
		return "", err
	}
	l.log.WithFields(logrus.Fields{"username": o.Username, "league_id": id}).Info("league resolved")
	return id, nil
}
