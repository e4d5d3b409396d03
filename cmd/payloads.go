package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/pable/go-draft-metrics/internal/loader"
	"github.com/pable/go-draft-metrics/internal/pipeline"
	"github.com/pable/go-draft-metrics/internal/sleeper"
	"github.com/pable/go-draft-metrics/internal/storage"
)

// loadFlags are shared by every command that runs a valuation.
type loadFlags struct {
	refresh bool
	offline bool
}

func (f *loadFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.refresh, "refresh", false, "refetch league data and projections instead of using the cache")
	fs.BoolVar(&f.offline, "offline", false, "use cached payloads only")
}

func newClient() *sleeper.Client {
	return sleeper.NewClient(cfg.APIEndpoint, cfg.StatsEndpoint, cfg.HTTPTimeout, log)
}

func loaderOptions(f loadFlags, refreshCatalog bool) loader.Options {
	return loader.Options{
		LeagueID:       cfg.LeagueID,
		Username:       cfg.Username,
		Sport:          cfg.Sport,
		Season:         cfg.Season,
		SeasonType:     cfg.SeasonType,
		CatalogTTL:     cfg.CatalogTTL,
		Refresh:        f.refresh,
		RefreshCatalog: refreshCatalog,
		Offline:        f.offline,
	}
}

func pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Season:      cfg.Season,
		SeasonType:  cfg.SeasonType,
		DraftBudget: cfg.DraftBudget,
		Buffer:      cfg.Buffer,
		ActiveOnly:  cfg.ActiveOnly,
	}
}

// runValuation loads payloads through the cache and values the player pool.
func runValuation(ctx context.Context, db *storage.DB, f loadFlags, runLog logrus.FieldLogger) (*pipeline.Result, string, error) {
	var fetcher loader.Fetcher
	if !f.offline {
		fetcher = newClient()
	}
	payloads, leagueID, err := loader.New(db, fetcher, runLog).Load(ctx, loaderOptions(f, false))
	if err != nil {
		return nil, "", fmt.Errorf("load payloads: %w", err)
	}
	return pipeline.Run(payloads, pipelineOptions(), runLog.WithField("league_id", leagueID)), leagueID, nil
}

func openStorage() (*storage.DB, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
