package cmd

import (
	"context"
	"net/url"

	"github.com/seguido/seguido/config"
	shttp "github.com/seguido/seguido/pkg/http"
	"github.com/seguido/seguido/pkg/storage/sqlite"
	"github.com/seguido/seguido/pkg/tmdb"
	"github.com/seguido/seguido/pkg/tracker"
)

// newTracker builds a tracker and its dependencies from configuration
func newTracker(ctx context.Context, cfg config.Config) (*tracker.Tracker, error) {
	tmdbURL := url.URL{
		Scheme: cfg.TMDB.Scheme,
		Host:   cfg.TMDB.Host,
	}

	httpClient := shttp.NewRateLimitedClient(
		shttp.WithMaxRetries(cfg.TMDB.MaxRetries),
		shttp.WithBaseBackoff(cfg.TMDB.BaseBackoff),
		shttp.WithRequestInterval(cfg.TMDB.RequestInterval),
	)

	tmdbClient, err := tmdb.New(tmdbURL.String(), cfg.TMDB.APIKey,
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithLanguage(cfg.TMDB.Language))
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(cfg.Storage.FilePath)
	if err != nil {
		return nil, err
	}

	return tracker.New(ctx, tmdbClient, store, cfg.Tracker), nil
}
