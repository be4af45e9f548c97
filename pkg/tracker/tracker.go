package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	cache "github.com/patrickmn/go-cache"
	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/table"
	"github.com/seguido/seguido/pkg/tmdb"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNotFinished guards rating and review operations.
	ErrNotFinished = errors.New("show is not finished")
)

var (
	lowerCase = cases.Lower(language.Spanish)
	titleCase = cases.Title(language.Spanish)
)

// Tracker is the watch-state engine. It owns the metadata client, the store,
// the sync queue that serializes writes, and the season cache.
type Tracker struct {
	tmdb    tmdb.ClientInterface
	storage storage.Storage
	queue   *SyncQueue
	seasons *cache.Cache
	cfg     config.Tracker

	sweeping atomic.Bool

	// now is swapped in tests
	now func() time.Time
}

// New creates a tracker. The given context bounds the lifetime of the sync
// queue worker.
func New(ctx context.Context, tmdbClient tmdb.ClientInterface, store storage.Storage, cfg config.Tracker) *Tracker {
	ttl := cfg.SeasonCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Tracker{
		tmdb:    tmdbClient,
		storage: store,
		queue:   NewSyncQueue(ctx),
		seasons: cache.New(ttl, 2*ttl),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Queue exposes the sync queue for pending counts and draining.
func (t *Tracker) Queue() *SyncQueue {
	return t.queue
}

// Sweeping reports whether a reconciliation sweep is in flight.
func (t *Tracker) Sweeping() bool {
	return t.sweeping.Load()
}

// Close drains outstanding writes within the configured timeout and stops the
// queue worker.
func (t *Tracker) Close(ctx context.Context) error {
	timeout := t.cfg.DrainTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	drainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := t.queue.Drain(drainCtx)
	t.queue.Close()
	return err
}

// SearchTV queries the catalog for shows matching the query.
func (t *Tracker) SearchTV(ctx context.Context, query string) (*tmdb.SearchTVResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	return t.tmdb.SearchTV(ctx, query)
}

// AddShow starts tracking a show for the user. The full metadata record is
// fetched, denormalized onto the row, and the show starts out pending with an
// empty ledger. Tracking the same show twice returns ErrShowExists.
func (t *Tracker) AddShow(ctx context.Context, userID string, tmdbID int64) (*storage.Show, error) {
	log := logger.FromCtx(ctx, zap.Int64("tmdb_id", tmdbID), zap.String("user", userID))

	_, err := t.storage.GetShow(ctx, table.Show.UserID.EQ(sqlite.String(userID)).
		AND(table.Show.TmdbID.EQ(sqlite.Int64(tmdbID))))
	if err == nil {
		return nil, storage.ErrShowExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	details, err := t.tmdb.SeriesDetails(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series details: %w", err)
	}

	seasons := officialSeasons(details.Seasons)
	aired := t.countAired(ctx, details, t.now())

	show := storage.Show{}
	show.UserID = userID
	show.TmdbID = tmdbID
	show.Title = details.Name
	show.RemoteStatus = string(MapRemoteStatus(details.Status))
	show.AiredEpisodes = int32(aired)
	show.EpisodeCount = int32(declaredEpisodeTotal(seasons))
	show.Watched = "{}"

	if details.Overview != "" {
		show.Overview = &details.Overview
	}
	if details.PosterPath != "" {
		show.PosterURL = &details.PosterPath
	}
	if details.FirstAirDate != "" {
		show.FirstAirDate = &details.FirstAirDate
	}
	if details.VoteAverage > 0 {
		show.TmdbRating = &details.VoteAverage
	}
	if genres := normalizeGenres(details.Genres); genres != "" {
		show.Genres = &genres
	}
	if runtime := averageRuntime(details.EpisodeRunTime); runtime > 0 {
		show.AverageRuntime = &runtime
	}

	id, err := t.storage.CreateShow(ctx, show, storage.StatePending)
	if err != nil {
		return nil, err
	}

	log.Info("tracking show", zap.Int64("id", id), zap.String("title", show.Title),
		zap.Int("aired", aired))

	return t.storage.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
}

// RemoveShow stops tracking a show. Its ledger and transition history are
// deleted with it.
func (t *Tracker) RemoveShow(ctx context.Context, id int64) error {
	show, err := t.storage.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
	if err != nil {
		return err
	}

	if err := t.storage.DeleteShow(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("stopped tracking show",
		zap.Int64("id", id), zap.String("title", show.Title))
	return nil
}

// GetShow returns one tracked show by id.
func (t *Tracker) GetShow(ctx context.Context, id int64) (*storage.Show, error) {
	return t.storage.GetShow(ctx, table.Show.ID.EQ(sqlite.Int64(id)))
}

// ListShows returns every show tracked by the user, most recently updated
// first.
func (t *Tracker) ListShows(ctx context.Context, userID string) ([]*storage.Show, error) {
	return t.storage.ListShows(ctx, table.Show.UserID.EQ(sqlite.String(userID)))
}

// GroupedShows is a user's library bucketed by lifecycle state, each bucket
// keeping the most-recently-updated-first order of the underlying listing.
type GroupedShows struct {
	Watching []*storage.Show `json:"watching"`
	UpToDate []*storage.Show `json:"uptodate"`
	Pending  []*storage.Show `json:"pending"`
	Finished []*storage.Show `json:"finished"`
}

// ListShowsGrouped buckets the user's library by lifecycle state.
func (t *Tracker) ListShowsGrouped(ctx context.Context, userID string) (*GroupedShows, error) {
	shows, err := t.ListShows(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedShows{
		Watching: make([]*storage.Show, 0),
		UpToDate: make([]*storage.Show, 0),
		Pending:  make([]*storage.Show, 0),
		Finished: make([]*storage.Show, 0),
	}

	for _, show := range shows {
		switch show.State {
		case storage.StateWatching:
			grouped.Watching = append(grouped.Watching, show)
		case storage.StateUpToDate:
			grouped.UpToDate = append(grouped.UpToDate, show)
		case storage.StateFinished:
			grouped.Finished = append(grouped.Finished, show)
		default:
			grouped.Pending = append(grouped.Pending, show)
		}
	}

	return grouped, nil
}

// normalizeGenres joins genre names into one canonical comma-separated
// string, title-cased so "ciencia ficción" and "Ciencia Ficción" collapse to
// the same bucket in stats.
func normalizeGenres(genres []tmdb.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		names = append(names, titleCase.String(lowerCase.String(name)))
	}
	return strings.Join(names, ", ")
}

func averageRuntime(runtimes []int) int32 {
	if len(runtimes) == 0 {
		return 0
	}

	total := 0
	for _, r := range runtimes {
		total += r
	}
	return int32(total / len(runtimes))
}
