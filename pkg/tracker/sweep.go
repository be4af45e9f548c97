package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/model"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrSweepRunning is returned when a sweep is requested while one is already
// in flight.
var ErrSweepRunning = errors.New("sweep already running")

// SweepResult summarizes one reconciliation pass.
type SweepResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	// Review is set when the sweep discovered a show the user just finished.
	// The sweep stops early at that show; the rest of the library is picked
	// up by the next pass.
	Review *storage.Show `json:"review,omitempty"`
}

// Sweep reconciles every tracked show against the metadata provider. Only one
// sweep runs at a time. Shows already in a terminal remote state with their
// metadata denormalized are skipped; per-show fetch failures are counted and
// the pass continues.
func (t *Tracker) Sweep(ctx context.Context, userID string) (*SweepResult, error) {
	if !t.sweeping.CompareAndSwap(false, true) {
		return nil, ErrSweepRunning
	}
	defer t.sweeping.Store(false)

	return t.sweep(ctx, userID)
}

// StartSweep runs a sweep on its own goroutine. The single-flight slot is
// claimed before this returns, so concurrent triggers race on the claim
// rather than on the goroutine: exactly one caller wins and the rest get
// ErrSweepRunning.
func (t *Tracker) StartSweep(ctx context.Context, userID string) error {
	if !t.sweeping.CompareAndSwap(false, true) {
		return ErrSweepRunning
	}

	go func() {
		defer t.sweeping.Store(false)
		if _, err := t.sweep(ctx, userID); err != nil {
			logger.FromCtx(ctx).Error("sweep failed", zap.Error(err))
		}
	}()

	return nil
}

func (t *Tracker) sweep(ctx context.Context, userID string) (*SweepResult, error) {
	log := logger.FromCtx(ctx, zap.String("user", userID))
	start := time.Now()

	shows, err := t.ListShows(ctx, userID)
	if err != nil {
		return nil, err
	}

	throttle := t.cfg.SweepThrottle
	if throttle <= 0 {
		throttle = 250 * time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(throttle), 1)

	result := &SweepResult{}
	for _, show := range shows {
		if !sweepCandidate(show) {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		result.Checked++
		updated, finished, err := t.reconcileShow(ctx, show)
		if err != nil {
			log.Warn("failed to reconcile show",
				zap.Int32("id", show.ID), zap.String("title", show.Title), zap.Error(err))
			result.Failed++
			continue
		}

		if updated {
			result.Updated++
		}

		if finished {
			result.Review = show
			log.Info("show finished during sweep, stopping for review",
				zap.Int32("id", show.ID), zap.String("title", show.Title))
			break
		}
	}

	log.Info("sweep done",
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// sweepCandidate reports whether a show still needs reconciliation. A show
// whose remote lifecycle is over and whose metadata is denormalized cannot
// change anymore.
func sweepCandidate(show *storage.Show) bool {
	if !storage.RemoteStatus(show.RemoteStatus).Terminal() {
		return true
	}
	return show.Genres == nil || show.AverageRuntime == nil
}

// reconcileShow refreshes one show from the provider, mutating it in place
// and enqueueing the persistence write when anything changed. It reports
// whether the show changed and whether the refresh finished it.
func (t *Tracker) reconcileShow(ctx context.Context, show *storage.Show) (bool, bool, error) {
	details, err := t.tmdb.SeriesDetails(ctx, show.TmdbID)
	if err != nil {
		return false, false, err
	}

	prior := show.Show

	remote := MapRemoteStatus(details.Status)
	current := storage.RemoteStatus(show.RemoteStatus)
	if show.ManualOverride && current == storage.RemoteStatusEnded && !remote.Terminal() {
		// the user corrected this by hand; a fresher airing value loses
		remote = current
	}
	show.RemoteStatus = string(remote)

	aired := t.countAired(ctx, details, t.now())
	if !remote.Terminal() && aired < int(show.AiredEpisodes) {
		// aired counts only move forward unless the provider is authoritative
		aired = int(show.AiredEpisodes)
	}
	show.AiredEpisodes = int32(aired)
	show.EpisodeCount = int32(declaredEpisodeTotal(officialSeasons(details.Seasons)))

	if details.VoteAverage > 0 {
		show.TmdbRating = &details.VoteAverage
	}
	if show.Genres == nil {
		if genres := normalizeGenres(details.Genres); genres != "" {
			show.Genres = &genres
		}
	}
	if show.AverageRuntime == nil {
		if runtime := averageRuntime(details.EpisodeRunTime); runtime > 0 {
			show.AverageRuntime = &runtime
		}
	}

	l, err := show.Ledger()
	if err != nil {
		return false, false, err
	}

	resolution := Resolve(l.TotalWatched(), aired, remote, show.State)
	stateChanged := resolution.State != show.State
	if resolution.EnteredFinished {
		show.ReviewPending = true
	}
	show.State = resolution.State

	if !stateChanged && !showDelta(prior, show.Show) {
		return false, false, nil
	}

	snapshot := show.Show
	state := resolution.State
	err = t.queue.Enqueue(fmt.Sprintf("reconcile show %d", snapshot.ID), func(ctx context.Context) error {
		if err := t.storage.UpdateShow(ctx, snapshot); err != nil {
			return err
		}
		if !stateChanged {
			return nil
		}
		return t.storage.UpdateShowState(ctx, int64(snapshot.ID), state)
	})
	if err != nil {
		return false, false, err
	}

	return true, resolution.EnteredFinished, nil
}

// showDelta compares the columns a sweep may touch, by value.
func showDelta(a, b model.Show) bool {
	return a.RemoteStatus != b.RemoteStatus ||
		a.AiredEpisodes != b.AiredEpisodes ||
		a.EpisodeCount != b.EpisodeCount ||
		a.ReviewPending != b.ReviewPending ||
		!ptrEq(a.TmdbRating, b.TmdbRating) ||
		!ptrEq(a.Genres, b.Genres) ||
		!ptrEq(a.AverageRuntime, b.AverageRuntime)
}

func ptrEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
