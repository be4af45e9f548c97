package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/seguido/seguido/pkg/ledger"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"go.uber.org/zap"
)

// Session is an open show whose ledger is mutated in memory. Every mutation
// resolves the lifecycle state synchronously and enqueues the persistence
// write, so the session may run ahead of the store but never disagrees with
// what the queue will eventually write.
type Session struct {
	t      *Tracker
	show   *storage.Show
	ledger ledger.Ledger
}

// WatchUpdate reports what a ledger mutation changed.
type WatchUpdate struct {
	State        storage.LifecycleState `json:"state"`
	StateChanged bool                   `json:"stateChanged"`
	TotalWatched int                    `json:"totalWatched"`
	// ReviewPrompt is true exactly once, on the mutation that finishes the
	// show.
	ReviewPrompt bool `json:"reviewPrompt"`
}

// OpenShow loads a show and its ledger for watch-state mutations.
func (t *Tracker) OpenShow(ctx context.Context, id int64) (*Session, error) {
	show, err := t.GetShow(ctx, id)
	if err != nil {
		return nil, err
	}

	l, err := show.Ledger()
	if err != nil {
		return nil, fmt.Errorf("failed to decode watch ledger: %w", err)
	}

	return &Session{t: t, show: show, ledger: l}, nil
}

// Show returns the session's in-memory view of the show.
func (s *Session) Show() *storage.Show {
	return s.show
}

// Ledger returns the session's in-memory ledger.
func (s *Session) Ledger() ledger.Ledger {
	return s.ledger
}

// ToggleEpisode flips one episode between watched and unwatched.
func (s *Session) ToggleEpisode(ctx context.Context, season, episode int) (WatchUpdate, error) {
	if season <= 0 || episode <= 0 {
		return WatchUpdate{}, fmt.Errorf("season and episode must be positive")
	}

	s.ledger.Toggle(season, episode)
	return s.apply(ctx)
}

// SetSeasonWatched marks a whole season watched or unwatched in one step,
// overwriting whatever per-episode picks the season had.
func (s *Session) SetSeasonWatched(ctx context.Context, season, episodeCount int, watched bool) (WatchUpdate, error) {
	if season <= 0 {
		return WatchUpdate{}, fmt.Errorf("season must be positive")
	}
	if episodeCount < 0 {
		return WatchUpdate{}, fmt.Errorf("episode count must not be negative")
	}

	s.ledger.SetSeason(season, episodeCount, watched)
	return s.apply(ctx)
}

// ForceFinish records the user's correction that the show has ended. The
// remote status is forced to ended and locked against the next sweep; the
// lifecycle state still resolves from the ledger.
func (s *Session) ForceFinish(ctx context.Context) (WatchUpdate, error) {
	s.show.RemoteStatus = string(storage.RemoteStatusEnded)
	s.show.ManualOverride = true
	return s.apply(ctx)
}

// RevertOverride clears the manual override lock. The remote status itself is
// left alone; the next sweep is free to correct it.
func (s *Session) RevertOverride(ctx context.Context) (WatchUpdate, error) {
	s.show.ManualOverride = false
	return s.apply(ctx)
}

// Rate stores the user's rating and notes. Only a finished show can be rated;
// rating answers the review prompt, so the pending flag clears.
func (s *Session) Rate(ctx context.Context, rating int32, notes string) error {
	if s.show.State != storage.StateFinished {
		return ErrNotFinished
	}
	if rating < 1 || rating > 10 {
		return fmt.Errorf("rating must be between 1 and 10")
	}

	s.show.Rating = &rating
	if notes != "" {
		s.show.Notes = &notes
	}
	s.show.ReviewPending = false

	snapshot := s.show.Show
	return s.t.queue.Enqueue(fmt.Sprintf("rate show %d", snapshot.ID), func(ctx context.Context) error {
		return s.t.storage.UpdateShow(ctx, snapshot)
	})
}

// DismissReview clears the review prompt without rating.
func (s *Session) DismissReview(ctx context.Context) error {
	s.show.ReviewPending = false

	snapshot := s.show.Show
	return s.t.queue.Enqueue(fmt.Sprintf("dismiss review %d", snapshot.ID), func(ctx context.Context) error {
		return s.t.storage.UpdateShow(ctx, snapshot)
	})
}

// Close drains the queue so everything this session enqueued is on disk.
func (s *Session) Close(ctx context.Context) error {
	timeout := s.t.cfg.DrainTimeout
	if timeout <= 0 {
		return s.t.queue.Drain(ctx)
	}

	drainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.t.queue.Drain(drainCtx)
}

// apply re-resolves the lifecycle state from the mutated session and enqueues
// one write capturing ledger, flags, and any state transition.
func (s *Session) apply(ctx context.Context) (WatchUpdate, error) {
	s.ledger.Normalize()
	total := s.ledger.TotalWatched()

	wire, err := json.Marshal(s.ledger)
	if err != nil {
		return WatchUpdate{}, fmt.Errorf("failed to encode watch ledger: %w", err)
	}
	s.show.Watched = string(wire)

	resolution := Resolve(total, int(s.show.AiredEpisodes),
		storage.RemoteStatus(s.show.RemoteStatus), s.show.State)

	update := WatchUpdate{
		State:        resolution.State,
		StateChanged: resolution.State != s.show.State,
		TotalWatched: total,
		ReviewPrompt: resolution.EnteredFinished,
	}

	if resolution.EnteredFinished {
		s.show.ReviewPending = true
	}
	s.show.State = resolution.State

	snapshot := s.show.Show
	state := resolution.State
	changed := update.StateChanged

	err = s.t.queue.Enqueue(fmt.Sprintf("persist show %d", snapshot.ID), func(ctx context.Context) error {
		if err := s.t.storage.UpdateShow(ctx, snapshot); err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return s.t.storage.UpdateShowState(ctx, int64(snapshot.ID), state)
	})
	if err != nil {
		return WatchUpdate{}, err
	}

	logger.FromCtx(ctx).Debug("watch state updated",
		zap.Int32("id", s.show.ID),
		zap.Int("watched", total),
		zap.String("state", string(resolution.State)))

	return update, nil
}
