package tracker

import (
	"github.com/seguido/seguido/pkg/storage"
)

// remoteStatusTable is the fixed mapping from provider lifecycle strings to
// the local remote status enum. Unmapped values pass through verbatim.
var remoteStatusTable = map[string]storage.RemoteStatus{
	"Returning Series": storage.RemoteStatusAiring,
	"Ended":            storage.RemoteStatusEnded,
	"Canceled":         storage.RemoteStatusCanceled,
	"Cancelled":        storage.RemoteStatusCanceled,
	"In Production":    storage.RemoteStatusInProduction,
	"Planned":          storage.RemoteStatusPlanned,
	"Pilot":            storage.RemoteStatusPilot,
	"Released":         storage.RemoteStatusEnded,
	"Post Production":  storage.RemoteStatusInProduction,
}

// MapRemoteStatus translates a provider lifecycle string to the local enum.
func MapRemoteStatus(raw string) storage.RemoteStatus {
	if status, ok := remoteStatusTable[raw]; ok {
		return status
	}
	return storage.RemoteStatus(raw)
}

// Resolution is the outcome of resolving a show's lifecycle state.
// EnteredFinished is true exactly when this resolution crosses into the
// terminal state, so the review prompt fires once per transition and never on
// a recompute that stays finished.
type Resolution struct {
	State           storage.LifecycleState
	EnteredFinished bool
}

// Resolve derives the lifecycle state of a show from what the user has
// watched and what has aired. It is a pure function; rule order matters:
//
//   - nothing watched: pending
//   - behind what has aired: watching
//   - caught up and the show is over: finished
//   - caught up with an ongoing show: up to date
//   - no aired data yet: pending
//
// totalWatched >= aired counts as caught up even if the ledger somehow marks
// more episodes than aired.
func Resolve(totalWatched, aired int, remote storage.RemoteStatus, prior storage.LifecycleState) Resolution {
	state := resolveState(totalWatched, aired, remote)
	return Resolution{
		State:           state,
		EnteredFinished: state == storage.StateFinished && prior != storage.StateFinished,
	}
}

func resolveState(totalWatched, aired int, remote storage.RemoteStatus) storage.LifecycleState {
	switch {
	case totalWatched == 0:
		return storage.StatePending
	case aired == 0:
		return storage.StatePending
	case totalWatched < aired:
		return storage.StateWatching
	case remote.Terminal():
		return storage.StateFinished
	default:
		return storage.StateUpToDate
	}
}
