package storage

import (
	"context"
	"errors"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/seguido/seguido/pkg/ledger"
	"github.com/seguido/seguido/pkg/machine"
	"github.com/seguido/seguido/pkg/storage/sqlite/schema/gen/model"
)

var ErrNotFound = errors.New("not found in storage")
var ErrShowExists = errors.New("show is already tracked")

// LifecycleState is the derived tracking status of a show. It is resolved
// from the watch ledger and the aired-episode count, never set freely.
type LifecycleState string

const (
	StateNew      LifecycleState = ""
	StatePending  LifecycleState = "pending"
	StateWatching LifecycleState = "watching"
	StateUpToDate LifecycleState = "uptodate"
	StateFinished LifecycleState = "finished"
)

// RemoteStatus is the last-known lifecycle of the show at the metadata
// provider. Values outside the known set pass through verbatim.
type RemoteStatus string

const (
	RemoteStatusUnknown      RemoteStatus = ""
	RemoteStatusAiring       RemoteStatus = "airing"
	RemoteStatusEnded        RemoteStatus = "ended"
	RemoteStatusCanceled     RemoteStatus = "canceled"
	RemoteStatusInProduction RemoteStatus = "in_production"
	RemoteStatusPlanned      RemoteStatus = "planned"
	RemoteStatusPilot        RemoteStatus = "pilot"
)

// Terminal reports whether the provider considers the show over. All declared
// episodes of a terminal show are assumed aired.
func (r RemoteStatus) Terminal() bool {
	return r == RemoteStatusEnded || r == RemoteStatusCanceled
}

// Show is a tracked show joined with its most recent lifecycle transition.
type Show struct {
	model.Show
	State LifecycleState `alias:"show_transition.to_state" json:"state"`
}

type ShowTransition model.ShowTransition

// Machine declares the allowed lifecycle transitions. The resolver may move a
// show between any two distinct resolved states: unmarking every episode of a
// finished show legitimately returns it to pending.
func (s Show) Machine() *machine.StateMachine[LifecycleState] {
	return machine.New(s.State,
		machine.From(StateNew).To(StatePending, StateWatching, StateUpToDate, StateFinished),
		machine.From(StatePending).To(StateWatching, StateUpToDate, StateFinished),
		machine.From(StateWatching).To(StatePending, StateUpToDate, StateFinished),
		machine.From(StateUpToDate).To(StatePending, StateWatching, StateFinished),
		machine.From(StateFinished).To(StatePending, StateWatching, StateUpToDate),
	)
}

// Ledger decodes the persisted watch ledger. A show created before any
// episode was marked has an empty ledger.
func (s Show) Ledger() (ledger.Ledger, error) {
	l := ledger.New()
	if s.Watched == "" {
		return l, nil
	}

	if err := l.UnmarshalJSON([]byte(s.Watched)); err != nil {
		return nil, err
	}

	return l, nil
}

type Storage interface {
	ShowStorage
}

type ShowStorage interface {
	CreateShow(ctx context.Context, show Show, initialState LifecycleState) (int64, error)
	GetShow(ctx context.Context, where sqlite.BoolExpression) (*Show, error)
	ListShows(ctx context.Context, where ...sqlite.BoolExpression) ([]*Show, error)
	UpdateShow(ctx context.Context, show model.Show) error
	UpdateShowState(ctx context.Context, id int64, state LifecycleState) error
	DeleteShow(ctx context.Context, id int64) error
}
