package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seguido/seguido/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrQueueClosed is returned when enqueueing after shutdown has begun.
	ErrQueueClosed = errors.New("sync queue is closed")
)

type syncJob struct {
	name string
	fn   func(context.Context) error
}

// SyncQueue serializes persistence writes through a single worker goroutine.
// Jobs run strictly in enqueue order, so a later write can never clobber an
// earlier one. A failed job is logged and dropped; the worker keeps going.
type SyncQueue struct {
	mu      sync.Mutex
	jobs    chan syncJob
	closed  bool
	pending atomic.Int64
	done    chan struct{}
}

// NewSyncQueue starts the worker. The given context is the lifetime of the
// queue; jobs already accepted still run after it is cancelled so shutdown
// does not lose writes.
func NewSyncQueue(ctx context.Context) *SyncQueue {
	q := &SyncQueue{
		jobs: make(chan syncJob, 256),
		done: make(chan struct{}),
	}

	go q.work(ctx)
	return q
}

func (q *SyncQueue) work(ctx context.Context) {
	defer close(q.done)
	log := logger.FromCtx(ctx)

	for job := range q.jobs {
		start := time.Now()
		if err := job.fn(context.WithoutCancel(ctx)); err != nil {
			log.Error("sync job failed", zap.String("job", job.name), zap.Error(err))
		} else {
			log.Debug("sync job done", zap.String("job", job.name), zap.Duration("took", time.Since(start)))
		}
		q.pending.Add(-1)
	}
}

// Enqueue hands a write job to the worker. It blocks when the queue is full
// rather than dropping the write.
func (q *SyncQueue) Enqueue(name string, fn func(context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.pending.Add(1)
	q.jobs <- syncJob{name: name, fn: fn}
	return nil
}

// Pending reports how many jobs are waiting or running.
func (q *SyncQueue) Pending() int64 {
	return q.pending.Load()
}

// Drain waits until every pending job has run or the context expires.
func (q *SyncQueue) Drain(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if q.pending.Load() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close stops accepting jobs and waits for the worker to finish what it has.
func (q *SyncQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	<-q.done
}
