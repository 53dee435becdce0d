// Package scheduler owns the repeating refresh timer and guarantees at
// most one reconciliation is in flight at any time.
package scheduler

import (
	"context"
	"time"

	"github.com/sdpower/ccwatch-go/internal/types"
	"go.uber.org/zap"
)

// Reconciler produces one snapshot per cycle.
type Reconciler interface {
	Reconcile(ctx context.Context) (types.Snapshot, error)
}

// UpdateFunc receives the outcome of every completed cycle.
type UpdateFunc func(types.Snapshot, error)

type cycleResult struct {
	snap types.Snapshot
	err  error
}

// Scheduler drives reconciliation cycles. All state lives on the
// instance and is owned by the run loop goroutine; ticks that arrive
// while a cycle is still running are dropped, not queued.
type Scheduler struct {
	engine   Reconciler
	interval time.Duration
	onUpdate UpdateFunc
	log      *zap.Logger

	pokes     chan struct{}
	intervals chan time.Duration
	stop      chan struct{}
	stopped   chan struct{}
}

func New(engine Reconciler, interval time.Duration, onUpdate UpdateFunc, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		engine:    engine,
		interval:  interval,
		onUpdate:  onUpdate,
		log:       log,
		pokes:     make(chan struct{}, 1),
		intervals: make(chan time.Duration),
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start launches the run loop. The first cycle begins immediately, not
// after the first interval elapses.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Stop tears the loop down. An in-flight cycle is not interrupted; it
// runs to completion in the background and its result is discarded.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.stopped
}

// Poke requests an immediate cycle. Like a timer tick, it is a no-op
// while a cycle is already running.
func (s *Scheduler) Poke() {
	select {
	case s.pokes <- struct{}{}:
	default:
	}
}

// SetInterval re-arms the timer with a new period.
func (s *Scheduler) SetInterval(d time.Duration) {
	select {
	case s.intervals <- d:
	case <-s.stopped:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// running is read and written only here, in the loop goroutine;
	// cycle completion comes back over the done channel.
	running := false
	done := make(chan cycleResult, 1)

	begin := func() {
		if running {
			s.log.Debug("scheduler: cycle already running, tick dropped")
			return
		}
		running = true
		go func() {
			var r cycleResult
			// The deferred send runs even when Reconcile fails, so a
			// bad cycle can never leave the scheduler stuck running.
			defer func() { done <- r }()
			r.snap, r.err = s.engine.Reconcile(ctx)
		}()
	}

	begin()

	for {
		select {
		case <-ticker.C:
			begin()
		case <-s.pokes:
			begin()
		case d := <-s.intervals:
			ticker.Reset(d)
		case r := <-done:
			running = false
			s.onUpdate(r.snap, r.err)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}
