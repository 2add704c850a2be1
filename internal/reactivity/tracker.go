package reactivity

import (
	"sync"

	"github.com/petermattis/goid"
)

// CollectMode controls whether reads recorded in a collector frame also
// propagate to the frame beneath it on the same goroutine's stack.
//
// Exclusive frames are used while evaluating a Computed: the computed's own
// upstream reads must not leak into whatever effect triggered the
// evaluation, only the computed's identity should. Shared frames are used
// for ordinary effect/watcher bodies, where nested collection (e.g. reading
// a Computed that itself collects) should still surface at the enclosing
// frame too.
type CollectMode int

const (
	Exclusive CollectMode = iota
	Shared
)

// DepSet is the set of keys read on a single signal during one collection.
type DepSet map[string]struct{}

// frame is one level of the per-goroutine collector stack.
type frame struct {
	mode CollectMode
	deps map[uint64]DepSet
}

func newFrame(mode CollectMode) *frame {
	return &frame{mode: mode}
}

func (f *frame) record(signal uint64, key string) {
	if f.deps == nil {
		f.deps = make(map[uint64]DepSet)
	}
	set, ok := f.deps[signal]
	if !ok {
		set = make(DepSet)
		f.deps[signal] = set
	}
	set[key] = struct{}{}
}

// goroutineState is the tracking state for a single goroutine: a stack of
// collector frames plus a pause-tracking depth counter.
type goroutineState struct {
	stack     []*frame
	pauseDepth int
}

// Tracker is the process-wide (but per-goroutine) dependency tracker
// described in spec.md §4.1. It never calls subscribers and never
// allocates in the hot Track() path unless a collector is active.
type Tracker struct {
	states sync.Map // map[int64]*goroutineState
}

// NewTracker constructs an empty tracker. Exposed (rather than a bare
// package singleton) so tests can run in isolation; the package also
// exposes a process-wide default via Default().
func NewTracker() *Tracker {
	return &Tracker{}
}

var defaultTracker = NewTracker()

// Default returns the process-wide tracker used by the public API.
func Default() *Tracker { return defaultTracker }

func (t *Tracker) state() *goroutineState {
	gid := goid.Get()
	if v, ok := t.states.Load(gid); ok {
		return v.(*goroutineState)
	}
	st := &goroutineState{}
	actual, _ := t.states.LoadOrStore(gid, st)
	return actual.(*goroutineState)
}

// Collect pushes a new collector frame, runs fn, pops the frame and returns
// fn's result together with the dependencies recorded directly into that
// frame. It is the implementation of spec.md §4.1's collect(fn, mode).
func Collect[T any](t *Tracker, mode CollectMode, fn func() T) (T, map[uint64]DepSet) {
	st := t.state()
	f := newFrame(mode)
	st.stack = append(st.stack, f)

	result := fn()

	// Pop. Guard against unbalanced pop (should be impossible given the
	// append above, but mirrors the explicit invariant in spec.md §4.1).
	n := len(st.stack)
	if n == 0 || st.stack[n-1] != f {
		panic(Wrap(SourceInternal, ErrUnbalancedTracking))
	}
	st.stack = st.stack[:n-1]

	deps := f.deps
	if deps == nil {
		deps = map[uint64]DepSet{}
	}
	return result, deps
}

// Track records a read of (signal, key) against every active collector
// frame on the current goroutine, stopping at (and including) the first
// Exclusive frame. It is a no-op while tracking is paused or no collector
// is active, and idempotent per (frame, signal, key).
func (t *Tracker) Track(signal uint64, key string) {
	st := t.state()
	if st.pauseDepth > 0 {
		return
	}
	for i := len(st.stack) - 1; i >= 0; i-- {
		f := st.stack[i]
		f.record(signal, key)
		if f.mode == Exclusive {
			break
		}
	}
}

// Active reports whether any collector frame is active on this goroutine.
func (t *Tracker) Active() bool {
	st := t.state()
	return len(st.stack) > 0
}

// PauseTracking suspends Track() for the current goroutine until a matching
// ResumeTracking call. Brackets nest; Track is a no-op while depth > 0.
func (t *Tracker) PauseTracking() {
	st := t.state()
	st.pauseDepth++
}

// ResumeTracking reverses one PauseTracking call. Calling it without a
// matching pause is an unbalanced-bracket programming error.
func (t *Tracker) ResumeTracking() {
	st := t.state()
	if st.pauseDepth == 0 {
		panic(Wrap(SourceInternal, ErrUnbalancedTracking))
	}
	st.pauseDepth--
}

// Paused reports whether tracking is currently suspended on this goroutine.
func (t *Tracker) Paused() bool {
	return t.state().pauseDepth > 0
}
