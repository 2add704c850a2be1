package reactivity

import "sync"

// CleanupRegistrar is passed to every watch/effect callback so it can
// register functions to run before the next invocation and on dispose
// (spec.md §4.5: "onCleanup(fn) ... multiple cleanups permitted, run in
// registration order").
type CleanupRegistrar func(fn func())

// WatchOptions configures watch/watchEffect/watchProperty/watchChanges
// (spec.md §4.5).
type WatchOptions struct {
	Immediate bool
	Flush     FlushMode
	Batch     bool
	Clone     bool
	Once      bool
	Scope     bool
	scheduler *Scheduler
}

// DefaultWatchOptions returns the spec's documented defaults: flush pre,
// batch true, scope true.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Flush: FlushPre, Batch: true, Scope: true, scheduler: DefaultScheduler()}
}

// WatchHandle is the stoppable handle returned by every watch-family
// constructor.
type WatchHandle struct {
	effect *Effect
	job    *Job
	sched  *Scheduler
}

// Stop disposes the underlying effect and cancels any pending scheduled
// job, the equivalent of calling the stop function Vue-style watch APIs
// return.
func (h *WatchHandle) Stop() {
	if h.job != nil && h.sched != nil {
		h.sched.Cancel(h.job)
	}
	h.effect.Dispose()
}

func attachToScope(e *Effect, opts WatchOptions) {
	if !opts.Scope {
		return
	}
	if s := currentScope(); s != nil {
		s.Attach(e)
	}
}

func runCleanups(cbs *[]func()) {
	pending := *cbs
	*cbs = nil
	for _, fn := range pending {
		fn()
	}
}

// scheduledSubscriber is the Subscriber actually registered against every
// signal a watcher/effect depends on. Its Notify enqueues the effect's job
// on the scheduler (spec.md §4.3) instead of running the effect body
// inline, so Flush/Batch (spec.md §4.5) are load-bearing rather than dead
// fields: the scheduler, not the subscription manager, decides when the
// body actually runs. Its SubID mirrors the underlying effect's id, so
// SubscriptionManager.Remove/RemoveAll (which only ever compare SubID)
// still find it whichever of the two Subscriber values a caller passes.
type scheduledSubscriber struct {
	id    uint64
	sched *Scheduler
	mode  FlushMode
	batch bool
	job   *Job
}

func newScheduledSubscriber(id uint64, job *Job, sched *Scheduler, mode FlushMode, batch bool) *scheduledSubscriber {
	return &scheduledSubscriber{id: id, sched: sched, mode: mode, batch: batch, job: job}
}

func (s *scheduledSubscriber) SubID() uint64 { return s.id }

// Notify enqueues the underlying job rather than invoking it directly.
// When batch is true (the watch-family default), the job keeps a fixed
// identity, so the scheduler's per-flush dedup-by-identity coalesces any
// number of notifications that land before the next flush boundary into
// exactly one run (spec.md §8 scenario 2: two mutations before nextTick
// produce one callback invocation). When batch is false, every
// notification gets a fresh job identity so it is never coalesced with one
// already pending.
func (s *scheduledSubscriber) Notify() {
	if s.batch {
		s.sched.QueueJob(s.job, s.mode)
		return
	}
	s.sched.QueueJob(NewJob(s.job.fn), s.mode)
}

// WatchEffect runs fn immediately inside a Shared tracker frame, capturing
// whatever signals it reads, and re-runs it whenever any of them change
// (spec.md §4.5). fn receives a CleanupRegistrar.
func WatchEffect(fn func(onCleanup CleanupRegistrar), opts ...func(*WatchOptions)) *WatchHandle {
	o := DefaultWatchOptions()
	for _, apply := range opts {
		apply(&o)
	}

	var mu sync.Mutex
	var cleanups []func()
	var currentDeps map[uint64]DepSet
	tracker := Default()

	e := NewEffect(nil)
	job := NewJob(func() { e.Notify() })
	sub := newScheduledSubscriber(e.SubID(), job, o.scheduler, o.Flush, o.Batch)

	register := func(fn func()) {
		mu.Lock()
		cleanups = append(cleanups, fn)
		mu.Unlock()
	}

	runOnce := func() {
		runCleanups(&cleanups)
		_, deps := Collect(tracker, Shared, func() struct{} {
			fn(register)
			return struct{}{}
		})
		resubscribeEffect(sub, &currentDeps, deps)
	}
	e.run = runOnce

	e.OnDispose(func() {
		runCleanups(&cleanups)
		unsubscribeEffect(sub, currentDeps)
		o.scheduler.Cancel(job)
	})

	attachToScope(e, o)
	runOnce()

	return &WatchHandle{effect: e, job: job, sched: o.scheduler}
}

// NewTrackedEffect wraps fn in an Effect that re-subscribes to whatever
// signals it reads on every run, inside a Shared collector frame. It is the
// piece of WatchEffect's machinery that view/component rendering code needs
// (automatic dependency tracking across reruns) without the cleanup
// registrar or watch-option ceremony: an Element's prop effect, a Dynamic's
// patch effect, a keyed list's refresh effect, and a component's render
// effect all read signals through an ordinary closure. Every one of them
// must run at most once per scheduler cycle regardless of how many of its
// deps changed (spec.md §8's render-effect invariant), so reruns are routed
// through the scheduler's pre queue with batching on, exactly like a
// watchEffect created with the default options. Callers still call
// Notify() directly for the initial synchronous run (mount needs a subtree
// immediately, not deferred to the next flush).
func NewTrackedEffect(fn func()) *Effect {
	var deps map[uint64]DepSet
	tracker := Default()
	sched := DefaultScheduler()
	e := NewEffect(nil)
	job := NewJob(func() { e.Notify() })
	sub := newScheduledSubscriber(e.SubID(), job, sched, FlushPre, true)
	e.run = func() {
		_, newDeps := Collect(tracker, Shared, func() struct{} {
			fn()
			return struct{}{}
		})
		resubscribeEffect(sub, &deps, newDeps)
	}
	e.OnDispose(func() {
		unsubscribeEffect(sub, deps)
		sched.Cancel(job)
	})
	return e
}

// resubscribeEffect diffs newDeps against *prev and subscribes sub (weakly
// is not appropriate here: effects are strong observers) to the current
// set, unsubscribing from stale ones.
func resubscribeEffect(sub Subscriber, prev *map[uint64]DepSet, newDeps map[uint64]DepSet) {
	subs := DefaultSubscriptions()
	for signal, keys := range *prev {
		newKeys, stillDep := newDeps[signal]
		for key := range keys {
			if stillDep {
				if _, ok := newKeys[key]; ok {
					continue
				}
			}
			subs.Remove(signal, key, sub)
		}
	}
	for signal, keys := range newDeps {
		for key := range keys {
			subs.Add(signal, key, sub, false)
		}
	}
	*prev = newDeps
}

func unsubscribeEffect(sub Subscriber, deps map[uint64]DepSet) {
	subs := DefaultSubscriptions()
	for signal, keys := range deps {
		for key := range keys {
			subs.Remove(signal, key, sub)
		}
	}
}

// Watch tracks source() and invokes cb(newValue, oldValue, onCleanup)
// whenever the tracked value changes by Object.is-style comparison for
// float64 values (NaN equals NaN, -0 differs from +0) and == otherwise.
func Watch[T any](source func() T, cb func(newValue, oldValue T, onCleanup CleanupRegistrar), opts ...func(*WatchOptions)) *WatchHandle {
	o := DefaultWatchOptions()
	for _, apply := range opts {
		apply(&o)
	}

	var mu sync.Mutex
	var cleanups []func()
	var currentDeps map[uint64]DepSet
	var old T
	var hasOld bool
	fired := false
	tracker := Default()

	register := func(fn func()) {
		mu.Lock()
		cleanups = append(cleanups, fn)
		mu.Unlock()
	}

	e := NewEffect(nil)
	job := NewJob(func() { e.Notify() })
	sub := newScheduledSubscriber(e.SubID(), job, o.scheduler, o.Flush, o.Batch)

	evaluate := func() (T, bool) {
		newValue, deps := Collect(tracker, Shared, source)
		resubscribeEffect(sub, &currentDeps, deps)
		return newValue, true
	}

	invoke := func(newValue T) {
		if o.Once && fired {
			return
		}
		runCleanups(&cleanups)
		prev := old
		cb(newValue, prev, register)
		old = newValue
		hasOld = true
		fired = true
		if o.Once {
			e.Dispose()
		}
	}

	e.run = func() {
		newValue, _ := evaluate()
		if !hasOld {
			old = newValue
			hasOld = true
			return
		}
		same := safeEqual(any(old), any(newValue))
		of, oldIsFloat := any(old).(float64)
		nf, newIsFloat := any(newValue).(float64)
		if oldIsFloat && newIsFloat {
			same = defaultEqual(of, nf)
		}
		if !same {
			invoke(newValue)
		}
	}

	e.OnDispose(func() {
		runCleanups(&cleanups)
		unsubscribeEffect(sub, currentDeps)
		o.scheduler.Cancel(job)
	})

	attachToScope(e, o)

	first, _ := evaluate()
	old = first
	hasOld = true
	if o.Immediate {
		invoke(first)
	}

	return &WatchHandle{effect: e, job: job, sched: o.scheduler}
}

// WatchProperty subscribes to a single (reactive, key) pair directly,
// without re-running a getter closure; the Go analogue of spec.md's
// watchProperty(obj, key, cb, opts).
func WatchProperty(r *Reactive, key string, cb func(newValue, oldValue any, onCleanup CleanupRegistrar), opts ...func(*WatchOptions)) *WatchHandle {
	o := DefaultWatchOptions()
	for _, apply := range opts {
		apply(&o)
	}

	var mu sync.Mutex
	var cleanups []func()
	old := r.Get(key)
	fired := false

	register := func(fn func()) {
		mu.Lock()
		cleanups = append(cleanups, fn)
		mu.Unlock()
	}

	e := NewEffect(nil)
	e.run = func() {
		if o.Once && fired {
			return
		}
		newValue := r.Get(key)
		if safeEqual(old, newValue) {
			return
		}
		runCleanups(&cleanups)
		prev := old
		cb(newValue, prev, register)
		old = newValue
		fired = true
		if o.Once {
			e.Dispose()
		}
	}

	job := NewJob(func() { e.Notify() })
	sub := newScheduledSubscriber(e.SubID(), job, o.scheduler, o.Flush, o.Batch)
	r.Subscribe(key, sub, false)
	e.OnDispose(func() {
		runCleanups(&cleanups)
		r.subs.Remove(r.id, key, sub)
		o.scheduler.Cancel(job)
	})

	attachToScope(e, o)
	if o.Immediate {
		cb(old, old, register)
		fired = true
	}

	return &WatchHandle{effect: e, job: job, sched: o.scheduler}
}

// WatchChanges watches several getter sources at once, invoking cb with
// the parallel slices of new and old values when any one of them changes
// (a supplemented entry point distinct from single-source Watch).
func WatchChanges(sources []func() any, cb func(news, olds []any, onCleanup CleanupRegistrar), opts ...func(*WatchOptions)) *WatchHandle {
	o := DefaultWatchOptions()
	for _, apply := range opts {
		apply(&o)
	}

	var mu sync.Mutex
	var cleanups []func()
	var currentDeps map[uint64]DepSet
	olds := make([]any, len(sources))
	hasOld := false
	fired := false
	tracker := Default()

	register := func(fn func()) {
		mu.Lock()
		cleanups = append(cleanups, fn)
		mu.Unlock()
	}

	e := NewEffect(nil)
	job := NewJob(func() { e.Notify() })
	sub := newScheduledSubscriber(e.SubID(), job, o.scheduler, o.Flush, o.Batch)

	readAll := func() ([]any, map[uint64]DepSet) {
		return Collect(tracker, Shared, func() []any {
			news := make([]any, len(sources))
			for i, src := range sources {
				news[i] = src()
			}
			return news
		})
	}

	invoke := func(news []any) {
		if o.Once && fired {
			return
		}
		runCleanups(&cleanups)
		prev := append([]any(nil), olds...)
		cb(news, prev, register)
		copy(olds, news)
		fired = true
		if o.Once {
			e.Dispose()
		}
	}

	e.run = func() {
		news, deps := readAll()
		resubscribeEffect(sub, &currentDeps, deps)
		if !hasOld {
			copy(olds, news)
			hasOld = true
			return
		}
		changed := false
		for i := range news {
			if !safeEqual(olds[i], news[i]) {
				changed = true
				break
			}
		}
		if changed {
			invoke(news)
		}
	}

	e.OnDispose(func() {
		runCleanups(&cleanups)
		unsubscribeEffect(sub, currentDeps)
		o.scheduler.Cancel(job)
	})

	attachToScope(e, o)

	first, deps := readAll()
	resubscribeEffect(sub, &currentDeps, deps)
	copy(olds, first)
	hasOld = true
	if o.Immediate {
		invoke(first)
	}

	return &WatchHandle{effect: e, job: job, sched: o.scheduler}
}
