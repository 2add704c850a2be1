package reactivity

import "sync"

// Computed is a lazily-evaluated, memoized derived cell (spec.md §4.7). It
// implements Subscriber so it can be notified (weakly) by its own upstream
// signals, and it is itself a Subscriber-notifiable signal identity for
// anything that reads its .Value().
type Computed[T any] struct {
	id      uint64
	mu      sync.Mutex
	getter  func() T
	setter  func(T)
	dirty   bool
	evaling bool
	value   T
	deps    map[uint64]DepSet
	tracker *Tracker
	subs    *SubscriptionManager
}

// ComputedOption configures a Computed at construction time.
type ComputedOption[T any] func(*Computed[T])

// WithSetter installs a writer, turning a read-only computed into the
// get/set variant described in spec.md §4.7.
func WithSetter[T any](set func(T)) ComputedOption[T] {
	return func(c *Computed[T]) { c.setter = set }
}

// NewComputed constructs a lazily-evaluated computed bound to the
// process-wide tracker/subscription manager.
func NewComputed[T any](getter func() T, opts ...ComputedOption[T]) *Computed[T] {
	return NewComputedIn(Default(), DefaultSubscriptions(), getter, opts...)
}

// NewComputedIn constructs a computed bound to an explicit tracker/
// subscription pair.
func NewComputedIn[T any](tracker *Tracker, subs *SubscriptionManager, getter func() T, opts ...ComputedOption[T]) *Computed[T] {
	c := &Computed[T]{
		id:      nextSignalID(),
		getter:  getter,
		dirty:   true,
		tracker: tracker,
		subs:    subs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the computed's stable signal identity.
func (c *Computed[T]) ID() uint64 { return c.id }

// rawAny satisfies refLike: a Computed is ref-shaped (IsRef(computed) is
// true, matching the upstream runtime's treatment of computed refs).
func (c *Computed[T]) rawAny() any { return c.Value() }

// SubID satisfies Subscriber: a Computed subscribes (weakly) to its own
// upstream deps, and re-dirties itself when notified.
func (c *Computed[T]) SubID() uint64 { return c.id }

// Notify marks the computed dirty and propagates to its own subscribers
// without recomputing (spec.md §4.7: "does not eagerly recompute").
func (c *Computed[T]) Notify() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	c.mu.Unlock()
	c.subs.Notify(c.id, []string{valueKey})
}

// Value reads the memoized value, recomputing first if dirty. Recompute
// runs the getter inside an Exclusive tracker frame (so the computed's own
// upstream reads do not leak into whatever collector is reading .Value())
// and tracks the computed's own identity against that outer collector.
func (c *Computed[T]) Value() T {
	c.tracker.Track(c.id, valueKey)

	c.mu.Lock()
	if !c.dirty {
		v := c.value
		c.mu.Unlock()
		return v
	}
	if c.evaling {
		c.mu.Unlock()
		panic(Wrap(SourceInternal, ErrCyclicComputation))
	}
	c.evaling = true
	c.mu.Unlock()

	newValue, deps := Collect(c.tracker, Exclusive, c.getter)

	c.mu.Lock()
	c.evaling = false
	c.resubscribe(deps)
	c.value = newValue
	c.dirty = false
	v := c.value
	c.mu.Unlock()
	return v
}

// resubscribe diffs the new dependency set against the previous one,
// unsubscribing from deps no longer read and subscribing (weakly) to new
// ones. Must be called with c.mu held.
func (c *Computed[T]) resubscribe(newDeps map[uint64]DepSet) {
	for signal, keys := range c.deps {
		newKeys, stillDep := newDeps[signal]
		for key := range keys {
			if stillDep {
				if _, ok := newKeys[key]; ok {
					continue
				}
			}
			c.subs.Remove(signal, key, c)
		}
	}
	for signal, keys := range newDeps {
		for key := range keys {
			c.subs.Add(signal, key, c, true)
		}
	}
	c.deps = newDeps
}

// Set routes to the user setter if one was installed; without a setter,
// writing is a no-op (spec.md §4.7 says "logs a warning and is a no-op").
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		Warnf("computed: write to read-only computed ignored")
		return
	}
	c.setter(v)
}

// SetAny asserts v to T and routes it through Set, the type-erased entry
// point for callers (e.g. a component's props proxy) holding the computed
// behind an `any`-typed field.
func (c *Computed[T]) SetAny(v any) { c.Set(v.(T)) }

// Dispose unsubscribes the computed from all of its current upstream
// dependencies, used when the owning effect/scope that created it tears
// down.
func (c *Computed[T]) Dispose() {
	c.mu.Lock()
	deps := c.deps
	c.deps = nil
	c.mu.Unlock()
	for signal, keys := range deps {
		for key := range keys {
			c.subs.Remove(signal, key, c)
		}
	}
}
