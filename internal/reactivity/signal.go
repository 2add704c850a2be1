package reactivity

import (
	"math"
	"sync"
	"sync/atomic"
)

var signalSeq uint64

// nextSignalID hands out a process-wide unique, stable identity for a
// signal, used as the subscription key's first component.
func nextSignalID() uint64 {
	return atomic.AddUint64(&signalSeq, 1)
}

// valueKey is the fixed property key ValueRef publishes under (spec.md
// §3: "single-cell signal keyed by value").
const valueKey = "value"

// EqualFunc decides whether two values are equivalent for notification
// purposes. The zero value uses Object.is-style equality (see defaultEqual).
type EqualFunc[T any] func(a, b T) bool

// ValueRef is a single-cell signal. It is the Go analogue of spec.md's
// ValueRef<T>: reading records (id, "value") with the active tracker;
// writing an equal value is a no-op.
type ValueRef[T any] struct {
	id      uint64
	mu      sync.Mutex
	value   T
	equal   EqualFunc[T]
	tracker *Tracker
	subs    *SubscriptionManager
}

// RefOption configures a ValueRef at construction time.
type RefOption[T any] func(*ValueRef[T])

// WithEqual overrides the default Object.is-style equality used to decide
// whether a write should notify.
func WithEqual[T any](eq EqualFunc[T]) RefOption[T] {
	return func(r *ValueRef[T]) { r.equal = eq }
}

// NewRef constructs a ValueRef wired to the default (process-wide) tracker
// and subscription manager. Use NewRefIn to bind an isolated pair, e.g. for
// tests.
func NewRef[T any](initial T, opts ...RefOption[T]) *ValueRef[T] {
	return NewRefIn(Default(), DefaultSubscriptions(), initial, opts...)
}

// NewRefIn constructs a ValueRef bound to an explicit tracker/subscription
// pair.
func NewRefIn[T any](tracker *Tracker, subs *SubscriptionManager, initial T, opts ...RefOption[T]) *ValueRef[T] {
	r := &ValueRef[T]{
		id:      nextSignalID(),
		value:   initial,
		tracker: tracker,
		subs:    subs,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.equal == nil {
		r.equal = defaultEqual[T]
	}
	return r
}

// ID returns the signal's stable identity, used as a subscription key and
// as a dependency-set member.
func (r *ValueRef[T]) ID() uint64 { return r.id }

// Value reads the current value, tracking the read against the active
// collector.
func (r *ValueRef[T]) Value() T {
	r.tracker.Track(r.id, valueKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Peek reads the current value without tracking, the Go analogue of
// reading through toRaw/unref in an untracked context.
func (r *ValueRef[T]) Peek() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Set writes a new value. Writing a value equal to the current one (per
// the ref's EqualFunc) is a no-op: no notification fires, matching the
// testable "writing NaN over NaN does not notify" property.
func (r *ValueRef[T]) Set(v T) {
	r.mu.Lock()
	if r.equal(r.value, v) {
		r.mu.Unlock()
		return
	}
	r.value = v
	r.mu.Unlock()
	r.subs.Notify(r.id, []string{valueKey})
}

// SetAny writes v after asserting it to T, the type-erased entry point
// used by code (e.g. a component's props proxy) that only holds the ref
// behind an `any`-typed field and cannot name T directly.
func (r *ValueRef[T]) SetAny(v any) { r.Set(v.(T)) }

// Subscribe registers sub to be notified on writes to this ref's value.
func (r *ValueRef[T]) Subscribe(sub Subscriber, weak bool) {
	r.subs.Add(r.id, valueKey, sub, weak)
}

// Unsubscribe removes sub from this ref's notification set.
func (r *ValueRef[T]) Unsubscribe(sub Subscriber) {
	r.subs.Remove(r.id, valueKey, sub)
}

// defaultEqual implements Object.is-style equality (spec.md §9): NaN is
// equal to NaN, but -0 and +0 are distinct. Falls back to plain `==` for
// comparable non-float types; non-comparable types (slices, maps, funcs)
// always compare unequal, forcing a notification on every write, which
// mirrors treating them as always-dirty reference types.
func defaultEqual[T any](a, b T) bool {
	switch av := any(a).(type) {
	case float64:
		bv := any(b).(float64)
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		if av == 0 && bv == 0 {
			return math.Signbit(av) == math.Signbit(bv)
		}
		return av == bv
	case float32:
		bv := any(b).(float32)
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		if av == 0 && bv == 0 {
			return math.Signbit(float64(av)) == math.Signbit(float64(bv))
		}
		return av == bv
	}
	return safeEqual(a, b)
}

// safeEqual attempts `==` under a recover guard, since T may be a
// non-comparable type (slice, map, func) at runtime despite `any`
// supporting the comparison syntactically only for comparable T. Go
// generics without a `comparable` constraint can't express "compare if
// possible", so this does it dynamically.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
