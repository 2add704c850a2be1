package reactivity

import (
	"reflect"
	"sync"
)

// refLike is implemented by any generic Ref-shaped signal (ValueRef[T],
// Computed[T]) so the type-erased public helpers (IsRef, Unref) can work
// across instantiations without reflection.
type refLike interface {
	rawAny() any
}

// rawAny satisfies refLike. It calls Value(), not Peek(), so Unref
// tracks the read like the upstream runtime's unref(ref) does.
func (r *ValueRef[T]) rawAny() any { return r.Value() }

// reactiveLike is implemented by Reactive proxies so ToRaw/IsReactive can
// recognize them without a type parameter.
type reactiveLike interface {
	target() any
	readonly() bool
}

var rawMarked sync.Map // map[any]struct{}, keyed by the raw target pointer

// MarkRaw marks target so a Reactive (or readonly) proxy's Get returns it
// unwrapped instead of wrapping it as a nested child proxy. NewReactive
// called on a marked target directly still returns a proxy for it. The
// mark is keyed by pointer identity: target
// must be a pointer, map, slice, or channel for the mark to be meaningful,
// matching the JS original's "object identity" semantics.
func MarkRaw(target any) {
	rawMarked.Store(rawKey(target), struct{}{})
}

// IsMarkedRaw reports whether target was previously passed to MarkRaw.
func IsMarkedRaw(target any) bool {
	_, ok := rawMarked.Load(rawKey(target))
	return ok
}

// rawIdentity is the comparable key rawKey builds for reference-kind
// targets: their dynamic type plus the pointer they refer to.
type rawIdentity struct {
	typ reflect.Type
	ptr uintptr
}

// rawKey normalizes target to a comparable map key. Pointers, maps,
// channels and slices are keyed by type and pointer identity (a slice by
// its first element, so two headers over the same backing array share a
// key). Other comparable values key as themselves; any other
// non-comparable value gets a fresh key that never matches, so it can
// never be found as marked.
func rawKey(target any) any {
	rv := reflect.ValueOf(target)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice:
		return rawIdentity{typ: rv.Type(), ptr: rv.Pointer()}
	}
	if rv.IsValid() && !rv.Type().Comparable() {
		return new(byte)
	}
	return target
}

// IsRef reports whether v is a Ref-shaped signal (ValueRef or Computed).
func IsRef(v any) bool {
	_, ok := v.(refLike)
	return ok
}

// IsReactive reports whether v is a writable Reactive proxy; it reports
// false for a readonly proxy (see IsReadonly).
func IsReactive(v any) bool {
	r, ok := v.(reactiveLike)
	return ok && !r.readonly()
}

// IsReadonly reports whether v is a readonly Reactive proxy.
func IsReadonly(v any) bool {
	r, ok := v.(reactiveLike)
	return ok && r.readonly()
}

// ToRaw unwraps a Reactive proxy to its underlying target. Non-reactive
// values are returned unchanged (spec.md §7: "toRaw on non-signals return
// input unchanged").
func ToRaw(v any) any {
	if r, ok := v.(reactiveLike); ok {
		return r.target()
	}
	return v
}

// Unref reads through a Ref-shaped signal, tracking the read against the
// active collector exactly like calling .Value() directly would (mirrors
// the upstream runtime, where unref(x) is isRef(x) ? x.value : x and
// .value always tracks) — for use in contexts (e.g. prop normalization)
// that accept "T or Ref[T]" uniformly. Non-refs are returned unchanged.
func Unref(v any) any {
	if r, ok := v.(refLike); ok {
		return r.rawAny()
	}
	return v
}
