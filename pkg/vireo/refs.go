// Package vireo is the public surface of the reactive runtime: signals,
// effects, the scheduler, and the view/component APIs an application
// builds against, re-exported from the internal packages that implement
// them (spec.md §6). Application code never imports internal/... directly.
package vireo

import "github.com/vireoui/vireo/internal/reactivity"

// Ref is a single-cell reactive signal (spec.md §4.2 Signal/ValueRef).
type Ref[T any] = reactivity.ValueRef[T]

// RefOption configures a Ref at construction.
type RefOption[T any] = reactivity.RefOption[T]

// WithEqual overrides the default Object.is-style equality used to decide
// whether a write should notify.
func WithEqual[T any](eq func(a, b T) bool) RefOption[T] {
	return reactivity.WithEqual[T](eq)
}

// NewRef constructs a ref holding its value as is: a struct/map/slice in T
// is not wrapped in a Reactive, so writes inside it do not notify and only
// Set does. A *Reactive stored in T still notifies its own subscribers on
// field-level writes. For scalar T this behaves like Vue's `ref`.
func NewRef[T any](initial T, opts ...RefOption[T]) *Ref[T] {
	return reactivity.NewRef(initial, opts...)
}

// NewShallowRef constructs a ref whose value is never deep-wrapped even if
// it is a pointer/map/slice: only whole-value replacement via Set is
// tracked, matching spec.md's shallowRef.
func NewShallowRef[T any](initial T) *Ref[T] {
	return reactivity.NewRef(initial)
}

// Computed is a lazily-evaluated, memoized derived cell (spec.md §4.7).
type Computed[T any] = reactivity.Computed[T]

// ComputedOption configures a Computed at construction.
type ComputedOption[T any] = reactivity.ComputedOption[T]

// WithSetter installs a writer, turning a read-only computed into the
// get/set variant.
func WithSetter[T any](set func(T)) ComputedOption[T] {
	return reactivity.WithSetter(set)
}

// NewComputed constructs a lazily-evaluated computed.
func NewComputed[T any](getter func() T, opts ...ComputedOption[T]) *Computed[T] {
	return reactivity.NewComputed(getter, opts...)
}

// Reactive is a deep reactive wrapper over a Go map, struct pointer, or
// slice pointer (spec.md §4.6). Go has no dynamic proxy mechanism, so
// nested field reads/writes go through Get/Set rather than direct field
// access.
type Reactive = reactivity.Reactive

// NewReactive wraps target in a deep Reactive proxy.
func NewReactive(target any) *Reactive { return reactivity.NewReactive(target) }

// NewShallowReactive wraps target without deep-wrapping nested values
// (spec.md's shallowReactive).
func NewShallowReactive(target any) *Reactive {
	return reactivity.NewReactive(target, reactivity.Shallow())
}

// NewReadonly wraps target in a Reactive proxy that rejects writes
// (spec.md's readonly).
func NewReadonly(target any) *Reactive {
	return reactivity.NewReactive(target, reactivity.Readonly())
}

// NewShallowReadonly combines Shallow and Readonly (spec.md's
// shallowReadonly).
func NewShallowReadonly(target any) *Reactive {
	return reactivity.NewReactive(target, reactivity.Shallow(), reactivity.Readonly())
}

// IsRef reports whether v is a Ref-shaped signal (Ref or Computed).
func IsRef(v any) bool { return reactivity.IsRef(v) }

// IsReactive reports whether v is a writable Reactive proxy; it reports
// false for a readonly proxy.
func IsReactive(v any) bool { return reactivity.IsReactive(v) }

// IsReadonly reports whether v is a readonly Reactive proxy.
func IsReadonly(v any) bool { return reactivity.IsReadonly(v) }

// ToRaw unwraps a Reactive proxy to its underlying target; non-reactive
// values pass through unchanged.
func ToRaw(v any) any { return reactivity.ToRaw(v) }

// MarkRaw marks target so a Reactive's Get returns it unwrapped instead of
// as a nested proxy; NewReactive called on it directly still wraps it.
func MarkRaw(target any) { reactivity.MarkRaw(target) }

// Unref reads through a Ref-shaped signal, tracking the read; non-refs
// pass through unchanged.
func Unref(v any) any { return reactivity.Unref(v) }
