package vireo

import "github.com/vireoui/vireo/internal/reactivity"

// CleanupRegistrar is passed to an effect/watch callback to register
// functions that run before the next invocation and on dispose.
type CleanupRegistrar = reactivity.CleanupRegistrar

// Handle is the stoppable handle returned by Effect/Watch/WatchEffect/
// WatchProperty/WatchChanges.
type Handle = reactivity.WatchHandle

// WatchOption configures a watch-family call (flush timing, immediate
// invocation, once, batching, scope attachment).
type WatchOption = func(*reactivity.WatchOptions)

// WithImmediate runs the callback once synchronously on creation.
func WithImmediate() WatchOption { return reactivity.WithImmediate() }

// WithFlush overrides the default "pre" flush mode.
func WithFlush(mode FlushMode) WatchOption { return reactivity.WithFlush(mode) }

// WithOnce stops the watch after its first callback invocation.
func WithOnce() WatchOption { return reactivity.WithOnce() }

// WithoutScope prevents auto-attaching to the current scope.
func WithoutScope() WatchOption { return reactivity.WithoutScope() }

// WithoutBatch disables notification coalescing within a microtask.
func WithoutBatch() WatchOption { return reactivity.WithoutBatch() }

// WithClone sets the watch's Clone option. The old value passed to the
// callback is not copied either way.
func WithClone() WatchOption { return reactivity.WithClone() }

// Effect runs fn immediately and re-runs it whenever any signal it read
// changes, without giving fn a cleanup registrar — the low-level raw
// reactive effect spec.md §6 lists separately from watchEffect.
func Effect(fn func(), opts ...WatchOption) *Handle {
	return reactivity.WatchEffect(func(reactivity.CleanupRegistrar) { fn() }, opts...)
}

// WatchEffect runs fn immediately inside a tracked frame and re-runs it
// whenever any signal it read changes. fn receives a CleanupRegistrar to
// register teardown work for the previous run.
func WatchEffect(fn func(onCleanup CleanupRegistrar), opts ...WatchOption) *Handle {
	return reactivity.WatchEffect(fn, opts...)
}

// Watch tracks source() and invokes cb(newValue, oldValue, onCleanup)
// whenever the tracked value changes.
func Watch[T any](source func() T, cb func(newValue, oldValue T, onCleanup CleanupRegistrar), opts ...WatchOption) *Handle {
	return reactivity.Watch(source, cb, opts...)
}

// WatchProperty subscribes to a single (reactive, key) pair directly,
// without re-running a getter closure.
func WatchProperty(r *Reactive, key string, cb func(newValue, oldValue any, onCleanup CleanupRegistrar), opts ...WatchOption) *Handle {
	return reactivity.WatchProperty(r, key, cb, opts...)
}

// WatchChanges watches several getter sources at once, invoking cb with
// the parallel slices of new and old values when any one changes.
func WatchChanges(sources []func() any, cb func(news, olds []any, onCleanup CleanupRegistrar), opts ...WatchOption) *Handle {
	return reactivity.WatchChanges(sources, cb, opts...)
}

// Scope is a container owning a set of effects and child scopes, disposed
// together (spec.md §4.4).
type Scope = reactivity.EffectScope

// ScopeOption configures a scope at construction.
type ScopeOption = reactivity.ScopeOption

// Detached marks a scope as not auto-attaching to the currently active
// scope, even when created while one is running.
func Detached() ScopeOption { return reactivity.Detached() }

// WithScopeErrorHandler installs the handler invoked for errors escaping
// child effects that do not handle their own.
func WithScopeErrorHandler(h func(err error, source reactivity.Source)) ScopeOption {
	return reactivity.WithScopeErrorHandler(h)
}

// CreateScope constructs a new effect scope.
func CreateScope(opts ...ScopeOption) *Scope { return reactivity.NewScope(opts...) }

// GetCurrentScope returns the scope active on the calling goroutine, or
// nil outside of one.
func GetCurrentScope() *Scope { return reactivity.GetCurrentScope() }

// OnScopeDispose registers fn to run when the currently active scope (or
// an ancestor) is disposed.
func OnScopeDispose(fn func()) { reactivity.OnScopeDispose(fn) }

// OnScopePause registers fn to run when the currently active scope (or an
// ancestor) is paused.
func OnScopePause(fn func()) { reactivity.OnScopePause(fn) }

// OnScopeResume registers fn to run when the currently active scope (or an
// ancestor) is resumed.
func OnScopeResume(fn func()) { reactivity.OnScopeResume(fn) }
