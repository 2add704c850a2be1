package component

import (
	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/view"
)

// hookKind names one of the lifecycle hook slots a component can register
// into, in the order spec.md §4.9 lists them.
type hookKind int

const (
	hookBeforeMount hookKind = iota
	hookMounted
	hookBeforeUpdate
	hookUpdated
	hookBeforeUnmount
	hookUnmounted
	hookActivated
	hookDeactivated
)

func (k hookKind) name() string {
	switch k {
	case hookBeforeMount:
		return "beforeMount"
	case hookMounted:
		return "mounted"
	case hookBeforeUpdate:
		return "beforeUpdate"
	case hookUpdated:
		return "updated"
	case hookBeforeUnmount:
		return "beforeUnmount"
	case hookUnmounted:
		return "unmounted"
	case hookActivated:
		return "activated"
	case hookDeactivated:
		return "deactivated"
	default:
		return "hook"
	}
}

// hookRegistry holds callbacks per hook kind, run in registration order.
type hookRegistry struct {
	cbs [8][]func()
}

func newHookRegistry() hookRegistry {
	return hookRegistry{}
}

func (h *hookRegistry) add(k hookKind, fn func()) {
	h.cbs[k] = append(h.cbs[k], fn)
}

// run invokes every callback registered for k, in order. A callback that
// panics reports through the owning instance's error chain (source
// "hook:<name>") but never prevents the remaining callbacks of the same
// hook, or later hooks, from running — spec.md §4.9's "lifecycle hooks run
// best-effort".
func (h *hookRegistry) run(k hookKind, c *ComponentView) {
	for _, fn := range h.cbs[k] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					err := reactivity.Wrap(reactivity.HookSource(k.name()), reactivity.AsPanic(r))
					if _, handled := c.HandleError(err, string(reactivity.HookSource(k.name()))); !handled {
						ReportUnhandled(err, c.name)
					}
				}
			}()
			fn()
		}()
	}
}

// registerHook attaches fn to the currently-initializing-or-rendering
// instance. Called outside of setup, it is a no-op (mirrors the teacher's
// tolerant behavior for hooks registered with no active component).
func registerHook(k hookKind, fn func()) {
	c := currentInstance()
	if c == nil {
		reactivity.Warnf("%s() called with no active component instance", k.name())
		return
	}
	c.hooks.add(k, fn)
}

// OnBeforeMount registers fn to run just before the component's host nodes
// are attached to the renderer.
func OnBeforeMount(fn func()) { registerHook(hookBeforeMount, fn) }

// OnMounted registers fn to run once the component's subtree is mounted.
func OnMounted(fn func()) { registerHook(hookMounted, fn) }

// OnBeforeUpdate registers fn to run before a render effect re-run patches
// the mounted subtree.
func OnBeforeUpdate(fn func()) { registerHook(hookBeforeUpdate, fn) }

// OnUpdated registers fn to run after a render effect re-run has patched
// the mounted subtree.
func OnUpdated(fn func()) { registerHook(hookUpdated, fn) }

// OnBeforeUnmount registers fn to run before the component starts tearing
// down its subtree.
func OnBeforeUnmount(fn func()) { registerHook(hookBeforeUnmount, fn) }

// OnUnmounted registers fn to run after the component's subtree and scope
// have been disposed.
func OnUnmounted(fn func()) { registerHook(hookUnmounted, fn) }

// OnActivated registers fn to run when a deactivated (kept-alive)
// component becomes active again.
func OnActivated(fn func()) { registerHook(hookActivated, fn) }

// OnDeactivated registers fn to run when a component is deactivated
// without being disposed.
func OnDeactivated(fn func()) { registerHook(hookDeactivated, fn) }

// OnError registers an error handler on the current instance. Handlers run
// in registration order; the first to return ok=true supplies the
// replacement subtree and stops the walk up the component chain (spec.md
// §7's per-boundary handleError chain).
func OnError(fn func(err error, source string) (view.Node, bool)) {
	c := currentInstance()
	if c == nil {
		reactivity.Warnf("onError() called with no active component instance")
		return
	}
	c.errHandlers = append(c.errHandlers, fn)
}
