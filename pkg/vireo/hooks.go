package vireo

import (
	"github.com/vireoui/vireo/internal/component"
	"github.com/vireoui/vireo/internal/directive"
	"github.com/vireoui/vireo/internal/reactivity"
)

func warnMissingProp(name string) {
	reactivity.Warnf("defineProps: required prop %q was not supplied", name)
}

// OnBeforeMount registers fn to run just before the component's host nodes
// are attached to the renderer.
func OnBeforeMount(fn func()) { component.OnBeforeMount(fn) }

// OnMounted registers fn to run once the component's subtree is mounted.
func OnMounted(fn func()) { component.OnMounted(fn) }

// OnBeforeUpdate registers fn to run before a render effect re-run patches
// the mounted subtree.
func OnBeforeUpdate(fn func()) { component.OnBeforeUpdate(fn) }

// OnUpdated registers fn to run after a render effect re-run has patched
// the mounted subtree.
func OnUpdated(fn func()) { component.OnUpdated(fn) }

// OnBeforeUnmount registers fn to run before the component starts tearing
// down its subtree.
func OnBeforeUnmount(fn func()) { component.OnBeforeUnmount(fn) }

// OnUnmounted registers fn to run after the component's subtree and scope
// have been disposed.
func OnUnmounted(fn func()) { component.OnUnmounted(fn) }

// OnActivated registers fn to run when a deactivated component becomes
// active again.
func OnActivated(fn func()) { component.OnActivated(fn) }

// OnDeactivated registers fn to run when a component is deactivated
// without being disposed.
func OnDeactivated(fn func()) { component.OnDeactivated(fn) }

// OnError registers an error handler on the currently-initializing
// instance; the first handler (walking up the component chain) to return
// ok=true supplies the replacement subtree and stops propagation.
func OnError(fn func(err error, source string) (Node, bool)) { component.OnError(fn) }

// DefineExpose publishes value under name on the currently-initializing
// instance, so a parent holding a reference to this component can read it
// back (spec.md's defineExpose).
func DefineExpose(name string, value any) { component.Expose(name, value) }

// Provide installs key/value on the currently-initializing instance's
// provide map, visible to Inject calls made by any descendant.
func Provide(key string, value any) { component.Provide(key, value) }

// Inject looks up key starting from the currently-initializing instance
// and walking up through its ancestors, returning def (with ok=false) if
// no provider is found.
func Inject(key string, def any) (any, bool) { return component.Inject(key, def) }

// SetAppErrorHandler installs the top-level error sink invoked once an
// error has walked the entire component chain without being claimed by an
// onError hook (spec.md §7's terminal step). Passing nil restores the
// default behavior (Sentry report plus a log line printed in debug mode).
func SetAppErrorHandler(h func(err error, componentName string)) {
	component.SetAppErrorHandler(h)
}

// DirectiveBinding pairs a registered Directive with the (value, arg,
// modifiers) an element declared for it (spec.md §3 DirectiveBinding).
type DirectiveBinding = directive.Binding

// Directive is a named bundle of element-lifecycle hooks, applied to an
// Element view in registration order with each hook's panics isolated.
type Directive = directive.Directive

// RegisterDirective installs d under name, resolvable later (optionally
// with a "v-" prefix) wherever an element declares a binding for it.
func RegisterDirective(name string, d *Directive) { directive.Register(name, d) }
