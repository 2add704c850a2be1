// Package component implements the component runtime: instance creation,
// the props proxy, lifecycle hooks, the render effect, provide/inject, and
// two-way binding (spec.md §4.9).
package component

import (
	"fmt"
	"sync"

	"github.com/petermattis/goid"

	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/view"
)

// SetupFunc is a component body: it runs once, tracked, to install
// lifecycle hooks, provide/inject bindings, and return the render
// function that is re-invoked by the component's render effect.
type SetupFunc func(props *Props) RenderFunc

// RenderFunc builds the component's current sub-view.
type RenderFunc func() view.Node

// ComponentView is a stateful component instance: type name, props proxy,
// scope, render effect, and lifecycle hook registry (spec.md §3
// ComponentView). It implements view.Instance.
type ComponentView struct {
	id    view.ID
	name  string
	props *Props
	scope *reactivity.EffectScope

	setup  SetupFunc
	render RenderFunc

	renderEffect *reactivity.Effect
	onRender     func(view.Node)

	hooks    hookRegistry
	provides map[string]any
	parent   *ComponentView

	errHandlers []func(err error, source string) (view.Node, bool)
	exposed     map[string]any
}

// Expose publishes value under name on the currently-initializing instance,
// the Go analogue of spec.md §6's defineExpose: a parent holding a template
// ref to this component can read it back via Exposed.
func Expose(name string, value any) {
	c := currentInstance()
	if c == nil {
		return
	}
	if c.exposed == nil {
		c.exposed = map[string]any{}
	}
	c.exposed[name] = value
}

// Exposed returns the value a component instance published under name via
// Expose, and whether it was found.
func (c *ComponentView) Exposed(name string) (any, bool) {
	v, ok := c.exposed[name]
	return v, ok
}

// NewComponentView allocates a component instance. createComponentInstance
// in spec.md §4.9 corresponds to this constructor plus Init, which runs
// setup tracked.
func NewComponentView(name string, props *Props, setup SetupFunc) *ComponentView {
	return &ComponentView{
		id:     view.NewID(),
		name:   name,
		props:  props,
		setup:  setup,
		scope:  reactivity.NewScope(reactivity.Detached()),
		hooks:  newHookRegistry(),
	}
}

func (c *ComponentView) ID() view.ID { return c.id }
func (c *ComponentView) Name() string { return c.name }

// Init runs the component's setup body tracked, inside the component's
// own scope, with this instance pushed as the "current instance" so
// onMounted/provide/inject calls inside setup resolve correctly.
func (c *ComponentView) Init(ctx view.Context) {
	if parentBoundary, ok := ctx.Boundary.(*ComponentView); ok {
		c.parent = parentBoundary
	}
	c.scope.Run(func() {
		pushInstance(c)
		defer popInstance()
		c.render = c.setup(c.props)
	})
}

func (c *ComponentView) BeforeMount()   { c.hooks.run(hookBeforeMount, c) }
func (c *ComponentView) Mounted()       { c.hooks.run(hookMounted, c) }
func (c *ComponentView) BeforeUpdate()  { c.hooks.run(hookBeforeUpdate, c) }
func (c *ComponentView) Updated()       { c.hooks.run(hookUpdated, c) }
func (c *ComponentView) BeforeUnmount() { c.hooks.run(hookBeforeUnmount, c) }
func (c *ComponentView) Unmounted()     { c.hooks.run(hookUnmounted, c) }
func (c *ComponentView) Activated()     { c.hooks.run(hookActivated, c) }
func (c *ComponentView) Deactivated()   { c.hooks.run(hookDeactivated, c) }

// Render builds the current sub-view by invoking the setup-returned
// render function inside the component's own instance context, so nested
// createView calls see the right "current instance" for provide/inject.
func (c *ComponentView) Render() view.Node {
	pushInstance(c)
	defer popInstance()
	return c.render()
}

// Start wires the render effect: NewTrackedEffect subscribes it to every
// signal runRender reads and, from then on, routes its reruns through the
// scheduler's pre queue with batching on, so however many of those signals
// change within one scheduler cycle, runRender fires at most once (spec.md
// §4.9 "Render effect... Batches updates on pre queue", §8's render-effect
// invariant). The explicit Notify() below is the one synchronous call: the
// initial mount needs a subtree immediately, not deferred to the next
// flush. Render panics are recovered inside runRender itself (not via the
// effect's own error handler) so reportRenderError can walk the component
// chain and hand onRender a replacement subtree.
func (c *ComponentView) Start(onRender func(view.Node)) {
	c.onRender = onRender
	c.scope.Run(func() {
		c.renderEffect = reactivity.NewTrackedEffect(c.runRender)
		c.scope.Attach(c.renderEffect)
		c.renderEffect.Notify()
	})
}

func (c *ComponentView) runRender() {
	defer func() {
		if r := recover(); r != nil {
			c.reportRenderError(reactivity.Wrap(reactivity.SourceRender, reactivity.AsPanic(r)))
		}
	}()
	pushInstance(c)
	defer popInstance()
	next := c.render()
	c.onRender(next)
}

// reportRenderError walks the ancestor component chain invoking onError
// hooks in turn (spec.md §7): the first one to return a replacement view
// wins and propagation stops; otherwise the error reaches the app-level
// handler (ReportUnhandled in errors.go) and the sub-view becomes a
// placeholder comment.
func (c *ComponentView) reportRenderError(err error) {
	if replacement, ok := c.HandleError(err, string(reactivity.SourceRender)); ok {
		c.onRender(replacement)
		return
	}
	ReportUnhandled(err, c.name)
	c.onRender(view.NewComment(fmt.Sprintf("render error in %s", c.name)))
}

// HandleError implements view.ErrorBoundary: it tries each onError hook
// registered on this instance, then walks to the parent component.
func (c *ComponentView) HandleError(err error, source string) (view.Node, bool) {
	for _, h := range c.errHandlers {
		if replacement, ok := func() (view.Node, bool) {
			defer func() { recover() }() // an onError hook itself must never loop forever
			return h(err, source)
		}(); ok {
			return replacement, true
		}
	}
	if c.parent != nil {
		return c.parent.HandleError(err, source)
	}
	return nil, false
}

// Dispose tears down the component's scope (cascading to the render
// effect and any hooks/watchers created during setup).
func (c *ComponentView) Dispose() {
	c.scope.Dispose()
}

// instance stack: mirrors the per-goroutine scope stack so package-level
// hook/provide/inject functions can resolve "the component currently
// being set up or rendered" without threading it through every call.
var instanceStacks sync.Map // map[int64][]*ComponentView

func instanceStack() []*ComponentView {
	v, _ := instanceStacks.Load(goid.Get())
	s, _ := v.([]*ComponentView)
	return s
}

func pushInstance(c *ComponentView) {
	instanceStacks.Store(goid.Get(), append(instanceStack(), c))
}

func popInstance() {
	s := instanceStack()
	if len(s) == 0 {
		return
	}
	instanceStacks.Store(goid.Get(), s[:len(s)-1])
}

// currentInstance returns the component currently being set up or
// rendered on this goroutine, or nil outside of one.
func currentInstance() *ComponentView {
	s := instanceStack()
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}
