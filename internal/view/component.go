package view

import "github.com/vireoui/vireo/internal/renderer"

// Instance is implemented by internal/component's ComponentView. It lives
// on this side of the boundary so view.Node implementations can hold one
// without importing internal/component (which itself imports view to
// build the subtree it returns from Render).
type Instance interface {
	ErrorBoundary

	Init(ctx Context)
	BeforeMount()
	Mounted()
	BeforeUpdate()
	Updated()
	BeforeUnmount()
	Unmounted()
	Activated()
	Deactivated()

	// Render builds (or rebuilds) the instance's current sub-view. The
	// owning ComponentStateful/ComponentStateless node hands the result
	// to the reconciler on every render-effect run.
	Render() Node
	// Start wires the render effect; called once, after Init, with a
	// callback the instance invokes every time its render effect
	// produces a new subtree (sync, called from within the effect body
	// so the reconciler patch happens inside the same tracked run).
	Start(onRender func(next Node))
	Dispose()
}

// ComponentStateful hosts a stateful component Instance (own scope,
// lifecycle hooks, render effect).
type ComponentStateful struct {
	base
	instance Instance
	sub      Node
}

// NewComponentStateful constructs a detached node wrapping instance.
func NewComponentStateful(instance Instance) *ComponentStateful {
	return &ComponentStateful{base: newBase(KindComponentStateful), instance: instance}
}

func (c *ComponentStateful) Sub() Node { return c.sub }

func (c *ComponentStateful) Init(ctx Context) {
	c.initBase(ctx)
	c.instance.Init(ctx.Child(c))
}

func (c *ComponentStateful) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	anchorHost := c.ctx.Renderer.CreateComment("component")
	mountHost(c.ctx.Renderer, container, anchor, mode, anchorHost)
	c.setMounted(anchorHost)

	c.instance.BeforeMount()
	c.instance.Start(func(next Node) {
		c.patchSub(next)
	})
	c.instance.Mounted()
}

// DefaultPatch is installed by internal/reconciler's init() to avoid a
// view ↔ reconciler import cycle (the same "driver registration" pattern
// database/sql uses): it performs the same-slot-reuse-or-remount decision
// described in spec.md §4.10 "Element patch".
// anchor is the comment placeholder the owning Dynamic/ComponentStateful
// node mounted for itself; next is inserted immediately before it.
var DefaultPatch Patcher = func(ctx Context, anchor renderer.Node, old, next Node) Node {
	if old != nil {
		old.Dispose()
	}
	if next != nil {
		next.Init(ctx)
		next.Mount(nil, anchor, renderer.Insert)
	}
	return next
}

func (c *ComponentStateful) patchSub(next Node) {
	rerender := c.sub != nil
	if rerender {
		c.instance.BeforeUpdate()
	}
	c.sub = DefaultPatch(c.ctx.Child(c), c.host, c.sub, next)
	if rerender && c.state == Mounted {
		c.instance.Updated()
	}
}

func (c *ComponentStateful) HandleError(err error, source string) (Node, bool) {
	return c.instance.HandleError(err, source)
}

func (c *ComponentStateful) Activate() {
	c.setActivated()
	c.instance.Activated()
	if c.sub != nil {
		c.sub.Activate()
	}
}

func (c *ComponentStateful) Deactivate() {
	c.setDeactivated()
	c.instance.Deactivated()
	if c.sub != nil {
		c.sub.Deactivate()
	}
}

func (c *ComponentStateful) Dispose() {
	c.instance.BeforeUnmount()
	if c.sub != nil {
		c.sub.Dispose()
	}
	c.instance.Dispose()
	c.instance.Unmounted()
	if c.state == Mounted && c.host != nil {
		c.ctx.Renderer.Remove(c.host)
	}
	c.setDisposed()
}

// ComponentStateless hosts a pure function component: no lifecycle hooks,
// no instance-owned scope, just a render function re-invoked by its
// parent whenever its props change.
type ComponentStateless struct {
	base
	render func() Node
	sub    Node
}

// NewComponentStateless constructs a detached node wrapping render.
func NewComponentStateless(render func() Node) *ComponentStateless {
	return &ComponentStateless{base: newBase(KindComponentStateless), render: render}
}

func (c *ComponentStateless) Sub() Node { return c.sub }

func (c *ComponentStateless) Init(ctx Context) {
	c.initBase(ctx)
	c.sub = c.render()
	if c.sub != nil {
		c.sub.Init(ctx.Child(c))
	}
}

func (c *ComponentStateless) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	anchorHost := c.ctx.Renderer.CreateComment("component")
	mountHost(c.ctx.Renderer, container, anchor, mode, anchorHost)
	c.setMounted(anchorHost)
	if c.sub != nil {
		c.sub.Mount(nil, c.host, renderer.Insert)
	}
}

func (c *ComponentStateless) Activate() {
	c.setActivated()
	if c.sub != nil {
		c.sub.Activate()
	}
}

func (c *ComponentStateless) Deactivate() {
	c.setDeactivated()
	if c.sub != nil {
		c.sub.Deactivate()
	}
}

func (c *ComponentStateless) Dispose() {
	if c.sub != nil {
		c.sub.Dispose()
	}
	if c.state == Mounted && c.host != nil {
		c.ctx.Renderer.Remove(c.host)
	}
	c.setDisposed()
}
