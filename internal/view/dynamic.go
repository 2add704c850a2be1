package view

import (
	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/renderer"
)

// Patcher mounts/reconciles next in place of old, returning the Node now
// occupying the slot (either old, patched in place, or next); the real
// implementation lives in internal/reconciler.PatchChild and is supplied
// by the caller at construction time to avoid a view ↔ reconciler import
// cycle (reconciler depends on view, not the reverse).
type Patcher func(ctx Context, container renderer.Node, old, next Node) Node

// Dynamic holds a reactive source that yields a view; on source change it
// patches the mounted subtree in place (spec.md §4.8).
type Dynamic struct {
	base
	source  func() Node
	current Node
	patch   Patcher
	scope   *reactivity.EffectScope
	effect  *reactivity.Effect
}

// NewDynamic constructs a Dynamic node. A nil patch falls back to
// DefaultPatch (installed by internal/reconciler's init()).
func NewDynamic(source func() Node, patch Patcher) *Dynamic {
	if patch == nil {
		patch = DefaultPatch
	}
	return &Dynamic{base: newBase(KindDynamic), source: source, patch: patch}
}

func (d *Dynamic) Current() Node { return d.current }

func (d *Dynamic) Init(ctx Context) {
	d.initBase(ctx)
	d.scope = reactivity.NewScope(reactivity.Detached())
}

func (d *Dynamic) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	anchorHost := d.ctx.Renderer.CreateComment("dynamic")
	mountHost(d.ctx.Renderer, container, anchor, mode, anchorHost)
	d.setMounted(anchorHost)

	d.scope.Run(func() {
		d.effect = reactivity.NewTrackedEffect(func() {
			next := d.source()
			d.current = d.patch(d.ctx.Child(d), d.host, d.current, next)
		})
		d.scope.Attach(d.effect)
		d.effect.Notify()
	})
}

func (d *Dynamic) Activate() {
	d.setActivated()
	d.scope.Resume()
	if d.current != nil {
		d.current.Activate()
	}
}

func (d *Dynamic) Deactivate() {
	d.setDeactivated()
	d.scope.Pause()
	if d.current != nil {
		d.current.Deactivate()
	}
}

func (d *Dynamic) Dispose() {
	if d.current != nil {
		d.current.Dispose()
	}
	d.scope.Dispose()
	if d.state == Mounted && d.host != nil {
		d.ctx.Renderer.Remove(d.host)
	}
	d.setDisposed()
}
