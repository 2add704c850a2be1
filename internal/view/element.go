package view

import (
	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/renderer"
)

// PropGetter produces the current value of a prop; Element installs one
// viewEffect per key so a reactive read inside the getter re-triggers
// SetAttribute on change (spec.md §4.8 "Element props effect").
type PropGetter func() any

// Element is a host element view: it owns attribute effects and children.
type Element struct {
	base
	tag      string
	svg      bool
	propFns  map[string]PropGetter
	propVals map[string]any
	effects  []*reactivity.Effect
	children []Node
	scope    *reactivity.EffectScope
}

// NewElement constructs a detached Element for tag.
func NewElement(tag string, svg bool) *Element {
	return &Element{
		base:     newBase(KindElement),
		tag:      tag,
		svg:      svg,
		propFns:  map[string]PropGetter{},
		propVals: map[string]any{},
	}
}

// SetProp registers (or replaces) the getter for a prop key. Must be
// called before Mount for the prop to be applied at mount time, or any
// time after for it to take effect on the next flush.
func (e *Element) SetProp(key string, getter PropGetter) {
	e.propFns[key] = getter
}

// SetChildren replaces the element's child list; callers are responsible
// for Init/Mount/Dispose of the outgoing/incoming children (typically via
// the reconciler).
func (e *Element) SetChildren(children []Node) { e.children = children }
func (e *Element) Children() []Node             { return e.children }
func (e *Element) Tag() string                  { return e.tag }
func (e *Element) PropFns() map[string]PropGetter { return e.propFns }

// ReplaceChildren performs a non-keyed wholesale replacement of children:
// disposes the current set and mounts next in their place. Keyed
// collections should be modeled as a List node and patched with
// reconciler.DiffList instead of routing through this method.
func (e *Element) ReplaceChildren(ctx Context, next []Node) {
	if e.state != Mounted {
		e.children = next
		return
	}
	for _, c := range e.children {
		c.Dispose()
	}
	for _, c := range next {
		c.Init(ctx.Child(e))
		c.Mount(e.host, nil, renderer.Append)
	}
	e.children = next
}

func (e *Element) Init(ctx Context) {
	e.initBase(ctx)
	e.scope = reactivity.NewScope(reactivity.Detached())
	for _, c := range e.children {
		c.Init(ctx.Child(e))
	}
}

func (e *Element) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	host := e.ctx.Renderer.CreateElement(e.tag, e.svg)
	mountHost(e.ctx.Renderer, container, anchor, mode, host)
	e.setMounted(host)

	e.scope.Run(func() {
		for key := range e.propFns {
			e.installPropEffect(key)
		}
	})

	for _, c := range e.children {
		c.Mount(host, nil, renderer.Append)
	}
}

// installPropEffect creates the viewEffect for key: reads the getter
// (tracked), diffs against the previous value, and calls SetAttribute
// only when it changed.
func (e *Element) installPropEffect(key string) {
	eff := reactivity.NewTrackedEffect(func() {
		getter := e.propFns[key]
		if getter == nil {
			return
		}
		next := getter()
		prev, had := e.propVals[key]
		if had && safeEqualAny(prev, next) {
			return
		}
		e.propVals[key] = next
		e.ctx.Renderer.SetAttribute(e.host, key, next, prev)
	})
	eff.Notify()
	e.scope.Attach(eff)
	e.effects = append(e.effects, eff)
}

func safeEqualAny(a, b any) bool { return a == b }

func (e *Element) Activate() {
	e.setActivated()
	e.scope.Resume()
	for _, c := range e.children {
		c.Activate()
	}
}

func (e *Element) Deactivate() {
	e.setDeactivated()
	e.scope.Pause()
	for _, c := range e.children {
		c.Deactivate()
	}
}

func (e *Element) Dispose() {
	for _, c := range e.children {
		c.Dispose()
	}
	e.scope.Dispose()
	if e.state == Mounted && e.host != nil {
		e.ctx.Renderer.Remove(e.host)
	}
	e.setDisposed()
}
