package view

import "github.com/vireoui/vireo/internal/renderer"

// List is a keyed ordered child container; internal/reconciler owns the
// LIS-based diff algorithm that rewrites its children on each update
// (spec.md §4.10). The node itself only tracks ordering and anchors,
// mirroring Fragment.
type List struct {
	base
	keys        []string
	children    []Node
	startAnchor renderer.Node
	endAnchor   renderer.Node
}

// NewList constructs a detached, empty List.
func NewList() *List {
	return &List{base: newBase(KindList)}
}

func (l *List) Keys() []string     { return l.keys }
func (l *List) Children() []Node   { return l.children }
func (l *List) StartAnchor() renderer.Node { return l.startAnchor }
func (l *List) EndAnchor() renderer.Node   { return l.endAnchor }

// SetOrdered installs the post-diff ordering; called by the reconciler
// once it has placed every child.
func (l *List) SetOrdered(keys []string, children []Node) {
	l.keys = keys
	l.children = children
}

func (l *List) Init(ctx Context) {
	l.initBase(ctx)
	for _, c := range l.children {
		c.Init(ctx.Child(l))
	}
}

func (l *List) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	startHost := l.ctx.Renderer.CreateComment("list-start")
	endHost := l.ctx.Renderer.CreateComment("list-end")
	mountHost(l.ctx.Renderer, container, anchor, mode, startHost)
	mountHost(l.ctx.Renderer, container, anchor, mode, endHost)
	l.startAnchor = startHost
	l.endAnchor = endHost
	l.setMounted(startHost)

	for _, c := range l.children {
		c.Mount(container, l.endAnchor, renderer.Insert)
	}
}

func (l *List) Activate() {
	l.setActivated()
	for _, c := range l.children {
		c.Activate()
	}
}

func (l *List) Deactivate() {
	l.setDeactivated()
	for _, c := range l.children {
		c.Deactivate()
	}
}

func (l *List) Dispose() {
	for _, c := range l.children {
		c.Dispose()
	}
	if l.state == Mounted {
		if l.startAnchor != nil {
			l.ctx.Renderer.Remove(l.startAnchor)
		}
		if l.endAnchor != nil {
			l.ctx.Renderer.Remove(l.endAnchor)
		}
	}
	l.setDisposed()
}
