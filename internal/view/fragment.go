package view

import "github.com/vireoui/vireo/internal/renderer"

// Fragment is an ordered group of children bracketed by two comment
// anchors in the host tree, so inserts/removals stay scoped between them
// (spec.md §4.10 "Anchors").
type Fragment struct {
	base
	children    []Node
	startAnchor renderer.Node
	endAnchor   renderer.Node
}

// NewFragment constructs a detached Fragment with the given children.
func NewFragment(children []Node) *Fragment {
	return &Fragment{base: newBase(KindFragment), children: children}
}

func (f *Fragment) Children() []Node { return f.children }

// SetChildren replaces the fragment's children. Callers must Init/Mount
// new entries and Dispose removed ones; used by the reconciler's list
// diff when children is itself a List.
func (f *Fragment) SetChildren(children []Node) { f.children = children }

// StartAnchor/EndAnchor expose the bracketing host anchors so the
// reconciler can insert new siblings at the correct position.
func (f *Fragment) StartAnchor() renderer.Node { return f.startAnchor }
func (f *Fragment) EndAnchor() renderer.Node   { return f.endAnchor }

func (f *Fragment) Init(ctx Context) {
	f.initBase(ctx)
	for _, c := range f.children {
		c.Init(ctx.Child(f))
	}
}

func (f *Fragment) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	frag := f.ctx.Renderer.CreateFragment()
	mountHost(f.ctx.Renderer, container, anchor, mode, frag.Node)
	f.startAnchor = frag.StartAnchor
	f.endAnchor = frag.EndAnchor
	f.setMounted(frag.Node)

	for _, c := range f.children {
		c.Mount(f.host, f.endAnchor, renderer.Insert)
	}
}

func (f *Fragment) Activate() {
	f.setActivated()
	for _, c := range f.children {
		c.Activate()
	}
}

func (f *Fragment) Deactivate() {
	f.setDeactivated()
	for _, c := range f.children {
		c.Deactivate()
	}
}

func (f *Fragment) Dispose() {
	for _, c := range f.children {
		c.Dispose()
	}
	if f.state == Mounted && f.host != nil {
		f.ctx.Renderer.Remove(f.host)
	}
	f.setDisposed()
}
