package view

import "github.com/vireoui/vireo/internal/renderer"

// fakeNode is an in-memory host node used only by this package's tests, the
// same kind of minimal test harness renderer the hostbubbletea port is a
// production-grade version of.
type fakeNode struct {
	kind     string // "element", "text", "comment", "fragment"
	tag      string
	text     string
	svg      bool
	attrs    map[string]any
	removed  bool
	parent   *fakeNode
	children []*fakeNode

	// only set when kind == "fragment"
	start, end *fakeNode
}

func newFakeNode(kind string) *fakeNode {
	return &fakeNode{kind: kind, attrs: map[string]any{}}
}

func asFake(n renderer.Node) *fakeNode { return n.(*fakeNode) }

type fakeRenderer struct{}

func (r *fakeRenderer) CreateElement(tag string, svg bool) renderer.Node {
	n := newFakeNode("element")
	n.tag, n.svg = tag, svg
	return n
}

func (r *fakeRenderer) CreateText(text string) renderer.Node {
	n := newFakeNode("text")
	n.text = text
	return n
}

func (r *fakeRenderer) CreateComment(text string) renderer.Node {
	n := newFakeNode("comment")
	n.text = text
	return n
}

func (r *fakeRenderer) CreateFragment() renderer.Fragment {
	start := newFakeNode("comment")
	start.text = "frag-start"
	end := newFakeNode("comment")
	end.text = "frag-end"
	marker := newFakeNode("fragment")
	marker.start, marker.end = start, end
	return renderer.Fragment{Node: marker, StartAnchor: start, EndAnchor: end}
}

func (r *fakeRenderer) indexOf(parent, child *fakeNode) int {
	for i, c := range parent.children {
		if c == child {
			return i
		}
	}
	return len(parent.children)
}

func (r *fakeRenderer) placeAt(n, parent *fakeNode, idx int) {
	if n.kind == "fragment" {
		r.placeAt(n.start, parent, idx)
		r.placeAt(n.end, parent, idx+1)
		n.parent = parent
		return
	}
	n.parent = parent
	if idx > len(parent.children) {
		idx = len(parent.children)
	}
	parent.children = append(parent.children[:idx:idx], append([]*fakeNode{n}, parent.children[idx:]...)...)
}

func (r *fakeRenderer) Insert(node, anchor renderer.Node) {
	n := asFake(node)
	a := asFake(anchor)
	r.placeAt(n, a.parent, r.indexOf(a.parent, a))
}

func (r *fakeRenderer) Append(parent, node renderer.Node) {
	p := asFake(parent)
	r.placeAt(asFake(node), p, len(p.children))
}

func (r *fakeRenderer) detach(n *fakeNode) {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = append(p.children[:r.indexOf(p, n)], p.children[r.indexOf(p, n)+1:]...)
	n.parent = nil
}

func (r *fakeRenderer) Replace(newNode, oldNode renderer.Node) {
	on := asFake(oldNode)
	nn := asFake(newNode)
	parent := on.parent
	idx := r.indexOf(parent, on)
	r.detach(on)
	on.removed = true
	r.placeAt(nn, parent, idx)
}

func (r *fakeRenderer) Remove(node renderer.Node) {
	n := asFake(node)
	if n.kind == "fragment" {
		r.detach(n.start)
		r.detach(n.end)
		n.start.removed = true
		n.end.removed = true
		return
	}
	r.detach(n)
	n.removed = true
}

func (r *fakeRenderer) SetAttribute(node renderer.Node, key string, next, prev any) {
	n := asFake(node)
	if next == nil {
		delete(n.attrs, key)
		return
	}
	n.attrs[key] = next
}

func (r *fakeRenderer) SetText(node renderer.Node, value string) { asFake(node).text = value }

func (r *fakeRenderer) IsFragment(node renderer.Node) bool   { return asFake(node).kind == "fragment" }
func (r *fakeRenderer) IsSVGElement(node renderer.Node) bool { return asFake(node).svg }

var _ renderer.HostRenderer = (*fakeRenderer)(nil)

func newTestContext() Context {
	return Context{Renderer: &fakeRenderer{}}
}
