package vireo

import "github.com/vireoui/vireo/internal/renderer"

// fakeNode/fakeRenderer mirror the in-memory host tree used by internal/
// view and internal/reconciler's own test suites; duplicated here since
// all three are test-only.
type fakeNode struct {
	kind       string
	tag        string
	text       string
	attrs      map[string]any
	removed    bool
	parent     *fakeNode
	children   []*fakeNode
	start, end *fakeNode
}

func newFakeNode(kind string) *fakeNode { return &fakeNode{kind: kind, attrs: map[string]any{}} }
func asFake(n renderer.Node) *fakeNode  { return n.(*fakeNode) }

type fakeRenderer struct{}

func (r *fakeRenderer) CreateElement(tag string, svg bool) renderer.Node {
	n := newFakeNode("element")
	n.tag = tag
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
	return -1
}

func (r *fakeRenderer) placeAt(n, parent *fakeNode, idx int) {
	if n.kind == "fragment" {
		r.placeAt(n.start, parent, idx)
		r.placeAt(n.end, parent, idx+1)
		n.parent = parent
		return
	}
	n.parent = parent
	if idx < 0 || idx > len(parent.children) {
		idx = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = n
}

func (r *fakeRenderer) Insert(node, anchor renderer.Node) {
	a := asFake(anchor)
	n := asFake(node)
	parent := a.parent
	r.placeAt(n, parent, r.indexOf(parent, a))
}

func (r *fakeRenderer) Append(parent, node renderer.Node) {
	p := asFake(parent)
	n := asFake(node)
	r.placeAt(n, p, len(p.children))
}

func (r *fakeRenderer) detach(n *fakeNode) {
	if n.parent == nil {
		return
	}
	p := n.parent
	idx := r.indexOf(p, n)
	if idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	n.parent = nil
}

func (r *fakeRenderer) Replace(newNode, oldNode renderer.Node) {
	old := asFake(oldNode)
	next := asFake(newNode)
	parent := old.parent
	idx := r.indexOf(parent, old)
	r.detach(old)
	old.removed = true
	r.placeAt(next, parent, idx)
}

func (r *fakeRenderer) Remove(node renderer.Node) {
	n := asFake(node)
	if n.kind == "fragment" {
		r.detach(n.start)
		r.detach(n.end)
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

func (r *fakeRenderer) SetText(node renderer.Node, value string) {
	asFake(node).text = value
}

func (r *fakeRenderer) IsFragment(node renderer.Node) bool   { return asFake(node).kind == "fragment" }
func (r *fakeRenderer) IsSVGElement(node renderer.Node) bool { return false }

var _ renderer.HostRenderer = (*fakeRenderer)(nil)
