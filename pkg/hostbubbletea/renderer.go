package hostbubbletea

import "github.com/vireoui/vireo/internal/renderer"

// Renderer implements renderer.HostRenderer on top of the in-memory node
// tree in node.go, rendered to a terminal string through Lipgloss. It is
// the reference adapter SPEC_FULL.md §C/§E describes: a concrete
// collaborator exercising the core's renderer port, not part of the core
// itself.
type Renderer struct{}

// New constructs a Renderer. There is no per-instance state: every host
// node carries its own tree linkage, so a single Renderer value can drive
// any number of independent view trees.
func New() *Renderer { return &Renderer{} }

func asNode(n renderer.Node) *node { return n.(*node) }

func (r *Renderer) CreateElement(tag string, svg bool) renderer.Node {
	n := newNode(kindElement)
	n.tag = tag
	n.svg = svg
	return n
}

func (r *Renderer) CreateText(text string) renderer.Node {
	n := newNode(kindText)
	n.text = text
	return n
}

func (r *Renderer) CreateComment(text string) renderer.Node {
	n := newNode(kindComment)
	n.text = text
	return n
}

// CreateFragment returns a fragment marker plus its two bracketing comment
// anchors. The marker is the renderer.Node handed to view.Fragment as its
// host handle; inserting/appending the marker inserts the anchor pair as a
// unit (see Insert/Append below), matching spec.md §4.10's "Fragments
// always have two comment anchors... bracketing their children".
func (r *Renderer) CreateFragment() renderer.Fragment {
	start := newNode(kindComment)
	start.text = "fragment-start"
	end := newNode(kindComment)
	end.text = "fragment-end"
	marker := newNode(kindFragmentMarker)
	marker.start, marker.end = start, end
	return renderer.Fragment{Node: marker, StartAnchor: start, EndAnchor: end}
}

func (r *Renderer) Insert(n, anchor renderer.Node) {
	target := asNode(n)
	var anc, parent *node
	if anchor != nil {
		anc = asNode(anchor)
		parent = anc.parent
	}
	if parent == nil {
		return
	}
	r.placeInto(target, parent, anc)
}

func (r *Renderer) Append(parent, n renderer.Node) {
	p := asNode(parent)
	r.placeInto(asNode(n), p, nil)
}

// placeInto handles the fragment-marker special case: inserting a marker
// inserts both of its anchors, in order, at the target position.
func (r *Renderer) placeInto(n, parent, anchor *node) {
	if n.kind == kindFragmentMarker {
		n.start.insertBefore(parent, anchor)
		n.end.insertBefore(parent, anchor)
		n.parent = parent
		return
	}
	n.insertBefore(parent, anchor)
}

func (r *Renderer) Replace(newNode, oldNode renderer.Node) {
	old := asNode(oldNode)
	next := asNode(newNode)
	parent, anchorAfter := old.parent, nextSibling(old)
	old.detach()
	if parent == nil {
		return
	}
	r.placeInto(next, parent, anchorAfter)
}

func nextSibling(n *node) *node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n && i+1 < len(n.parent.children) {
			return n.parent.children[i+1]
		}
	}
	return nil
}

func (r *Renderer) Remove(n renderer.Node) {
	target := asNode(n)
	if target.kind == kindFragmentMarker {
		target.start.detach()
		target.end.detach()
		return
	}
	target.detach()
}

// SetAttribute applies a single prop change to an element host node.
// Style-valued keys (color, bold, padding, ...) accumulate onto the node's
// Lipgloss style; "widget" installs a wrapped Bubbles component (see
// widgets.go); everything else is stored verbatim for directives or
// widgets to read back later.
func (r *Renderer) SetAttribute(n renderer.Node, key string, next, prev any) {
	target := asNode(n)
	target.mu.Lock()
	defer target.mu.Unlock()

	switch {
	case key == "widget":
		if next == nil {
			target.widget = nil
			return
		}
		w, ok := next.(widget)
		if !ok {
			return
		}
		target.widget = w
	case isStyleAttr(key):
		applyStyleAttr(target, key, next)
	default:
		if next == nil {
			delete(target.attrs, key)
			return
		}
		target.attrs[key] = next
	}
}

func (r *Renderer) SetText(n renderer.Node, value string) {
	target := asNode(n)
	target.mu.Lock()
	target.text = value
	target.mu.Unlock()
}

func (r *Renderer) IsFragment(n renderer.Node) bool {
	target := asNode(n)
	return target.kind == kindFragmentMarker
}

func (r *Renderer) IsSVGElement(n renderer.Node) bool {
	target := asNode(n)
	return target.kind == kindElement && target.svg
}

var _ renderer.HostRenderer = (*Renderer)(nil)
