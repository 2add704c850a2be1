// Package hostbubbletea is the reference HostRenderer (spec.md §6) built
// on Bubbletea/Bubbles/Lipgloss, exercising the teacher's own terminal-UI
// stack as an external collaborator of the core (spec.md §1: "concrete
// host bindings... specified only by the interfaces the core uses").
//
// It is a demo/proof that the renderer.HostRenderer port is implementable,
// not part of the core's own tested contract (SPEC_FULL.md §E).
package hostbubbletea

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type kind int

const (
	kindElement kind = iota
	kindText
	kindComment
	kindFragmentMarker
)

// node is the host node implementation handed back through
// renderer.HostRenderer as an opaque renderer.Node (any). The tree it
// forms is rendered to a terminal string by render().
type node struct {
	mu sync.Mutex

	kind kind
	tag  string
	svg  bool
	text string

	style   lipgloss.Style
	widget  widget
	attrs   map[string]any

	parent   *node
	children []*node

	// fragmentMarker-only: the pair of comment anchors bracketing the
	// fragment's children, inserted as a unit wherever the marker itself
	// is inserted/appended.
	start, end *node
}

// widget is implemented by a wrapped Bubbles component (textinput,
// viewport) installed on an element via SetAttribute("widget", w).
type widget interface {
	View() string
}

func newNode(k kind) *node {
	return &node{kind: k, attrs: map[string]any{}}
}

// detach removes n from its current parent's children slice, if attached.
func (n *node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// insertBefore inserts n as a child of p immediately before anchor (or at
// the end, if anchor is nil or not found among p's children).
func (n *node) insertBefore(p, anchor *node) {
	n.detach()
	n.parent = p
	if anchor == nil {
		p.children = append(p.children, n)
		return
	}
	for i, c := range p.children {
		if c == anchor {
			p.children = append(p.children, nil)
			copy(p.children[i+1:], p.children[i:])
			p.children[i] = n
			return
		}
	}
	p.children = append(p.children, n)
}

// render produces the terminal text for the subtree rooted at n.
func (n *node) render() string {
	switch n.kind {
	case kindText:
		return n.text
	case kindComment, kindFragmentMarker:
		return ""
	default:
		return n.renderElement()
	}
}

func (n *node) renderElement() string {
	if n.widget != nil {
		return n.style.Render(n.widget.View())
	}
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		s := c.render()
		if s == "" && (c.kind == kindComment || c.kind == kindFragmentMarker) {
			continue
		}
		parts = append(parts, s)
	}
	var body string
	if horizontal, _ := n.attrs["row"].(bool); horizontal {
		body = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	} else {
		body = strings.Join(parts, "\n")
	}
	return n.style.Render(body)
}
