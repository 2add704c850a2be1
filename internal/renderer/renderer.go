// Package renderer defines the host-agnostic port the view tree talks to.
// A concrete HostRenderer (browser DOM, SSR sink, test harness, or the
// Bubbletea terminal adapter in host/bubbletea) never needs to be aware of
// reactivity, scopes, or reconciliation — it only implements these
// operations (spec.md §6).
package renderer

// Node is an opaque host handle: an element, text node, comment, or
// fragment, as produced by the concrete HostRenderer in use. The core
// never inspects it; it only ever passes it back to the same renderer.
type Node any

// Mode selects how Mount attaches a host node to its container.
type Mode int

const (
	Append Mode = iota
	Insert
	Replace
)

// HostRenderer is the renderer interface described in spec.md §6. The
// core view tree and reconciler depend only on these operations.
type HostRenderer interface {
	CreateElement(tag string, svg bool) Node
	CreateText(text string) Node
	CreateComment(text string) Node

	// CreateFragment returns a host fragment node carrying its own
	// start/end anchor comments, used to bracket a Fragment ViewNode's
	// children so inserts/removals stay scoped between the anchors.
	CreateFragment() Fragment

	Insert(node, anchor Node)
	Append(parent, node Node)
	Replace(newNode, oldNode Node)
	Remove(node Node)

	SetAttribute(node Node, key string, next, prev any)
	SetText(node Node, value string)

	IsFragment(node Node) bool
	IsSVGElement(node Node) bool
}

// Fragment is a host fragment: a node plus the two anchor comments that
// bracket its children in the host tree (spec.md §4.10 "Anchors").
type Fragment struct {
	Node        Node
	StartAnchor Node
	EndAnchor   Node
}

// TransitionHooks are the optional operations a Transition collaborator
// consumes; the core itself never calls them. Declared here so a
// HostRenderer can optionally implement them without the core depending on
// the concrete type.
type TransitionHooks interface {
	GetBoundingClientRect(node Node) (x, y, width, height float64)
	GetAnimationDuration(node Node) float64
	GetTransitionDuration(node Node) float64
}
