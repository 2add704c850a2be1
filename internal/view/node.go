// Package view implements the polymorphic view tree: the variants, their
// per-node lifecycle, and the shared Context a node needs to mount itself
// into a host tree (spec.md §4.8).
package view

import "github.com/vireoui/vireo/internal/renderer"

// Kind tags which tree variant a Node is.
type Kind int

const (
	KindText Kind = iota
	KindComment
	KindElement
	KindFragment
	KindComponentStateful
	KindComponentStateless
	KindDynamic
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindElement:
		return "element"
	case KindFragment:
		return "fragment"
	case KindComponentStateful:
		return "component.stateful"
	case KindComponentStateless:
		return "component.stateless"
	case KindDynamic:
		return "dynamic"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// State is a node's position in the lifecycle DAG described in spec.md
// §3: detached → initialized → mounted ⇄ deactivated, dispose terminal
// from any state.
type State int

const (
	Detached State = iota
	Initialized
	Mounted
	Deactivated
	Disposed
)

// ErrorBoundary is implemented by anything that can absorb an error
// escaping a descendant's build/render (the component chain walked by
// spec.md §7's propagation rule). It lives in this package (rather than
// component) so Node implementations can reach it without an import
// cycle; internal/component's ComponentView implements it.
type ErrorBoundary interface {
	// HandleError is offered err from a descendant; returning handled
	// stops propagation (ok == true), optionally supplying a
	// replacement subtree to mount in the failing node's place.
	HandleError(err error, source string) (replacement Node, ok bool)
}

// Context is threaded down the tree on Init: it carries the host
// renderer, the nearest ancestor ErrorBoundary, and the parent Node link.
type Context struct {
	Renderer renderer.HostRenderer
	Boundary ErrorBoundary
	Parent   Node
}

// Child returns a Context for a direct child of owner, inheriting the
// renderer and error boundary (or becoming the new boundary if owner
// implements ErrorBoundary itself).
func (c Context) Child(owner Node) Context {
	boundary := c.Boundary
	if b, ok := owner.(ErrorBoundary); ok {
		boundary = b
	}
	return Context{Renderer: c.Renderer, Boundary: boundary, Parent: owner}
}

// Node is the common interface every view tree variant implements
// (spec.md §4.8's per-node lifecycle).
type Node interface {
	ID() ID
	Kind() Kind
	State() State

	// Init attaches the node to ctx, without creating any host node yet.
	Init(ctx Context)

	// Mount creates/attaches the host node. anchor is only meaningful for
	// renderer.Insert; container is used for renderer.Append/Replace.
	Mount(container, anchor renderer.Node, mode renderer.Mode)

	// Activate/Deactivate toggle visibility without disposing (used by
	// KeepAlive-style collaborators); they pause/resume owned effects.
	Activate()
	Deactivate()

	// Dispose tears down in reverse creation order: children, then
	// effects, then host detach. Terminal.
	Dispose()

	// HostNode returns the primary host handle, valid once State() >=
	// Mounted (spec.md §3 invariant).
	HostNode() renderer.Node
}
