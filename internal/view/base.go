package view

import "github.com/vireoui/vireo/internal/renderer"

// base is embedded by every concrete Node to share identity and lifecycle
// bookkeeping, mirroring the "tagged union with back-references resolved
// by index" shape the design notes (spec.md §9) call for in a language
// without dynamic dispatch-by-default.
type base struct {
	id    ID
	kind  Kind
	state State
	ctx   Context
	host  renderer.Node
}

func newBase(kind Kind) base {
	return base{id: NewID(), kind: kind, state: Detached}
}

func (b *base) ID() ID        { return b.id }
func (b *base) Kind() Kind    { return b.kind }
func (b *base) State() State  { return b.state }
func (b *base) HostNode() renderer.Node { return b.host }

func (b *base) initBase(ctx Context) {
	b.ctx = ctx
	b.state = Initialized
}

func (b *base) setMounted(host renderer.Node) {
	b.host = host
	b.state = Mounted
}

func (b *base) setDeactivated() { b.state = Deactivated }
func (b *base) setActivated()   { b.state = Mounted }
func (b *base) setDisposed()    { b.state = Disposed }
