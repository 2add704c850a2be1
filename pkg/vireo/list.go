package vireo

import (
	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/reconciler"
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

// KeyedItem pairs a stable key with the Node that should render at that
// slot (spec.md §4.10's keyed list entry).
type KeyedItem = reconciler.Keyed

// OnLeave, if supplied, receives a child being removed from a keyed list
// and a done callback the caller must invoke once any exit
// animation/transition finishes; until then the child is kept reachable
// rather than disposed immediately.
type OnLeave = reconciler.OnLeave

// reactiveList wraps a view.List with an owned effect that recomputes the
// keyed slate from source on every flush where a read dependency changed,
// and feeds the result through the LIS-based mover in internal/reconciler
// — the same effect-driven patch pattern view.Dynamic uses, generalized to
// a keyed collection instead of a single child slot.
type reactiveList struct {
	list    *view.List
	source  func() []KeyedItem
	onLeave OnLeave

	ctx    view.Context
	scope  *reactivity.EffectScope
	effect *reactivity.Effect
}

// ListOption configures a CreateKeyedList call.
type ListOption func(*reactiveList)

// WithOnLeave installs a leave-transition hook for removed entries.
func WithOnLeave(fn OnLeave) ListOption {
	return func(rl *reactiveList) { rl.onLeave = fn }
}

// CreateKeyedList builds a reactive keyed collection: source is re-run
// inside a tracked effect, and the returned entries are diffed against the
// previous slate with the LIS-based list mover, reusing, moving, creating
// and removing children by key (spec.md §4.10).
func CreateKeyedList(source func() []KeyedItem, opts ...ListOption) Node {
	rl := &reactiveList{list: view.NewList(), source: source}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

func (rl *reactiveList) ID() view.ID            { return rl.list.ID() }
func (rl *reactiveList) Kind() view.Kind        { return rl.list.Kind() }
func (rl *reactiveList) State() view.State      { return rl.list.State() }
func (rl *reactiveList) HostNode() renderer.Node { return rl.list.HostNode() }

func (rl *reactiveList) Init(ctx view.Context) {
	rl.ctx = ctx
	rl.list.Init(ctx)
	rl.scope = reactivity.NewScope(reactivity.Detached())
}

func (rl *reactiveList) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	rl.list.Mount(container, anchor, mode)
	rl.scope.Run(func() {
		rl.effect = reactivity.NewTrackedEffect(rl.refresh)
		rl.scope.Attach(rl.effect)
		rl.effect.Notify()
	})
}

func (rl *reactiveList) refresh() {
	keys := rl.list.Keys()
	children := rl.list.Children()
	old := make([]KeyedItem, len(keys))
	for i, k := range keys {
		old[i] = KeyedItem{Key: k, Node: children[i]}
	}

	next := rl.source()
	childCtx := rl.ctx.Child(rl)
	newKeys, newNodes := reconciler.DiffList(rl.list.ID(), childCtx, rl.list.HostNode(), rl.list.EndAnchor(), old, next, rl.onLeave)
	rl.list.SetOrdered(newKeys, newNodes)
}

func (rl *reactiveList) Activate() {
	rl.scope.Resume()
	rl.list.Activate()
}

func (rl *reactiveList) Deactivate() {
	rl.scope.Pause()
	rl.list.Deactivate()
}

func (rl *reactiveList) Dispose() {
	rl.scope.Dispose()
	rl.list.Dispose()
}
