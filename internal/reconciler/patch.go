package reconciler

import (
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

// Keyer is implemented by Node variants that participate in same-type/
// same-key reuse decisions (currently Element, via its tag). Nodes that
// don't implement it are compared by Kind alone.
type Keyer interface {
	Tag() string
}

// SameSlot reports whether next can patch in place over old (same kind,
// and same tag for Elements) rather than requiring unmount/remount
// (spec.md §4.10 "Element patch").
func SameSlot(old, next view.Node) bool {
	if old == nil || next == nil {
		return false
	}
	if old.Kind() != next.Kind() {
		return false
	}
	oldKeyer, oldOK := old.(Keyer)
	nextKeyer, nextOK := next.(Keyer)
	if oldOK != nextOK {
		return false
	}
	if oldOK && oldKeyer.Tag() != nextKeyer.Tag() {
		return false
	}
	return true
}

// PatchChild replaces the child occupying the slot immediately before
// anchor with next, reusing old's Element attribute/children wiring when
// SameSlot holds (same kind and, for Elements, same tag) — otherwise it
// disposes old and mounts next right before anchor. Used by Dynamic and
// by ComponentStateful's sub-view patching (both always operate against
// their own comment placeholder as anchor, never a bare container).
func PatchChild(ctx view.Context, anchor renderer.Node, old, next view.Node) view.Node {
	if old == nil {
		if next != nil {
			next.Init(ctx)
			next.Mount(nil, anchor, renderer.Insert)
		}
		return next
	}
	if next == nil {
		old.Dispose()
		return nil
	}
	if SameSlot(old, next) {
		if oldEl, ok := old.(*view.Element); ok {
			nextEl := next.(*view.Element)
			patchElement(ctx, oldEl, nextEl)
			return oldEl
		}
	}
	old.Dispose()
	next.Init(ctx)
	next.Mount(nil, anchor, renderer.Insert)
	return next
}

// patchElement diffs next's declared props/children onto old in place:
// add/remove/change props are whatever SetProp calls next already made
// (Element's per-key viewEffect re-evaluates on the next flush), and
// children are replaced wholesale here — list-shaped children should be
// modeled as a view.List and diffed with DiffList instead of going
// through this path.
func patchElement(ctx view.Context, old, next *view.Element) {
	for key, getter := range next.PropFns() {
		old.SetProp(key, getter)
	}
	old.ReplaceChildren(ctx, next.Children())
}

// DynamicPatcher adapts PatchChild to the view.Patcher shape view.Dynamic
// expects, letting internal/view stay unaware of the reconciler package.
func DynamicPatcher() view.Patcher {
	return func(ctx view.Context, container renderer.Node, old, next view.Node) view.Node {
		return PatchChild(ctx, container, old, next)
	}
}
