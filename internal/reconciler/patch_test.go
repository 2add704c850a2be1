package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

func TestSameSlot(t *testing.T) {
	elA := view.NewElement("div", false)
	elB := view.NewElement("div", false)
	elSpan := view.NewElement("span", false)
	txt := view.NewText("x")

	assert.True(t, SameSlot(elA, elB), "same tag elements reuse the slot")
	assert.False(t, SameSlot(elA, elSpan), "different tags never reuse")
	assert.False(t, SameSlot(elA, txt), "different kinds never reuse")
	assert.False(t, SameSlot(nil, elB))
	assert.False(t, SameSlot(elA, nil))
}

func TestPatchChild_NilOldMountsNext(t *testing.T) {
	ctx := newTestContext()
	container := newFakeNode("element")
	anchor := newFakeNode("comment")
	container.children = append(container.children, anchor)
	anchor.parent = container

	next := view.NewText("hello")
	result := PatchChild(ctx, anchor, nil, next)

	require.Same(t, next, result)
	assert.Equal(t, view.Mounted, next.State())
}

func TestPatchChild_NilNextDisposesOld(t *testing.T) {
	ctx := newTestContext()
	container := newFakeNode("element")
	old := view.NewText("bye")
	old.Init(ctx)
	old.Mount(container, nil, renderer.Append)

	result := PatchChild(ctx, nil, old, nil)

	assert.Nil(t, result)
	assert.Equal(t, view.Disposed, old.State())
}

func TestPatchChild_SameSlotElementReusesOldInstance(t *testing.T) {
	ctx := newTestContext()
	container := newFakeNode("element")
	label := reactivity.NewRef("v1")
	old := view.NewElement("div", false)
	old.SetProp("title", func() any { return label.Value() })
	old.Init(ctx)
	old.Mount(container, nil, renderer.Append)

	next := view.NewElement("div", false)
	next.SetProp("title", func() any { return "v2" })

	result := PatchChild(ctx, nil, old, next)

	require.Same(t, old, result, "same tag Elements patch in place rather than remount")
	assert.Equal(t, "v2", asFake(old.HostNode()).attrs["title"])
	assert.Equal(t, view.Detached, next.State(), "the replacement Element is never itself mounted")
}

func TestPatchChild_DifferentKindDisposesOldAndMountsNext(t *testing.T) {
	ctx := newTestContext()
	container := newFakeNode("element")
	anchor := newFakeNode("comment")
	container.children = append(container.children, anchor)
	anchor.parent = container

	old := view.NewText("a")
	old.Init(ctx)
	old.Mount(container, nil, renderer.Append)

	next := view.NewElement("div", false)
	result := PatchChild(ctx, anchor, old, next)

	assert.Equal(t, view.Disposed, old.State())
	assert.Equal(t, view.Mounted, next.State())
	assert.Same(t, next, result)
}

func TestPatchChild_SameSlotReplacesChildrenWholesale(t *testing.T) {
	ctx := newTestContext()
	container := newFakeNode("element")
	oldChild := view.NewText("old")
	old := view.NewElement("div", false)
	old.SetChildren([]view.Node{oldChild})
	old.Init(ctx)
	old.Mount(container, nil, renderer.Append)

	newChild := view.NewText("new")
	next := view.NewElement("div", false)
	next.SetChildren([]view.Node{newChild})

	PatchChild(ctx, nil, old, next)

	assert.Equal(t, view.Disposed, oldChild.State())
	assert.Equal(t, view.Mounted, newChild.State())
	require.Len(t, old.Children(), 1)
	assert.Same(t, newChild, old.Children()[0])
}
