package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vireoui/vireo/internal/view"
)

func TestProvideInject_ChildSeesParentProvidedValue(t *testing.T) {
	parentSetup := func(props *Props) RenderFunc {
		Provide("theme", "dark")
		return func() view.Node { return view.NewText("parent") }
	}
	parent := NewComponentView("Parent", NewProps(nil, nil), parentSetup)
	parent.Init(newTestInstanceCtx())

	var got any
	var ok bool
	childSetup := func(props *Props) RenderFunc {
		got, ok = Inject("theme", "light")
		return func() view.Node { return view.NewText("child") }
	}
	child := NewComponentView("Child", NewProps(nil, nil), childSetup)
	child.Init(view.Context{Boundary: parent})

	assert.True(t, ok)
	assert.Equal(t, "dark", got)
}

func TestProvideInject_MissingKeyReturnsDefault(t *testing.T) {
	parent := NewComponentView("Parent", NewProps(nil, nil), func(props *Props) RenderFunc {
		return func() view.Node { return view.NewText("parent") }
	})
	parent.Init(newTestInstanceCtx())

	var got any
	var ok bool
	child := NewComponentView("Child", NewProps(nil, nil), func(props *Props) RenderFunc {
		got, ok = Inject("missing", "fallback")
		return func() view.Node { return view.NewText("child") }
	})
	child.Init(view.Context{Boundary: parent})

	assert.False(t, ok)
	assert.Equal(t, "fallback", got)
}

func TestProvideInject_WalksPastNonProvidingIntermediateAncestor(t *testing.T) {
	grandparent := NewComponentView("GrandParent", NewProps(nil, nil), func(props *Props) RenderFunc {
		Provide("key", "from-grandparent")
		return func() view.Node { return view.NewText("gp") }
	})
	grandparent.Init(newTestInstanceCtx())

	parent := NewComponentView("Parent", NewProps(nil, nil), func(props *Props) RenderFunc {
		return func() view.Node { return view.NewText("parent") }
	})
	parent.Init(view.Context{Boundary: grandparent})

	var got any
	var ok bool
	child := NewComponentView("Child", NewProps(nil, nil), func(props *Props) RenderFunc {
		got, ok = Inject("key", nil)
		return func() view.Node { return view.NewText("child") }
	})
	child.Init(view.Context{Boundary: parent})

	assert.True(t, ok)
	assert.Equal(t, "from-grandparent", got)
}

func TestProvideInject_OutsideSetupIsNoOpAndReturnsDefault(t *testing.T) {
	assert.NotPanics(t, func() { Provide("k", "v") })
	got, ok := Inject("k", "default")
	assert.False(t, ok)
	assert.Equal(t, "default", got)
}

func TestProvideInject_ComponentCanInjectItsOwnProvidedValue(t *testing.T) {
	var got any
	var ok bool
	self := NewComponentView("Self", NewProps(nil, nil), func(props *Props) RenderFunc {
		Provide("key", "self-value")
		got, ok = Inject("key", nil)
		return func() view.Node { return view.NewText("x") }
	})
	self.Init(newTestInstanceCtx())

	assert.True(t, ok)
	assert.Equal(t, "self-value", got)
}
