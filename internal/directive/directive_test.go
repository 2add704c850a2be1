package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterResolve_StripsVPrefix(t *testing.T) {
	d := &Directive{}
	Register("focus", d)

	got, ok := Resolve("v-focus")
	require.True(t, ok)
	assert.Same(t, d, got)

	got2, ok2 := Resolve("focus")
	require.True(t, ok2)
	assert.Same(t, d, got2)
}

func TestResolve_UnknownNameReturnsFalse(t *testing.T) {
	_, ok := Resolve("v-does-not-exist")
	assert.False(t, ok)
}

func TestRunCreated_InvokesEveryBindingInOrder(t *testing.T) {
	var order []string
	Register("a", &Directive{Created: func(el any, b Binding) { order = append(order, "a:"+b.Arg) }})
	Register("b", &Directive{Created: func(el any, b Binding) { order = append(order, "b:"+b.Arg) }})

	RunCreated("element", []Binding{
		{Name: "a", Arg: "1"},
		{Name: "b", Arg: "2"},
	}, nil)

	assert.Equal(t, []string{"a:1", "b:2"}, order)
}

func TestRunMounted_SkipsUnresolvedDirectiveAndNilHook(t *testing.T) {
	var ran bool
	Register("noop-on-mount", &Directive{Created: func(el any, b Binding) { ran = true }})

	assert.NotPanics(t, func() {
		RunMounted("element", []Binding{
			{Name: "unregistered"},
			{Name: "noop-on-mount"},
		}, nil)
	})
	assert.False(t, ran, "Created must not run when RunMounted is invoked")
}

func TestRunDispose_PanicInOneHookIsIsolatedFromTheNext(t *testing.T) {
	var secondRan bool
	Register("panics", &Directive{Dispose: func(el any, b Binding) { panic("boom") }})
	Register("survivor", &Directive{Dispose: func(el any, b Binding) { secondRan = true }})

	assert.NotPanics(t, func() {
		RunDispose("element", []Binding{
			{Name: "panics"},
			{Name: "survivor"},
		}, nil)
	})
	assert.True(t, secondRan)
}

func TestRunCreated_PanicRoutesToOnErrorWithDirectiveSource(t *testing.T) {
	Register("boom", &Directive{Created: func(el any, b Binding) { panic("kaboom") }})

	var gotErr error
	RunCreated("element", []Binding{{Name: "boom"}}, func(err error) { gotErr = err })

	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "directive.boom")
}

func TestRunCreated_BindingValueAndModifiersPassThroughToHook(t *testing.T) {
	var gotBinding Binding
	Register("capture", &Directive{Created: func(el any, b Binding) { gotBinding = b }})

	RunCreated("element", []Binding{
		{Name: "capture", Value: 42, Arg: "click", Modifiers: map[string]bool{"once": true}},
	}, nil)

	assert.Equal(t, 42, gotBinding.Value)
	assert.Equal(t, "click", gotBinding.Arg)
	assert.True(t, gotBinding.Modifiers["once"])
}
