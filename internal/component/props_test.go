package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vireoui/vireo/internal/reactivity"
)

func TestProps_GetReturnsPlainValueUnchanged(t *testing.T) {
	p := NewProps(map[string]PropValue{"label": "hello"}, nil)
	assert.Equal(t, "hello", p.Get("label"))
}

func TestProps_GetUnwrapsRefAndTracksTheRead(t *testing.T) {
	ref := reactivity.NewRef[any]("v1")
	p := NewProps(map[string]PropValue{"count": ref}, nil)

	var seen []any
	eff := reactivity.NewTrackedEffect(func() { seen = append(seen, p.Get("count")) })
	eff.Notify()

	ref.Set("v2")
	reactivity.DefaultScheduler().FlushSync()

	assert.Equal(t, []any{"v1", "v2"}, seen, "a render effect reading props.Get must rerun when the backing ref changes")
}

func TestProps_GetMissingKeyReturnsNil(t *testing.T) {
	p := NewProps(nil, nil)
	assert.Nil(t, p.Get("missing"))
}

func TestProps_HasDistinguishesDeclaredNilFromMissing(t *testing.T) {
	p := NewProps(map[string]PropValue{"declared": nil}, nil)
	assert.True(t, p.Has("declared"))
	assert.False(t, p.Has("missing"))
}

func TestProps_KeysListsDeclaredNames(t *testing.T) {
	p := NewProps(map[string]PropValue{"a": 1, "b": 2}, nil)
	assert.ElementsMatch(t, []string{"a", "b"}, p.Keys())
}

func TestProps_SetWritesThroughRefAndInvokesUpdateHandler(t *testing.T) {
	ref := reactivity.NewRef[any]("v1")
	var handlerCalled any
	updaters := map[string]UpdateHandler{
		"count": func(next any) { handlerCalled = next },
	}
	p := NewProps(map[string]PropValue{"count": ref}, updaters)

	p.Set("count", "v2")

	assert.Equal(t, "v2", ref.Peek())
	assert.Equal(t, "v2", handlerCalled)
}

func TestProps_SetOnPlainValueOnlyInvokesHandler(t *testing.T) {
	var handlerCalled any
	updaters := map[string]UpdateHandler{
		"label": func(next any) { handlerCalled = next },
	}
	p := NewProps(map[string]PropValue{"label": "hello"}, updaters)

	p.Set("label", "world")

	assert.Equal(t, "world", handlerCalled)
	assert.Equal(t, "hello", p.Get("label"), "a plain value prop is never mutated in place")
}
