package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_RunAutoAttachesChildScopesAndDisposesAttachedEffects(t *testing.T) {
	parent := NewScope()
	var child *EffectScope
	var e *Effect

	parent.Run(func() {
		child = NewScope()
		e = NewEffect(func() {})
		parent.Attach(e)
	})

	require.Len(t, parent.snapshotChildren(), 1)
	assert.Same(t, child, parent.snapshotChildren()[0])

	disposed := false
	require.NoError(t, e.OnDispose(func() { disposed = true }))
	parent.Dispose()
	assert.True(t, disposed, "disposing a scope must dispose the effects attached to it")
}

func TestScope_Detached(t *testing.T) {
	parent := NewScope()
	var detached *EffectScope
	parent.Run(func() {
		detached = NewScope(Detached())
	})
	assert.Empty(t, parent.snapshotChildren(), "a Detached() scope must not auto-attach")

	// Detached scopes are independently disposable.
	disposedSelf := false
	detached.Run(func() { OnScopeDispose(func() { disposedSelf = true }) })
	detached.Dispose()
	assert.True(t, disposedSelf)
}

func TestScope_PauseResumeCascadesToChildrenAndEffects(t *testing.T) {
	parent := NewScope()
	calls := 0
	var e *Effect
	parent.Run(func() {
		e = NewEffect(func() { calls++ })
		parent.Attach(e)
	})

	e.Notify()
	assert.Equal(t, 1, calls)

	parent.Pause()
	e.Notify()
	assert.Equal(t, 1, calls, "pausing the scope must pause its attached effects")

	parent.Resume()
	e.Notify()
	assert.Equal(t, 2, calls)
}

func TestScope_OnScopePauseAndResumeCallbacks(t *testing.T) {
	s := NewScope()
	var pausedCount, resumedCount int
	s.Run(func() {
		OnScopePause(func() { pausedCount++ })
		OnScopeResume(func() { resumedCount++ })
	})

	s.Pause()
	assert.Equal(t, 1, pausedCount)
	assert.Equal(t, 0, resumedCount)

	s.Resume()
	assert.Equal(t, 1, pausedCount)
	assert.Equal(t, 1, resumedCount)
}

func TestScope_OnScopeDisposeWithNoActiveScopeIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		OnScopeDispose(func() { t.Fatal("must never run: no scope was active") })
	})
}

func TestScope_DisposeIsIdempotentAndDetachesFromParent(t *testing.T) {
	parent := NewScope()
	var child *EffectScope
	parent.Run(func() { child = NewScope() })

	child.Dispose()
	assert.Empty(t, parent.snapshotChildren(), "disposing a child must remove it from its parent")

	assert.NotPanics(t, func() { child.Dispose() }, "disposing twice must be safe")
}

func TestScope_HandleErrorFallsBackToParentThenLog(t *testing.T) {
	var gotErr error
	parent := NewScope(WithScopeErrorHandler(func(err error, source Source) { gotErr = err }))
	var child *EffectScope
	parent.Run(func() { child = NewScope() })

	child.HandleError(Wrap(SourceUpdate, ErrIllegalState), SourceUpdate)
	assert.Error(t, gotErr, "a child scope without its own handler must fall back to its parent's")
}

func TestScope_GetCurrentScope(t *testing.T) {
	assert.Nil(t, GetCurrentScope())
	s := NewScope()
	var observed *EffectScope
	s.Run(func() { observed = GetCurrentScope() })
	assert.Same(t, s, observed)
	assert.Nil(t, GetCurrentScope(), "the active scope must be restored after Run returns")
}
