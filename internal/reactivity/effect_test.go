package reactivity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffect_NotifyRunsBodyOnlyWhenActive(t *testing.T) {
	calls := 0
	e := NewEffect(func() { calls++ })

	assert.Equal(t, 0, calls, "constructing an effect must not run its body")

	e.Notify()
	assert.Equal(t, 1, calls)

	require.NoError(t, e.Pause())
	e.Notify()
	assert.Equal(t, 1, calls, "a paused effect must ignore notifications")

	require.NoError(t, e.Resume())
	e.Notify()
	assert.Equal(t, 2, calls)
}

func TestEffect_PauseResumeIllegalTransitions(t *testing.T) {
	e := NewEffect(func() {})

	assert.ErrorIs(t, e.Resume(), ErrIllegalState, "resuming an active effect is illegal")

	require.NoError(t, e.Pause())
	assert.ErrorIs(t, e.Pause(), ErrIllegalState, "pausing an already-paused effect is illegal")

	e.Dispose()
	assert.ErrorIs(t, e.Pause(), ErrIllegalState, "a disposed effect can never transition again")
}

func TestEffect_DisposeRunsCallbacksAndIsIdempotent(t *testing.T) {
	e := NewEffect(func() {})
	runs := 0
	require.NoError(t, e.OnDispose(func() { runs++ }))

	e.Dispose()
	assert.Equal(t, 1, runs)

	e.Dispose()
	assert.Equal(t, 1, runs, "disposing twice must not re-run callbacks")

	assert.ErrorIs(t, e.OnDispose(func() {}), ErrUseAfterDispose)
}

func TestEffect_NotifyAfterDisposeIsNoOp(t *testing.T) {
	calls := 0
	e := NewEffect(func() { calls++ })
	e.Notify()
	require.Equal(t, 1, calls)

	e.Dispose()
	e.Notify()
	assert.Equal(t, 1, calls)
}

func TestEffect_PanicIsRoutedToErrorHandler(t *testing.T) {
	var gotErr error
	var gotSource Source
	e := NewEffect(func() { panic("boom") })
	e.SetErrorHandler(func(err error, source Source) {
		gotErr = err
		gotSource = source
	})

	assert.NotPanics(t, func() { e.Notify() })
	require.Error(t, gotErr)
	assert.Equal(t, SourceTrigger, gotSource)
}

func TestEffect_DisposeCallbackPanicDoesNotSkipOthers(t *testing.T) {
	e := NewEffect(func() {})
	second := false
	require.NoError(t, e.OnDispose(func() { panic(errors.New("first callback blew up")) }))
	require.NoError(t, e.OnDispose(func() { second = true }))

	assert.NotPanics(t, func() { e.Dispose() })
	assert.True(t, second, "a panicking dispose callback must not prevent later ones from running")
}
