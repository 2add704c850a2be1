package reactivity

import "sync"

// EffectState is one of the three states in the Effect state machine
// described in spec.md §4.4.
type EffectState int

const (
	EffectActive EffectState = iota
	EffectPaused
	EffectDeprecated
)

// ErrorHandler receives an error escaping an effect callback together with
// the source tag identifying which phase produced it.
type ErrorHandler func(err error, source Source)

// Effect is a cancellable, pause/resumable unit of work. It is the base
// building block both EffectScope and Subscriber are built on top of.
type Effect struct {
	id uint64

	mu    sync.Mutex
	state EffectState

	run     func()
	onError ErrorHandler

	disposeCbs []func()
	scope      *EffectScope

	// list linkage inside the owning scope's doubly-linked effect list.
	prev, next *Effect
}

// NewEffect constructs an Effect whose body is run. run is never invoked by
// the constructor; callers decide when to first execute it (immediately,
// or lazily via a scheduler job).
func NewEffect(run func()) *Effect {
	return &Effect{
		id:    nextSignalID(),
		state: EffectActive,
		run:   run,
	}
}

// ID returns the effect's identity; effects double as scheduler job keys.
func (e *Effect) ID() uint64 { return e.id }

// SubID satisfies Subscriber.
func (e *Effect) SubID() uint64 { return e.id }

// State returns the effect's current lifecycle state.
func (e *Effect) State() EffectState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetErrorHandler installs the handler invoked when Run's body panics or
// returns control to a dispose callback that panics.
func (e *Effect) SetErrorHandler(h ErrorHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = h
}

// OnDispose registers fn to run when the effect is disposed. Registering
// after the effect has reached EffectDeprecated fails with
// ErrUseAfterDispose (spec.md §4.4: "addCallback after deprecated fails").
func (e *Effect) OnDispose(fn func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == EffectDeprecated {
		return Wrap(SourceDispose, ErrUseAfterDispose)
	}
	e.disposeCbs = append(e.disposeCbs, fn)
	return nil
}

// Notify runs the effect's body if it is active. Paused or deprecated
// effects ignore notifications, matching the discipline "pause cascades
// and suppresses reruns" without disposing subscriptions.
func (e *Effect) Notify() {
	e.mu.Lock()
	state := e.state
	run := e.run
	handler := e.onError
	e.mu.Unlock()
	if state != EffectActive || run == nil {
		return
	}
	runProtected(run, handler, SourceTrigger)
}

// Pause transitions active → paused. Invalid from paused or deprecated
// (spec.md §4.4), returning ErrIllegalState.
func (e *Effect) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != EffectActive {
		return Wrap(SourceUpdate, ErrIllegalState)
	}
	e.state = EffectPaused
	return nil
}

// Resume transitions paused → active. Invalid unless currently paused.
func (e *Effect) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != EffectPaused {
		return Wrap(SourceUpdate, ErrIllegalState)
	}
	e.state = EffectActive
	return nil
}

// Dispose transitions the effect to EffectDeprecated (terminal) and runs
// dispose callbacks in registration order. An exception in one callback
// does not prevent the others; each is routed to the error handler with
// source "dispose".
func (e *Effect) Dispose() {
	e.mu.Lock()
	if e.state == EffectDeprecated {
		e.mu.Unlock()
		return
	}
	e.state = EffectDeprecated
	cbs := e.disposeCbs
	e.disposeCbs = nil
	handler := e.onError
	scope := e.scope
	e.mu.Unlock()

	for _, cb := range cbs {
		runProtected(cb, handler, SourceDispose)
	}
	if scope != nil {
		scope.detach(e)
	}
}

// runProtected invokes fn, recovering any panic and routing it to handler
// (or, absent one, to the package-level debug log) tagged with source.
// This is the Go equivalent of the teacher's safelyRunEffect pattern.
func runProtected(fn func(), handler ErrorHandler, source Source) {
	defer func() {
		if r := recover(); r != nil {
			err := Wrap(source, AsPanic(r))
			if handler != nil {
				handler(err, source)
			} else {
				Logf("unhandled effect error: %v", err)
			}
		}
	}()
	fn()
}
