package reactivity

import (
	"sync"

	"github.com/petermattis/goid"
)

// EffectScope is a container owning a doubly-linked list of effects, for
// O(1) attach/detach, plus child scopes (spec.md §4.4). A scope is itself
// disposable/pausable, and nests: disposing a parent cascades to children.
type EffectScope struct {
	id uint64

	mu       sync.Mutex
	head     *Effect
	children []*EffectScope
	parent   *EffectScope
	detached bool

	onError      ErrorHandler
	disposed     bool
	disposeCbs   []func()
	pauseCbs     []func()
	resumeCbs    []func()
}

// ScopeOption configures a scope at construction.
type ScopeOption func(*EffectScope)

// Detached marks a scope as not auto-attaching to whatever scope is
// active when it is created, even when nested inside a Run call.
func Detached() ScopeOption {
	return func(s *EffectScope) { s.detached = true }
}

// WithScopeErrorHandler installs the handler invoked for errors escaping
// child effects that do not handle their own.
func WithScopeErrorHandler(h ErrorHandler) ScopeOption {
	return func(s *EffectScope) { s.onError = h }
}

// NewScope constructs a scope. If a scope is currently active on this
// goroutine and the new scope is not Detached(), it auto-attaches as a
// child of the active scope.
func NewScope(opts ...ScopeOption) *EffectScope {
	s := &EffectScope{id: nextSignalID()}
	for _, opt := range opts {
		opt(s)
	}
	if !s.detached {
		if parent := currentScope(); parent != nil {
			parent.addChild(s)
		}
	}
	return s
}

// ID returns the scope's identity.
func (s *EffectScope) ID() uint64 { return s.id }

var scopeStacks sync.Map // map[int64][]*EffectScope

func scopeStack() []*EffectScope {
	gid := goid.Get()
	v, _ := scopeStacks.Load(gid)
	stack, _ := v.([]*EffectScope)
	return stack
}

func pushScope(s *EffectScope) {
	gid := goid.Get()
	scopeStacks.Store(gid, append(scopeStack(), s))
}

func popScope() {
	gid := goid.Get()
	stack := scopeStack()
	if len(stack) == 0 {
		return
	}
	scopeStacks.Store(gid, stack[:len(stack)-1])
}

// currentScope returns the scope active on the calling goroutine, or nil.
func currentScope() *EffectScope {
	stack := scopeStack()
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// GetCurrentScope exposes currentScope as part of the public API surface
// (spec.md §6: getCurrentScope).
func GetCurrentScope() *EffectScope { return currentScope() }

// Run sets s as the active scope for the duration of fn; child scopes
// created inside fn auto-attach to s unless Detached. Effects attach only
// through Attach: the watch-family constructors call it for the active
// scope, NewEffect and NewTrackedEffect do not.
func (s *EffectScope) Run(fn func()) {
	pushScope(s)
	defer popScope()
	fn()
}

func (s *EffectScope) addChild(child *EffectScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	child.parent = s
	s.children = append(s.children, child)
}

// Attach registers e as owned by s, inserting it at the head of the
// scope's effect list.
func (s *EffectScope) Attach(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.scope = s
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
}

// detach removes e from the scope's linked list. Called by Effect.Dispose.
func (s *EffectScope) detach(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.prev != nil {
		e.prev.next = e.next
	} else if s.head == e {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev, e.next = nil, nil
}

// HandleError routes err from a child effect through the scope's error
// handler, falling back to the parent scope, then to the debug log.
func (s *EffectScope) HandleError(err error, source Source) {
	s.mu.Lock()
	handler := s.onError
	parent := s.parent
	s.mu.Unlock()
	if handler != nil {
		handler(err, source)
		return
	}
	if parent != nil {
		parent.HandleError(err, source)
		return
	}
	Logf("unhandled scope error: %v", err)
}

// OnScopeDispose registers fn to run when the scope (or an ancestor) is
// disposed — the public onScopeDispose primitive (spec.md §6), attached to
// the currently active scope.
func OnScopeDispose(fn func()) {
	s := currentScope()
	if s == nil {
		return
	}
	s.mu.Lock()
	s.disposeCbs = append(s.disposeCbs, fn)
	s.mu.Unlock()
}

// OnScopePause registers fn to run when the currently active scope (or an
// ancestor) is paused (spec.md §6: onScopePause).
func OnScopePause(fn func()) {
	s := currentScope()
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pauseCbs = append(s.pauseCbs, fn)
	s.mu.Unlock()
}

// OnScopeResume registers fn to run when the currently active scope (or an
// ancestor) is resumed (spec.md §6: onScopeResume).
func OnScopeResume(fn func()) {
	s := currentScope()
	if s == nil {
		return
	}
	s.mu.Lock()
	s.resumeCbs = append(s.resumeCbs, fn)
	s.mu.Unlock()
}

// Pause cascades to every effect and child scope currently attached, then
// runs this scope's own onScopePause callbacks.
func (s *EffectScope) Pause() {
	s.walk(func(e *Effect) { _ = e.Pause() })
	for _, c := range s.snapshotChildren() {
		c.Pause()
	}
	s.mu.Lock()
	cbs := s.pauseCbs
	s.mu.Unlock()
	for _, cb := range cbs {
		runProtected(cb, s.onError, SourceUpdate)
	}
}

// Resume cascades to every effect and child scope currently attached, then
// runs this scope's own onScopeResume callbacks.
func (s *EffectScope) Resume() {
	s.walk(func(e *Effect) { _ = e.Resume() })
	for _, c := range s.snapshotChildren() {
		c.Resume()
	}
	s.mu.Lock()
	cbs := s.resumeCbs
	s.mu.Unlock()
	for _, cb := range cbs {
		runProtected(cb, s.onError, SourceUpdate)
	}
}

// Dispose transitively disposes every effect created while s was active
// and every child scope attached to it (spec.md §8 testable property),
// then runs the scope's own onScopeDispose callbacks in registration
// order.
func (s *EffectScope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cbs := s.disposeCbs
	s.disposeCbs = nil
	s.mu.Unlock()

	for _, c := range s.snapshotChildren() {
		c.Dispose()
	}
	s.walk(func(e *Effect) { e.Dispose() })

	for _, cb := range cbs {
		runProtected(cb, s.onError, SourceDispose)
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}
}

func (s *EffectScope) removeChild(child *EffectScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
}

func (s *EffectScope) snapshotChildren() []*EffectScope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*EffectScope, len(s.children))
	copy(out, s.children)
	return out
}

// walk snapshots the current effect list before invoking fn on each, since
// fn (Dispose/Pause/Resume) mutates the list via detach.
func (s *EffectScope) walk(fn func(*Effect)) {
	s.mu.Lock()
	var snapshot []*Effect
	for e := s.head; e != nil; e = e.next {
		snapshot = append(snapshot, e)
	}
	s.mu.Unlock()
	for _, e := range snapshot {
		fn(e)
	}
}
