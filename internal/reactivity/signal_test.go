package reactivity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRef_TrackAndNotify verifies that reading a ref inside a collector
// frame records it as a dependency, and writing a new value notifies the
// subscribers registered against it.
func TestRef_TrackAndNotify(t *testing.T) {
	tracker := NewTracker()
	subs := NewSubscriptionManager()
	r := NewRefIn(tracker, subs, 1)

	_, deps := Collect(tracker, Shared, func() struct{} {
		r.Value()
		return struct{}{}
	})
	require.Contains(t, deps, r.ID())
	assert.Contains(t, deps[r.ID()], "value")

	notified := false
	sub := &recordingSubscriber{id: 99, onNotify: func() { notified = true }}
	r.Subscribe(sub, false)

	r.Set(2)
	assert.True(t, notified, "writing a new value should notify subscribers")
}

// TestRef_SetEqualValueNoNotify checks the no-op-on-equal-write rule: a
// write of a value Object.is-equal to the current one never notifies.
func TestRef_SetEqualValueNoNotify(t *testing.T) {
	r := NewRef(5)
	sub := &recordingSubscriber{id: 1}
	r.Subscribe(sub, false)

	r.Set(5)
	assert.Equal(t, 0, sub.notifyCount)

	r.Set(6)
	assert.Equal(t, 1, sub.notifyCount)
}

// TestRef_NaNEquality mirrors spec.md's Object.is semantics: NaN is
// treated as equal to NaN (no notification), but +0/-0 are distinct.
func TestRef_NaNEquality(t *testing.T) {
	r := NewRef(math.NaN())
	sub := &recordingSubscriber{id: 1}
	r.Subscribe(sub, false)

	r.Set(math.NaN())
	assert.Equal(t, 0, sub.notifyCount, "NaN written over NaN must not notify")

	zero := NewRef(0.0)
	zsub := &recordingSubscriber{id: 2}
	zero.Subscribe(zsub, false)
	zero.Set(math.Copysign(0, -1))
	assert.Equal(t, 1, zsub.notifyCount, "+0 and -0 must be distinguished")
}

// TestRef_Peek verifies Peek reads without tracking.
func TestRef_Peek(t *testing.T) {
	tracker := NewTracker()
	subs := NewSubscriptionManager()
	r := NewRefIn(tracker, subs, "hello")

	_, deps := Collect(tracker, Shared, func() struct{} {
		r.Peek()
		return struct{}{}
	})
	assert.Empty(t, deps, "Peek must not register a dependency")
}

// TestRef_SetAny verifies the type-erased write path used by code (e.g.
// props) that only holds the ref behind an any-typed field.
func TestRef_SetAny(t *testing.T) {
	r := NewRef(10)
	r.SetAny(20)
	assert.Equal(t, 20, r.Peek())
}

// recordingSubscriber is a minimal Subscriber test double.
type recordingSubscriber struct {
	id          uint64
	notifyCount int
	onNotify    func()
}

func (s *recordingSubscriber) SubID() uint64 { return s.id }
func (s *recordingSubscriber) Notify() {
	s.notifyCount++
	if s.onNotify != nil {
		s.onNotify()
	}
}
