package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reactivePerson struct {
	Name string
	Age  int
}

func TestReactive_MapGetSetTracksAndNotifies(t *testing.T) {
	tracker := NewTracker()
	subs := NewSubscriptionManager()
	target := map[string]any{"count": 1}
	r := NewReactiveIn(tracker, subs, target)

	_, deps := Collect(tracker, Shared, func() int {
		r.Get("count")
		return 0
	})
	require.Contains(t, deps, r.ID())
	assert.Contains(t, deps[r.ID()], "count")

	notified := false
	sub := &recordingSubscriber{id: 1, onNotify: func() { notified = true }}
	r.Subscribe("count", sub, false)
	r.Set("count", 2)
	assert.True(t, notified)
	assert.Equal(t, 2, target["count"])
}

func TestReactive_SetEqualValueDoesNotNotify(t *testing.T) {
	target := map[string]any{"count": 1}
	r := NewReactive(target)
	sub := &countingSub{id: 1}
	r.Subscribe("count", sub, false)

	r.Set("count", 1)
	assert.Equal(t, 0, sub.count)
}

func TestReactive_IdentityCacheReturnsSameInstance(t *testing.T) {
	target := &reactivePerson{Name: "Ada", Age: 30}
	a := NewReactive(target)
	b := NewReactive(target)
	assert.Same(t, a, b, "wrapping the same pointer twice must return the same proxy")
}

func TestReactive_NestedGetReturnsSameChildProxy(t *testing.T) {
	inner := map[string]any{"x": 1}
	outer := map[string]any{"inner": inner}
	r := NewReactive(outer)

	first := r.Get("inner")
	second := r.Get("inner")
	assert.Same(t, first, second, "repeated Get of the same nested value must return the same child proxy")
}

func TestReactive_ShallowDoesNotWrapNested(t *testing.T) {
	inner := map[string]any{"x": 1}
	outer := map[string]any{"inner": inner}
	r := NewReactive(outer, Shallow())

	v := r.Get("inner")
	_, isReactive := v.(*Reactive)
	assert.False(t, isReactive, "a shallow proxy must return nested values raw")
}

func TestReactive_ReadonlyRejectsWrites(t *testing.T) {
	target := map[string]any{"count": 1}
	r := NewReactive(target, Readonly())
	sub := &countingSub{id: 1}
	r.Subscribe("count", sub, false)

	r.Set("count", 99)
	assert.Equal(t, 1, target["count"], "a readonly proxy must not mutate the underlying target")
	assert.Equal(t, 0, sub.count)
}

func TestReactive_StructFieldGetSet(t *testing.T) {
	target := &reactivePerson{Name: "Ada", Age: 30}
	r := NewReactive(target)

	assert.Equal(t, "Ada", r.Get("Name"))
	r.Set("Age", 31)
	assert.Equal(t, 31, target.Age)
}

func TestReactive_DeleteNotifiesOnlyWhenKeyExisted(t *testing.T) {
	target := map[string]any{"a": 1}
	r := NewReactive(target)
	sub := &countingSub{id: 1}
	r.Subscribe("a", sub, false)
	r.Subscribe("missing", sub, false)

	r.Delete("missing")
	assert.Equal(t, 0, sub.count)

	r.Delete("a")
	assert.Equal(t, 1, sub.count)
	_, exists := target["a"]
	assert.False(t, exists)
}

func TestReactive_Keys(t *testing.T) {
	target := map[string]any{"a": 1, "b": 2}
	r := NewReactive(target)
	assert.ElementsMatch(t, []string{"a", "b"}, r.Keys())
}
