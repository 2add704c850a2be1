package reactivity

import (
	"reflect"
	"strconv"
	"sync"
)

// Reactive is a deep reactive wrapper over a Go map, struct pointer, or
// slice pointer. Go has no dynamic proxy/trap mechanism, so instead of
// intercepting arbitrary field access (design note §9.a in the upstream
// spec) Reactive exposes an explicit Get/Set/Delete surface, the "arena of
// cells indexed by path" alternative the design notes call out: each
// (target, key) pair is tracked/notified exactly like a ValueRef, and
// nested maps/structs/slices are wrapped lazily and cached so repeated
// reads of the same nested value return the same *Reactive (spec.md §3:
// "same target ↔ same proxy").
type Reactive struct {
	id       uint64
	mu       sync.Mutex
	rv       reflect.Value // addressable value: map, or Elem() of a struct/slice pointer
	shallow  bool
	ro       bool
	tracker  *Tracker
	subs     *SubscriptionManager
	children map[string]*Reactive
}

var reactiveCache sync.Map // map[uintptr]*Reactive, keyed by target pointer identity

// ReactiveOption configures a Reactive at construction.
type ReactiveOption func(*Reactive)

// Shallow disables deep wrapping: nested values are returned raw.
func Shallow() ReactiveOption { return func(r *Reactive) { r.shallow = true } }

// Readonly marks the proxy as rejecting writes (spec.md §4.6).
func Readonly() ReactiveOption { return func(r *Reactive) { r.ro = true } }

// NewReactive wraps target (a non-nil pointer to a struct or slice, or a
// map) in a Reactive proxy bound to the process-wide tracker/subscription
// manager. Calling NewReactive twice on the same target pointer returns
// the same instance (the identity-cache invariant). A target marked with
// MarkRaw is still wrapped here; the mark only stops Get from wrapping it
// as a nested child.
func NewReactive(target any, opts ...ReactiveOption) *Reactive {
	return NewReactiveIn(Default(), DefaultSubscriptions(), target, opts...)
}

// NewReactiveIn wraps target bound to an explicit tracker/subscription
// pair.
func NewReactiveIn(tracker *Tracker, subs *SubscriptionManager, target any, opts ...ReactiveOption) *Reactive {
	key := identityOf(target)
	if key != 0 {
		if v, ok := reactiveCache.Load(key); ok {
			return v.(*Reactive)
		}
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	r := &Reactive{
		id:      nextSignalID(),
		rv:      rv,
		tracker: tracker,
		subs:    subs,
	}
	for _, opt := range opts {
		opt(r)
	}
	if key != 0 {
		reactiveCache.Store(key, r)
	}
	return r
}

func identityOf(target any) uintptr {
	rv := reflect.ValueOf(target)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map:
		return rv.Pointer()
	default:
		return 0
	}
}

// ID returns the proxy's own signal identity, used as the subscription key
// namespace for this object's fields.
func (r *Reactive) ID() uint64 { return r.id }

func (r *Reactive) target() any { return r.rv.Interface() }
func (r *Reactive) readonly() bool { return r.ro }

// Raw returns the underlying target, equivalent to ToRaw(r).
func (r *Reactive) Raw() any { return r.target() }

// Keys returns the set of accessible keys: map keys, or exported struct
// field names.
func (r *Reactive) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.rv.Kind() {
	case reflect.Map:
		out := make([]string, 0, r.rv.Len())
		for _, k := range r.rv.MapKeys() {
			out = append(out, k.String())
		}
		return out
	case reflect.Struct:
		t := r.rv.Type()
		out := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				out = append(out, t.Field(i).Name)
			}
		}
		return out
	case reflect.Slice:
		out := make([]string, 0, r.rv.Len())
		for i := 0; i < r.rv.Len(); i++ {
			out = append(out, strconv.Itoa(i))
		}
		return out
	}
	return nil
}

// Get tracks and returns the value at key, wrapping nested maps/structs/
// slice pointers into a cached child Reactive unless the proxy is shallow
// or the value is marked raw.
func (r *Reactive) Get(key string) any {
	r.tracker.Track(r.id, key)

	r.mu.Lock()
	defer r.mu.Unlock()
	if key == "length" && r.rv.Kind() == reflect.Slice {
		return r.rv.Len()
	}
	v := r.fieldValue(key)
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
		if !v.IsValid() {
			return nil
		}
	}
	raw := v.Interface()
	if r.shallow || IsMarkedRaw(raw) {
		return raw
	}
	if !isWrappable(v) {
		return raw
	}
	if child, ok := r.children[key]; ok {
		return child
	}
	child := NewReactiveIn(r.tracker, r.subs, addressable(v))
	if r.ro {
		child.ro = true
	}
	if r.children == nil {
		r.children = map[string]*Reactive{}
	}
	r.children[key] = child
	return child
}

func isWrappable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Ptr:
		return !v.IsNil()
	}
	return false
}

// addressable returns a pointer-shaped value Reactive can re-wrap: maps
// pass through, pointers pass through.
func addressable(v reflect.Value) any {
	return v.Interface()
}

func (r *Reactive) fieldValue(key string) reflect.Value {
	switch r.rv.Kind() {
	case reflect.Map:
		v := r.rv.MapIndex(reflect.ValueOf(key))
		return v
	case reflect.Struct:
		return r.rv.FieldByName(key)
	case reflect.Slice:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= r.rv.Len() {
			return reflect.Value{}
		}
		return r.rv.Index(i)
	}
	return reflect.Value{}
}

// Set writes key to value, notifying subscribers of (id, key) if the new
// value differs from the current one under Object.is-style comparison for
// float64 values (NaN equals NaN, -0 differs from +0) and == otherwise. A
// readonly proxy rejects the write and emits a development warning instead
// of mutating the underlying target (spec.md §4.6).
func (r *Reactive) Set(key string, value any) {
	if r.ro {
		Warnf("reactive: write to readonly key %q ignored", key)
		return
	}

	r.mu.Lock()
	old := r.fieldValue(key)
	changed := !old.IsValid()
	if !changed {
		ov := old.Interface()
		of, oldIsFloat := ov.(float64)
		nf, newIsFloat := value.(float64)
		if oldIsFloat && newIsFloat {
			changed = !defaultEqual(of, nf)
		} else {
			changed = !safeEqual(ov, value)
		}
	}
	switch r.rv.Kind() {
	case reflect.Map:
		r.rv.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(value))
	case reflect.Struct:
		f := r.rv.FieldByName(key)
		if f.IsValid() && f.CanSet() {
			f.Set(reflect.ValueOf(value))
		}
	case reflect.Slice:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < r.rv.Len() {
			r.rv.Index(i).Set(reflect.ValueOf(value))
		}
	}
	delete(r.children, key)
	r.mu.Unlock()

	if changed {
		r.subs.Notify(r.id, []string{key})
	}
}

// Delete removes key (map targets only) and, when the key existed,
// notifies subscribers of that key; no other key is notified.
func (r *Reactive) Delete(key string) {
	if r.ro {
		Warnf("reactive: delete of readonly key %q ignored", key)
		return
	}
	r.mu.Lock()
	if r.rv.Kind() != reflect.Map {
		r.mu.Unlock()
		return
	}
	_, existed := mapLookup(r.rv, key)
	r.rv.SetMapIndex(reflect.ValueOf(key), reflect.Value{})
	delete(r.children, key)
	r.mu.Unlock()
	if existed {
		r.subs.Notify(r.id, []string{key})
	}
}

func mapLookup(rv reflect.Value, key string) (reflect.Value, bool) {
	v := rv.MapIndex(reflect.ValueOf(key))
	return v, v.IsValid()
}

// Subscribe registers sub against a specific key on this proxy (used by
// watchProperty).
func (r *Reactive) Subscribe(key string, sub Subscriber, weak bool) {
	r.subs.Add(r.id, key, sub, weak)
}
