package reactivity

import (
	"reflect"
	"sort"
	"strconv"
)

// Array-mutator support for Reactive wrapping a pointer to a slice
// (spec.md §4.6: "array mutators (push/pop/splice/reverse/sort/shift/
// unshift/fill) notify once per call with the set of affected keys and
// length"). Go has no operator overloading for index assignment on a
// reflect.Value obtained through an interface, so every mutator below
// takes the lock, mutates r.rv in place (it is addressable because it is
// the Elem() of the pointer NewReactive was given), drops any cached
// child proxies whose index may now refer to a different element, and
// notifies once with the union of touched indices plus "length".

func (r *Reactive) requireSlice(op string) bool {
	if r.rv.Kind() != reflect.Slice {
		Warnf("reactive: %s called on non-slice target", op)
		return false
	}
	if r.ro {
		Warnf("reactive: %s ignored on readonly proxy", op)
		return false
	}
	return true
}

// invalidateChildren drops every cached child proxy; used by mutators that
// can shift element positions (splice, shift, unshift, reverse, sort).
func (r *Reactive) invalidateChildren() {
	r.children = nil
}

func (r *Reactive) notifyLength(extra ...string) {
	keys := append(append([]string(nil), extra...), "length")
	r.subs.Notify(r.id, keys)
}

// Len returns the slice length without tracking (use Get("length") to
// track).
func (r *Reactive) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rv.Kind() != reflect.Slice {
		return 0
	}
	return r.rv.Len()
}

// Push appends values to the end, notifying once with "length".
func (r *Reactive) Push(values ...any) int {
	r.mu.Lock()
	if !r.requireSlice("push") {
		r.mu.Unlock()
		return 0
	}
	elemType := r.rv.Type().Elem()
	next := r.rv
	for _, v := range values {
		next = reflect.Append(next, coerce(v, elemType))
	}
	r.rv.Set(next)
	n := r.rv.Len()
	r.mu.Unlock()
	r.notifyLength()
	return n
}

// Pop removes and returns the last element, or (nil, false) if empty.
func (r *Reactive) Pop() (any, bool) {
	r.mu.Lock()
	if !r.requireSlice("pop") || r.rv.Len() == 0 {
		r.mu.Unlock()
		return nil, false
	}
	last := r.rv.Index(r.rv.Len() - 1).Interface()
	r.rv.Set(r.rv.Slice(0, r.rv.Len()-1))
	delete(r.children, strconv.Itoa(r.rv.Len()))
	r.mu.Unlock()
	r.notifyLength()
	return last, true
}

// Shift removes and returns the first element, or (nil, false) if empty.
func (r *Reactive) Shift() (any, bool) {
	r.mu.Lock()
	if !r.requireSlice("shift") || r.rv.Len() == 0 {
		r.mu.Unlock()
		return nil, false
	}
	first := r.rv.Index(0).Interface()
	r.rv.Set(r.rv.Slice(1, r.rv.Len()))
	r.invalidateChildren()
	r.mu.Unlock()
	r.notifyLength()
	return first, true
}

// Unshift prepends values to the front, notifying once with "length".
func (r *Reactive) Unshift(values ...any) int {
	r.mu.Lock()
	if !r.requireSlice("unshift") {
		r.mu.Unlock()
		return 0
	}
	elemType := r.rv.Type().Elem()
	prefix := reflect.MakeSlice(r.rv.Type(), 0, len(values)+r.rv.Len())
	for _, v := range values {
		prefix = reflect.Append(prefix, coerce(v, elemType))
	}
	next := reflect.AppendSlice(prefix, r.rv)
	r.rv.Set(next)
	n := r.rv.Len()
	r.invalidateChildren()
	r.mu.Unlock()
	r.notifyLength()
	return n
}

// Splice removes `count` elements starting at `start` and inserts
// `inserted` in their place, mirroring JS Array.prototype.splice; it
// notifies once with "length" plus the indices from start to the new end.
func (r *Reactive) Splice(start, count int, inserted ...any) []any {
	r.mu.Lock()
	if !r.requireSlice("splice") {
		r.mu.Unlock()
		return nil
	}
	n := r.rv.Len()
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if count < 0 {
		count = 0
	}
	end := start + count
	if end > n {
		end = n
	}

	removed := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		removed = append(removed, r.rv.Index(i).Interface())
	}

	elemType := r.rv.Type().Elem()
	head := r.rv.Slice(0, start)
	tail := r.rv.Slice(end, n)
	next := reflect.MakeSlice(r.rv.Type(), 0, start+len(inserted)+(n-end))
	next = reflect.AppendSlice(next, head)
	for _, v := range inserted {
		next = reflect.Append(next, coerce(v, elemType))
	}
	next = reflect.AppendSlice(next, tail)
	r.rv.Set(next)
	r.invalidateChildren()
	r.mu.Unlock()

	keys := make([]string, 0, len(removed)+len(inserted)+1)
	for i := start; i < start+len(inserted) || i < end; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	r.notifyLength(keys...)
	return removed
}

// Reverse reverses the slice in place, notifying once (no index set beyond
// "length" since every index potentially changed).
func (r *Reactive) Reverse() {
	r.mu.Lock()
	if !r.requireSlice("reverse") {
		r.mu.Unlock()
		return
	}
	n := r.rv.Len()
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		vi := r.rv.Index(i).Interface()
		vj := r.rv.Index(j).Interface()
		r.rv.Index(i).Set(reflect.ValueOf(vj))
		r.rv.Index(j).Set(reflect.ValueOf(vi))
	}
	r.invalidateChildren()
	r.mu.Unlock()
	r.notifyLength()
}

// Sort sorts the slice in place using less, notifying once.
func (r *Reactive) Sort(less func(a, b any) bool) {
	r.mu.Lock()
	if !r.requireSlice("sort") {
		r.mu.Unlock()
		return
	}
	n := r.rv.Len()
	values := make([]any, n)
	for i := 0; i < n; i++ {
		values[i] = r.rv.Index(i).Interface()
	}
	sort.SliceStable(values, func(i, j int) bool { return less(values[i], values[j]) })
	for i, v := range values {
		r.rv.Index(i).Set(reflect.ValueOf(v))
	}
	r.invalidateChildren()
	r.mu.Unlock()
	r.notifyLength()
}

// Fill overwrites every index in [start, end) with value, notifying once
// with the affected indices.
func (r *Reactive) Fill(value any, start, end int) {
	r.mu.Lock()
	if !r.requireSlice("fill") {
		r.mu.Unlock()
		return
	}
	n := r.rv.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	elemType := r.rv.Type().Elem()
	coerced := coerce(value, elemType)
	keys := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r.rv.Index(i).Set(coerced)
		keys = append(keys, strconv.Itoa(i))
	}
	r.invalidateChildren()
	r.mu.Unlock()
	r.notifyLength(keys...)
}

// coerce converts v to a reflect.Value assignable to t, handling the
// common case where callers pass boxed `any` for a concretely typed slice
// element.
func coerce(v any, t reflect.Type) reflect.Value {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Zero(t)
	}
	if rv.Type().AssignableTo(t) {
		return rv
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t)
	}
	return rv
}
