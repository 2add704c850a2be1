package component

import "github.com/vireoui/vireo/internal/reactivity"

// PropValue is whatever a parent passes for one prop: a plain value, a
// *reactivity.ValueRef[T], or a *reactivity.Computed[T] — anything
// reactivity.Unref understands.
type PropValue = any

// UpdateHandler is the onUpdate:<key> callback a parent supplies for a
// two-way-bound prop (spec.md §4.9 "two-way binding").
type UpdateHandler func(next any)

// Props is the read proxy a component's setup function receives: reading a
// key unwraps refs transparently and tracks, so a render effect that reads
// props.Get("count") reruns when the parent's source ref changes, exactly
// like reading a plain signal.
type Props struct {
	values   map[string]PropValue
	updaters map[string]UpdateHandler
}

// NewProps builds a Props proxy from the values a parent declared and the
// onUpdate:<key> handlers it registered for any two-way-bound ones.
func NewProps(values map[string]PropValue, updaters map[string]UpdateHandler) *Props {
	if values == nil {
		values = map[string]PropValue{}
	}
	if updaters == nil {
		updaters = map[string]UpdateHandler{}
	}
	return &Props{values: values, updaters: updaters}
}

// Get reads key, unwrapping a ref/computed source and tracking it so a
// caller running inside a reactive effect reruns on change.
func (p *Props) Get(key string) any {
	v, ok := p.values[key]
	if !ok {
		return nil
	}
	return reactivity.Unref(v)
}

// Has reports whether key was declared by the parent, independent of
// whether its current value is nil.
func (p *Props) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys lists the declared prop names.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	return keys
}

// Set writes through a two-way-bound prop: if the parent passed a ref for
// key, the ref is written directly (so the parent's own reads update);
// regardless, the registered onUpdate:<key> handler (if any) is invoked so
// a parent binding via a plain value + handler still observes the write.
func (p *Props) Set(key string, next any) {
	if raw, ok := p.values[key]; ok {
		if ref, ok := raw.(interface{ SetAny(any) }); ok {
			ref.SetAny(next)
		}
	}
	if h, ok := p.updaters[key]; ok {
		h(next)
	}
}
