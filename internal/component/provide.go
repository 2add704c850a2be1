package component

// Provide installs key/value on the currently-initializing instance's
// provide map (spec.md §4.9 "Provide/Inject"). Called outside of setup, it
// is a no-op, mirroring the tolerant behavior of the other package-level
// setup-time helpers in this package.
func Provide(key string, value any) {
	c := currentInstance()
	if c == nil {
		return
	}
	if c.provides == nil {
		c.provides = map[string]any{}
	}
	c.provides[key] = value
}

// Inject walks the parent chain of component nodes starting at the
// currently-initializing instance, looking up the first ancestor (inclusive
// of the instance itself, since a component may provide a value used by its
// own later setup code) that provided key. def is returned, with ok=false,
// if no provider is found.
func Inject(key string, def any) (any, bool) {
	c := currentInstance()
	for c != nil {
		if v, ok := c.provides[key]; ok {
			return v, true
		}
		c = c.parent
	}
	return def, false
}
