// Package directive implements the named-hook-bundle directive mechanism
// of spec.md §4.8/§6: a Directive is a {created, mounted, dispose} triple
// applied to an Element view in registration order, with each hook's
// panics isolated so one failing hook never blocks the others.
package directive

import (
	"fmt"

	"github.com/vireoui/vireo/internal/reactivity"
)

// Binding pairs a Directive with the (value, arg, modifiers) an element
// declared for it, matching spec.md §3's DirectiveBinding entity.
type Binding struct {
	Name      string
	Value     any
	Arg       string
	Modifiers map[string]bool
}

// Directive is a named bundle of element-lifecycle hooks. Any hook may be
// nil; a nil hook is simply skipped.
type Directive struct {
	Created func(el any, b Binding)
	Mounted func(el any, b Binding)
	Dispose func(el any, b Binding)
}

// registry maps directive name (without a "v-" prefix, which Resolve
// strips if present) to its implementation.
var registry = map[string]*Directive{}

// Register installs d under name, overwriting any previous registration
// under the same name.
func Register(name string, d *Directive) {
	registry[stripPrefix(name)] = d
}

// Resolve looks up a directive by name, accepting an optional "v-" prefix
// the way element templates typically spell it.
func Resolve(name string) (*Directive, bool) {
	d, ok := registry[stripPrefix(name)]
	return d, ok
}

func stripPrefix(name string) string {
	if len(name) > 2 && name[:2] == "v-" {
		return name[2:]
	}
	return name
}

// hookKind names which of a Directive's three hooks is being invoked, used
// only to build the DirectiveFailure source tag.
type hookKind string

const (
	hookCreated hookKind = "created"
	hookMounted hookKind = "mounted"
	hookDispose hookKind = "dispose"
)

// RunCreated invokes every binding's created hook, in registration order,
// isolating panics per hook (spec.md §4.8 "errors isolated per hook";
// SPEC_FULL §D spells this out as a per-hook recover loop).
func RunCreated(el any, bindings []Binding, onError func(err error)) {
	runAll(el, bindings, hookCreated, onError)
}

// RunMounted invokes every binding's mounted hook.
func RunMounted(el any, bindings []Binding, onError func(err error)) {
	runAll(el, bindings, hookMounted, onError)
}

// RunDispose invokes every binding's dispose hook.
func RunDispose(el any, bindings []Binding, onError func(err error)) {
	runAll(el, bindings, hookDispose, onError)
}

func runAll(el any, bindings []Binding, kind hookKind, onError func(err error)) {
	for _, b := range bindings {
		d, ok := Resolve(b.Name)
		if !ok {
			continue
		}
		hook := selectHook(d, kind)
		if hook == nil {
			continue
		}
		runOne(el, b, hook, kind, onError)
	}
}

func selectHook(d *Directive, kind hookKind) func(el any, b Binding) {
	switch kind {
	case hookCreated:
		return d.Created
	case hookMounted:
		return d.Mounted
	case hookDispose:
		return d.Dispose
	default:
		return nil
	}
}

func runOne(el any, b Binding, hook func(el any, b Binding), kind hookKind, onError func(err error)) {
	defer func() {
		if r := recover(); r != nil {
			err := reactivity.Wrap(reactivity.DirectiveSource(b.Name), reactivity.AsPanic(r))
			if onError != nil {
				onError(err)
			} else {
				reactivity.Logf("unhandled directive error: %v", fmt.Errorf("%s.%s: %w", b.Name, kind, err))
			}
		}
	}()
	hook(el, b)
}
