package vireo

import (
	"github.com/vireoui/vireo/internal/component"
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

// Node is the common view tree interface every variant implements
// (spec.md §4.8); application code builds trees out of it but never
// implements it directly except via CreateKeyedList's wrapper.
type Node = view.Node

// PropGetter produces an element attribute's current value; Element
// installs one tracked effect per key, so a reactive read inside the
// getter re-applies the attribute on change.
type PropGetter = view.PropGetter

// CreateElement builds a host Element view for tag. Each entry in props is
// re-evaluated inside its own tracked effect (spec.md §4.8 "Element props
// effect"), so a getter that reads a ref keeps the host attribute in sync.
// This, together with CreateComponent, is the Go-idiomatic split of
// spec.md's overloaded createView(tag|component, props): Go has no
// argument-type dispatch, and an Element's props (tracked getters) and a
// Component's props (ref-or-value sources) are different enough shapes
// that a single function would need an awkward `any` signature either way.
func CreateElement(tag string, props map[string]PropGetter, children ...Node) Node {
	return buildElement(tag, false, props, children)
}

// CreateSVGElement is CreateElement for the SVG namespace (spec.md
// "isSVGElement").
func CreateSVGElement(tag string, props map[string]PropGetter, children ...Node) Node {
	return buildElement(tag, true, props, children)
}

func buildElement(tag string, svg bool, props map[string]PropGetter, children []Node) Node {
	el := view.NewElement(tag, svg)
	for key, getter := range props {
		el.SetProp(key, getter)
	}
	el.SetChildren(children)
	return el
}

// CreateText builds a text leaf.
func CreateText(value string) Node { return view.NewText(value) }

// CreateComment builds a comment placeholder leaf.
func CreateComment(value string) Node { return view.NewComment(value) }

// CreateFragment groups children under two bracketing comment anchors
// (spec.md §4.10), so they can be inserted/removed as a unit without an
// owning host element.
func CreateFragment(children ...Node) Node { return view.NewFragment(children) }

// CreateDynamic rebuilds its subtree from source every time the signals it
// reads change, patching in place where possible (spec.md §4.8 Dynamic).
func CreateDynamic(source func() Node) Node { return view.NewDynamic(source, nil) }

// ComponentDefinition pairs a component's display name with its setup
// function, the result of spec.md's defineComponent.
type ComponentDefinition struct {
	name  string
	setup component.SetupFunc
}

// DefineComponent declares a stateful component: setup runs once (tracked,
// inside the instance's own scope) to install lifecycle hooks and
// provide/inject bindings, and returns the render function re-invoked by
// the component's render effect.
func DefineComponent(name string, setup func(props *Props) RenderFunc) *ComponentDefinition {
	return &ComponentDefinition{name: name, setup: setup}
}

// Props is the read proxy a component's setup function receives.
type Props = component.Props

// RenderFunc builds a component's current sub-view.
type RenderFunc = component.RenderFunc

// ComponentProps describes what a parent passes when instantiating a
// component: Values may be plain values, *Ref[T], or *Computed[T] (anything
// Unref understands); Updaters holds the onUpdate:<key> callback for any
// two-way-bound prop.
type ComponentProps struct {
	Values   map[string]any
	Updaters map[string]func(next any)
}

// DefineProps validates that every name in required was declared by the
// parent (spec.md's defineProps), logging a development-mode warning for
// any that is missing. It returns props unchanged so call sites can chain
// it: `p := vireo.DefineProps(props, "label", "count")`.
func DefineProps(props *Props, required ...string) *Props {
	for _, name := range required {
		if !props.Has(name) {
			warnMissingProp(name)
		}
	}
	return props
}

// CreateComponent instantiates def as a stateful component view.
func CreateComponent(def *ComponentDefinition, props ComponentProps) Node {
	p := component.NewProps(props.Values, props.Updaters)
	inst := component.NewComponentView(def.name, p, def.setup)
	return view.NewComponentStateful(inst)
}

// CreateStatelessComponent wraps a pure render function with no lifecycle
// hooks or owned scope, re-invoked by its parent whenever it is rebuilt
// (spec.md's stateless component variant).
func CreateStatelessComponent(render func() Node) Node {
	return view.NewComponentStateless(render)
}

// Mount attaches root to an already-constructed host container, the
// bottom-level primitive a HostRenderer-specific entry point (such as
// hostbubbletea.Run) builds on top of.
func Mount(r renderer.HostRenderer, root Node, container renderer.Node) {
	ctx := view.Context{Renderer: r}
	root.Init(ctx)
	root.Mount(container, nil, renderer.Append)
}
