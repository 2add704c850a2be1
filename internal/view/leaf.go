package view

import "github.com/vireoui/vireo/internal/renderer"

// Text is a leaf node holding text content; re-rendering it replaces the
// host node's value in place rather than recreating it (spec.md §4.8).
type Text struct {
	base
	value string
}

// NewText constructs a detached Text node.
func NewText(value string) *Text {
	t := &Text{base: newBase(KindText), value: value}
	return t
}

func (t *Text) Init(ctx Context) { t.initBase(ctx) }

func (t *Text) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	host := t.ctx.Renderer.CreateText(t.value)
	mountHost(t.ctx.Renderer, container, anchor, mode, host)
	t.setMounted(host)
}

// SetValue updates the text content, patching the host node in place if
// already mounted.
func (t *Text) SetValue(value string) {
	t.value = value
	if t.state == Mounted && t.host != nil {
		t.ctx.Renderer.SetText(t.host, value)
	}
}

func (t *Text) Activate()   { t.setActivated() }
func (t *Text) Deactivate() { t.setDeactivated() }
func (t *Text) Dispose() {
	if t.state == Mounted && t.host != nil {
		t.ctx.Renderer.Remove(t.host)
	}
	t.setDisposed()
}

// Comment is a leaf placeholder node, used as an anchor by Dynamic/If and
// as the fallback render target for a crashed component.
type Comment struct {
	base
	value string
}

// NewComment constructs a detached Comment node.
func NewComment(value string) *Comment {
	return &Comment{base: newBase(KindComment), value: value}
}

func (c *Comment) Init(ctx Context) { c.initBase(ctx) }

func (c *Comment) Mount(container, anchor renderer.Node, mode renderer.Mode) {
	host := c.ctx.Renderer.CreateComment(c.value)
	mountHost(c.ctx.Renderer, container, anchor, mode, host)
	c.setMounted(host)
}

func (c *Comment) SetValue(value string) {
	c.value = value
	if c.state == Mounted && c.host != nil {
		c.ctx.Renderer.SetText(c.host, value)
	}
}

func (c *Comment) Activate()   { c.setActivated() }
func (c *Comment) Deactivate() { c.setDeactivated() }
func (c *Comment) Dispose() {
	if c.state == Mounted && c.host != nil {
		c.ctx.Renderer.Remove(c.host)
	}
	c.setDisposed()
}

// mountHost performs the renderer call matching mode, shared by every
// leaf/element Mount implementation.
func mountHost(r renderer.HostRenderer, container, anchor renderer.Node, mode renderer.Mode, host renderer.Node) {
	switch mode {
	case renderer.Insert:
		r.Insert(host, anchor)
	case renderer.Replace:
		r.Replace(host, container)
	default:
		r.Append(container, host)
	}
}
