package hostbubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// TextInput wraps bubbles/textinput as a widget that can be installed on an
// element host node via SetAttribute(node, "widget", w) (SPEC_FULL.md §C:
// "bubbles -> hostbubbletea/widgets.go"). It exists so a component's render
// function can hand back a live, stateful Bubbles model without the core
// view tree or reconciler ever needing to know Bubbles exists.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput builds a focused single-line text input with the given
// placeholder, ready to be attached to a host element.
func NewTextInput(placeholder string) *TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Focus()
	return &TextInput{Model: m}
}

func (t *TextInput) View() string { return t.Model.View() }

// Update feeds a Bubbletea message to the wrapped model, mirroring
// textinput.Model.Update's (Model, Cmd) signature but mutating the wrapper
// in place so host tree code can keep treating it as a stable widget value.
func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return cmd
}

func (t *TextInput) Value() string { return t.Model.Value() }

func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }

// Viewport wraps bubbles/viewport for scrollable content regions (long
// lists, logs), the other Bubbles widget SPEC_FULL.md §C calls out.
type Viewport struct {
	Model viewport.Model
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{Model: viewport.New(width, height)}
}

func (v *Viewport) View() string { return v.Model.View() }

func (v *Viewport) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.Model, cmd = v.Model.Update(msg)
	return cmd
}

func (v *Viewport) SetContent(s string) { v.Model.SetContent(s) }
