package hostbubbletea

import "github.com/charmbracelet/lipgloss"

// applyStyleAttr maps a single style-valued prop (spec.md §6 "style props
// forwarded to the host as attribute sets") onto the node's accumulated
// Lipgloss style. Unrecognized keys are stored verbatim in attrs so
// directives/widgets can still read them back, mirroring the teacher's
// components (pkg/components/button.go) building up a lipgloss.Style from
// discrete named fields rather than a CSS string.
func applyStyleAttr(n *node, key string, value any) {
	switch key {
	case "color":
		if s, ok := value.(string); ok {
			n.style = n.style.Foreground(lipgloss.Color(s))
		}
	case "background":
		if s, ok := value.(string); ok {
			n.style = n.style.Background(lipgloss.Color(s))
		}
	case "bold":
		if b, ok := value.(bool); ok {
			n.style = n.style.Bold(b)
		}
	case "italic":
		if b, ok := value.(bool); ok {
			n.style = n.style.Italic(b)
		}
	case "underline":
		if b, ok := value.(bool); ok {
			n.style = n.style.Underline(b)
		}
	case "padding":
		if i, ok := value.(int); ok {
			n.style = n.style.Padding(i)
		}
	case "margin":
		if i, ok := value.(int); ok {
			n.style = n.style.Margin(i)
		}
	case "width":
		if i, ok := value.(int); ok {
			n.style = n.style.Width(i)
		}
	case "height":
		if i, ok := value.(int); ok {
			n.style = n.style.Height(i)
		}
	case "align":
		if s, ok := value.(string); ok {
			n.style = n.style.Align(alignPosition(s))
		}
	case "border":
		if b, ok := value.(bool); ok && b {
			n.style = n.style.Border(lipgloss.RoundedBorder())
		}
	}
}

func alignPosition(s string) lipgloss.Position {
	switch s {
	case "center":
		return lipgloss.Center
	case "right", "end":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// isStyleAttr reports whether key is one applyStyleAttr understands, so
// SetAttribute can route it there instead of the generic attrs map.
func isStyleAttr(key string) bool {
	switch key {
	case "color", "background", "bold", "italic", "underline",
		"padding", "margin", "width", "height", "align", "border":
		return true
	default:
		return false
	}
}
