package ui

import "github.com/charmbracelet/lipgloss"

// Design tokens. Adaptive colors keep the viewer legible on both light
// and dark terminal backgrounds.
var (
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	ColorSubtle  = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	ColorWarm    = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	ColorLink    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	ColorHotNode = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	LinkStyle = lipgloss.NewStyle().Foreground(ColorLink)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	HoverLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWarm)
)

// nodeGlyphs indexes disc glyphs by tree depth. Deeper entries get
// visually lighter marks.
var nodeGlyphs = []string{"◉", "●", "◎", "○", "∘"}

// NodeGlyph returns the disc glyph for a node at the given depth.
func NodeGlyph(depth int) string {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(nodeGlyphs) {
		depth = len(nodeGlyphs) - 1
	}
	return nodeGlyphs[depth]
}

// NodeStyle returns the glyph style for a node at the given depth.
func NodeStyle(depth int, hovered bool) lipgloss.Style {
	if hovered {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorHotNode)
	}
	if depth == 0 {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	}
	return lipgloss.NewStyle().Foreground(ColorText)
}
