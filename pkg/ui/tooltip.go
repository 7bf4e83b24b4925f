package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// descriptionPanel is the terminal tooltip surface: a bordered side
// panel showing the hovered node's markdown description through glamour.
// It implements interact.Tooltip, so the tooltip controller decides when
// it appears and disappears.
type descriptionPanel struct {
	vp       viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
	visible  bool
	title    string
	raw      string
}

func newDescriptionPanel(width, height int) *descriptionPanel {
	p := &descriptionPanel{}
	p.resize(width, height)
	return p
}

func (p *descriptionPanel) resize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	p.width, p.height = width, height
	p.vp = viewport.New(width-4, height-3)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err == nil {
		p.renderer = r
	}
	if p.raw != "" {
		p.setContent(p.raw)
	}
}

// SetData renders the node's description. The radius unit is part of the
// tooltip contract but has no bearing on a text panel.
func (p *descriptionPanel) SetData(n *model.Node, _ float64) {
	p.title = n.ID
	p.raw = n.Description
	p.setContent(n.Description)
}

func (p *descriptionPanel) setContent(markdown string) {
	content := markdown
	if p.renderer != nil {
		if out, err := p.renderer.Render(markdown); err == nil {
			content = out
		}
	}
	p.vp.SetContent(content)
	p.vp.GotoTop()
}

func (p *descriptionPanel) Show() { p.visible = true }
func (p *descriptionPanel) Hide() { p.visible = false }

// Visible reports whether the panel is currently shown.
func (p *descriptionPanel) Visible() bool { return p.visible }

// View renders the panel frame, or an empty string while hidden.
func (p *descriptionPanel) View() string {
	if !p.visible {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render(truncate(p.title, p.width-4)),
		p.vp.View(),
	)
	return PanelStyle.Width(p.width - 2).Height(p.height - 2).Render(body)
}
