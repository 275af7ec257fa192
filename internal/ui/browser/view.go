// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/thagstyle/internal/integrations"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// View renders the list, the preview pane and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	left := m.list.View()
	right := m.renderPreview(m.Selected(), m.previewWidth())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus())
}

func (m Model) previewWidth() int {
	w := m.width - m.listWidth() - 2
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return m.styles.Hint.Render("enter select  e export  c copy bg  / filter  q quit")
	}
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

// renderPreview paints every role with the named theme.
func (m Model) renderPreview(name string, width int) string {
	s := m.styles
	if name == "" {
		return s.Box.Width(width).Render(s.Hint.Render("no themes"))
	}
	p := m.preview(name)
	if p.err != nil {
		return s.Box.Width(width).Render(s.Error.Render(fmt.Sprintf("%s: %v", name, p.err)))
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(p.full.Name))
	b.WriteString("\n")
	if p.full.Description != "" {
		b.WriteString(s.Subtle.Render(p.full.Description))
		b.WriteString("\n")
	}

	bg := p.full.BgHex()
	if bg == "" {
		bg = "none"
	}
	b.WriteString(s.Label.Render("background") + s.Value.Render(bg) + "\n")
	b.WriteString(s.Label.Render("luma") + s.Value.Render(p.full.TermBgLuma.String()) + "\n")
	b.WriteString(s.Label.Render("min support") + s.Value.Render(p.full.MinColorSupport.String()) + "\n\n")

	for _, r := range styling.AllRoles() {
		b.WriteString(s.Label.Render(r.String()))
		b.WriteString(integrations.RoleStyle(p.shown, r).Render(r.Description()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Heading.Render("ANSI colors"))
	b.WriteString("\n")
	ansi := p.full.ANSIColorMap()
	for row := 0; row < 2; row++ {
		for i := row * 8; i < row*8+8; i++ {
			b.WriteString(s.SwatchFor(ansi[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderValidation(p))
	return s.Box.Width(width).Render(b.String())
}

func (m Model) renderValidation(p *preview) string {
	target := fmt.Sprintf("%s on %s", m.attrs.ColorSupport, m.attrs.TermBgLuma)
	if p.valid != nil {
		return m.styles.Warning.Render(fmt.Sprintf("✗ not valid for %s: %v", target, p.valid))
	}
	return m.styles.Success.Render("✓ valid for " + target)
}
