package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}

	// Header: title and search bar
	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(" gravemap "), " ", m.search.View())
	header = lipgloss.NewStyle().Width(l.contentW).MaxHeight(headerHeight).Render(header)

	mapW, mapH := l.mapRect.w, l.mapRect.h
	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapH-2, 20))
		mapView = lipgloss.Place(mapW, mapH, lipgloss.Center, lipgloss.Center, boxStyle.Width(maxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(mapW)
		m.ta.SetHeight(min(mapH, 6))
		mapView = m.ta.View()
	case m.search.Focused() && m.search.Value() != "":
		mapView = m.renderResults(mapW, mapH)
	default:
		c := m.renderMap(mapW, mapH)
		if m.inspectPopup != "" {
			lines := strings.Split(m.inspectPopup, "\n")
			c.box(1, max(0, (mapH-len(lines)-2)/2), lines, nil)
		}
		mapView = c.String()
	}
	// plain map canvas: no border, no background highlight
	mapView = lipgloss.NewStyle().Width(mapW).Height(mapH).MaxHeight(mapH).Render(mapView)

	var cols []string
	if m.showSidebar {
		cols = append(cols, lipgloss.NewStyle().Width(l.sidebarW).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if l.panel.w > 0 {
		cols = append(cols, m.renderPanel(l))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer: status and cursor position, then help
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lat=%.6f lng=%.6f  ", m.hoverLat, m.hoverLon))
	}
	spacerW := max(0, l.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	statusLine := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinVertical(lipgloss.Left, statusLine, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

// renderPanel draws the routing widget's panel with its decorations on the
// title row.
func (m Model) renderPanel(l layout) string {
	w := m.surface.Widget()
	p := w.RenderedPanel()
	inner := l.panel.w - 4

	var decos []string
	for _, d := range p.Decorations() {
		decos = append(decos, decorationText(d))
	}
	deco := strings.Join(decos, " ")
	decoW := len([]rune(deco))
	title := truncate("Route to "+m.destLabel, max(1, inner-decoW-1))
	gap := max(0, inner-len([]rune(title))-decoW)
	row := titleStyle.Render(title) + strings.Repeat(" ", gap) + deco

	bodyStyle := lipgloss.NewStyle().Width(inner)
	if w.Err() != nil {
		bodyStyle = bodyStyle.Inherit(errStyle)
	}
	body := bodyStyle.Render(strings.Join(w.PanelLines(), "\n"))
	content := lipgloss.JoinVertical(lipgloss.Left, row, body)
	return boxStyle.Width(l.panel.w - 2).Height(l.panel.h - 2).MaxHeight(l.panel.h).Render(content)
}

// renderResults is the search dropdown: one row per match, or "No results".
func (m Model) renderResults(w, h int) string {
	res := m.results()
	var lines []string
	if len(res) == 0 {
		lines = append(lines, dimStyle.Render("No results"))
	}
	rows := max(1, h-2)
	start := 0
	if m.resultIdx >= rows {
		start = m.resultIdx - rows + 1
	}
	for i := start; i < len(res) && i < start+rows; i++ {
		if i == m.resultIdx {
			lines = append(lines, selStyle.Render("› "+res[i].Title()))
		} else {
			lines = append(lines, "  "+res[i].Title())
		}
	}
	box := boxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Top, box)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"/ search",
		"[ ] next grave",
		"x close route",
		"r reopen",
		"↑↓←→ pan",
		"+/- zoom",
		"i inspect",
		"a attrs",
		"p paste",
		"Tab datasets",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
