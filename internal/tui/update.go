package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"gravemap/internal/directions"
	"gravemap/internal/geom"
	"gravemap/internal/mapview"
	"gravemap/internal/routing"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2) // provisional; refined in View
		}
	case mapview.RouteMsg:
		m.surface.Update(msg)
		m.routeStatus(msg)
		return m, m.surface.Cmd()
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// routeStatus reports the outcome of the widget's latest fetch.
func (m *Model) routeStatus(msg mapview.RouteMsg) {
	w := m.surface.Widget()
	if w == nil || w.ID() != msg.WidgetID || w.Loading() {
		return
	}
	if err := w.Err(); err != nil {
		m.status = "route error: " + err.Error()
		return
	}
	if r, ok := w.Route(); ok {
		m.status = fmt.Sprintf("route to %s: %s, %s", m.destLabel,
			directions.FormatDistance(r.Distance), directions.FormatDuration(r.Duration))
	}
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "view mode"
			return m, nil
		case "enter":
			w := strings.TrimSpace(m.ta.Value())
			if w == "" {
				m.status = "paste: empty"
				return m, nil
			}
			p, err := geom.ParseWKTDestination(w)
			if err != nil {
				m.status = "wkt error: " + err.Error()
				return m, nil
			}
			m.pasteMode = false
			m.ta.Blur()
			return m, m.setDestination(p, fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng))
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.search.Focused() {
		return m.updateSearch(msg)
	}
	if m.showAttrs {
		switch msg.String() {
		case "esc", "a":
			m.showAttrs = false
			return m, nil
		case "enter":
			i := m.tbl.Cursor()
			if i >= 0 && i < len(m.points) {
				m.showAttrs = false
				p := m.points[i]
				return m, m.setDestination(p.LatLng, p.Label)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.routes.Teardown()
		m.surface.Unmount()
		return m, tea.Quit
	case "/":
		m.inspectPopup = ""
		m.resultIdx = 0
		return m, m.search.Focus()
	case "esc":
		m.inspectPopup = ""
		m.inspectIdx = -1
	case "x":
		m.closePanel()
	case "r":
		if m.surface.ClickControlNamed(routing.ReopenControl) {
			m.status = "route panel shown"
		} else {
			m.status = "nothing to reopen"
		}
	case "]", "[":
		if len(m.points) == 0 {
			break
		}
		step := 1
		if msg.String() == "[" {
			step = -1
		}
		if m.cycleIdx < 0 && step < 0 {
			m.cycleIdx = 0
		}
		n := len(m.points)
		m.cycleIdx = ((m.cycleIdx+step)%n + n) % n
		p := m.points[m.cycleIdx]
		return m, m.setDestination(p.LatLng, p.Label)
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		m.zoom = 1.0
		m.offsetX, m.offsetY = 0, 0
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = true
		m.refreshAttrs()
	case "i":
		m.inspect()
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				return m, m.loadPath(it.path)
			}
			return m, nil
		}
		if m.inspectIdx >= 0 && m.inspectIdx < len(m.points) {
			p := m.points[m.inspectIdx]
			m.inspectPopup = ""
			m.inspectIdx = -1
			return m, m.setDestination(p.LatLng, p.Label)
		}
	case "up":
		m.offsetY += 1
	case "down":
		m.offsetY -= 1
	case "left":
		m.offsetX += 2
	case "right":
		m.offsetX -= 2
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// updateSearch handles keys while the search bar has focus. Choosing a
// result routes to it and clears the query.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.resultIdx = 0
		return m, nil
	case "up", "ctrl+p":
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.resultIdx < len(m.results())-1 {
			m.resultIdx++
		}
		return m, nil
	case "enter":
		res := m.results()
		if m.search.Value() == "" || len(res) == 0 {
			m.status = "no results"
			return m, nil
		}
		p := res[min(m.resultIdx, len(res)-1)]
		m.search.SetValue("")
		m.search.Blur()
		m.resultIdx = 0
		return m, m.setDestination(p.LatLng, p.Label)
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.resultIdx = 0
	}
	return m, cmd
}

// closePanel clicks the close button on the visible route panel.
func (m *Model) closePanel() {
	w := m.surface.Widget()
	if w == nil || w.RenderedPanel() == nil || !w.RenderedPanel().Visible() {
		m.status = "no route panel to close"
		return
	}
	if !w.RenderedPanel().ClickDecoration(routing.CloseDecoration) {
		m.status = "no route to close yet"
		return
	}
	m.status = "route panel hidden (r to reopen)"
}

// mapVisible reports whether the map canvas, rather than an overlay view,
// occupies the map area.
func (m Model) mapVisible() bool {
	return !m.showAttrs && !m.pasteMode && !(m.search.Focused() && m.search.Value() != "")
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	mr := l.mapRect

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.zoom < 64 {
			m.zoom *= 1.2
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.zoom > 0.05 {
			m.zoom /= 1.2
		}
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for name, r := range m.decorationRects(l) {
			if r.contains(msg.X, msg.Y) {
				m.surface.Widget().RenderedPanel().ClickDecoration(name)
				if name == routing.CloseDecoration {
					m.status = "route panel hidden (r to reopen)"
				}
				return m, nil
			}
		}
		if !m.mapVisible() || !mr.contains(msg.X, msg.Y) {
			return m, nil
		}
		lx, ly := msg.X-mr.x, msg.Y-mr.y
		ctls := m.surface.Controls()
		for i, r := range m.controlRects(l) {
			if r.contains(lx, ly) {
				m.surface.ClickControl(ctls[i].ID)
				if ctls[i].Name == routing.ReopenControl {
					m.status = "route panel shown"
				}
				return m, nil
			}
		}
		if idx := m.nearestGrave(lx, ly, mr.w, mr.h, 1); idx >= 0 {
			p := m.points[idx]
			return m, m.setDestination(p.LatLng, p.Label)
		}
		return m, nil
	}

	// track hover over map area
	if mr.contains(msg.X, msg.Y) {
		m.hovering = true
		lx, ly := msg.X-mr.x, msg.Y-mr.y
		if p, ok := m.cellToLatLng(lx, ly, mr.w, mr.h); ok {
			m.hoverHasGeo = true
			m.hoverLat, m.hoverLon = p.Lat, p.Lng
		} else {
			m.hoverHasGeo = false
		}
		m.hoverIdx = m.nearestGrave(lx, ly, mr.w, mr.h, 2)
	} else {
		m.hovering = false
		m.hoverIdx = -1
	}
	return m, nil
}

// inspect opens a popup for the grave nearest the viewport center.
func (m *Model) inspect() {
	l := m.layout()
	idx := m.nearestGrave(l.mapRect.w/2, l.mapRect.h/2, l.mapRect.w, l.mapRect.h, max(l.mapRect.w, l.mapRect.h))
	if idx < 0 {
		m.inspectPopup = "no grave nearby"
		m.inspectIdx = -1
		m.status = m.inspectPopup
		return
	}
	p := m.points[idx]
	meta := []string{
		p.Label,
		fmt.Sprintf("lat=%.6f lng=%.6f", p.Lat, p.Lng),
		"geohash: " + p.Geohash(9),
		"from you: " + directions.FormatDistance(directions.Distance(m.origin, p.LatLng)),
	}
	for _, k := range p.AttrKeys() {
		meta = append(meta, fmt.Sprintf("%s: %s", k, p.Attr(k)))
	}
	meta = append(meta, "", "enter: go here  esc: close")
	m.inspectPopup = strings.Join(meta, "\n")
	m.inspectIdx = idx
	m.status = "inspect " + p.Label
}
