package tui

import (
	"gravemap/internal/routing"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW int
	contentH int
	sidebarW int
	mapRect  rect
	panel    rect // zero width when the route panel is not shown
}

func (m Model) layout() layout {
	var l layout
	l.contentH = m.height - headerHeight - footerHeight
	if l.contentH < 4 {
		l.contentH = 4
	}
	l.contentW = max(10, m.width)
	if m.showSidebar {
		l.sidebarW = sidebarWidth
	}
	mapX := 0
	if m.showSidebar {
		mapX = l.sidebarW + 1
	}
	mapW := l.contentW - mapX
	if m.panelShown() {
		pw := min(40, max(24, l.contentW/3))
		if mapW-pw >= 10 {
			mapW -= pw
			l.panel = rect{x: mapX + mapW, y: headerHeight, w: pw, h: l.contentH}
		}
	}
	if mapW < 10 {
		mapW = 10
	}
	l.mapRect = rect{x: mapX, y: headerHeight, w: mapW, h: l.contentH}
	return l
}

// panelShown reports whether the routing widget has a visible panel.
func (m Model) panelShown() bool {
	w := m.surface.Widget()
	if w == nil {
		return false
	}
	p := w.RenderedPanel()
	return p != nil && p.Visible()
}

// decorationRects are the click targets on the panel title row, keyed by
// decoration name. Decorations sit right-aligned inside border and padding.
func (m Model) decorationRects(l layout) map[string]rect {
	out := map[string]rect{}
	if l.panel.w == 0 {
		return out
	}
	p := m.surface.Widget().RenderedPanel()
	right := l.panel.x + l.panel.w - 2
	for i := len(p.Decorations()) - 1; i >= 0; i-- {
		d := p.Decorations()[i]
		w := len([]rune(decorationText(d)))
		right -= w
		out[d.Name] = rect{x: right, y: l.panel.y + 1, w: w, h: 1}
		right--
	}
	return out
}

func decorationText(d routing.Decoration) string { return "[" + d.Label + "]" }

func controlText(c routing.Control) string { return "[" + c.Label + "]" }

// controlRects places overlay controls in their map corners, stacking
// vertically per corner, in map-local coordinates.
func (m Model) controlRects(l layout) []rect {
	ctls := m.surface.Controls()
	out := make([]rect, len(ctls))
	stack := map[routing.ControlPosition]int{}
	for i, c := range ctls {
		w := len([]rune(controlText(c.Control)))
		row := stack[c.Position]
		stack[c.Position]++
		var r rect
		switch c.Position {
		case routing.TopLeft:
			r = rect{x: 0, y: row, w: w, h: 1}
		case routing.BottomLeft:
			r = rect{x: 0, y: l.mapRect.h - 1 - row, w: w, h: 1}
		case routing.BottomRight:
			r = rect{x: l.mapRect.w - w, y: l.mapRect.h - 1 - row, w: w, h: 1}
		default:
			r = rect{x: l.mapRect.w - w, y: row, w: w, h: 1}
		}
		out[i] = r
	}
	return out
}
