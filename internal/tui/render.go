package tui

import (
	"gravemap/internal/geom"
)

// Marker glyphs.
const (
	glyphUser  = '◉'
	glyphGrave = '✝'
	glyphHover = '◯'
	glyphStart = 'A'
	glyphEnd   = 'B'
)

// renderMap draws the route, markers and overlay controls into a w×h canvas.
func (m Model) renderMap(w, h int) *canvas {
	c := newCanvas(w, h)

	// Markers first so the route line never hides them.
	for i, p := range m.points {
		x, y, ok := m.screenXY(p.LatLng, w, h)
		if !ok {
			continue
		}
		st := &graveStyle
		if m.dest != nil && *m.dest == p.LatLng {
			st = &destStyle
		}
		if m.hovering && i == m.hoverIdx {
			c.set(x, y, glyphHover, &hoverStyle)
			continue
		}
		c.set(x, y, glyphGrave, st)
	}
	if x, y, ok := m.screenXY(m.origin, w, h); ok {
		c.set(x, y, glyphUser, &userStyle)
	}

	if wdg := m.surface.Widget(); wdg != nil {
		if r, ok := wdg.Route(); ok {
			br := newBrailleBuf(w, h)
			var prev *[2]int
			for _, p := range r.Path {
				mx, my, ok := m.screenXYMicro(p, w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
			c.overlayBraille(br, &routeStyle)
		}
		if !wdg.Options().SuppressMarkers {
			wps := wdg.Waypoints()
			if len(wps) >= 2 {
				if x, y, ok := m.screenXY(wps[0], w, h); ok {
					c.set(x, y, glyphStart, &routeStyle)
				}
				if x, y, ok := m.screenXY(wps[len(wps)-1], w, h); ok {
					c.set(x, y, glyphEnd, &routeStyle)
				}
			}
		}
	}

	l := m.layout()
	for i, r := range m.controlRects(l) {
		c.text(r.x, r.y, controlText(m.surface.Controls()[i].Control), &controlStyle)
	}
	return c
}

// screenXYMicro maps a position into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(p geom.LatLng, w, h int) (int, int, bool) {
	if !m.bbox.Valid() {
		return 0, 0, false
	}
	nx := (p.Lng - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (p.Lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps a position to a map cell considering zoom and pan.
func (m Model) screenXY(p geom.LatLng, w, h int) (int, int, bool) {
	mx, my, ok := m.screenXYMicro(p, w, h)
	if !ok || mx < 0 || my < 0 {
		return 0, 0, false
	}
	return mx / 2, my / 4, true
}

// cellToLatLng converts a map cell back to a position using bbox, zoom and pan.
func (m Model) cellToLatLng(cx, cy, w, h int) (geom.LatLng, bool) {
	if !m.bbox.Valid() || w <= 1 || h <= 1 {
		return geom.LatLng{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return geom.LatLng{
		Lng: m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX),
		Lat: m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY),
	}, true
}

// nearestGrave returns the index of the grave closest to map cell (cx, cy)
// within maxDist cells, or -1.
func (m Model) nearestGrave(cx, cy, w, h, maxDist int) int {
	best, bestD := -1, maxDist*maxDist+1
	for i, p := range m.points {
		x, y, ok := m.screenXY(p.LatLng, w, h)
		if !ok {
			continue
		}
		// cells are roughly twice as tall as wide
		dx, dy := x-cx, (y-cy)*2
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
