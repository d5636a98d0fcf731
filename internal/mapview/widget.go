package mapview

import (
	"errors"
	"fmt"

	"gravemap/internal/directions"
	"gravemap/internal/geom"
	"gravemap/internal/routing"
)

// ErrDuplicateDecoration is returned when a panel already has a decoration
// with the same name.
var ErrDuplicateDecoration = errors.New("decoration already present")

// Widget draws a route between its waypoints and shows instructions in a
// panel once the first result arrives.
type Widget struct {
	id        string
	opts      routing.WidgetOptions
	waypoints []geom.LatLng
	listeners []func()

	seq     int
	doneSeq int
	pending bool

	route *directions.Route
	err   error
	panel *Panel
}

func (w *Widget) ID() string { return w.id }

// SetWaypoints replaces the waypoints and queues a fetch that supersedes
// any fetch still in flight.
func (w *Widget) SetWaypoints(wps []geom.LatLng) {
	w.waypoints = append([]geom.LatLng(nil), wps...)
	w.seq++
	w.pending = true
}

func (w *Widget) OnRouteSelected(fn func()) {
	w.listeners = append(w.listeners, fn)
}

func (w *Widget) Panel() (routing.Panel, bool) {
	if w.panel == nil {
		return nil, false
	}
	return w.panel, true
}

// RenderedPanel returns the concrete panel, or nil before first render.
func (w *Widget) RenderedPanel() *Panel { return w.panel }

func (w *Widget) Options() routing.WidgetOptions { return w.opts }

func (w *Widget) Waypoints() []geom.LatLng {
	return append([]geom.LatLng(nil), w.waypoints...)
}

// Route returns the selected route, if one has been computed.
func (w *Widget) Route() (directions.Route, bool) {
	if w.route == nil {
		return directions.Route{}, false
	}
	return *w.route, true
}

// Err returns the last route computation error.
func (w *Widget) Err() error { return w.err }

// Loading reports whether the latest waypoints are still being routed.
func (w *Widget) Loading() bool { return w.doneSeq != w.seq }

func (w *Widget) deliver(r directions.Route, err error) {
	w.doneSeq = w.seq
	if w.panel == nil {
		w.panel = &Panel{visible: true}
	}
	if err != nil {
		w.route = nil
		w.err = err
		return
	}
	w.route = &r
	w.err = nil
	for _, fn := range w.listeners {
		fn()
	}
}

// PanelLines is the panel body: summary, totals and steps, or the error.
func (w *Widget) PanelLines() []string {
	if w.err != nil {
		if errors.Is(w.err, directions.ErrNoRoute) {
			return []string{"Route not found"}
		}
		return []string{"Routing failed", w.err.Error()}
	}
	r, ok := w.Route()
	if !ok {
		return []string{"Routing…"}
	}
	lines := []string{
		r.Summary,
		fmt.Sprintf("%s, %s", directions.FormatDistance(r.Distance), directions.FormatDuration(r.Duration)),
		"",
	}
	for _, s := range r.Steps {
		if s.Distance > 0 {
			lines = append(lines, fmt.Sprintf("%s (%s)", s.Instruction, directions.FormatDistance(s.Distance)))
		} else {
			lines = append(lines, s.Instruction)
		}
	}
	if w.Loading() {
		lines = append(lines, "", "Rerouting…")
	}
	return lines
}

// Panel is the widget's instruction panel.
type Panel struct {
	visible     bool
	decorations []routing.Decoration
}

func (p *Panel) Show()         { p.visible = true }
func (p *Panel) Hide()         { p.visible = false }
func (p *Panel) Visible() bool { return p.visible }

func (p *Panel) HasDecoration(name string) bool {
	for _, d := range p.decorations {
		if d.Name == name {
			return true
		}
	}
	return false
}

func (p *Panel) Decorate(d routing.Decoration) error {
	if d.Name == "" {
		return errors.New("decoration needs a name")
	}
	if p.HasDecoration(d.Name) {
		return ErrDuplicateDecoration
	}
	p.decorations = append(p.decorations, d)
	return nil
}

// Decorations returns the panel's decorations in insertion order.
func (p *Panel) Decorations() []routing.Decoration {
	return append([]routing.Decoration(nil), p.decorations...)
}

// ClickDecoration runs the named decoration's handler.
func (p *Panel) ClickDecoration(name string) bool {
	for _, d := range p.decorations {
		if d.Name == name {
			if d.OnClick != nil {
				d.OnClick()
			}
			return true
		}
	}
	return false
}
