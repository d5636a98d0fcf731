// Package routing keeps a single routing widget on a map surface in step
// with the selected destination, and layers close/reopen affordances over
// the widget's panel.
package routing

import (
	"log/slog"

	"gravemap/internal/geom"
)

// Names of the affordances the controller owns.
const (
	CloseDecoration = "close"
	ReopenControl   = "reopen-nav"
)

// State is the session state for one map surface.
type State int

const (
	NoSession State = iota
	SessionVisible
	SessionHidden
)

func (s State) String() string {
	switch s {
	case NoSession:
		return "no-session"
	case SessionVisible:
		return "visible"
	case SessionHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Controller owns at most one routing session per surface. It is driven
// from the UI event loop and is not safe for concurrent use.
type Controller struct {
	surface Surface
	log     *slog.Logger

	closeLabel  string
	reopenLabel string
	position    ControlPosition

	widget    Widget
	waypoints []geom.LatLng
	hidden    bool
	reopen    ControlID
	hasReopen bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithLabels overrides the close button and reopen control labels.
func WithLabels(closeLabel, reopenLabel string) Option {
	return func(c *Controller) {
		c.closeLabel = closeLabel
		c.reopenLabel = reopenLabel
	}
}

// WithControlPosition sets where the reopen control is pinned.
func WithControlPosition(p ControlPosition) Option {
	return func(c *Controller) { c.position = p }
}

func NewController(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:     surface,
		log:         slog.Default(),
		closeLabel:  "×",
		reopenLabel: "⌖ route",
		position:    TopRight,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "routing")
	return c
}

// Sync brings the session in line with origin and dest. A nil dest is a
// no-op. The first non-nil dest creates the widget; later calls move its
// waypoints without recreating it or touching panel visibility.
func (c *Controller) Sync(origin geom.LatLng, dest *geom.LatLng) {
	if dest == nil {
		return
	}
	wps := []geom.LatLng{origin, *dest}
	if c.widget != nil {
		c.widget.SetWaypoints(wps)
		c.waypoints = wps
		c.log.Debug("waypoints updated", "action", "sync", "widget", c.widget.ID(), "hidden", c.hidden)
		return
	}
	if !c.surface.Mounted() {
		c.log.Debug("surface not mounted, deferring session", "action", "sync")
		return
	}
	w, err := c.surface.NewRoutingWidget(WidgetOptions{
		Waypoints:          [2]geom.LatLng{origin, *dest},
		ShowAlternatives:   false,
		RouteWhileDragging: false,
		SuppressMarkers:    true,
	})
	if err != nil {
		c.log.Warn("routing widget unavailable", "action", "sync", "error", err)
		return
	}
	c.widget = w
	c.waypoints = wps
	c.hidden = false
	w.OnRouteSelected(c.decoratePanel)
	c.log.Info("routing session created", "action", "sync", "widget", w.ID())
}

// decoratePanel adds the close button to the panel unless it is already
// there. A panel that has not rendered yet is skipped; the next
// route-selected event retries.
func (c *Controller) decoratePanel() {
	if c.widget == nil {
		return
	}
	p, ok := c.widget.Panel()
	if !ok {
		c.log.Debug("panel not rendered, skipping close button", "action", "decorate")
		return
	}
	if p.HasDecoration(CloseDecoration) {
		return
	}
	err := p.Decorate(Decoration{
		Name:    CloseDecoration,
		Label:   c.closeLabel,
		OnClick: c.ClosePanel,
	})
	if err != nil {
		c.log.Debug("close button injection failed", "action", "decorate", "error", err)
	}
}

// ClosePanel hides the panel and shows the reopen control. Without a
// rendered panel there is nothing to hide and nothing changes.
func (c *Controller) ClosePanel() {
	if c.widget == nil {
		return
	}
	p, ok := c.widget.Panel()
	if !ok {
		return
	}
	p.Hide()
	c.hidden = true
	c.showReopen()
}

// showReopen attaches the reopen control once.
func (c *Controller) showReopen() {
	if c.hasReopen {
		return
	}
	c.reopen = c.surface.AddControl(Control{
		Name:     ReopenControl,
		Position: c.position,
		Label:    c.reopenLabel,
		OnClick:  c.ReopenPanel,
	})
	c.hasReopen = true
}

// ReopenPanel shows the panel again and removes the reopen control. If the
// panel cannot be found nothing changes.
func (c *Controller) ReopenPanel() {
	if c.widget == nil {
		return
	}
	p, ok := c.widget.Panel()
	if !ok {
		return
	}
	p.Show()
	c.hidden = false
	if c.hasReopen {
		c.surface.RemoveControl(c.reopen)
		c.reopen = ""
		c.hasReopen = false
	}
}

// Teardown releases the widget and any control from the surface. The
// controller can start a new session afterwards.
func (c *Controller) Teardown() {
	if c.hasReopen {
		c.surface.RemoveControl(c.reopen)
		c.reopen = ""
		c.hasReopen = false
	}
	if c.widget != nil {
		c.log.Info("routing session released", "action", "teardown", "widget", c.widget.ID())
		c.surface.RemoveRoutingWidget(c.widget)
		c.widget = nil
	}
	c.waypoints = nil
	c.hidden = false
}

// State reports the current session state.
func (c *Controller) State() State {
	switch {
	case c.widget == nil:
		return NoSession
	case c.hidden:
		return SessionHidden
	default:
		return SessionVisible
	}
}

// WidgetID returns the session widget's id, or "" without a session.
func (c *Controller) WidgetID() string {
	if c.widget == nil {
		return ""
	}
	return c.widget.ID()
}

// Waypoints returns a copy of the last waypoints sent to the widget.
func (c *Controller) Waypoints() []geom.LatLng {
	return append([]geom.LatLng(nil), c.waypoints...)
}

// HasReopen reports whether the reopen control is attached.
func (c *Controller) HasReopen() bool { return c.hasReopen }
