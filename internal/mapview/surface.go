// Package mapview is the terminal map surface: it hosts the routing widget,
// runs its route fetches as tea commands and keeps overlay controls.
package mapview

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"gravemap/internal/directions"
	"gravemap/internal/routing"
)

var (
	ErrNotMounted   = errors.New("map surface not mounted")
	ErrWidgetExists = errors.New("routing widget already attached")
)

// RouteMsg carries a finished route fetch back into the update loop.
type RouteMsg struct {
	WidgetID string
	Seq      int
	Route    directions.Route
	Err      error
}

// AttachedControl is a control together with the id the surface gave it.
type AttachedControl struct {
	ID routing.ControlID
	routing.Control
}

// Surface implements routing.Surface for the terminal map.
type Surface struct {
	router  directions.Router
	timeout time.Duration
	log     *slog.Logger

	mounted  bool
	widget   *Widget
	controls []AttachedControl
}

type Option func(*Surface)

// WithTimeout bounds each route fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *Surface) { s.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) { s.log = l }
}

func NewSurface(router directions.Router, opts ...Option) *Surface {
	s := &Surface{router: router, timeout: 10 * time.Second, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "mapview")
	return s
}

// Mount marks the surface ready to host widgets.
func (s *Surface) Mount() { s.mounted = true }

// Unmount drops the widget and all controls.
func (s *Surface) Unmount() {
	s.mounted = false
	s.widget = nil
	s.controls = nil
}

func (s *Surface) Mounted() bool { return s.mounted }

// NewRoutingWidget attaches a widget and queues its first route fetch. A
// surface hosts one widget at a time.
func (s *Surface) NewRoutingWidget(opts routing.WidgetOptions) (routing.Widget, error) {
	if !s.mounted {
		return nil, ErrNotMounted
	}
	if s.widget != nil {
		return nil, ErrWidgetExists
	}
	w := &Widget{id: uuid.NewString(), opts: opts}
	w.SetWaypoints(opts.Waypoints[:])
	s.widget = w
	s.log.Debug("routing widget attached", "action", "attach", "widget", w.id)
	return w, nil
}

func (s *Surface) RemoveRoutingWidget(w routing.Widget) {
	if s.widget != nil && w != nil && s.widget.ID() == w.ID() {
		s.widget = nil
	}
}

// Widget returns the attached widget, or nil.
func (s *Surface) Widget() *Widget { return s.widget }

func (s *Surface) AddControl(c routing.Control) routing.ControlID {
	id := routing.ControlID(uuid.NewString())
	s.controls = append(s.controls, AttachedControl{ID: id, Control: c})
	return id
}

func (s *Surface) RemoveControl(id routing.ControlID) {
	for i, c := range s.controls {
		if c.ID == id {
			s.controls = append(s.controls[:i], s.controls[i+1:]...)
			return
		}
	}
}

// Controls returns the attached controls in insertion order.
func (s *Surface) Controls() []AttachedControl {
	return append([]AttachedControl(nil), s.controls...)
}

// ClickControl runs the control's handler. It reports false for an
// unknown id.
func (s *Surface) ClickControl(id routing.ControlID) bool {
	for _, c := range s.controls {
		if c.ID == id {
			if c.OnClick != nil {
				c.OnClick()
			}
			return true
		}
	}
	return false
}

// ClickControlNamed clicks the first control with the given name.
func (s *Surface) ClickControlNamed(name string) bool {
	for _, c := range s.controls {
		if c.Name == name {
			return s.ClickControl(c.ID)
		}
	}
	return false
}

// Cmd returns the pending route fetch for the widget, if any.
func (s *Surface) Cmd() tea.Cmd {
	w := s.widget
	if w == nil || !w.pending || len(w.waypoints) < 2 {
		return nil
	}
	w.pending = false
	id, seq := w.id, w.seq
	from, to := w.waypoints[0], w.waypoints[len(w.waypoints)-1]
	router, timeout := s.router, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		r, err := router.Route(ctx, from, to)
		return RouteMsg{WidgetID: id, Seq: seq, Route: r, Err: err}
	}
}

// Update applies surface messages. It reports whether msg was consumed.
func (s *Surface) Update(msg tea.Msg) bool {
	rm, ok := msg.(RouteMsg)
	if !ok {
		return false
	}
	w := s.widget
	if w == nil || w.id != rm.WidgetID {
		s.log.Debug("route for detached widget dropped", "action", "route", "widget", rm.WidgetID)
		return true
	}
	if rm.Seq != w.seq {
		s.log.Debug("superseded route dropped", "action", "route", "seq", rm.Seq, "current", w.seq)
		return true
	}
	if rm.Err != nil {
		s.log.Warn("route computation failed", "action", "route", "widget", w.id, "error", rm.Err)
	}
	w.deliver(rm.Route, rm.Err)
	return true
}
