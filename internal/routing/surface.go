package routing

import "gravemap/internal/geom"

// ControlPosition is the corner of the map an overlay control is pinned to.
type ControlPosition int

const (
	TopRight ControlPosition = iota
	TopLeft
	BottomRight
	BottomLeft
)

func (p ControlPosition) String() string {
	switch p {
	case TopRight:
		return "topright"
	case TopLeft:
		return "topleft"
	case BottomRight:
		return "bottomright"
	case BottomLeft:
		return "bottomleft"
	default:
		return "unknown"
	}
}

// ControlID identifies an attached overlay control.
type ControlID string

// Control is a small clickable affordance drawn on the map surface,
// independent of the routing widget's panel.
type Control struct {
	Name     string
	Position ControlPosition
	Label    string
	OnClick  func()
}

// Decoration is an extra clickable element added to a widget panel.
type Decoration struct {
	Name    string
	Label   string
	OnClick func()
}

// WidgetOptions configures a new routing widget.
type WidgetOptions struct {
	Waypoints          [2]geom.LatLng
	ShowAlternatives   bool
	RouteWhileDragging bool
	// SuppressMarkers stops the widget from drawing its own start/end
	// markers; the surface already shows them.
	SuppressMarkers bool
}

// Panel is the widget's rendered instruction panel. Decorate is the only
// way the controller reaches into it.
type Panel interface {
	Show()
	Hide()
	Visible() bool
	HasDecoration(name string) bool
	Decorate(d Decoration) error
}

// Widget is a route-drawing widget owned by the map surface.
type Widget interface {
	ID() string
	SetWaypoints(wps []geom.LatLng)
	// OnRouteSelected registers fn to run every time the widget settles on
	// a route.
	OnRouteSelected(fn func())
	// Panel returns the rendered panel, or false before it first renders.
	Panel() (Panel, bool)
}

// Surface is the map the controller attaches to.
type Surface interface {
	Mounted() bool
	NewRoutingWidget(opts WidgetOptions) (Widget, error)
	RemoveRoutingWidget(w Widget)
	AddControl(c Control) ControlID
	RemoveControl(id ControlID)
}
