package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gravemap/internal/geom"
	"gravemap/internal/mapview"
	"gravemap/internal/poi"
	"gravemap/internal/routing"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// where the user is and where they are going
	origin    geom.LatLng
	dest      *geom.LatLng
	destLabel string
	cycleIdx  int

	// graves
	points  []poi.GeoPoint
	dataset string
	bbox    geom.BBox

	// routing
	surface *mapview.Surface
	routes  *routing.Controller

	// search bar
	search    textinput.Model
	resultIdx int

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string
	inspectIdx   int

	// hover state
	hovering    bool
	hoverIdx    int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// Options wires the model to its collaborators.
type Options struct {
	Origin  geom.LatLng
	Points  []poi.GeoPoint
	Dataset string
	Zoom    float64
	Surface *mapview.Surface
	Routes  *routing.Controller
}

func New(o Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        o.Zoom,
		status:      "gravemap ready",
		origin:      o.Origin,
		dataset:     o.Dataset,
		cycleIdx:    -1,
		inspectIdx:  -1,
		hoverIdx:    -1,
		surface:     o.Surface,
		routes:      o.Routes,
	}
	if m.zoom <= 0 {
		m.zoom = 1.0
	}
	if m.dataset == "" {
		m.dataset = "built-in"
	}
	m.setPoints(o.Points)
	m.surface.Mount()
	m.cwd, _ = os.Getwd()
	// search setup
	m.search = textinput.New()
	m.search.Placeholder = "Search grave by name..."
	m.search.Prompt = "/ "
	m.search.CharLimit = 64
	m.search.Width = 28
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT POINT(lng lat) or LINESTRING ending at the destination. Enter to go; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	// attributes table setup (columns are rebuilt per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// setPoints replaces the grave set and refits the view to it plus the origin.
func (m *Model) setPoints(pts []poi.GeoPoint) {
	if len(pts) == 0 {
		pts = poi.Default()
	}
	m.points = pts
	m.bbox = geom.BBoxOf(append(poi.Positions(pts), m.origin)...).Pad(0.15)
	m.cycleIdx = -1
	m.inspectIdx = -1
	m.hoverIdx = -1
}

// setDestination records the selection and re-syncs the routing session.
func (m *Model) setDestination(p geom.LatLng, label string) tea.Cmd {
	m.dest = &p
	m.destLabel = label
	m.routes.Sync(m.origin, m.dest)
	m.status = "routing to " + label
	return m.surface.Cmd()
}

// Destination returns the selected destination, if any.
func (m Model) Destination() (geom.LatLng, bool) {
	if m.dest == nil {
		return geom.LatLng{}, false
	}
	return *m.dest, true
}

// Status returns the footer status text.
func (m Model) Status() string { return m.status }

// Points returns the loaded graves.
func (m Model) Points() []poi.GeoPoint { return m.points }

// results is the current search result set.
func (m Model) results() []poi.GeoPoint {
	return poi.Filter(m.points, m.search.Value())
}
