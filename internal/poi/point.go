// Package poi holds the static set of graves shown on the map and the
// name search over it.
package poi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mmcloughlin/geohash"

	"gravemap/internal/geom"
)

// GeoPoint is a named point of interest. Treat it as immutable once loaded.
type GeoPoint struct {
	geom.LatLng
	Label      string
	Attributes map[string]any
}

// Geohash encodes the point at the given precision (1-12 characters).
func (p GeoPoint) Geohash(chars uint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, chars)
}

// Attr formats an attribute for display. Missing keys render as "".
func (p GeoPoint) Attr(key string) string {
	return formatValue(p.Attributes[key])
}

// AttrKeys returns the attribute keys in sorted order.
func (p GeoPoint) AttrKeys() []string {
	keys := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Title is the one-line label used in search results: "Name (Age: N)".
func (p GeoPoint) Title() string {
	if age := p.Attr("age"); age != "" {
		return fmt.Sprintf("%s (Age: %s)", p.Label, age)
	}
	return p.Label
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

// Default returns the built-in grave dataset.
func Default() []GeoPoint {
	return []GeoPoint{
		{LatLng: geom.LatLng{Lat: 12.972442, Lng: 77.580643}, Label: "John Doe", Attributes: map[string]any{"age": 75}},
		{LatLng: geom.LatLng{Lat: 12.975000, Lng: 77.582500}, Label: "Mary Smith", Attributes: map[string]any{"age": 68}},
		{LatLng: geom.LatLng{Lat: 12.970800, Lng: 77.584200}, Label: "Robert Lee", Attributes: map[string]any{"age": 82}},
		{LatLng: geom.LatLng{Lat: 12.971500, Lng: 77.578900}, Label: "Linda Johnson", Attributes: map[string]any{"age": 70}},
		{LatLng: geom.LatLng{Lat: 12.974300, Lng: 77.579800}, Label: "Michael Brown", Attributes: map[string]any{"age": 77}},
	}
}

// Filter returns the points whose label contains query, ignoring case.
// An empty query returns points unchanged. Order is preserved.
func Filter(points []GeoPoint, query string) []GeoPoint {
	if query == "" {
		return points
	}
	q := strings.ToLower(query)
	out := make([]GeoPoint, 0, len(points))
	for _, p := range points {
		if strings.Contains(strings.ToLower(p.Label), q) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the first point with exactly the given label.
func Find(points []GeoPoint, label string) (GeoPoint, bool) {
	for _, p := range points {
		if p.Label == label {
			return p, true
		}
	}
	return GeoPoint{}, false
}

// Positions returns the coordinates of points in order.
func Positions(points []GeoPoint) []geom.LatLng {
	out := make([]geom.LatLng, len(points))
	for i, p := range points {
		out[i] = p.LatLng
	}
	return out
}
