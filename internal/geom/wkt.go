package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKTPoint parses POINT(lng lat). Extra ordinates (Z, M) are ignored.
func ParseWKTPoint(wkt string) (LatLng, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return LatLng{}, errors.New("empty wkt")
	}
	if !strings.HasPrefix(strings.ToUpper(s), "POINT") {
		return LatLng{}, errors.New("unsupported wkt type: only POINT is accepted")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return LatLng{}, errors.New("wkt point: invalid")
	}
	pts, err := parseCoords(s[i+1 : j])
	if err != nil {
		return LatLng{}, err
	}
	if len(pts) != 1 {
		return LatLng{}, errors.New("wkt point: expected exactly one coordinate")
	}
	return pts[0], nil
}

// ParseWKTLine parses LINESTRING(lng lat, ...).
func ParseWKTLine(wkt string) ([]LatLng, error) {
	s := strings.TrimSpace(wkt)
	if !strings.HasPrefix(strings.ToUpper(s), "LINESTRING") {
		return nil, errors.New("unsupported wkt type: only LINESTRING is accepted")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, errors.New("wkt linestring: invalid")
	}
	pts, err := parseCoords(s[i+1 : j])
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, errors.New("wkt linestring: need at least two coordinates")
	}
	return pts, nil
}

// ParseWKTDestination accepts a POINT, or a LINESTRING whose last vertex is
// the destination.
func ParseWKTDestination(wkt string) (LatLng, error) {
	s := strings.ToUpper(strings.TrimSpace(wkt))
	if strings.HasPrefix(s, "LINESTRING") {
		pts, err := ParseWKTLine(wkt)
		if err != nil {
			return LatLng{}, err
		}
		return pts[len(pts)-1], nil
	}
	return ParseWKTPoint(wkt)
}

// parseCoords splits "x y, x y" tuples. WKT order is lng lat.
func parseCoords(block string) ([]LatLng, error) {
	var out []LatLng
	for _, tup := range strings.Split(strings.TrimSpace(block), ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return nil, errors.New("wkt: invalid coordinate " + strconv.Quote(tup))
		}
		if y < -90 || y > 90 || x < -180 || x > 180 {
			return nil, errors.New("wkt: coordinate out of range " + strconv.Quote(tup))
		}
		out = append(out, LatLng{Lat: y, Lng: x})
	}
	if len(out) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return out, nil
}
