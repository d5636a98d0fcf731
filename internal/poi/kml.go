package poi

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gravemap/internal/geom"
)

// LoadKML extracts Placemark > Point coordinates with the placemark name
// and description. KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) ([]GeoPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name        string    `xml:"name"`
		Description string    `xml:"description"`
		Point       *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Flat       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var out []GeoPoint
	for _, pm := range append(doc.Placemarks, doc.Flat...) {
		if pm.Point == nil {
			continue
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			label := strings.TrimSpace(pm.Name)
			if label == "" {
				label = fmt.Sprintf("Point %d", len(out)+1)
			}
			attrs := map[string]any{}
			if d := strings.TrimSpace(pm.Description); d != "" {
				attrs["description"] = d
			}
			out = append(out, GeoPoint{LatLng: geom.LatLng{Lat: lat, Lng: lon}, Label: label, Attributes: attrs})
		}
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return out, nil
}
