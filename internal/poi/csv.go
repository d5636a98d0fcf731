package poi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gravemap/internal/geom"
)

// LoadCSV reads a CSV with latitude/longitude columns.
// Column detection: lat|latitude|y, lon|lng|long|longitude|x and
// name|label|title (case-insensitive). Remaining columns become attributes,
// with numeric cells stored as float64.
func LoadCSV(path string) ([]GeoPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxName := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "label", "title":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var out []GeoPoint
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		label := ""
		if idxName >= 0 && idxName < len(row) {
			label = strings.TrimSpace(row[idxName])
		}
		if label == "" {
			label = fmt.Sprintf("Point %d", len(out)+1)
		}
		attrs := map[string]any{}
		for i, cell := range row {
			if i == idxLat || i == idxLon || i == idxName || i >= len(header) {
				continue
			}
			cell = strings.TrimSpace(cell)
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				attrs[strings.TrimSpace(header[i])] = v
			} else {
				attrs[strings.TrimSpace(header[i])] = cell
			}
		}
		out = append(out, GeoPoint{LatLng: geom.LatLng{Lat: lat, Lng: lon}, Label: label, Attributes: attrs})
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return out, nil
}
