package poi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"gravemap/internal/geom"
)

// LoadGeoJSON reads Point and MultiPoint features from a Feature or
// FeatureCollection. Features without a name get "Point N".
func LoadGeoJSON(path string) ([]GeoPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{f}
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", head.Type)
	}

	var out []GeoPoint
	add := func(pt orb.Point, props geojson.Properties) {
		attrs := make(map[string]any, len(props))
		for k, v := range props {
			attrs[k] = v
		}
		label, key := labelFrom(attrs)
		if label == "" {
			label = fmt.Sprintf("Point %d", len(out)+1)
		} else {
			delete(attrs, key)
		}
		out = append(out, GeoPoint{
			LatLng:     geom.LatLng{Lat: pt.Lat(), Lng: pt.Lon()},
			Label:      label,
			Attributes: attrs,
		})
	}
	for _, f := range features {
		switch g := f.Geometry.(type) {
		case orb.Point:
			add(g, f.Properties)
		case orb.MultiPoint:
			for _, p := range g {
				add(p, f.Properties)
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no point features found")
	}
	return out, nil
}
