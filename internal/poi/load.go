package poi

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extensions lists the dataset formats Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads a point dataset, choosing the parser by file extension.
func Load(path string) ([]GeoPoint, error) {
	var (
		pts []GeoPoint
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		pts, err = LoadGeoJSON(path)
	case ".csv":
		pts, err = LoadCSV(path)
	case ".kml":
		pts, err = LoadKML(path)
	default:
		return nil, fmt.Errorf("load %s: unsupported file type %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return pts, nil
}

// labelFrom picks the first non-empty name-like property.
func labelFrom(props map[string]any) (string, string) {
	for _, k := range []string{"name", "label", "title", "Name"} {
		if s, ok := props[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), k
		}
	}
	return "", ""
}
