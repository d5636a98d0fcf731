package poi_test

import (
	"os"
	"path/filepath"
	"testing"

	"gravemap/internal/poi"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestLoad_GeoJSON(t *testing.T) {
	p := writeFile(t, "graves.geojson", `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [77.580643, 12.972442]},
     "properties": {"name": "John Doe", "age": 75}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]},
     "properties": {"name": "ignored"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [77.5825, 12.975]},
     "properties": {}}
  ]
}`)
	pts, err := poi.Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0].Label != "John Doe" || pts[0].Lat != 12.972442 || pts[0].Lng != 77.580643 {
		t.Errorf("unexpected first point %+v", pts[0])
	}
	if pts[0].Attr("age") != "75" {
		t.Errorf("expected age 75, got %q", pts[0].Attr("age"))
	}
	if _, ok := pts[0].Attributes["name"]; ok {
		t.Error("label property should not be duplicated in attributes")
	}
	if pts[1].Label != "Point 2" {
		t.Errorf("expected fallback label, got %q", pts[1].Label)
	}
}

func TestLoad_GeoJSONSingleFeature(t *testing.T) {
	p := writeFile(t, "one.json", `{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {"title": "Solo"}}`)
	pts, err := poi.Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 1 || pts[0].Label != "Solo" {
		t.Errorf("unexpected points %+v", pts)
	}
}

func TestLoad_GeoJSONWithoutPoints(t *testing.T) {
	p := writeFile(t, "lines.geojson", `{"type": "FeatureCollection", "features": []}`)
	if _, err := poi.Load(p); err == nil {
		t.Error("expected error for collection without points")
	}
}

func TestLoad_CSV(t *testing.T) {
	p := writeFile(t, "graves.csv", "Name,Latitude,Longitude,age,plot\n"+
		"John Doe,12.972442,77.580643,75,A-1\n"+
		"broken,abc,77.5,1,B\n"+
		"Mary Smith,12.975,77.5825,68,A-2\n")
	pts, err := poi.Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[1].Label != "Mary Smith" || pts[1].Attr("age") != "68" || pts[1].Attr("plot") != "A-2" {
		t.Errorf("unexpected second point %+v", pts[1])
	}
	if pts[0].Title() != "John Doe (Age: 75)" {
		t.Errorf("unexpected title %q", pts[0].Title())
	}
}

func TestLoad_CSVMissingColumns(t *testing.T) {
	p := writeFile(t, "bad.csv", "name,age\nJohn,75\n")
	if _, err := poi.Load(p); err == nil {
		t.Error("expected error when coordinate columns are missing")
	}
}

func TestLoad_KML(t *testing.T) {
	p := writeFile(t, "graves.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>Robert Lee</name>
      <description>Age 82</description>
      <Point><coordinates>77.5842,12.9708,0</coordinates></Point>
    </Placemark>
  </Document>
</kml>`)
	pts, err := poi.Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 1 || pts[0].Label != "Robert Lee" || pts[0].Lat != 12.9708 {
		t.Errorf("unexpected points %+v", pts)
	}
	if pts[0].Attr("description") != "Age 82" {
		t.Errorf("unexpected description %q", pts[0].Attr("description"))
	}
}

func TestLoad_Unsupported(t *testing.T) {
	p := writeFile(t, "graves.txt", "hello")
	if _, err := poi.Load(p); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if poi.Supported(p) {
		t.Error("txt should not be supported")
	}
	if !poi.Supported("x.GeoJSON") {
		t.Error("extension match should ignore case")
	}
}
