package geom_test

import (
	"testing"

	"gravemap/internal/geom"
)

func TestParseWKTPoint(t *testing.T) {
	p, err := geom.ParseWKTPoint("POINT(77.580643 12.972442)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 12.972442 || p.Lng != 77.580643 {
		t.Errorf("expected lat=12.972442 lng=77.580643, got %+v", p)
	}
}

func TestParseWKTPoint_LowercaseAndZ(t *testing.T) {
	p, err := geom.ParseWKTPoint("  point ( 1.5 2.5 10 ) ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (geom.LatLng{Lat: 2.5, Lng: 1.5}) {
		t.Errorf("got %+v", p)
	}
}

func TestParseWKTPoint_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"LINESTRING(0 0, 1 1)",
		"POINT 1 2",
		"POINT(a b)",
		"POINT(1 2, 3 4)",
		"POINT(10 95)",
	} {
		if _, err := geom.ParseWKTPoint(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestParseWKTLine(t *testing.T) {
	pts, err := geom.ParseWKTLine("LINESTRING(77.58 12.97, 77.59 12.98)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 || pts[1].Lat != 12.98 {
		t.Errorf("got %+v", pts)
	}
	if _, err := geom.ParseWKTLine("LINESTRING(1 1)"); err == nil {
		t.Error("expected error for single-vertex line")
	}
}

func TestParseWKTDestination(t *testing.T) {
	tests := []struct {
		in   string
		want geom.LatLng
	}{
		{"POINT(77.58 12.97)", geom.LatLng{Lat: 12.97, Lng: 77.58}},
		{"linestring(77.58 12.97, 77.59 12.98)", geom.LatLng{Lat: 12.98, Lng: 77.59}},
	}
	for _, tt := range tests {
		got, err := geom.ParseWKTDestination(tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := geom.ParseWKTDestination("POLYGON((1 1, 2 2, 3 1, 1 1))"); err == nil {
		t.Error("expected error for polygon")
	}
}

func TestBBoxPad(t *testing.T) {
	b := geom.BBoxOf(geom.LatLng{Lat: 1, Lng: 1})
	if b.Valid() {
		t.Fatal("single point box should not be valid")
	}
	p := b.Pad(0.1)
	if !p.Valid() {
		t.Fatal("padded box should be valid")
	}
	b = geom.BBoxOf(geom.LatLng{Lat: 0, Lng: 0}, geom.LatLng{Lat: 10, Lng: 20})
	p = b.Pad(0.1)
	if p.MinX != -2 || p.MaxX != 22 || p.MinY != -1 || p.MaxY != 11 {
		t.Errorf("unexpected padded box %+v", p)
	}
}
