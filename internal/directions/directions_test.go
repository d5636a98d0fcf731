package directions_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	maps "googlemaps.github.io/maps"

	"gravemap/internal/directions"
	"gravemap/internal/geom"
)

var (
	origin = geom.LatLng{Lat: 12.9728512, Lng: 77.5815168}
	john   = geom.LatLng{Lat: 12.972442, Lng: 77.580643}
	mary   = geom.LatLng{Lat: 12.975000, Lng: 77.582500}
)

func TestStraight_Route(t *testing.T) {
	r, err := directions.Straight{Mode: directions.ModeWalking}.Route(context.Background(), origin, john)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Path) != 2 || r.Path[0] != origin || r.Path[1] != john {
		t.Errorf("unexpected path %+v", r.Path)
	}
	// roughly 104 m between the user and John Doe
	if r.Distance < 90 || r.Distance > 120 {
		t.Errorf("unexpected distance %.1f", r.Distance)
	}
	if r.Duration <= 0 {
		t.Errorf("expected positive duration, got %v", r.Duration)
	}
	if len(r.Steps) != 2 || !strings.HasPrefix(r.Steps[0].Instruction, "Head ") {
		t.Errorf("unexpected steps %+v", r.Steps)
	}
}

func TestStraight_DrivingFasterThanWalking(t *testing.T) {
	ctx := context.Background()
	w, _ := directions.Straight{Mode: directions.ModeWalking}.Route(ctx, origin, mary)
	d, _ := directions.Straight{Mode: directions.ModeDriving}.Route(ctx, origin, mary)
	if d.Duration >= w.Duration {
		t.Errorf("driving (%v) should be faster than walking (%v)", d.Duration, w.Duration)
	}
}

func TestStraight_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (directions.Straight{}).Route(ctx, origin, john); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompass(t *testing.T) {
	cases := map[float64]string{0: "north", 44: "northeast", 90: "east", 180: "south", -90: "west", 315: "northwest", 359: "north"}
	for in, want := range cases {
		if got := directions.Compass(in); got != want {
			t.Errorf("Compass(%v): expected %s, got %s", in, want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := directions.ParseMode("driving"); err != nil || m != directions.ModeDriving {
		t.Errorf("unexpected %v %v", m, err)
	}
	if _, err := directions.ParseMode("flying"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFormat(t *testing.T) {
	if got := directions.FormatDistance(350.4); got != "350 m" {
		t.Errorf("got %q", got)
	}
	if got := directions.FormatDistance(1234); got != "1.2 km" {
		t.Errorf("got %q", got)
	}
	if got := directions.FormatDuration(10 * time.Second); got != "1 min" {
		t.Errorf("got %q", got)
	}
	if got := directions.FormatDuration(75 * time.Minute); got != "1 h 15 min" {
		t.Errorf("got %q", got)
	}
}

// --- Cache ---

type countingRouter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingRouter) Route(ctx context.Context, from, to geom.LatLng) (directions.Route, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return directions.Route{}, c.err
	}
	return directions.Route{Path: []geom.LatLng{from, to}}, nil
}

func TestCache_HitsSkipInnerRouter(t *testing.T) {
	inner := &countingRouter{}
	c := directions.NewCache(inner, 4)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		r, err := c.Route(ctx, origin, john)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Path[1] != john {
			t.Errorf("unexpected route %+v", r)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	inner := &countingRouter{}
	c := directions.NewCache(inner, 1)
	ctx := context.Background()
	c.Route(ctx, origin, john)
	c.Route(ctx, origin, mary)
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	c.Route(ctx, origin, john)
	if inner.calls != 3 {
		t.Errorf("expected evicted entry to be refetched, got %d calls", inner.calls)
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	inner := &countingRouter{err: directions.ErrNoRoute}
	c := directions.NewCache(inner, 4)
	for i := 0; i < 2; i++ {
		if _, err := c.Route(context.Background(), origin, john); !errors.Is(err, directions.ErrNoRoute) {
			t.Fatalf("expected ErrNoRoute, got %v", err)
		}
	}
	if inner.calls != 2 || c.Len() != 0 {
		t.Errorf("errors should not be cached: calls=%d len=%d", inner.calls, c.Len())
	}
}

// --- Google ---

type mockDirections struct {
	directionsFn func(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

func (m *mockDirections) Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	return m.directionsFn(ctx, r)
}

func TestGoogle_Route(t *testing.T) {
	var got *maps.DirectionsRequest
	client := &mockDirections{
		directionsFn: func(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
			got = r
			step := &maps.Step{HTMLInstructions: "Head <b>north</b> on Cemetery Rd"}
			step.Meters = 120
			step.StartLocation = maps.LatLng{Lat: origin.Lat, Lng: origin.Lng}
			leg := &maps.Leg{Steps: []*maps.Step{step}, Duration: 90 * time.Second}
			leg.Meters = 120
			leg.EndLocation = maps.LatLng{Lat: john.Lat, Lng: john.Lng}
			return []maps.Route{{Summary: "Cemetery Rd", Legs: []*maps.Leg{leg}}}, nil, nil
		},
	}
	r, err := directions.NewGoogleWithClient(client, directions.ModeDriving).Route(context.Background(), origin, john)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode != maps.TravelModeDriving {
		t.Errorf("expected driving mode, got %v", got.Mode)
	}
	if r.Summary != "Cemetery Rd" || r.Distance != 120 || r.Duration != 90*time.Second {
		t.Errorf("unexpected route %+v", r)
	}
	if len(r.Steps) != 2 || r.Steps[0].Instruction != "Head north on Cemetery Rd" {
		t.Errorf("unexpected steps %+v", r.Steps)
	}
	if len(r.Path) != 2 {
		t.Errorf("expected fallback straight path, got %+v", r.Path)
	}
}

func TestGoogle_NoRoutes(t *testing.T) {
	client := &mockDirections{
		directionsFn: func(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
			return nil, nil, nil
		},
	}
	_, err := directions.NewGoogleWithClient(client, directions.ModeWalking).Route(context.Background(), origin, john)
	if !errors.Is(err, directions.ErrNoRoute) {
		t.Errorf("expected ErrNoRoute, got %v", err)
	}
}

func TestGoogle_TransportError(t *testing.T) {
	boom := errors.New("boom")
	client := &mockDirections{
		directionsFn: func(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
			return nil, nil, boom
		},
	}
	_, err := directions.NewGoogleWithClient(client, directions.ModeWalking).Route(context.Background(), origin, john)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}
