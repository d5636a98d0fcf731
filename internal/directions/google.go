package directions

import (
	"context"
	"fmt"
	"strings"

	maps "googlemaps.github.io/maps"

	"gravemap/internal/geom"
)

// DirectionsClient is the subset of *maps.Client the Google router uses.
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// Google routes through the Google Maps Directions API.
type Google struct {
	client DirectionsClient
	mode   maps.Mode
}

// NewGoogle builds a router from an API key.
func NewGoogle(apiKey string, mode Mode) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}
	return NewGoogleWithClient(client, mode), nil
}

// NewGoogleWithClient wraps an existing directions client.
func NewGoogleWithClient(client DirectionsClient, mode Mode) *Google {
	m := maps.TravelModeWalking
	if mode == ModeDriving {
		m = maps.TravelModeDriving
	}
	return &Google{client: client, mode: m}
}

func (g *Google) Route(ctx context.Context, from, to geom.LatLng) (Route, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Lat, from.Lng),
		Destination: fmt.Sprintf("%f,%f", to.Lat, to.Lng),
		Mode:        g.mode,
	}
	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 {
		return Route{}, ErrNoRoute
	}
	rt := routes[0]
	out := Route{Summary: rt.Summary}
	for _, leg := range rt.Legs {
		out.Distance += float64(leg.Distance.Meters)
		out.Duration += leg.Duration
		for _, step := range leg.Steps {
			out.Steps = append(out.Steps, Step{
				Instruction: stripHTML(step.HTMLInstructions),
				Distance:    float64(step.Distance.Meters),
				Location:    geom.LatLng{Lat: step.StartLocation.Lat, Lng: step.StartLocation.Lng},
			})
		}
		out.Steps = append(out.Steps, Step{
			Instruction: "You have arrived at your destination",
			Location:    geom.LatLng{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
		})
	}
	if line, err := rt.OverviewPolyline.Decode(); err == nil {
		for _, p := range line {
			out.Path = append(out.Path, geom.LatLng{Lat: p.Lat, Lng: p.Lng})
		}
	}
	if len(out.Path) < 2 {
		out.Path = []geom.LatLng{from, to}
	}
	if out.Summary == "" {
		out.Summary = "Route"
	}
	return out, nil
}

func stripHTML(s string) string {
	out := make([]rune, 0, len(s))
	inTag := false
	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			out = append(out, r)
		}
	}
	return strings.TrimSpace(string(out))
}
