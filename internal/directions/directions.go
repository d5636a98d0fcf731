// Package directions computes routes between two positions for the routing
// widget. Backends implement Router.
package directions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gravemap/internal/geom"
)

// ErrNoRoute is returned when the backend finds no path between the points.
var ErrNoRoute = errors.New("no route found")

// Mode selects the travel profile.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeDriving Mode = "driving"
)

// ParseMode accepts "walking" or "driving".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWalking, ModeDriving:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown travel mode %q", s)
}

// Step is one turn-by-turn instruction.
type Step struct {
	Instruction string
	Distance    float64 // meters
	Location    geom.LatLng
}

// Route is a computed path with its instructions.
type Route struct {
	Summary  string
	Path     []geom.LatLng
	Steps    []Step
	Distance float64 // meters
	Duration time.Duration
}

// Router computes a route between two positions.
type Router interface {
	Route(ctx context.Context, from, to geom.LatLng) (Route, error)
}

// FormatDistance renders meters as "350 m" or "1.2 km".
func FormatDistance(m float64) string {
	if m < 1000 {
		return fmt.Sprintf("%.0f m", m)
	}
	return fmt.Sprintf("%.1f km", m/1000)
}

// FormatDuration renders a duration rounded to minutes, minimum one.
func FormatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	return fmt.Sprintf("%d h %d min", mins/60, mins%60)
}
