package directions

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"gravemap/internal/geom"
)

var speeds = map[Mode]float64{
	ModeWalking: 1.4,
	ModeDriving: 8.3,
}

// Straight routes along the great-circle line. It needs no network and is
// the default backend.
type Straight struct {
	Mode Mode
}

func (s Straight) Route(ctx context.Context, from, to geom.LatLng) (Route, error) {
	if err := ctx.Err(); err != nil {
		return Route{}, err
	}
	a := orb.Point{from.Lng, from.Lat}
	b := orb.Point{to.Lng, to.Lat}
	dist := geo.DistanceHaversine(a, b)
	speed, ok := speeds[s.Mode]
	if !ok {
		speed = speeds[ModeWalking]
	}
	head := Compass(geo.Bearing(a, b))
	steps := []Step{
		{Instruction: fmt.Sprintf("Head %s", head), Distance: dist, Location: from},
		{Instruction: "You have arrived at your destination", Location: to},
	}
	return Route{
		Summary:  fmt.Sprintf("Direct %s", head),
		Path:     []geom.LatLng{from, to},
		Steps:    steps,
		Distance: dist,
		Duration: time.Duration(dist / speed * float64(time.Second)),
	}, nil
}

var compassPoints = []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

// Compass names the 8-point direction for a bearing in degrees.
func Compass(bearing float64) string {
	b := math.Mod(bearing+360, 360)
	return compassPoints[int(math.Floor((b+22.5)/45))%8]
}

// Distance is the haversine distance between two positions in meters.
func Distance(a, b geom.LatLng) float64 {
	return geo.DistanceHaversine(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}
