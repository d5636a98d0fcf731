package geom

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// BBox is an axis-aligned extent with X = longitude and Y = latitude.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64

	set bool
}

// Extend grows the box to include p.
func (b *BBox) Extend(p LatLng) {
	if !b.set {
		*b = BBox{MinX: p.Lng, MinY: p.Lat, MaxX: p.Lng, MaxY: p.Lat, set: true}
		return
	}
	if p.Lng < b.MinX {
		b.MinX = p.Lng
	}
	if p.Lat < b.MinY {
		b.MinY = p.Lat
	}
	if p.Lng > b.MaxX {
		b.MaxX = p.Lng
	}
	if p.Lat > b.MaxY {
		b.MaxY = p.Lat
	}
}

// Valid reports whether the box has a non-zero area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Pad widens every side by frac of the box's span. A degenerate axis gets a
// small fixed margin so single points still project.
func (b BBox) Pad(frac float64) BBox {
	dx := (b.MaxX - b.MinX) * frac
	dy := (b.MaxY - b.MinY) * frac
	if dx == 0 {
		dx = 0.001
	}
	if dy == 0 {
		dy = 0.001
	}
	return BBox{MinX: b.MinX - dx, MinY: b.MinY - dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy, set: true}
}

// BBoxOf returns the extent of the given points.
func BBoxOf(points ...LatLng) BBox {
	var b BBox
	for _, p := range points {
		b.Extend(p)
	}
	return b
}
