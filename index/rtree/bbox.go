package rtree

// BBox is an axis-aligned bounding box in (RA, Dec) space.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

func pointBox(x, y float64) BBox {
	return BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// combine gives the smallest bounding box containing both b and o.
func (b BBox) combine(o BBox) BBox {
	return BBox{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

func (b BBox) center() (float64, float64) {
	return b.MinX + (b.MaxX-b.MinX)/2, b.MinY + (b.MaxY-b.MinY)/2
}

// Contains reports whether (x, y) lies inside or on the border of b.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// MinDistanceSq returns the squared distance from (x, y) to the closest point
// of b; zero when the point is inside.
func (b BBox) MinDistanceSq(x, y float64) float64 {
	var dx, dy float64
	switch {
	case x < b.MinX:
		dx = b.MinX - x
	case x > b.MaxX:
		dx = x - b.MaxX
	}
	switch {
	case y < b.MinY:
		dy = b.MinY - y
	case y > b.MaxY:
		dy = y - b.MaxY
	}
	return dx*dx + dy*dy
}
