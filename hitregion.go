package sketch

import "fmt"

// HitRegion is a named polygon with a precomputed bounding box used for
// pointer containment tests. Regions are values: to change one, build a
// replacement with the same ID and pass it to InteractionManager.UpdateRegion.
type HitRegion struct {
	ID     string
	points []Vec2
	bounds AABB
}

// NewHitRegion creates a region whose bounds are derived from points.
// The points are copied.
func NewHitRegion(id string, points []Vec2) HitRegion {
	pts := append([]Vec2(nil), points...)
	return HitRegion{ID: id, points: pts, bounds: CalculateAABB(pts)}
}

// NewHitRegionWithBounds creates a region with caller-supplied bounds, for
// padded or otherwise overridden extents. The bounds are normalized.
func NewHitRegionWithBounds(id string, points []Vec2, bounds AABB) HitRegion {
	pts := append([]Vec2(nil), points...)
	return HitRegion{ID: id, points: pts, bounds: bounds.Normalize()}
}

// Points returns the region's polygon. The returned slice MUST NOT be mutated.
func (r HitRegion) Points() []Vec2 { return r.points }

// Bounds returns the region's bounding box.
func (r HitRegion) Bounds() AABB { return r.bounds }

// ContainsPoint reports whether p is inside the region: inside the bounds
// (edges inclusive) and inside the polygon by the even-odd rule.
func (r HitRegion) ContainsPoint(p Vec2) bool {
	if !PointInAABB(p, r.bounds) {
		return false
	}
	return PointInPolygon(p, r.points)
}

// RectRegion builds a region covering the rectangle (x, y, w, h).
func RectRegion(id string, x, y, w, h float64) HitRegion {
	return NewHitRegion(id, rectPoints(x, y, w, h))
}

// EllipseRegion approximates an ellipse with an n-gon (n < 8 uses 8).
func EllipseRegion(id string, cx, cy, rx, ry float64, n int) HitRegion {
	if n < 8 {
		n = 8
	}
	return NewHitRegion(id, ellipsePoints(cx, cy, rx, ry, n))
}

// PolylineRegion builds a region for an open polyline: the polygon is the
// bounding box of the points grown by pad, and the bounds match it.
func PolylineRegion(id string, points []Vec2, pad float64) HitRegion {
	b := CalculateAABB(points).Pad(pad)
	return NewHitRegion(id, rectPoints(b.MinX, b.MinY, b.Width(), b.Height()))
}

// PaddedRegion returns a copy of r whose bounds are grown by pad while the
// polygon stays the same. Use it to widen the pre-filter for regions whose
// polygon is tested by a custom rule elsewhere; containment still requires
// the polygon test.
func PaddedRegion(r HitRegion, pad float64) HitRegion {
	return NewHitRegionWithBounds(r.ID, r.points, r.bounds.Pad(pad))
}

// PolygonRegion builds a region from a closed polygon of at least three
// points.
func PolygonRegion(id string, points []Vec2) (HitRegion, error) {
	if len(points) < 3 {
		return HitRegion{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	return NewHitRegion(id, points), nil
}

// CurveRegion builds a region from the closed Catmull-Rom curve through
// points, tessellated through cache (nil re-tessellates). opts.Close is
// forced on since only closed curves have an interior; Curve.Region gives
// open curves a padded box instead.
func CurveRegion(id string, cache *CurveCache, points []Vec2, opts CurveOptions) (HitRegion, error) {
	opts.Close = true
	var (
		buf []float64
		err error
	)
	if cache == nil {
		buf, err = TessellateCurve(points, opts)
	} else {
		buf, err = cache.Tessellate(points, opts)
	}
	if err != nil {
		return HitRegion{}, err
	}
	return NewHitRegion(id, unflatten(buf)), nil
}
