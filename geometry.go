package sketch

import "math"

// CalculateAABB returns the smallest box containing every point.
// An empty point set yields the all-zero box.
func CalculateAABB(points []Vec2) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// PointInAABB reports whether p lies inside b. All four edges are inclusive.
func PointInAABB(p Vec2, b AABB) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// PointInPolygon reports whether p lies inside the polygon using the even-odd
// ray casting rule. The closing edge from the last vertex to the first is
// implicit. Fewer than three vertices never contain anything.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		// (yi > y) != (yj > y) skips horizontal edges and counts shared
		// vertices exactly once.
		if (yi > p.Y) != (yj > p.Y) {
			xCross := (xj-xi)*(p.Y-yi)/(yj-yi) + xi
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Centroid returns the area centroid of a simple polygon. Degenerate
// polygons (zero area) fall back to the vertex average.
func Centroid(poly []Vec2) Vec2 {
	if len(poly) == 0 {
		return Vec2{}
	}
	var area, cx, cy float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	if math.Abs(area) < 1e-12 {
		var sum Vec2
		for _, p := range poly {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(n))
	}
	area *= 0.5
	return Vec2{cx / (6 * area), cy / (6 * area)}
}

// RotatePoint rotates p by deg degrees (clockwise on screen, matching the
// canvas rotate convention) about center.
func RotatePoint(p, center Vec2, deg float64) Vec2 {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Vec2{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// RotatePoints returns a copy of points rotated by deg degrees about center.
func RotatePoints(points []Vec2, center Vec2, deg float64) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i] = RotatePoint(p, center, deg)
	}
	return out
}

// ArcToGeometry computes the circular arc that an arcTo(p1, p2, r) call
// inserts after the current point p0: the tangent points on both legs, the
// arc center, start/end angles and sweep direction. ok is false when the
// three points are collinear or the radius is zero, in which case callers
// draw a straight line to p1.
func ArcToGeometry(p0, p1, p2 Vec2, r float64) (t0, t1, center Vec2, a0, a1 float64, ccw, ok bool) {
	if r <= 0 {
		return p1, p1, Vec2{}, 0, 0, false, false
	}
	v0 := p0.Sub(p1)
	v2 := p2.Sub(p1)
	l0 := math.Hypot(v0.X, v0.Y)
	l2 := math.Hypot(v2.X, v2.Y)
	if l0 == 0 || l2 == 0 {
		return p1, p1, Vec2{}, 0, 0, false, false
	}
	u0 := v0.Scale(1 / l0)
	u2 := v2.Scale(1 / l2)
	cosTheta := u0.X*u2.X + u0.Y*u2.Y
	cross := u0.X*u2.Y - u0.Y*u2.X
	if math.Abs(cross) < 1e-9 {
		return p1, p1, Vec2{}, 0, 0, false, false
	}
	theta := math.Acos(math.Max(-1, math.Min(1, cosTheta)))
	d := r / math.Tan(theta/2)
	t0 = p1.Add(u0.Scale(d))
	t1 = p1.Add(u2.Scale(d))

	bis := u0.Add(u2)
	bl := math.Hypot(bis.X, bis.Y)
	h := r / math.Sin(theta/2)
	center = p1.Add(bis.Scale(h / bl))

	a0 = math.Atan2(t0.Y-center.Y, t0.X-center.X)
	a1 = math.Atan2(t1.Y-center.Y, t1.X-center.X)
	// Turning left (cross > 0 in y-down space) sweeps counter-clockwise.
	ccw = cross > 0
	return t0, t1, center, a0, a1, ccw, true
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
