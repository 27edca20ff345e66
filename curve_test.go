package sketch

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func curvePoints(i int) []Vec2 {
	f := float64(i)
	return []Vec2{{0, 0}, {10 + f, 20}, {30, f}}
}

func TestTessellateEndpointsAndLength(t *testing.T) {
	pts := []Vec2{{0, 0}, {50, 80}, {100, 0}}
	buf, err := TessellateCurve(pts, CurveOptions{Segments: 10})
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 * (2*10 + 1); len(buf) != want {
		t.Fatalf("len = %d, want %d", len(buf), want)
	}
	if buf[0] != 0 || buf[1] != 0 {
		t.Errorf("first point = (%v, %v)", buf[0], buf[1])
	}
	if buf[len(buf)-2] != 100 || buf[len(buf)-1] != 0 {
		t.Errorf("last point = (%v, %v)", buf[len(buf)-2], buf[len(buf)-1])
	}
	// The curve passes through the middle control point at the span boundary.
	if buf[20] != 50 || buf[21] != 80 {
		t.Errorf("control point not interpolated: (%v, %v)", buf[20], buf[21])
	}
}

func TestTessellateClosedWraps(t *testing.T) {
	buf, err := TessellateCurve(square, CurveOptions{Segments: 4, Close: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 * (4*4 + 1); len(buf) != want {
		t.Fatalf("len = %d, want %d", len(buf), want)
	}
	n := len(buf)
	if buf[n-2] != buf[0] || buf[n-1] != buf[1] {
		t.Error("closed curve does not end on its first point")
	}
}

func TestTessellateTooFewPoints(t *testing.T) {
	cc := NewCurveCache(0, 0)
	if _, err := cc.Tessellate([]Vec2{{1, 1}}, CurveOptions{}); !errors.Is(err, ErrTooFewCurvePoints) {
		t.Errorf("err = %v, want ErrTooFewCurvePoints", err)
	}
}

func TestCurveCoefficientsEndpoints(t *testing.T) {
	c := curveCoefficients(8)
	if len(c) != 4*(8+2) {
		t.Fatalf("len = %d", len(c))
	}
	if !slices.Equal(c[0:4], []float64{1, 0, 0, 0}) {
		t.Errorf("start weights = %v", c[0:4])
	}
	if !slices.Equal(c[32:36], []float64{0, 1, 0, 0}) {
		t.Errorf("end weights = %v", c[32:36])
	}
	for i := 0; i <= 8; i++ {
		if s := c[4*i] + c[4*i+1]; math.Abs(s-1) > 1e-12 {
			t.Errorf("step %d position weights sum to %v", i, s)
		}
	}
}

func TestCurveCacheDeterministic(t *testing.T) {
	cc := NewCurveCache(0, 0)
	pts := []Vec2{{0, 0}, {10, 30}, {40, 10}, {60, 50}}

	a, err := cc.Tessellate(pts, CurveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Same contents, different backing array.
	b, err := cc.Tessellate(slices.Clone(pts), CurveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a, b) {
		t.Fatal("repeat tessellation differs")
	}
	if s := cc.Stats(); s.Computations != 1 || s.Hits != 1 {
		t.Errorf("stats = %+v, want 1 computation and 1 hit", s)
	}

	fresh, _ := TessellateCurve(pts, CurveOptions{})
	if !slices.Equal(a, fresh) {
		t.Error("cached result differs from uncached tessellation")
	}

	cc.Clear()
	if cc.Len() != 0 {
		t.Errorf("Len after Clear = %d", cc.Len())
	}
	if _, err := cc.Tessellate(pts, CurveOptions{}); err != nil {
		t.Fatal(err)
	}
	if s := cc.Stats(); s.Computations != 1 || s.Hits != 0 {
		t.Errorf("stats after Clear = %+v, want a fresh computation", s)
	}
}

func TestCurveCacheKeyIncludesOptions(t *testing.T) {
	cc := NewCurveCache(0, 0)
	pts := []Vec2{{0, 0}, {10, 30}, {40, 10}}
	for _, o := range []CurveOptions{
		{},
		{Tension: 0.3},
		{Segments: 5},
		{Close: true},
	} {
		if _, err := cc.Tessellate(pts, o); err != nil {
			t.Fatal(err)
		}
	}
	if s := cc.Stats(); s.Computations != 4 {
		t.Errorf("computations = %d, want 4 distinct entries", s.Computations)
	}
}

func TestCurveCacheDistinguishesInteriorPoints(t *testing.T) {
	cc := NewCurveCache(0, 0)
	long := make([]Vec2, 100)
	for i := range long {
		long[i] = Vec2{float64(i), float64(i % 7)}
	}
	other := slices.Clone(long)
	other[50].Y += 1

	a, _ := cc.Tessellate(long, CurveOptions{})
	b, _ := cc.Tessellate(other, CurveOptions{})
	if slices.Equal(a, b) {
		t.Error("curves with different interior points share a cache entry")
	}
}

func TestCurveCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cc := NewCurveCache(200, 0)
	for i := range 201 {
		if _, err := cc.Tessellate(curvePoints(i), CurveOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	s := cc.Stats()
	if s.Len != 200 || s.Evictions != 1 {
		t.Fatalf("stats = %+v, want 200 entries and 1 eviction", s)
	}

	// Entry 1 survived; entry 0 was evicted and must be recomputed.
	before := cc.Stats().Computations
	_, _ = cc.Tessellate(curvePoints(1), CurveOptions{})
	if cc.Stats().Computations != before {
		t.Error("entry 1 was evicted")
	}
	_, _ = cc.Tessellate(curvePoints(0), CurveOptions{})
	if cc.Stats().Computations != before+1 {
		t.Error("entry 0 was not evicted")
	}
}

func TestCurveCacheHitPromotes(t *testing.T) {
	cc := NewCurveCache(200, 0)
	for i := range 200 {
		_, _ = cc.Tessellate(curvePoints(i), CurveOptions{})
	}
	_, _ = cc.Tessellate(curvePoints(0), CurveOptions{}) // promote 0
	_, _ = cc.Tessellate(curvePoints(200), CurveOptions{})

	before := cc.Stats().Computations
	_, _ = cc.Tessellate(curvePoints(0), CurveOptions{})
	if cc.Stats().Computations != before {
		t.Error("promoted entry 0 was evicted")
	}
	_, _ = cc.Tessellate(curvePoints(1), CurveOptions{})
	if cc.Stats().Computations != before+1 {
		t.Error("entry 1 should have been the least recently used")
	}
}

func TestCurvePointsMatchesBuffer(t *testing.T) {
	cc := NewCurveCache(0, 0)
	pts := []Vec2{{0, 0}, {5, 5}}
	buf, _ := cc.Tessellate(pts, CurveOptions{Segments: 3})
	vs, err := cc.Points(pts, CurveOptions{Segments: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(vs)*2 != len(buf) || vs[1] != (Vec2{buf[2], buf[3]}) {
		t.Errorf("Points = %v, buffer = %v", vs, buf)
	}
}

func TestTessellateZeroTension(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 20}, {30, 0}}
	zero, err := TessellateCurve(pts, CurveOptions{Segments: 4}.WithTension(0))
	if err != nil {
		t.Fatal(err)
	}
	half, err := TessellateCurve(pts, CurveOptions{Tension: 0.5, Segments: 4})
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(zero, half) {
		t.Fatal("tension 0 tessellated like tension 0.5")
	}
	// Zero tangents put the span midpoint halfway between its endpoints.
	if zero[4] != 5 || zero[5] != 10 {
		t.Errorf("midpoint = (%v, %v), want (5, 10)", zero[4], zero[5])
	}
	unset, _ := TessellateCurve(pts, CurveOptions{Segments: 4})
	if !slices.Equal(unset, half) {
		t.Error("unset tension does not default to 0.5")
	}
}

func TestCurveCoefficientsSharedAcrossCurves(t *testing.T) {
	cc := NewCurveCache(0, 0)
	if _, err := cc.Tessellate(curvePoints(1), CurveOptions{Tension: 0.5, Segments: 6}); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Tessellate(curvePoints(2), CurveOptions{Tension: 0.9, Segments: 6}); err != nil {
		t.Fatal(err)
	}
	if cc.Len() != 2 {
		t.Errorf("result entries = %d, want 2", cc.Len())
	}
	if cc.coeffs.Len() != 1 {
		t.Fatalf("coefficient entries = %d, want 1", cc.coeffs.Len())
	}
	a, b := cc.coefficients(6), cc.coefficients(6)
	if &a[0] != &b[0] {
		t.Error("coefficient table rebuilt for the same segment count")
	}

	if _, err := cc.Tessellate(curvePoints(1), CurveOptions{Segments: 9}); err != nil {
		t.Fatal(err)
	}
	if cc.coeffs.Len() != 2 {
		t.Errorf("coefficient entries = %d, want 2", cc.coeffs.Len())
	}
}
