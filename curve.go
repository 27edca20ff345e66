package sketch

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg/cache"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Curve tessellation defaults.
const (
	DefaultTension          = 0.5
	DefaultSegments         = 25
	DefaultCurveCacheSize   = 200
	DefaultCoeffCacheShards = cache.DefaultShardCount
)

// CurveOptions controls Catmull-Rom tessellation. Zero Segments selects
// DefaultSegments. Zero Tension selects DefaultTension unless TensionSet is
// true; use WithTension to ask for a tension of exactly 0.
type CurveOptions struct {
	Tension    float64
	TensionSet bool
	Segments   int
	Close      bool
}

// WithTension returns o with Tension fixed to t, zero included.
func (o CurveOptions) WithTension(t float64) CurveOptions {
	o.Tension, o.TensionSet = t, true
	return o
}

func (o CurveOptions) tensionUnset() bool {
	return o.Tension == 0 && !o.TensionSet
}

func (o CurveOptions) withDefaults() CurveOptions {
	if o.tensionUnset() {
		o.Tension = DefaultTension
	}
	if o.Segments <= 0 {
		o.Segments = DefaultSegments
	}
	return o
}

// curveKey is the canonical signature of a tessellation request. The digest
// covers every coordinate, so distinct interior points never share a key
// short of a 64-bit hash collision.
type curveKey struct {
	digest   uint64
	n        int
	tension  float64
	segments int
	close    bool
}

// CurveStats reports cache effectiveness.
type CurveStats struct {
	Len          int
	Hits         uint64
	Misses       uint64
	Evictions    uint64
	Computations uint64
}

// CurveCache memoizes Catmull-Rom tessellations. It holds two caches: the
// Hermite coefficient tables keyed by segment count (shared by every curve
// with that count, independent of points and tension) and the tessellated
// point buffers keyed by the full request signature, bounded by an LRU.
//
// A CurveCache is safe for concurrent use. Create one per Canvas (or one per
// process) and pass it to whatever draws curves.
type CurveCache struct {
	mu      sync.Mutex
	results *lru.Cache[curveKey, []float64]
	coeffs  *cache.ShardedCache[int, []float64]

	hits         atomic.Uint64
	misses       atomic.Uint64
	evictions    atomic.Uint64
	computations atomic.Uint64
}

// NewCurveCache creates a cache holding at most size tessellations. A size
// <= 0 selects DefaultCurveCacheSize. coeffSize bounds the coefficient
// tables; <= 0 keeps the coefficient cache's own default.
func NewCurveCache(size, coeffSize int) *CurveCache {
	if size <= 0 {
		size = DefaultCurveCacheSize
	}
	c := &CurveCache{}
	perShard := 0
	if coeffSize > 0 {
		perShard = (coeffSize + DefaultCoeffCacheShards - 1) / DefaultCoeffCacheShards
	}
	c.coeffs = cache.NewSharded[int, []float64](perShard, cache.IntHasher)
	results, err := lru.NewWithEvict[curveKey, []float64](size, func(curveKey, []float64) {
		c.evictions.Add(1)
	})
	if err != nil {
		// Only returned for a non-positive size, excluded above.
		panic(err)
	}
	c.results = results
	return c
}

// Tessellate returns the flat (x, y) buffer of the Catmull-Rom spline through
// points. Identical requests are served from the cache and return the same
// buffer, which callers MUST NOT mutate.
func (c *CurveCache) Tessellate(points []Vec2, opts CurveOptions) ([]float64, error) {
	if len(points) < 2 {
		return nil, ErrTooFewCurvePoints
	}
	opts = opts.withDefaults()
	key := curveSignature(points, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if buf, ok := c.results.Get(key); ok {
		c.hits.Add(1)
		return buf, nil
	}
	c.misses.Add(1)
	coeffs := c.coefficients(opts.Segments)
	buf := tessellate(points, coeffs, opts)
	c.computations.Add(1)
	c.results.Add(key, buf)
	return buf, nil
}

// Points is Tessellate returning Vec2 values instead of a flat buffer.
func (c *CurveCache) Points(points []Vec2, opts CurveOptions) ([]Vec2, error) {
	buf, err := c.Tessellate(points, opts)
	if err != nil {
		return nil, err
	}
	return unflatten(buf), nil
}

// Clear empties the tessellation cache and resets the statistics. The
// coefficient tables are kept since they never depend on curve data.
func (c *CurveCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.computations.Store(0)
}

// Len returns the number of cached tessellations.
func (c *CurveCache) Len() int {
	return c.results.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *CurveCache) Stats() CurveStats {
	return CurveStats{
		Len:          c.results.Len(),
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Evictions:    c.evictions.Load(),
		Computations: c.computations.Load(),
	}
}

func (c *CurveCache) coefficients(segments int) []float64 {
	return c.coeffs.GetOrCreate(segments, func() []float64 {
		return curveCoefficients(segments)
	})
}

// TessellateCurve tessellates without any caching.
func TessellateCurve(points []Vec2, opts CurveOptions) ([]float64, error) {
	if len(points) < 2 {
		return nil, ErrTooFewCurvePoints
	}
	opts = opts.withDefaults()
	return tessellate(points, curveCoefficients(opts.Segments), opts), nil
}

// curveCoefficients builds the Hermite blending table for the given segment
// count: four weights per sub-step, 4*(segments+2) entries. Sub-step 0 is the
// segment start (1, 0, 0, 0); sub-step segments is the segment end.
func curveCoefficients(segments int) []float64 {
	table := make([]float64, 4*(segments+2))
	for i := 0; i <= segments; i++ {
		st := float64(i) / float64(segments)
		st2 := st * st
		st3 := st2 * st
		c := i * 4
		table[c] = 2*st3 - 3*st2 + 1
		table[c+1] = 3*st2 - 2*st3
		table[c+2] = st3 - 2*st2 + st
		table[c+3] = st3 - st2
	}
	return table
}

// tessellate walks every span of the padded control polygon and blends
// segments sub-steps per span. The final real point is appended once.
func tessellate(points []Vec2, coeffs []float64, opts CurveOptions) []float64 {
	n := len(points)
	seg := opts.Segments
	spans := n - 1
	if opts.Close {
		spans = n
	}
	out := make([]float64, 0, 2*(spans*seg+1))

	// Virtual neighbors: the first/last point repeated, or the wrapped
	// point when the curve is closed.
	padded := make([]Vec2, 0, n+2)
	if opts.Close {
		padded = append(padded, points[n-1])
	} else {
		padded = append(padded, points[0])
	}
	padded = append(padded, points...)
	if opts.Close {
		padded = append(padded, points[0])
	} else {
		padded = append(padded, points[n-1])
	}

	for i := 1; i < n; i++ {
		out = blendSpan(out, padded[i-1], padded[i], padded[i+1], padded[i+2], coeffs, seg, opts.Tension)
	}
	if opts.Close {
		prev := points[(n-2+n)%n]
		out = blendSpan(out, prev, points[n-1], points[0], points[1%n], coeffs, seg, opts.Tension)
		return append(out, points[0].X, points[0].Y)
	}
	return append(out, points[n-1].X, points[n-1].Y)
}

func blendSpan(out []float64, prev, p1, p2, next Vec2, coeffs []float64, seg int, tension float64) []float64 {
	t1x := (p2.X - prev.X) * tension
	t1y := (p2.Y - prev.Y) * tension
	t2x := (next.X - p1.X) * tension
	t2y := (next.Y - p1.Y) * tension
	for t := 0; t < seg; t++ {
		c := t * 4
		c1, c2, c3, c4 := coeffs[c], coeffs[c+1], coeffs[c+2], coeffs[c+3]
		out = append(out,
			c1*p1.X+c2*p2.X+c3*t1x+c4*t2x,
			c1*p1.Y+c2*p2.Y+c3*t1y+c4*t2y,
		)
	}
	return out
}

// curveSignature hashes every coordinate (FNV-1a over the IEEE-754 bits)
// together with the point count.
func curveSignature(points []Vec2, opts CurveOptions) curveKey {
	h := fnv.New64a()
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}
	return curveKey{
		digest:   h.Sum64(),
		n:        len(points),
		tension:  opts.Tension,
		segments: opts.Segments,
		close:    opts.Close,
	}
}

func unflatten(buf []float64) []Vec2 {
	out := make([]Vec2, len(buf)/2)
	for i := range out {
		out[i] = Vec2{buf[2*i], buf[2*i+1]}
	}
	return out
}
