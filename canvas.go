package sketch

import (
	"fmt"
)

// Canvas bundles everything that draws on and listens to one surface: the
// render loop, the interaction manager, the curve cache and the
// accessibility overlay. It is the explicit handle every scoped helper
// takes; helpers called on a nil *Canvas fail with ErrNoCanvas.
type Canvas struct {
	cfg     Config
	ctx     Context
	sched   FrameScheduler
	loop    *RenderLoop
	im      *InteractionManager
	curves  *CurveCache
	overlay *Overlay
}

// New creates a Canvas painting ctx on frames from sched. The interaction
// manager starts without an event target; call Attach to connect one.
func New(ctx Context, sched FrameScheduler, cfg Config) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loop, err := NewRenderLoop(ctx, sched)
	if err != nil {
		return nil, err
	}
	loop.SetIsolation(cfg.IsolateDrawErrors)
	loop.SetDebugMode(cfg.Debug)
	im := NewInteractionManager(nil)
	return &Canvas{
		cfg:     cfg,
		ctx:     ctx,
		sched:   sched,
		loop:    loop,
		im:      im,
		curves:  NewCurveCache(cfg.CurveCacheSize, cfg.CoefficientCacheSize),
		overlay: NewOverlay(im),
	}, nil
}

// Attach connects the interaction manager to target.
func (c *Canvas) Attach(target EventTarget) error {
	if c == nil {
		return ErrNoCanvas
	}
	c.im.Attach(target)
	return nil
}

// Config returns the configuration the canvas was built with.
func (c *Canvas) Config() Config { return c.cfg }

// Context returns the rendering context.
func (c *Canvas) Context() Context { return c.ctx }

// Scheduler returns the frame scheduler.
func (c *Canvas) Scheduler() FrameScheduler { return c.sched }

// Loop returns the render loop.
func (c *Canvas) Loop() *RenderLoop { return c.loop }

// Interaction returns the interaction manager.
func (c *Canvas) Interaction() *InteractionManager { return c.im }

// Curves returns the curve cache.
func (c *Canvas) Curves() *CurveCache { return c.curves }

// Overlay returns the accessibility overlay.
func (c *Canvas) Overlay() *Overlay { return c.overlay }

// Start starts the render loop.
func (c *Canvas) Start() error {
	if c == nil {
		return ErrNoCanvas
	}
	return c.loop.Start()
}

// Close stops the render loop, clears its registry and destroys the
// interaction manager.
func (c *Canvas) Close() {
	if c == nil {
		return
	}
	c.loop.Close()
	c.im.Destroy()
}

// Draw registers a raw draw callback.
func (c *Canvas) Draw(draw DrawFunc) (DrawHandle, error) {
	if c == nil {
		return 0, ErrNoCanvas
	}
	return c.loop.Add(draw), nil
}

// Register adds a hit region with handlers.
func (c *Canvas) Register(region HitRegion, handlers Handlers) error {
	if c == nil {
		return ErrNoCanvas
	}
	c.im.Register(region, handlers)
	return nil
}

// Animate creates an AnimationValue ticking on the canvas scheduler.
func (c *Canvas) Animate(opts AnimationOptions) (*AnimationValue, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	return NewAnimationValue(c.sched, opts)
}

// Curve returns a Curve primitive that tessellates through the canvas cache
// with the configured defaults.
func (c *Canvas) Curve(points []Vec2, opts CurveOptions, args DrawingArgs) (Curve, error) {
	if c == nil {
		return Curve{}, ErrNoCanvas
	}
	return Curve{Points: points, CurveOptions: c.cfg.curveOptions(opts), Cache: c.curves, DrawingArgs: args}, nil
}

// Mounted is a shape attached to a Canvas.
type Mounted struct {
	c         *Canvas
	id        string
	shape     Shape
	handle    DrawHandle
	hasRegion bool
}

// Mount adds shape on top of the paint order. When id is non-empty and the
// shape can produce a hit region, the region is registered with handlers
// (which may be nil, e.g. for a region that is only described to the
// accessibility overlay).
func (c *Canvas) Mount(id string, shape Shape, handlers Handlers) (*Mounted, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if shape == nil {
		return nil, fmt.Errorf("sketch: mount %q: nil shape", id)
	}
	m := &Mounted{c: c, id: id, shape: shape}
	if err := m.registerRegion(handlers); err != nil {
		return nil, err
	}
	m.handle = c.loop.Add(m.drawFunc(shape))
	return m, nil
}

func (m *Mounted) registerRegion(handlers Handlers) error {
	if m.id == "" {
		return nil
	}
	rg, ok := m.shape.(Regioner)
	if !ok {
		return nil
	}
	region, err := rg.Region(m.id)
	if err != nil {
		return fmt.Errorf("sketch: mount %q: %w", m.id, err)
	}
	m.c.im.Register(region, handlers)
	m.hasRegion = true
	return nil
}

func (m *Mounted) drawFunc(shape Shape) DrawFunc {
	return func(ctx Context, _ uint64) error {
		return shape.Draw(ctx)
	}
}

// ID returns the region id the shape was mounted with.
func (m *Mounted) ID() string { return m.id }

// Handle returns the draw handle.
func (m *Mounted) Handle() DrawHandle { return m.handle }

// Shape returns the current shape.
func (m *Mounted) Shape() Shape { return m.shape }

// Update swaps in a new shape. The paint position and z-order position are
// kept; the hit region is replaced in place.
func (m *Mounted) Update(shape Shape) error {
	if shape == nil {
		return fmt.Errorf("sketch: update %q: nil shape", m.id)
	}
	if m.hasRegion {
		rg, ok := shape.(Regioner)
		if !ok {
			return fmt.Errorf("sketch: update %q: shape has no hit region", m.id)
		}
		region, err := rg.Region(m.id)
		if err != nil {
			return fmt.Errorf("sketch: update %q: %w", m.id, err)
		}
		m.c.im.UpdateRegion(region)
	}
	m.shape = shape
	m.c.loop.Replace(m.handle, m.drawFunc(shape))
	return nil
}

// Unmount removes the draw callback and the hit region.
func (m *Mounted) Unmount() {
	m.c.loop.Remove(m.handle)
	if m.hasRegion {
		m.c.im.Unregister(m.id)
		m.hasRegion = false
	}
}
