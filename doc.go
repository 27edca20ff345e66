// Package sketch is an immediate-mode 2D canvas toolkit: shape primitives
// repainted every frame by a draw-callback registry, with a hit-testing
// layer that turns pointer events into per-shape interaction events.
//
// # Quick start
//
// The simplest way to get a window is [github.com/phanxgames/sketch/ebitenhost.Run], which creates a
// gg-backed surface, an Ebitengine game loop and the canvas for you:
//
//	ebitenhost.Run(func(c *sketch.Canvas) error {
//		_, err := c.Mount("sq", sketch.Rect{
//			X: 10, Y: 10, Width: 100, Height: 100,
//			DrawingArgs: sketch.DrawingArgs{FillStyle: "#3498db"},
//		}, sketch.Handlers{
//			sketch.EventClick: func(e sketch.InteractionEvent) { log.Println("clicked", e.Target.ID) },
//		})
//		return err
//	}, ebitenhost.RunConfig{Title: "sketch", Width: 640, Height: 480})
//
// For full control, build a [Canvas] yourself with [New] from any
// [Context] and [FrameScheduler], and call [ManualScheduler.Advance] from
// your own frame loop.
//
// # Render loop
//
// A [RenderLoop] clears the surface each frame and calls every registered
// [DrawFunc] in registration order. Before each call it resets the
// transform, clears the line dash and begins a new path. A failing or
// panicking callback is logged through [Logger] and the rest of the frame
// still paints, unless isolation is turned off.
//
// # Shapes
//
// [Ellipse], [Rect], [Polygon], [Line], [Curve], [ArcTo], [Path], [Image]
// and [Text] draw through [Wrap], which validates [DrawingArgs], applies
// rotation about the shape centre, then strokes and fills. Text accepts
// exactly one of fill or stroke.
//
// # Interaction
//
// An [InteractionManager] keeps [HitRegion] values in z-order (last
// registered on top). Pointer events from an [EventTarget] are converted to
// surface-local coordinates, hit-tested against region bounds and then the
// polygon (even-odd rule), and dispatched to the topmost region's
// [Handlers]. Pointer moves drive enter and leave events.
//
// # Curves
//
// [CurveCache] memoizes Catmull-Rom tessellations in an LRU keyed by the
// full point sequence, tension, segment count and closure, and shares
// Hermite coefficient tables across curves with the same segment count.
//
// # Animation
//
// [AnimationValue] interpolates between two numbers on a [FrameScheduler]
// using [gween] easing functions, forward, backward or ping-pong.
//
// Logging goes through log/slog and is silent until [SetLogger] is called.
//
// [gween]: https://github.com/tanema/gween
package sketch
