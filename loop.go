package sketch

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// DrawFunc issues drawing commands for one frame. frame is the loop's tick
// counter, not wall-clock time.
type DrawFunc func(ctx Context, frame uint64) error

// DrawHandle identifies a registered DrawFunc. Handles are never reused.
type DrawHandle uint64

// DrawError wraps a failure of a single draw callback.
type DrawError struct {
	Handle DrawHandle
	Frame  uint64
	Err    error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("sketch: draw %d failed on frame %d: %v", e.Handle, e.Frame, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }

// FrameStats holds timing for the most recent frame. Only populated in debug
// mode.
type FrameStats struct {
	Frame     uint64
	Draws     int
	Failures  int
	ClearTime time.Duration
	DrawTime  time.Duration
}

// RenderLoop repaints a Context once per scheduled frame by replaying every
// registered draw callback in registration order. Between callbacks it
// resets the transform, clears the line dash and begins a new path so each
// producer starts from the same state.
//
// RenderLoop is not safe for concurrent use; all calls happen on the host's
// event loop.
type RenderLoop struct {
	ctx   Context
	sched FrameScheduler

	order      []DrawHandle
	draws      map[DrawHandle]DrawFunc
	nextHandle DrawHandle

	running    bool
	pending    FrameID
	hasPending bool
	frame      uint64

	isolate bool
	onError func(*DrawError)

	debug bool
	stats FrameStats
}

// NewRenderLoop creates a stopped loop painting ctx on frames from sched.
// Draw failures are isolated (logged, frame continues) by default.
func NewRenderLoop(ctx Context, sched FrameScheduler) (*RenderLoop, error) {
	if ctx == nil {
		return nil, ErrNoContext
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}
	return &RenderLoop{
		ctx:     ctx,
		sched:   sched,
		draws:   make(map[DrawHandle]DrawFunc),
		isolate: true,
	}, nil
}

// Add registers draw on top of the paint order and returns its handle. The
// callback runs from the next frame on.
func (l *RenderLoop) Add(draw DrawFunc) DrawHandle {
	l.nextHandle++
	h := l.nextHandle
	l.draws[h] = draw
	l.order = append(l.order, h)
	return h
}

// Remove unregisters the callback behind h. Unknown handles are ignored.
func (l *RenderLoop) Remove(h DrawHandle) {
	if _, ok := l.draws[h]; !ok {
		return
	}
	delete(l.draws, h)
	if i := slices.Index(l.order, h); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}

// Replace swaps the callback behind h, keeping its paint position. It
// reports false when h is not registered.
func (l *RenderLoop) Replace(h DrawHandle, draw DrawFunc) bool {
	if _, ok := l.draws[h]; !ok {
		return false
	}
	l.draws[h] = draw
	return true
}

// Contains reports whether h is registered.
func (l *RenderLoop) Contains(h DrawHandle) bool {
	_, ok := l.draws[h]
	return ok
}

// Handles returns the registered handles in paint order.
func (l *RenderLoop) Handles() []DrawHandle {
	return slices.Clone(l.order)
}

// Len returns the number of registered callbacks.
func (l *RenderLoop) Len() int { return len(l.order) }

// Frame returns the number of frames painted so far.
func (l *RenderLoop) Frame() uint64 { return l.frame }

// Running reports whether the loop is scheduled.
func (l *RenderLoop) Running() bool { return l.running }

// Context returns the context the loop paints on.
func (l *RenderLoop) Context() Context { return l.ctx }

// SetIsolation selects the failure policy. With isolation on, a failing or
// panicking callback is logged and the rest of the frame still paints. With
// it off, an error aborts the rest of the frame and a panic propagates.
func (l *RenderLoop) SetIsolation(on bool) { l.isolate = on }

// SetErrorHandler installs fn to observe draw failures in addition to the
// Warn log line.
func (l *RenderLoop) SetErrorHandler(fn func(*DrawError)) { l.onError = fn }

// SetDebugMode enables per-frame timing stats, logged at Debug level.
func (l *RenderLoop) SetDebugMode(on bool) { l.debug = on }

// Stats returns the stats of the last frame painted in debug mode.
func (l *RenderLoop) Stats() FrameStats { return l.stats }

// Start schedules the first frame. Calling Start on a running loop returns
// ErrLoopRunning and leaves the existing schedule alone.
func (l *RenderLoop) Start() error {
	if l.running {
		return ErrLoopRunning
	}
	l.running = true
	l.schedule()
	return nil
}

// Stop cancels the pending frame. It is safe to call when stopped and from
// inside a draw callback.
func (l *RenderLoop) Stop() {
	l.running = false
	if l.hasPending {
		l.sched.CancelFrame(l.pending)
		l.hasPending = false
	}
}

// Close stops the loop and empties the registry.
func (l *RenderLoop) Close() {
	l.Stop()
	l.order = nil
	l.draws = make(map[DrawHandle]DrawFunc)
}

func (l *RenderLoop) schedule() {
	l.pending = l.sched.RequestFrame(l.tick)
	l.hasPending = true
}

func (l *RenderLoop) tick(time.Duration) {
	l.hasPending = false
	if !l.running {
		return
	}
	l.RenderFrame()
	// A callback may have stopped the loop.
	if l.running && !l.hasPending {
		l.schedule()
	}
}

// RenderFrame paints a single frame synchronously, independent of the
// schedule. Hosts that own their own frame timing call this directly.
func (l *RenderLoop) RenderFrame() {
	var stats FrameStats
	var t0 time.Time
	if l.debug {
		t0 = time.Now()
	}

	w, h := l.ctx.Size()
	l.ctx.ResetTransform()
	l.ctx.ClearRect(0, 0, w, h)

	if l.debug {
		stats.ClearTime = time.Since(t0)
		t0 = time.Now()
	}

	frame := l.frame
	for _, handle := range slices.Clone(l.order) {
		draw, ok := l.draws[handle]
		if !ok {
			continue
		}
		l.ctx.ResetTransform()
		l.ctx.SetLineDash(nil)
		l.ctx.BeginPath()
		stats.Draws++
		if err := l.invoke(handle, draw, frame); err != nil {
			stats.Failures++
			l.report(err)
			if !l.isolate {
				break
			}
		}
	}
	l.frame++

	if l.debug {
		stats.DrawTime = time.Since(t0)
		stats.Frame = frame
		l.stats = stats
		l.debugLog(stats)
	}
}

func (l *RenderLoop) invoke(handle DrawHandle, draw DrawFunc, frame uint64) (err error) {
	if l.isolate {
		defer func() {
			if r := recover(); r != nil {
				err = &DrawError{Handle: handle, Frame: frame, Err: fmt.Errorf("panic: %v", r)}
			}
		}()
	}
	if e := draw(l.ctx, frame); e != nil {
		return &DrawError{Handle: handle, Frame: frame, Err: e}
	}
	return nil
}

func (l *RenderLoop) report(err error) {
	de, _ := err.(*DrawError)
	Logger().Warn("draw callback failed",
		slog.Uint64("handle", uint64(de.Handle)),
		slog.Uint64("frame", de.Frame),
		slog.Any("error", de.Err))
	if l.onError != nil {
		l.onError(de)
	}
}

func (l *RenderLoop) debugLog(s FrameStats) {
	Logger().Debug("frame",
		slog.Uint64("frame", s.Frame),
		slog.Int("draws", s.Draws),
		slog.Int("failures", s.Failures),
		slog.Duration("clear", s.ClearTime),
		slog.Duration("draw", s.DrawTime),
		slog.Duration("total", s.ClearTime+s.DrawTime))
}
