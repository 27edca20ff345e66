package sketch

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationMode selects how an AnimationValue moves between From and To.
type AnimationMode uint8

const (
	ModeForward          AnimationMode = iota // From to To
	ModeBackward                              // To to From
	ModePingPong                              // From to To, then back
	ModePingPongBackward                      // To to From, then back
)

var animationModeNames = [...]string{"forward", "backward", "pingpong", "pingpong-backward"}

func (m AnimationMode) String() string {
	if int(m) < len(animationModeNames) {
		return animationModeNames[m]
	}
	return fmt.Sprintf("AnimationMode(%d)", m)
}

// reversed reports whether a segment in mode m runs from To to From.
func (m AnimationMode) reversed() bool {
	return m == ModeBackward || m == ModePingPongBackward
}

func (m AnimationMode) pingPong() bool {
	return m == ModePingPong || m == ModePingPongBackward
}

// AnimationOptions configures an AnimationValue. A nil Easing selects
// ease.Linear.
type AnimationOptions struct {
	From, To float64
	Duration time.Duration
	Easing   ease.TweenFunc
	Mode     AnimationMode
	// Infinite repeats forever. Forward and backward restart from their
	// start value; ping-pong keeps alternating. Without it a ping-pong
	// animation makes one round trip and ends on its start value.
	Infinite bool
}

// AnimationValue interpolates a float64 over time on a FrameScheduler. Its
// value is read with Value; observers that want to react to changes
// register with OnChange. A tick always checks that it has not been revoked
// by Stop or Destroy before touching state or rescheduling.
//
// Intermediate values pass through gween's float32 tweens, so they carry
// float32 precision: near 1e6 the smallest step is about 0.06. The final
// value of a finite animation is exact.
type AnimationValue struct {
	opts  AnimationOptions
	sched FrameScheduler

	mode       AnimationMode
	tween      *gween.Tween
	segElapsed time.Duration
	segments   int
	value      float64
	finished   bool

	running    bool
	destroyed  bool
	generation uint64
	pending    FrameID
	hasPending bool
	last       time.Duration
	hasLast    bool

	listeners map[int]func(float64)
	nextID    int
}

// clock is implemented by schedulers that expose their current timestamp,
// such as ManualScheduler.
type clock interface {
	Now() time.Duration
}

// NewAnimationValue creates a stopped animation holding its start value.
func NewAnimationValue(sched FrameScheduler, opts AnimationOptions) (*AnimationValue, error) {
	if sched == nil {
		return nil, ErrNoScheduler
	}
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("sketch: animation duration %v: %w", opts.Duration, ErrInvalidDuration)
	}
	if opts.Easing == nil {
		opts.Easing = ease.Linear
	}
	a := &AnimationValue{opts: opts, sched: sched, listeners: make(map[int]func(float64))}
	a.rewind()
	return a, nil
}

// Value returns the current interpolated value.
func (a *AnimationValue) Value() float64 { return a.value }

// IsRunning reports whether the animation is advancing.
func (a *AnimationValue) IsRunning() bool { return a.running }

// Mode returns the mode of the current segment. Ping-pong animations flip
// between ModePingPong and ModePingPongBackward at each turn.
func (a *AnimationValue) Mode() AnimationMode { return a.mode }

// Finished reports whether a finite animation has reached its end.
func (a *AnimationValue) Finished() bool { return a.finished }

// OnChange registers fn to be called with every new value. The returned
// function removes it.
func (a *AnimationValue) OnChange(fn func(float64)) (cancel func()) {
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() { delete(a.listeners, id) }
}

// Start begins or resumes the animation. A finished animation restarts from
// its start value. Start is a no-op while running or after Destroy.
func (a *AnimationValue) Start() {
	if a.running || a.destroyed {
		return
	}
	if a.finished {
		a.rewind()
		a.notify()
	}
	a.running = true
	a.hasLast = false
	if c, ok := a.sched.(clock); ok {
		a.last, a.hasLast = c.Now(), true
	}
	a.schedule()
}

// Stop pauses the animation at its current value and cancels the pending
// tick.
func (a *AnimationValue) Stop() {
	a.running = false
	a.generation++
	if a.hasPending {
		a.sched.CancelFrame(a.pending)
		a.hasPending = false
	}
}

// Reset snaps back to the start value and initial mode. A running animation
// keeps running from there.
func (a *AnimationValue) Reset() {
	a.rewind()
	a.notify()
}

// Destroy stops the animation for good and drops its listeners.
func (a *AnimationValue) Destroy() {
	a.Stop()
	a.destroyed = true
	clear(a.listeners)
}

func (a *AnimationValue) rewind() {
	a.mode = a.opts.Mode
	a.segElapsed = 0
	a.segments = 0
	a.finished = false
	a.startSegment()
	a.value = a.segmentStart()
}

func (a *AnimationValue) segmentStart() float64 {
	if a.mode.reversed() {
		return a.opts.To
	}
	return a.opts.From
}

func (a *AnimationValue) segmentEnd() float64 {
	if a.mode.reversed() {
		return a.opts.From
	}
	return a.opts.To
}

func (a *AnimationValue) startSegment() {
	a.tween = gween.New(float32(a.segmentStart()), float32(a.segmentEnd()),
		float32(a.opts.Duration.Seconds()), a.opts.Easing)
}

func (a *AnimationValue) schedule() {
	gen := a.generation
	a.pending = a.sched.RequestFrame(func(now time.Duration) {
		a.tick(gen, now)
	})
	a.hasPending = true
}

func (a *AnimationValue) tick(gen uint64, now time.Duration) {
	if gen != a.generation || !a.running {
		return
	}
	a.hasPending = false
	var dt time.Duration
	if a.hasLast {
		dt = now - a.last
	}
	a.last, a.hasLast = now, true
	a.advance(dt)
	if a.running && gen == a.generation {
		a.schedule()
	}
}

// advance moves the animation forward by dt, crossing as many segment
// boundaries as dt covers.
func (a *AnimationValue) advance(dt time.Duration) {
	prev := a.value
	a.segElapsed += dt
	for a.segElapsed >= a.opts.Duration {
		overflow := a.segElapsed - a.opts.Duration
		a.segments++
		switch {
		case a.mode.pingPong() && (a.opts.Infinite || a.segments < 2):
			a.mode ^= 1 // ModePingPong <-> ModePingPongBackward
		case a.opts.Infinite:
		default:
			a.value = a.segmentEnd()
			a.segElapsed = a.opts.Duration
			a.finished = true
			a.running = false
			a.generation++
			if a.value != prev {
				a.notify()
			}
			return
		}
		a.segElapsed = overflow
		a.startSegment()
	}
	v, _ := a.tween.Set(float32(a.segElapsed.Seconds()))
	a.value = float64(v)
	if a.value != prev {
		a.notify()
	}
}

func (a *AnimationValue) notify() {
	for _, fn := range a.listeners {
		fn(a.value)
	}
}
