package sketch

import "time"

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameScheduler is the host's display-refresh primitive. RequestFrame queues
// fn to run once on the next frame with the frame timestamp; CancelFrame
// drops a pending request and is a no-op for unknown or already-run ids.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(now time.Duration)
}

// ManualScheduler is a FrameScheduler driven explicitly by Advance. Hosts
// call Advance once per display tick; tests call it to step time
// deterministically.
type ManualScheduler struct {
	now     time.Duration
	nextID  FrameID
	pending []frameRequest
	flush   []frameRequest
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame implements FrameScheduler.
func (s *ManualScheduler) RequestFrame(fn func(now time.Duration)) FrameID {
	s.nextID++
	s.pending = append(s.pending, frameRequest{id: s.nextID, fn: fn})
	return s.nextID
}

// CancelFrame implements FrameScheduler.
func (s *ManualScheduler) CancelFrame(id FrameID) {
	for _, q := range [][]frameRequest{s.flush, s.pending} {
		for i := range q {
			if q[i].id == id {
				q[i].fn = nil
				return
			}
		}
	}
}

// Advance moves the clock forward by dt and flushes every request queued
// before the call. Requests made while flushing run on the next Advance.
// It returns the number of callbacks run.
func (s *ManualScheduler) Advance(dt time.Duration) int {
	s.now += dt
	s.flush, s.pending = s.pending, nil
	ran := 0
	for i := range s.flush {
		// Earlier callbacks in the batch may cancel later ones.
		fn := s.flush[i].fn
		if fn == nil {
			continue
		}
		s.flush[i].fn = nil
		fn(s.now)
		ran++
	}
	s.flush = nil
	return ran
}

// Now returns the scheduler's current timestamp.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of queued, uncancelled requests.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, r := range s.pending {
		if r.fn != nil {
			n++
		}
	}
	return n
}
