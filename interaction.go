package sketch

import "slices"

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// PointerEvent is a raw pointer event as delivered by the host surface, in
// client (window) coordinates.
type PointerEvent struct {
	Type             EventType
	ClientX, ClientY float64
	Button           MouseButton
}

// EventTarget is the host surface the interaction manager listens on.
type EventTarget interface {
	// Listen subscribes fn to raw pointer events and returns a function
	// that detaches it.
	Listen(fn func(PointerEvent)) (cancel func())
	// BoundingRect returns the surface rectangle in client coordinates.
	// Hit testing happens in the surface's local logical pixel space; no
	// device pixel ratio is applied.
	BoundingRect() AABB
}

// InteractionEvent is what region handlers receive.
type InteractionEvent struct {
	Type     EventType
	Target   HitRegion
	Position Vec2 // surface-local coordinates
	Client   Vec2 // client coordinates of the originating event
	Button   MouseButton
}

// Handler receives interaction events for one region.
type Handler func(InteractionEvent)

// Handlers maps event types to handlers. Unset types are simply not
// dispatched for the region.
type Handlers map[EventType]Handler

// EventSink receives a copy of every dispatched interaction event. See the
// ecs package for a Donburi-backed sink.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

type registeredRegion struct {
	region   HitRegion
	handlers Handlers
}

// InteractionManager maps pointer events on a surface to the topmost hit
// region under the pointer and dispatches typed events to that region's
// handlers. Registration order is z-order: the last registered region is on
// top.
//
// InteractionManager is not safe for concurrent use; like the render loop it
// runs on the host's single event loop.
type InteractionManager struct {
	target EventTarget
	cancel func()

	order   []string
	regions map[string]*registeredRegion

	hovered   string
	isHovered bool

	sink      EventSink
	destroyed bool
}

// NewInteractionManager creates a manager listening on target. A nil target
// is allowed; events can then be fed through HandlePointerEvent directly.
func NewInteractionManager(target EventTarget) *InteractionManager {
	m := &InteractionManager{
		target:  target,
		regions: make(map[string]*registeredRegion),
	}
	if target != nil {
		m.cancel = target.Listen(m.HandlePointerEvent)
	}
	return m
}

// Attach moves the manager to a new event target, detaching from the old
// one. Regions and handlers are kept.
func (m *InteractionManager) Attach(target EventTarget) {
	if m.destroyed {
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.target = target
	m.hovered, m.isHovered = "", false
	if target != nil {
		m.cancel = target.Listen(m.HandlePointerEvent)
	}
}

// SetEventSink sets the optional event bridge.
func (m *InteractionManager) SetEventSink(sink EventSink) {
	m.sink = sink
}

// Register adds region with its handlers on top of the z-order. Registering
// an id that already exists replaces its geometry and handlers and moves it
// to the top; use UpdateRegion to change geometry without reordering.
func (m *InteractionManager) Register(region HitRegion, handlers Handlers) {
	if _, ok := m.regions[region.ID]; ok {
		m.removeFromOrder(region.ID)
	}
	m.regions[region.ID] = &registeredRegion{region: region, handlers: maps(handlers)}
	m.order = append(m.order, region.ID)
}

// Unregister removes a region and its handlers. If the region was hovered,
// the hover state is cleared without firing a pointerleave.
func (m *InteractionManager) Unregister(id string) {
	if _, ok := m.regions[id]; !ok {
		return
	}
	delete(m.regions, id)
	m.removeFromOrder(id)
	if m.isHovered && m.hovered == id {
		m.hovered, m.isHovered = "", false
	}
}

// UpdateRegion replaces the geometry of a registered region, keeping its
// handlers and its z-order position. It reports false when no region with
// that ID is registered.
func (m *InteractionManager) UpdateRegion(region HitRegion) bool {
	rr, ok := m.regions[region.ID]
	if !ok {
		return false
	}
	rr.region = region
	return true
}

// SetHandlers replaces the handlers of a registered region.
func (m *InteractionManager) SetHandlers(id string, handlers Handlers) bool {
	rr, ok := m.regions[id]
	if !ok {
		return false
	}
	rr.handlers = maps(handlers)
	return true
}

// Has reports whether a region with the given ID is registered.
func (m *InteractionManager) Has(id string) bool {
	_, ok := m.regions[id]
	return ok
}

// Len returns the number of registered regions.
func (m *InteractionManager) Len() int { return len(m.order) }

// Region returns the registered region with the given ID.
func (m *InteractionManager) Region(id string) (HitRegion, bool) {
	rr, ok := m.regions[id]
	if !ok {
		return HitRegion{}, false
	}
	return rr.region, true
}

// Regions returns a snapshot of every region in z-order, bottom first.
func (m *InteractionManager) Regions() []HitRegion {
	out := make([]HitRegion, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.regions[id].region)
	}
	return out
}

// Hovered returns the ID of the region currently under the pointer.
func (m *InteractionManager) Hovered() (string, bool) {
	return m.hovered, m.isHovered
}

// RegionAtPoint returns the topmost region containing p.
func (m *InteractionManager) RegionAtPoint(p Vec2) (HitRegion, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		rr := m.regions[m.order[i]]
		if rr.region.ContainsPoint(p) {
			return rr.region, true
		}
	}
	return HitRegion{}, false
}

// AllRegionsAtPoint returns every region containing p in registration
// order, bottom first.
func (m *InteractionManager) AllRegionsAtPoint(p Vec2) []HitRegion {
	var out []HitRegion
	for _, id := range m.order {
		rr := m.regions[id]
		if rr.region.ContainsPoint(p) {
			out = append(out, rr.region)
		}
	}
	return out
}

// HandlePointerEvent converts a raw client-space event to surface-local
// coordinates and dispatches it. Events after Destroy are ignored.
func (m *InteractionManager) HandlePointerEvent(ev PointerEvent) {
	if m.destroyed {
		return
	}
	client := Vec2{ev.ClientX, ev.ClientY}
	local := client
	if m.target != nil {
		r := m.target.BoundingRect()
		local = Vec2{ev.ClientX - r.MinX, ev.ClientY - r.MinY}
	}
	m.dispatchAt(ev.Type, local, client, ev.Button)
}

// Dispatch delivers a synthetic event of type t at surface-local position p,
// as if the host had reported it. Used by the accessibility overlay and by
// input injection.
func (m *InteractionManager) Dispatch(t EventType, p Vec2) {
	if m.destroyed {
		return
	}
	m.dispatchAt(t, p, p, MouseButtonLeft)
}

// DispatchTo fires an event of type t on the region id without hit-testing,
// with p as the reported position. It reports false when the manager is
// destroyed or id is not registered.
func (m *InteractionManager) DispatchTo(id string, t EventType, p Vec2) bool {
	if m.destroyed {
		return false
	}
	if _, ok := m.regions[id]; !ok {
		return false
	}
	m.fire(t, id, p, p, MouseButtonLeft)
	return true
}

func (m *InteractionManager) dispatchAt(t EventType, local, client Vec2, button MouseButton) {
	target, hit := m.RegionAtPoint(local)
	switch t {
	case EventPointerMove:
		m.processMove(target, hit, local, client, button)
	case EventClick, EventPointerDown, EventPointerUp:
		if hit {
			m.fire(t, target.ID, local, client, button)
		}
	}
}

// processMove runs the hover state machine: leave/enter on change, then
// pointermove on whatever is under the pointer now.
func (m *InteractionManager) processMove(target HitRegion, hit bool, local, client Vec2, button MouseButton) {
	changed := hit != m.isHovered || (hit && target.ID != m.hovered)
	if changed {
		prev, hadPrev := m.hovered, m.isHovered
		m.hovered, m.isHovered = target.ID, hit
		if !hit {
			m.hovered = ""
		}
		if hadPrev {
			m.fire(EventPointerLeave, prev, local, client, button)
		}
		if hit {
			m.fire(EventPointerEnter, target.ID, local, client, button)
		}
	}
	if hit {
		m.fire(EventPointerMove, target.ID, local, client, button)
	}
}

// fire looks the region up at call time so handlers that unregister
// regions mid-dispatch never see stale entries.
func (m *InteractionManager) fire(t EventType, id string, local, client Vec2, button MouseButton) {
	if m.destroyed {
		return
	}
	rr, ok := m.regions[id]
	if !ok {
		return
	}
	ev := InteractionEvent{Type: t, Target: rr.region, Position: local, Client: client, Button: button}
	if h := rr.handlers[t]; h != nil {
		h(ev)
	}
	if m.sink != nil {
		m.sink.EmitEvent(ev)
	}
}

// Destroy detaches from the event target and clears every region and the
// hover state. Later events are ignored. Calling Destroy again is a no-op.
func (m *InteractionManager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.order = nil
	m.regions = make(map[string]*registeredRegion)
	m.hovered, m.isHovered = "", false
}

// Destroyed reports whether Destroy has been called.
func (m *InteractionManager) Destroyed() bool { return m.destroyed }

func (m *InteractionManager) removeFromOrder(id string) {
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

func maps(h Handlers) Handlers {
	out := make(Handlers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
