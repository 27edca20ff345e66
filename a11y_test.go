package sketch

import "testing"

func newTestOverlay() (*Overlay, *InteractionManager) {
	m := NewInteractionManager(nil)
	m.Register(RectRegion("a", 0, 0, 10, 10), nil)
	m.Register(RectRegion("b", 20, 0, 10, 10), nil)
	m.Register(RectRegion("c", 40, 0, 10, 10), nil)
	o := NewOverlay(m)
	o.Describe("a", "First", "")
	o.Describe("c", "Third", RoleLink)
	o.Sync()
	return o, m
}

func TestOverlayProxiesFollowDescribedRegions(t *testing.T) {
	o, _ := newTestOverlay()
	ps := o.Proxies()
	if len(ps) != 2 || ps[0].ID != "a" || ps[1].ID != "c" {
		t.Fatalf("proxies = %+v", ps)
	}
	if ps[0].Role != RoleButton || ps[1].Role != RoleLink || ps[1].Label != "Third" {
		t.Errorf("proxies = %+v", ps)
	}
	if ps[1].Bounds != (AABB{40, 0, 50, 10}) {
		t.Errorf("bounds = %+v", ps[1].Bounds)
	}
}

func TestOverlayFocusCycle(t *testing.T) {
	o, _ := newTestOverlay()
	if _, ok := o.Focused(); ok {
		t.Fatal("focused before any focus move")
	}
	p, _ := o.FocusNext()
	if p.ID != "a" {
		t.Errorf("first FocusNext = %q", p.ID)
	}
	p, _ = o.FocusNext()
	if p.ID != "c" {
		t.Errorf("second FocusNext = %q", p.ID)
	}
	p, _ = o.FocusNext()
	if p.ID != "a" {
		t.Errorf("FocusNext did not wrap: %q", p.ID)
	}
	p, _ = o.FocusPrev()
	if p.ID != "c" {
		t.Errorf("FocusPrev did not wrap: %q", p.ID)
	}
}

func TestOverlayFocusPrevFromNothing(t *testing.T) {
	o, _ := newTestOverlay()
	if p, ok := o.FocusPrev(); !ok || p.ID != "c" {
		t.Errorf("FocusPrev = %+v, %v", p, ok)
	}
}

func TestOverlaySyncKeepsFocusByID(t *testing.T) {
	o, m := newTestOverlay()
	o.Focus("c")
	o.Describe("b", "Second", "")
	o.Sync()
	p, ok := o.Focused()
	if !ok || p.ID != "c" {
		t.Errorf("focus = %+v, %v", p, ok)
	}

	m.Unregister("c")
	o.Sync()
	if _, ok := o.Focused(); ok {
		t.Error("focus survived removal of its region")
	}
}

func TestOverlayActivateClicksRegion(t *testing.T) {
	o, m := newTestOverlay()
	var clicked []Vec2
	m.SetHandlers("c", Handlers{EventClick: func(e InteractionEvent) { clicked = append(clicked, e.Position) }})

	if o.Activate() {
		t.Error("Activate with no focus reported true")
	}
	o.Focus("c")
	if !o.Activate() {
		t.Fatal("Activate failed")
	}
	if len(clicked) != 1 || clicked[0] != (Vec2{45, 5}) {
		t.Errorf("clicks = %v", clicked)
	}
}

func TestOverlayActivateIgnoresRegionAbove(t *testing.T) {
	m := NewInteractionManager(nil)
	var clicked []string
	record := func(e InteractionEvent) { clicked = append(clicked, e.Target.ID) }
	m.Register(RectRegion("big", 0, 0, 100, 100), Handlers{EventClick: record})
	m.Register(RectRegion("badge", 40, 40, 20, 20), Handlers{EventClick: record})
	o := NewOverlay(m)
	o.Describe("big", "Card", "")
	o.Sync()
	o.Focus("big")

	if !o.Activate() {
		t.Fatal("Activate failed")
	}
	if len(clicked) != 1 || clicked[0] != "big" {
		t.Errorf("clicked = %v, want [big]", clicked)
	}
}

func TestOverlayActivateConcaveRegion(t *testing.T) {
	m := NewInteractionManager(nil)
	// U shape: the bounds centre (15, 15) sits in the notch.
	u := NewHitRegion("u", []Vec2{{0, 0}, {10, 0}, {10, 20}, {20, 20}, {20, 0}, {30, 0}, {30, 30}, {0, 30}})
	clicks := 0
	m.Register(u, Handlers{EventClick: func(InteractionEvent) { clicks++ }})
	o := NewOverlay(m)
	o.Describe("u", "Cup", "")
	o.Sync()
	o.Focus("u")

	if u.ContainsPoint(u.Bounds().Center()) {
		t.Fatal("bounds centre should fall outside the shape")
	}
	if !o.Activate() || clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestOverlayActivateUnregistered(t *testing.T) {
	o, m := newTestOverlay()
	o.Focus("c")
	m.Unregister("c")
	if o.Activate() {
		t.Error("Activate on an unregistered region reported true")
	}
}

func TestOverlayOnChange(t *testing.T) {
	o, _ := newTestOverlay()
	var last []Proxy
	o.OnChange(func(ps []Proxy) { last = ps })
	o.FocusNext()
	if len(last) != 2 || !last[0].Focused || last[1].Focused {
		t.Errorf("change = %+v", last)
	}
	o.Forget("a")
	o.Sync()
	if len(last) != 1 || last[0].ID != "c" {
		t.Errorf("after Forget = %+v", last)
	}
}

func TestOverlayFocusUnknown(t *testing.T) {
	o, _ := newTestOverlay()
	if o.Focus("b") {
		t.Error("focused an undescribed region")
	}
}
