package sketch

// Role is the accessibility role announced for a proxy.
type Role string

// Common roles.
const (
	RoleButton Role = "button"
	RoleLink   Role = "link"
	RoleImage  Role = "img"
	RoleRegion Role = "region"
)

// Proxy is a focusable stand-in for a hit region, for hosts that expose
// canvas content to assistive technology.
type Proxy struct {
	ID      string
	Label   string
	Role    Role
	Bounds  AABB
	Focused bool
}

type description struct {
	label string
	role  Role
}

// Overlay keeps a list of accessibility proxies in sync with the regions of
// an InteractionManager. Only regions given a label through Describe get a
// proxy. Keyboard focus moves through proxies in z-order, and Activate
// fires a click on the focused region itself, whatever lies above it.
type Overlay struct {
	im       *InteractionManager
	descs    map[string]description
	proxies  []Proxy
	focus    int
	onChange func([]Proxy)
}

// NewOverlay creates an overlay over im.
func NewOverlay(im *InteractionManager) *Overlay {
	return &Overlay{im: im, descs: make(map[string]description), focus: -1}
}

// Describe labels the region id. The proxy appears on the next Sync.
func (o *Overlay) Describe(id, label string, role Role) {
	if role == "" {
		role = RoleButton
	}
	o.descs[id] = description{label: label, role: role}
}

// Forget removes the label for id.
func (o *Overlay) Forget(id string) {
	delete(o.descs, id)
}

// OnChange sets fn to receive the proxy list after each Sync or focus
// change.
func (o *Overlay) OnChange(fn func([]Proxy)) {
	o.onChange = fn
}

// Sync rebuilds the proxies from the manager's current regions, keeping
// focus on the same region when it still exists.
func (o *Overlay) Sync() {
	focusedID := ""
	if o.focus >= 0 && o.focus < len(o.proxies) {
		focusedID = o.proxies[o.focus].ID
	}
	o.proxies = o.proxies[:0]
	o.focus = -1
	for _, r := range o.im.Regions() {
		d, ok := o.descs[r.ID]
		if !ok {
			continue
		}
		if r.ID == focusedID {
			o.focus = len(o.proxies)
		}
		o.proxies = append(o.proxies, Proxy{ID: r.ID, Label: d.label, Role: d.role, Bounds: r.Bounds()})
	}
	o.changed()
}

// Proxies returns a copy of the current proxies in z-order, bottom first.
func (o *Overlay) Proxies() []Proxy {
	out := make([]Proxy, len(o.proxies))
	copy(out, o.proxies)
	for i := range out {
		out[i].Focused = i == o.focus
	}
	return out
}

// Focused returns the focused proxy.
func (o *Overlay) Focused() (Proxy, bool) {
	if o.focus < 0 || o.focus >= len(o.proxies) {
		return Proxy{}, false
	}
	p := o.proxies[o.focus]
	p.Focused = true
	return p, true
}

// Focus moves focus to the proxy for id.
func (o *Overlay) Focus(id string) bool {
	for i, p := range o.proxies {
		if p.ID == id {
			o.focus = i
			o.changed()
			return true
		}
	}
	return false
}

// FocusNext moves focus one proxy up the z-order, wrapping around.
func (o *Overlay) FocusNext() (Proxy, bool) {
	return o.step(1)
}

// FocusPrev moves focus one proxy down the z-order, wrapping around.
func (o *Overlay) FocusPrev() (Proxy, bool) {
	return o.step(-1)
}

func (o *Overlay) step(d int) (Proxy, bool) {
	n := len(o.proxies)
	if n == 0 {
		return Proxy{}, false
	}
	switch {
	case o.focus < 0 && d > 0:
		o.focus = 0
	case o.focus < 0:
		o.focus = n - 1
	default:
		o.focus = ((o.focus+d)%n + n) % n
	}
	o.changed()
	return o.Focused()
}

// Activate fires a click on the focused region, positioned at the centre of
// its bounds. It reports false when nothing is focused or the region is
// gone.
func (o *Overlay) Activate() bool {
	p, ok := o.Focused()
	if !ok {
		return false
	}
	return o.im.DispatchTo(p.ID, EventClick, p.Bounds.Center())
}

func (o *Overlay) changed() {
	if o.onChange != nil {
		o.onChange(o.Proxies())
	}
}
