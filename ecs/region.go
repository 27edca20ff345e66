package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/sketch"
)

// Region mirrors the interaction state of one hit region.
type Region struct {
	ID      string
	Hovered bool
	Pressed bool
	Clicks  int
	Last    sketch.Vec2
}

// RegionComponent stores a Region on an entity.
var RegionComponent = donburi.NewComponentType[Region]()

var regionQuery = donburi.NewQuery(filter.Contains(RegionComponent))

// Track creates an entity mirroring the region id.
func Track(world donburi.World, id string) donburi.Entity {
	e := world.Create(RegionComponent)
	donburi.SetValue(world.Entry(e), RegionComponent, Region{ID: id})
	return e
}

// Find returns the entry tracking id.
func Find(world donburi.World, id string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	regionQuery.Each(world, func(entry *donburi.Entry) {
		if found == nil && RegionComponent.Get(entry).ID == id {
			found = entry
		}
	})
	return found, found != nil
}

// TrackState subscribes a handler that applies interaction events to the
// Region components of world.
func TrackState(world donburi.World) {
	InteractionEventType.Subscribe(world, applyEvent)
}

func applyEvent(w donburi.World, e sketch.InteractionEvent) {
	entry, ok := Find(w, e.Target.ID)
	if !ok {
		return
	}
	r := RegionComponent.Get(entry)
	r.Last = e.Position
	switch e.Type {
	case sketch.EventPointerEnter:
		r.Hovered = true
	case sketch.EventPointerLeave:
		r.Hovered, r.Pressed = false, false
	case sketch.EventPointerDown:
		r.Pressed = true
	case sketch.EventPointerUp:
		r.Pressed = false
	case sketch.EventClick:
		r.Clicks++
	}
}
