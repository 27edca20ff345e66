package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/sketch"
)

// InteractionEventType is the Donburi event type for sketch interaction
// events. Subscribe to it in systems to receive pointer and click events.
var InteractionEventType = events.NewEventType[sketch.InteractionEvent]()

// Sink publishes interaction events into a world. Events are queued and
// delivered when the world's events are processed.
type Sink struct {
	world donburi.World
}

var _ sketch.EventSink = (*Sink)(nil)

// NewSink creates a sink for world.
func NewSink(world donburi.World) *Sink {
	return &Sink{world: world}
}

// EmitEvent implements sketch.EventSink.
func (s *Sink) EmitEvent(event sketch.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
