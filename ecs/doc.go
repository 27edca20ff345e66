// Package ecs bridges sketch interaction events into a [Donburi] world.
//
// [NewSink] returns a [sketch.EventSink] that publishes every dispatched
// event to [InteractionEventType]. Entities that mirror a hit region carry a
// [Region] component; [TrackState] subscribes a handler that keeps their
// hover and press flags in step with the event stream.
//
// Usage:
//
//	world := donburi.NewWorld()
//	canvas.Interaction().SetEventSink(ecs.NewSink(world))
//	ecs.Track(world, "sq")
//	ecs.TrackState(world)
//	// once per tick:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
