// Package ecs forwards billboard scene events into a [Donburi] world.
//
// [NewDonburiSink] publishes pointer, animation-end and resize events as
// typed Donburi events. Subscribe to [PointerEventType],
// [AnimationEndEventType] or [ResizeEventType] in your systems and drain
// them with events.ProcessAllEvents.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
