package ecs

import (
	"github.com/phanxgames/billboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType carries pointer-down and pointer-up events.
var PointerEventType = events.NewEventType[billboard.PointerContext]()

// AnimationEndEventType carries the end of non-looping sprite animations.
var AnimationEndEventType = events.NewEventType[billboard.AnimationEndEvent]()

// ResizeEventType carries surface re-fits.
var ResizeEventType = events.NewEventType[billboard.ResizeEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes into world. Events are
// queued until the world's events are processed.
func NewDonburiSink(world donburi.World) billboard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitPointer(ctx billboard.PointerContext) {
	PointerEventType.Publish(s.world, ctx)
}

func (s *donburiSink) EmitAnimationEnd(evt billboard.AnimationEndEvent) {
	AnimationEndEventType.Publish(s.world, evt)
}

func (s *donburiSink) EmitResize(evt billboard.ResizeEvent) {
	ResizeEventType.Publish(s.world, evt)
}
