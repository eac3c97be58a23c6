package billboard

import "time"

// AnimationEndEvent is delivered when a non-looping sprite animation reaches
// its last frame.
type AnimationEndEvent struct {
	Sprite *Sprite
	Frame  int
}

// spriteAnimation is the frame-stepping state of one sprite.
type spriteAnimation struct {
	started   bool
	from, to  int
	direction int
	loop      bool
	delay     time.Duration
	elapsed   time.Duration
	onEnd     func(AnimationEndEvent)
}

// PlayAnimation steps CellIndex from one frame to another, advancing one
// frame every delay. from may be greater than to to play backwards. When
// loop is false the animation stops on its last frame and onEnd (which may
// be nil) is called.
func (s *Sprite) PlayAnimation(from, to int, loop bool, delay time.Duration, onEnd func(AnimationEndEvent)) {
	if delay <= 0 {
		delay = time.Millisecond
	}
	a := spriteAnimation{
		started:   true,
		from:      from,
		to:        to,
		direction: 1,
		loop:      loop,
		delay:     delay,
		onEnd:     onEnd,
	}
	if from > to {
		a.direction = -1
		a.from, a.to = to, from
	}
	s.anim = a
	s.CellIndex = from
}

// StopAnimation freezes the sprite on its current frame.
func (s *Sprite) StopAnimation() {
	s.anim.started = false
}

// IsAnimating reports whether an animation is playing.
func (s *Sprite) IsAnimating() bool {
	return s.anim.started
}

// animate advances the animation by dt. At most one frame is stepped per
// call; any remainder beyond one delay is carried over.
func (s *Sprite) animate(dt time.Duration) {
	a := &s.anim
	if !a.started {
		return
	}
	a.elapsed += dt
	if a.elapsed <= a.delay {
		return
	}
	a.elapsed %= a.delay
	s.CellIndex += a.direction

	if (a.direction > 0 && s.CellIndex > a.to) || (a.direction < 0 && s.CellIndex < a.from) {
		if a.loop {
			if a.direction > 0 {
				s.CellIndex = a.from
			} else {
				s.CellIndex = a.to
			}
			return
		}
		if a.direction > 0 {
			s.CellIndex = a.to
		} else {
			s.CellIndex = a.from
		}
		a.started = false
		s.fireAnimationEnd()
	}
}

func (s *Sprite) fireAnimationEnd() {
	evt := AnimationEndEvent{Sprite: s, Frame: s.CellIndex}
	if s.anim.onEnd != nil {
		s.anim.onEnd(evt)
	}
	if s.manager != nil && s.manager.scene != nil {
		s.manager.scene.emitAnimationEnd(evt)
	}
}
