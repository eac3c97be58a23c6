package billboard

import "testing"

func TestInjectClick(t *testing.T) {
	s := NewScene()
	var down, up int
	s.OnPointerDown(func(ctx PointerContext) {
		down++
		if ctx.ScreenX != 50 || ctx.ScreenY != 60 {
			t.Errorf("down at (%v, %v)", ctx.ScreenX, ctx.ScreenY)
		}
	})
	s.OnPointerUp(func(PointerContext) { up++ })

	s.InjectClick(50, 60)
	if len(s.injectQueue) != 2 {
		t.Fatalf("queue = %d, want 2", len(s.injectQueue))
	}

	if !s.processInjectedInput() || down != 1 || up != 0 {
		t.Fatalf("frame 1: down %d up %d", down, up)
	}
	if !s.processInjectedInput() || up != 1 {
		t.Fatalf("frame 2: up %d", up)
	}
	if s.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
}

func TestInjectDrag(t *testing.T) {
	tests := []struct {
		frames, want int
	}{
		{5, 5},
		{2, 2},
		{0, 2},
	}
	for _, tt := range tests {
		s := NewScene()
		s.InjectDrag(0, 0, 100, 50, tt.frames)
		q := s.injectQueue
		if len(q) != tt.want {
			t.Errorf("frames %d: queue = %d, want %d", tt.frames, len(q), tt.want)
			continue
		}
		if !q[0].pressed || q[len(q)-1].pressed {
			t.Errorf("frames %d: drag should start pressed and end released", tt.frames)
		}
		last := q[len(q)-1]
		if last.screenX != 100 || last.screenY != 50 {
			t.Errorf("frames %d: release at (%v, %v)", tt.frames, last.screenX, last.screenY)
		}
	}

	s := NewScene()
	s.InjectDrag(0, 0, 100, 0, 5)
	for i, want := range []float64{0, 100.0 / 4, 50, 75, 100} {
		if got := s.injectQueue[i].screenX; !approxEqual(got, want, epsilon) {
			t.Errorf("step %d x = %v, want %v", i, got, want)
		}
	}
}

func TestInjectDrag_OrbitsCamera(t *testing.T) {
	s := NewScene()
	cam := s.NewArcRotateCamera("c", 1, 1, 8, Vec3{})
	cam.Inertia = 0
	cam.AttachControl()

	s.InjectDrag(100, 100, 300, 100, 4)
	for s.processInjectedInput() {
	}
	// Two held moves of 200/3 px each; the release does not orbit.
	want := 1 - (400.0/3)/1000
	if !approxEqual(cam.Alpha, want, epsilon) {
		t.Errorf("alpha = %v, want %v", cam.Alpha, want)
	}
}

func TestInject_ConsumedByUpdate(t *testing.T) {
	s := NewScene()
	var down int
	s.OnPointerDown(func(PointerContext) { down++ })
	s.InjectPress(1, 1)
	s.InjectMove(2, 2)
	s.InjectRelease(2, 2)

	for range 3 {
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if down != 1 || len(s.injectQueue) != 0 {
		t.Errorf("down %d queue %d", down, len(s.injectQueue))
	}
}
