package billboard

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("billboard: test script has no steps")

// scriptStep is one action in a test script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner replays a scripted sequence of pointer input, resizes and
// screenshots, one step per tick once earlier injections have drained.
//
// Supported actions: "click" (x, y), "drag" (fromX, fromY, toX, toY,
// frames), "wait" (frames), "resize" (width, height) and "screenshot"
// (label).
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script of the form
// {"steps": [{"action": "click", "x": 400, "y": 300}, ...]}.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("billboard: parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "drag", "wait", "resize", "screenshot":
		default:
			return nil, fmt.Errorf("billboard: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches runner to the scene. It is stepped from Update
// before input is processed. A nil runner detaches.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	Logger().Debug("script step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "resize":
		s.Resize(st.Width, st.Height)
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
