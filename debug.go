package billboard

import "time"

// frameStats holds per-frame timing and draw counts.
// Timings are only populated when Scene.debug is true.
type frameStats struct {
	emitSortTime time.Duration
	submitTime   time.Duration
	drawn        int
	culled       int
}

// debugLog writes the last frame's stats at debug level.
func (s *Scene) debugLog() {
	st := s.stats
	Logger().Debug("frame",
		"emit_sort", st.emitSortTime,
		"submit", st.submitTime,
		"total", st.emitSortTime+st.submitTime,
		"drawn", st.drawn,
		"culled", st.culled,
	)
}

// DrawnSprites returns how many sprites the last Draw submitted.
func (s *Scene) DrawnSprites() int {
	return s.stats.drawn
}

// CulledSprites returns how many visible sprites the last Draw skipped
// because they were behind the camera or off screen.
func (s *Scene) CulledSprites() int {
	return s.stats.culled
}
