package billboard

import (
	"errors"
	"fmt"
	"time"
)

// ErrCapacityReached is returned by NewSprite when a manager already holds
// Capacity sprites.
var ErrCapacityReached = errors.New("billboard: sprite manager capacity reached")

// SpriteManager is a fixed-capacity batch of sprites sharing one sprite sheet
// and one cell size. It owns its sprites and its sheet.
type SpriteManager struct {
	Name     string
	Sheet    *SpriteSheet
	Capacity int
	CellSize int

	// IsPickable gates PickSprite for every sprite in this manager.
	IsPickable bool
	// Lit shades sprites by the scene's point lights. Off by default: sprites
	// show their frames at full brightness.
	Lit bool

	sprites  []*Sprite
	scene    *Scene
	disposed bool
}

// NewSpriteManager creates a manager drawing from sheet and adds it to the
// scene. cellSize must equal the sheet's frame width and height.
func (s *Scene) NewSpriteManager(name string, sheet *SpriteSheet, capacity, cellSize int) (*SpriteManager, error) {
	if sheet == nil {
		panic("billboard: sprite manager needs a sheet")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("billboard: sprite manager %q: capacity %d must be positive", name, capacity)
	}
	if cellSize != sheet.Config.FrameWidth || cellSize != sheet.Config.FrameHeight {
		return nil, fmt.Errorf("%w: manager %q cell size %d, sheet %s frames are %dx%d",
			ErrSheetMismatch, name, cellSize, sheet.Config.Path,
			sheet.Config.FrameWidth, sheet.Config.FrameHeight)
	}
	m := &SpriteManager{
		Name:     name,
		Sheet:    sheet,
		Capacity: capacity,
		CellSize: cellSize,
		sprites:  make([]*Sprite, 0, capacity),
		scene:    s,
	}
	s.managers = append(s.managers, m)
	return m, nil
}

// NewSprite creates a sprite in this manager at the origin with size 1.
func (m *SpriteManager) NewSprite(name string) (*Sprite, error) {
	if m.disposed {
		panic("billboard: NewSprite on disposed sprite manager " + m.Name)
	}
	if len(m.sprites) >= m.Capacity {
		return nil, fmt.Errorf("%w: %q holds %d", ErrCapacityReached, m.Name, m.Capacity)
	}
	sp := newSprite(name, m)
	m.sprites = append(m.sprites, sp)
	return sp, nil
}

// Sprites returns the manager's sprites in creation order. The returned
// slice MUST NOT be mutated.
func (m *SpriteManager) Sprites() []*Sprite {
	return m.sprites
}

// Len returns the number of live sprites.
func (m *SpriteManager) Len() int {
	return len(m.sprites)
}

// Dispose disposes every sprite, releases the sheet image, and removes the
// manager from its scene.
func (m *SpriteManager) Dispose() {
	if m.disposed {
		return
	}
	if m.scene != nil {
		m.scene.removeManager(m)
	}
	m.dispose()
}

func (m *SpriteManager) dispose() {
	m.disposed = true
	for _, sp := range m.sprites {
		sp.dispose()
	}
	m.sprites = nil
	m.Sheet.dispose()
	m.scene = nil
}

// IsDisposed reports whether the manager has been disposed.
func (m *SpriteManager) IsDisposed() bool {
	return m.disposed
}

// removeSprite drops sp from the manager. Uses copy+nil so the backing array
// does not retain the sprite.
func (m *SpriteManager) removeSprite(sp *Sprite) {
	for i, c := range m.sprites {
		if c == sp {
			copy(m.sprites[i:], m.sprites[i+1:])
			m.sprites[len(m.sprites)-1] = nil
			m.sprites = m.sprites[:len(m.sprites)-1]
			return
		}
	}
}

// animate advances every sprite's animation.
func (m *SpriteManager) animate(dt time.Duration) {
	// Index loop: an animation-end callback may dispose sprites.
	for i := 0; i < len(m.sprites); i++ {
		m.sprites[i].animate(dt)
	}
}
