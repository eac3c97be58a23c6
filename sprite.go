package billboard

// Sprite is a camera-facing quad owned by exactly one SpriteManager. It is
// centered on Position and always faces the camera; Angle rotates it within
// the screen plane (radians, counter-clockwise).
type Sprite struct {
	Name string

	Position Vec3
	Angle    float64
	Width    float64
	Height   float64

	// CellIndex selects the frame of the manager's sprite sheet.
	CellIndex int
	// InvertU mirrors the frame horizontally, InvertV vertically.
	InvertU bool
	InvertV bool

	Color      Color
	IsVisible  bool
	IsPickable bool

	// UserData is an arbitrary payload for the application.
	UserData any

	manager  *SpriteManager
	anim     spriteAnimation
	disposed bool
}

func newSprite(name string, m *SpriteManager) *Sprite {
	return &Sprite{
		Name:      name,
		Width:     1,
		Height:    1,
		Color:     ColorWhite,
		IsVisible: true,
		manager:   m,
	}
}

// Size returns the sprite width. Width and height are equal unless set
// individually.
func (s *Sprite) Size() float64 {
	return s.Width
}

// SetSize sets both width and height.
func (s *Sprite) SetSize(size float64) {
	s.Width = size
	s.Height = size
}

// Manager returns the owning manager, or nil once disposed.
func (s *Sprite) Manager() *SpriteManager {
	return s.manager
}

// Dispose removes the sprite from its manager, freeing a capacity slot.
func (s *Sprite) Dispose() {
	if s.disposed {
		return
	}
	if s.manager != nil {
		s.manager.removeSprite(s)
	}
	s.dispose()
}

func (s *Sprite) dispose() {
	s.disposed = true
	s.manager = nil
	s.anim = spriteAnimation{}
	s.UserData = nil
}

// IsDisposed reports whether the sprite has been disposed.
func (s *Sprite) IsDisposed() bool {
	return s.disposed
}
