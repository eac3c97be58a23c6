package billboard

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // sheet formats for LoadSpriteSheet
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrSheetMismatch is returned when a sprite sheet image does not match the
// frame grid its config describes.
var ErrSheetMismatch = errors.New("billboard: sprite sheet does not match its config")

// SpriteSheetConfig describes the frame grid of a sprite sheet image.
// Frames are laid out left to right, top to bottom.
type SpriteSheetConfig struct {
	// Path locates the image inside the file system passed to LoadSpriteSheet.
	Path string
	// FrameWidth and FrameHeight are the size of one cell in pixels.
	FrameWidth  int
	FrameHeight int
	// FrameCount is the number of usable frames. Zero means every cell of
	// the grid.
	FrameCount int
}

// SpriteSheet is a validated sprite sheet image and its frame grid.
type SpriteSheet struct {
	Config SpriteSheetConfig
	Image  *ebiten.Image

	cols, rows int
}

// ValidateSheet checks that an image of the given pixel size holds the frame
// grid described by cfg. It returns the number of columns and rows of the
// grid. Errors wrap ErrSheetMismatch.
func ValidateSheet(cfg SpriteSheetConfig, width, height int) (cols, rows int, err error) {
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: %s: frame size %dx%d must be positive",
			ErrSheetMismatch, cfg.Path, cfg.FrameWidth, cfg.FrameHeight)
	}
	if width%cfg.FrameWidth != 0 || height%cfg.FrameHeight != 0 {
		return 0, 0, fmt.Errorf("%w: %s: image %dx%d is not a multiple of frame size %dx%d",
			ErrSheetMismatch, cfg.Path, width, height, cfg.FrameWidth, cfg.FrameHeight)
	}
	cols = width / cfg.FrameWidth
	rows = height / cfg.FrameHeight
	if cols == 0 || rows == 0 {
		return 0, 0, fmt.Errorf("%w: %s: image %dx%d is smaller than one frame",
			ErrSheetMismatch, cfg.Path, width, height)
	}
	if cfg.FrameCount < 0 || cfg.FrameCount > cols*rows {
		return 0, 0, fmt.Errorf("%w: %s: frame count %d outside grid of %d cells",
			ErrSheetMismatch, cfg.Path, cfg.FrameCount, cols*rows)
	}
	return cols, rows, nil
}

// LoadSpriteSheet decodes the image at cfg.Path from fsys, validates it
// against cfg, and uploads it as an ebiten image. PNG, BMP and WebP sheets
// are supported.
func LoadSpriteSheet(fsys fs.FS, cfg SpriteSheetConfig) (*SpriteSheet, error) {
	f, err := fsys.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("billboard: open sprite sheet: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("billboard: decode sprite sheet %s: %w", cfg.Path, err)
	}
	b := img.Bounds()
	if _, _, err := ValidateSheet(cfg, b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	sheet, err := NewSpriteSheet(ebiten.NewImageFromImage(img), cfg)
	if err != nil {
		return nil, err
	}
	Logger().Info("sprite sheet loaded", "path", cfg.Path,
		"frames", sheet.FrameCount(), "cols", sheet.cols, "rows", sheet.rows)
	return sheet, nil
}

// NewSpriteSheet wraps an existing image, validating it against cfg.
// Useful for sheets built at runtime.
func NewSpriteSheet(img *ebiten.Image, cfg SpriteSheetConfig) (*SpriteSheet, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: %s: nil image", ErrSheetMismatch, cfg.Path)
	}
	b := img.Bounds()
	cols, rows, err := ValidateSheet(cfg, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if cfg.FrameCount == 0 {
		cfg.FrameCount = cols * rows
	}
	return &SpriteSheet{Config: cfg, Image: img, cols: cols, rows: rows}, nil
}

// FrameCount returns the number of usable frames.
func (s *SpriteSheet) FrameCount() int {
	return s.Config.FrameCount
}

// FrameRect returns the pixel rectangle of the given frame within the sheet
// image. ok is false when index is outside [0, FrameCount).
func (s *SpriteSheet) FrameRect(index int) (r image.Rectangle, ok bool) {
	if index < 0 || index >= s.Config.FrameCount {
		return image.Rectangle{}, false
	}
	col := index % s.cols
	row := index / s.cols
	x := col * s.Config.FrameWidth
	y := row * s.Config.FrameHeight
	return image.Rect(x, y, x+s.Config.FrameWidth, y+s.Config.FrameHeight), true
}

// frameImage returns the sub-image for a frame. Out-of-range frames fall back
// to a 1×1 magenta placeholder so a bad cell index is visible on screen.
func (s *SpriteSheet) frameImage(index int) *ebiten.Image {
	r, ok := s.FrameRect(index)
	if !ok || s.Image == nil {
		Logger().Warn("sprite frame out of range, using magenta placeholder",
			"sheet", s.Config.Path, "frame", index, "frames", s.Config.FrameCount)
		return ensureMagentaImage()
	}
	return s.Image.SubImage(r).(*ebiten.Image)
}

// dispose releases the GPU image.
func (s *SpriteSheet) dispose() {
	if s.Image != nil {
		s.Image.Deallocate()
		s.Image = nil
	}
}

// magenta placeholder singleton, only touched from the game goroutine
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
