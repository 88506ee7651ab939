package atlas

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/textmesh/internal/logging"
)

// ErrAtlasTooLarge is returned when a segment cannot be placed without
// growing the bitmap beyond Config.MaxSize.
var ErrAtlasTooLarge = errors.New("atlas: bitmap would exceed maximum size")

// Config holds packer configuration.
type Config struct {
	// InitialSize is the starting bitmap size (width = height).
	// Must be a power of 2. Default: 256
	InitialSize int

	// MaxSize bounds growth of the bitmap (width = height).
	// Must be a power of 2 and at least InitialSize. Default: 16384
	MaxSize int

	// Padding between segments to prevent sampling bleed.
	// Default: 1
	Padding int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		InitialSize: 256,
		MaxSize:     16384,
		Padding:     1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InitialSize < 16 {
		return &ConfigError{Field: "InitialSize", Reason: "must be at least 16"}
	}
	if c.InitialSize&(c.InitialSize-1) != 0 {
		return &ConfigError{Field: "InitialSize", Reason: "must be power of 2"}
	}
	if c.MaxSize < c.InitialSize {
		return &ConfigError{Field: "MaxSize", Reason: "must be at least InitialSize"}
	}
	if c.MaxSize&(c.MaxSize-1) != 0 {
		return &ConfigError{Field: "MaxSize", Reason: "must be power of 2"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

// SegmentID identifies a segment added to a Packer.
type SegmentID int

// Packer accumulates bitmap segments into a single growable RGBA bitmap.
//
// Packer is not safe for concurrent use.
type Packer struct {
	img    *image.RGBA
	alloc  *ShelfAllocator
	rects  []image.Rectangle
	config Config
	dirty  bool
	grows  int
}

// New creates a packer with the given configuration.
func New(config Config) (*Packer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	size := config.InitialSize
	return &Packer{
		img:    image.NewRGBA(image.Rect(0, 0, size, size)),
		alloc:  NewShelfAllocator(size, size, config.Padding),
		config: config,
	}, nil
}

// Add copies src into the bitmap and returns the id of the new segment.
// The bitmap grows as needed. A segment with an empty bounds is recorded
// with a zero rectangle and does not touch the bitmap.
func (p *Packer) Add(src image.Image) (SegmentID, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		p.rects = append(p.rects, image.Rectangle{})
		return SegmentID(len(p.rects) - 1), nil
	}

	for !p.alloc.CanFit(w, h) {
		if err := p.grow(); err != nil {
			return -1, fmt.Errorf("%w: segment %dx%d", err, w, h)
		}
	}
	x, y, ok := p.alloc.Allocate(w, h)
	if !ok {
		return -1, fmt.Errorf("atlas: no room for segment %dx%d", w, h)
	}

	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(p.img, r, src, b.Min, draw.Src)
	p.rects = append(p.rects, r)
	p.dirty = true
	return SegmentID(len(p.rects) - 1), nil
}

// grow doubles the bitmap, keeping existing pixels in place.
func (p *Packer) grow() error {
	size := p.img.Bounds().Dx() * 2
	if size > p.config.MaxSize {
		return ErrAtlasTooLarge
	}

	next := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(next, p.img.Bounds(), p.img, image.Point{}, draw.Src)
	p.img = next
	p.alloc.Grow(size, size)
	p.dirty = true
	p.grows++

	logging.Logger().Debug("atlas: grown", "size", size, "segments", len(p.rects))
	return nil
}

// Coords returns the rectangle of a segment in bitmap pixels.
// Unknown ids and empty segments return the zero rectangle.
func (p *Packer) Coords(id SegmentID) image.Rectangle {
	if id < 0 || int(id) >= len(p.rects) {
		return image.Rectangle{}
	}
	return p.rects[id]
}

// Image returns the current bitmap. The returned image is replaced (not
// resized) when the packer grows, so callers should not keep it across Add.
func (p *Packer) Image() *image.RGBA {
	return p.img
}

// Size returns the bitmap dimensions.
func (p *Packer) Size() (width, height int) {
	return p.alloc.Size()
}

// Dirty reports whether the bitmap changed since the last ClearDirty.
func (p *Packer) Dirty() bool {
	return p.dirty
}

// ClearDirty marks the bitmap as uploaded.
func (p *Packer) ClearDirty() {
	p.dirty = false
}

// Len returns the number of segments added, including empty ones.
func (p *Packer) Len() int {
	return len(p.rects)
}

// Grows returns how many times the bitmap has been enlarged.
func (p *Packer) Grows() int {
	return p.grows
}

// Utilization returns the fraction of the bitmap covered by segments.
func (p *Packer) Utilization() float64 {
	return p.alloc.Utilization()
}
