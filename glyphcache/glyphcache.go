package glyphcache

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/gpucore"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/typeface"
)

// Sentinel errors for the glyphcache package.
var (
	// ErrNoDevice is returned by Texture when no texture device was given.
	ErrNoDevice = errors.New("glyphcache: no texture device")

	// ErrNoTypeface is returned by New without a primary typeface.
	ErrNoTypeface = errors.New("glyphcache: primary typeface is required")

	// ErrInvalidSize is returned by New for non-positive pixel sizes.
	ErrInvalidSize = errors.New("glyphcache: invalid pixel size")

	// ErrClosed is returned by Texture after Close.
	ErrClosed = errors.New("glyphcache: closed")
)

// Record describes one cached glyph.
type Record struct {
	// GlyphIndex is the glyph id in the typeface that produced the glyph.
	GlyphIndex typeface.GlyphIndex

	// Advance is the horizontal pen advance in pixels.
	Advance float32

	// BearingLeft is the offset from the pen to the left edge of Rect.
	BearingLeft int

	// BearingTop is the distance from the baseline up to the top of Rect.
	BearingTop int

	// Rect is the glyph's region in the atlas, empty for glyphs without
	// visible pixels.
	Rect image.Rectangle

	// Fallback reports whether the fallback typeface produced the glyph.
	Fallback bool
}

// Visible reports whether the glyph occupies atlas pixels.
func (r Record) Visible() bool {
	return !r.Rect.Empty()
}

type config struct {
	device gpucore.TextureDevice
	atlas  atlas.Config
	label  string
}

// Option configures a Cache.
type Option func(*config)

// WithDevice sets the device used by Texture.
func WithDevice(d gpucore.TextureDevice) Option {
	return func(c *config) {
		c.device = d
	}
}

// WithAtlasConfig sets the atlas configuration.
func WithAtlasConfig(cfg atlas.Config) Option {
	return func(c *config) {
		c.atlas = cfg
	}
}

// WithLabel sets the debug label of created textures.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// Cache holds the glyphs of one typeface at one pixel size.
//
// Cache is not safe for concurrent use.
type Cache struct {
	primary  *typeface.Typeface
	fallback *typeface.Typeface
	size     int

	packer     *atlas.Packer
	glyphs     map[rune]Record
	lineHeight int

	device  gpucore.TextureDevice
	label   string
	texture gpucore.TextureID
	texW    int
	texH    int
	stale   gpucore.TextureID
	closed  bool
}

// New creates a cache for primary at pixelSize. fallback may be nil.
func New(primary, fallback *typeface.Typeface, pixelSize int, opts ...Option) (*Cache, error) {
	if primary == nil {
		return nil, ErrNoTypeface
	}
	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, pixelSize)
	}

	cfg := config{atlas: atlas.DefaultConfig(), label: "glyph atlas"}
	for _, opt := range opts {
		opt(&cfg)
	}

	packer, err := atlas.New(cfg.atlas)
	if err != nil {
		return nil, err
	}
	lineHeight, err := primary.LineHeight(pixelSize)
	if err != nil {
		return nil, fmt.Errorf("glyphcache: line height at %dpx: %w", pixelSize, err)
	}

	return &Cache{
		primary:    primary,
		fallback:   fallback,
		size:       pixelSize,
		packer:     packer,
		glyphs:     make(map[rune]Record),
		lineHeight: lineHeight,
		device:     cfg.device,
		label:      cfg.label,
	}, nil
}

// Glyph returns the record for r, rasterizing and packing it on first use.
// Failures are logged and produce a record without pixels.
func (c *Cache) Glyph(r rune) Record {
	if rec, ok := c.glyphs[r]; ok {
		return rec
	}
	rec := c.load(r)
	c.glyphs[r] = rec
	return rec
}

func (c *Cache) load(r rune) Record {
	log := logging.Logger()

	tf := c.primary
	idx := c.primary.CharIndex(r)
	fallback := false
	if idx == 0 && c.fallback != nil {
		if fidx := c.fallback.CharIndex(r); fidx != 0 {
			tf, idx, fallback = c.fallback, fidx, true
		}
	}

	rec := Record{GlyphIndex: idx, Fallback: fallback}
	g, err := tf.Glyph(idx, c.size)
	if err != nil {
		log.Warn("glyphcache: rasterize failed", "rune", r, "glyph", idx, "size", c.size, "err", err)
		return rec
	}
	rec.Advance = g.Advance
	rec.BearingLeft = g.BearingLeft
	rec.BearingTop = g.BearingTop

	if g.Mask != nil {
		id, err := c.packer.Add(coverageToRGBA(g.Mask))
		if err != nil {
			log.Error("glyphcache: atlas exhausted", "rune", r, "size", c.size, "err", err)
			return rec
		}
		rec.Rect = c.packer.Coords(id)
	}

	log.Debug("glyphcache: miss", "rune", r, "glyph", idx, "size", c.size, "fallback", fallback, "rect", rec.Rect)
	return rec
}

// coverageToRGBA converts a coverage mask to white pixels with straight
// alpha equal to coverage.
func coverageToRGBA(mask *image.Alpha) *image.RGBA {
	b := mask.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := mask.Pix[mask.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[x*4+0] = 0xff
			dst[x*4+1] = 0xff
			dst[x*4+2] = 0xff
			dst[x*4+3] = src[x]
		}
	}
	return img
}

// Advance returns the pen advance of r.
func (c *Cache) Advance(r rune) float32 {
	return c.Glyph(r).Advance
}

// LineHeight returns the baseline-to-baseline distance in pixels.
func (c *Cache) LineHeight() int {
	return c.lineHeight
}

// PixelSize returns the pixel size of the cache.
func (c *Cache) PixelSize() int {
	return c.size
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return len(c.glyphs)
}

// Dirty reports whether the atlas changed since the last upload.
func (c *Cache) Dirty() bool {
	return c.packer.Dirty()
}

// Image returns the atlas bitmap. Pixels hold straight (not
// premultiplied) alpha.
func (c *Cache) Image() *image.RGBA {
	return c.packer.Image()
}

// AtlasSize returns the atlas dimensions.
func (c *Cache) AtlasSize() (width, height int) {
	return c.packer.Size()
}

// Utilization returns the fraction of the atlas covered by glyphs.
func (c *Cache) Utilization() float64 {
	return c.packer.Utilization()
}

// Texture returns the atlas texture, uploading the atlas first when it
// changed.
func (c *Cache) Texture() (gpucore.TextureID, error) {
	if c.closed {
		return gpucore.InvalidID, ErrClosed
	}
	if c.device == nil {
		return gpucore.InvalidID, ErrNoDevice
	}
	if c.texture != gpucore.InvalidID && !c.packer.Dirty() {
		return c.texture, nil
	}

	if c.stale != gpucore.InvalidID {
		c.device.DestroyTexture(c.stale)
		c.stale = gpucore.InvalidID
	}

	img := c.packer.Image()
	w, h := c.packer.Size()
	if c.texture != gpucore.InvalidID && w == c.texW && h == c.texH {
		if err := c.device.WriteTexture(c.texture, img.Pix); err != nil {
			return gpucore.InvalidID, fmt.Errorf("glyphcache: write texture: %w", err)
		}
		logging.Logger().Debug("glyphcache: texture updated", "size", c.size, "width", w, "height", h)
	} else {
		id, err := c.device.CreateTexture(gpucore.TextureDesc{
			Label:  c.label,
			Width:  w,
			Height: h,
			Format: gputypes.TextureFormatRGBA8Unorm,
		}, img.Pix)
		if err != nil {
			return gpucore.InvalidID, fmt.Errorf("glyphcache: create texture: %w", err)
		}
		logging.Logger().Debug("glyphcache: texture created", "size", c.size, "width", w, "height", h)
		c.stale = c.texture
		c.texture, c.texW, c.texH = id, w, h
	}

	c.packer.ClearDirty()
	return c.texture, nil
}

// Close destroys the textures owned by the cache. Records stay readable.
func (c *Cache) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.device == nil {
		return
	}
	if c.stale != gpucore.InvalidID {
		c.device.DestroyTexture(c.stale)
		c.stale = gpucore.InvalidID
	}
	if c.texture != gpucore.InvalidID {
		c.device.DestroyTexture(c.texture)
		c.texture = gpucore.InvalidID
	}
}
