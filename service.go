package textmesh

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textmesh/glyphcache"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/layout"
	"github.com/gogpu/textmesh/meshcache"
	"github.com/gogpu/textmesh/typeface"
)

// textKey identifies a cached text within one pixel size.
type textKey struct {
	text      string
	monospace bool
}

// sizedCaches holds the caches of one pixel size.
type sizedCaches struct {
	glyphs *glyphcache.Cache
	texts  *meshcache.Cache[textKey, *Text]
}

// FontService builds texts from one primary typeface.
//
// FontService is not safe for concurrent use.
type FontService struct {
	lib    *Library
	opts   serviceOptions
	face   *typeface.Typeface
	sizes  map[int]*sizedCaches
	closed bool
}

// NewFontService creates an uninitialized service. A nil lib selects the
// default library at Init time; without one the default backend is used
// with no fallback typeface.
func NewFontService(lib *Library, opts ...ServiceOption) *FontService {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FontService{
		lib:   lib,
		opts:  o,
		sizes: make(map[int]*sizedCaches),
	}
}

func (s *FontService) library() *Library {
	if s.lib == nil {
		s.lib = DefaultLibrary()
	}
	return s.lib
}

func (s *FontService) backend() (typeface.Backend, error) {
	if lib := s.library(); lib != nil {
		return lib.Backend(), nil
	}
	return typeface.Lookup("")
}

// Init loads the primary typeface from a font file.
func (s *FontService) Init(path string) error {
	if s == nil {
		return ErrNotInitialized
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Logger().Warn("textmesh: font unreadable", "path", path, "err", err)
		return fmt.Errorf("%w: %w", ErrFontUnreadable, err)
	}
	if err := s.init(data); err != nil {
		logging.Logger().Warn("textmesh: font rejected", "path", path, "err", err)
		return err
	}
	return nil
}

// InitFromBytes loads the primary typeface from font data. The slice is
// retained.
func (s *FontService) InitFromBytes(data []byte) error {
	if s == nil {
		return ErrNotInitialized
	}
	if err := s.init(data); err != nil {
		logging.Logger().Warn("textmesh: font rejected", "err", err)
		return err
	}
	return nil
}

func (s *FontService) init(data []byte) error {
	if s.closed {
		return ErrClosed
	}
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	b, err := s.backend()
	if err != nil {
		return err
	}
	tf, err := typeface.New(b, data)
	if err != nil {
		return err
	}

	// Re-initialization drops everything built from the previous face.
	s.release()
	s.face = tf
	logging.Logger().Debug("textmesh: font loaded", "family", tf.Name(), "monospace", tf.IsMonospace(), "bytes", len(data))
	return nil
}

// Name returns the family name of the primary typeface.
func (s *FontService) Name() string {
	if s == nil || s.face == nil {
		return ""
	}
	return s.face.Name()
}

// IsMonospace reports whether the primary typeface is monospaced.
func (s *FontService) IsMonospace() bool {
	if s == nil || s.face == nil {
		return false
	}
	return s.face.IsMonospace()
}

// GlyphCache returns the glyph cache for pixelSize, creating it on first
// use.
func (s *FontService) GlyphCache(pixelSize int) (*glyphcache.Cache, error) {
	sc, err := s.sized(pixelSize)
	if err != nil {
		return nil, err
	}
	return sc.glyphs, nil
}

// Sizes returns the pixel sizes with caches, in ascending order.
func (s *FontService) Sizes() []int {
	if s == nil {
		return nil
	}
	sizes := make([]int, 0, len(s.sizes))
	for px := range s.sizes {
		sizes = append(sizes, px)
	}
	sort.Ints(sizes)
	return sizes
}

func (s *FontService) sized(pixelSize int) (*sizedCaches, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	if s.closed {
		return nil, ErrClosed
	}
	if s.face == nil {
		return nil, ErrNotInitialized
	}
	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, pixelSize)
	}
	if sc, ok := s.sizes[pixelSize]; ok {
		return sc, nil
	}

	glyphs, err := glyphcache.New(s.face, s.library().Fallback(), pixelSize,
		glyphcache.WithDevice(s.opts.device),
		glyphcache.WithAtlasConfig(s.opts.atlas),
		glyphcache.WithLabel(fmt.Sprintf("glyph atlas %dpx", pixelSize)),
	)
	if err != nil {
		return nil, err
	}
	sc := &sizedCaches{
		glyphs: glyphs,
		texts: meshcache.New[textKey, *Text](
			meshcache.WithTTL(s.opts.textTTL),
			meshcache.WithClock(s.opts.clock),
			meshcache.WithMaxEntries(s.opts.maxCachedTexts),
			meshcache.WithEvict(func(_ textKey, t *Text) { t.Release() }),
		),
	}
	s.sizes[pixelSize] = sc
	return sc, nil
}

// CreateText returns a text for str at pixelSize. The caller owns one
// reference and must call Release when done.
//
// A text built for the same string, size and options within the text TTL
// is returned again instead of being rebuilt.
func (s *FontService) CreateText(str string, pixelSize int, opts ...TextOption) (*Text, error) {
	sc, err := s.sized(pixelSize)
	if err != nil {
		return nil, err
	}

	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.normalize {
		str = norm.NFC.String(str)
	}

	key := textKey{text: str, monospace: o.monospace}
	if t, ok := sc.texts.Get(key); ok {
		t.Retain()
		return t, nil
	}

	res := layout.Layout(str, sc.glyphs, pixelSize, layout.Options{Monospace: o.monospace})
	t := newText(res, sc.glyphs, s.opts.device)
	logging.Logger().Debug("textmesh: text built", "size", pixelSize, "runes", len([]rune(str)), "quads", res.Quads)

	sc.texts.Put(key, t)
	t.Retain()
	return t, nil
}

// Measure returns the size CreateText would report for str.
func (s *FontService) Measure(str string, pixelSize int, opts ...TextOption) (width, height float32, err error) {
	sc, err := s.sized(pixelSize)
	if err != nil {
		return 0, 0, err
	}
	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.normalize {
		str = norm.NFC.String(str)
	}
	width, height = layout.Measure(str, sc.glyphs, pixelSize, layout.Options{Monospace: o.monospace})
	return width, height, nil
}

// release drops every cache and the primary typeface.
func (s *FontService) release() {
	for px, sc := range s.sizes {
		sc.texts.Purge()
		sc.glyphs.Close()
		delete(s.sizes, px)
	}
	if s.face != nil {
		_ = s.face.Close()
		s.face = nil
	}
}

// Close releases the caches, their textures and the primary typeface.
// Texts still referenced by callers stay readable; their meshes are
// destroyed on their last Release.
func (s *FontService) Close() {
	if s == nil || s.closed {
		return
	}
	s.release()
	s.closed = true
}
