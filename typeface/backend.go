package typeface

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// GlyphIndex is a glyph id within a face. Zero is the missing glyph.
type GlyphIndex uint32

// Glyph is a rasterized glyph at the face's current pixel size.
type Glyph struct {
	// Mask is the coverage mask, nil for glyphs with no visible pixels.
	// Its bounds start at (0, 0).
	Mask *image.Alpha

	// BearingLeft is the horizontal offset from the pen to the mask.
	BearingLeft int

	// BearingTop is the distance from the baseline up to the mask top.
	BearingTop int

	// Advance is the horizontal pen advance in pixels.
	Advance float32
}

// Face is a parsed font able to rasterize glyphs at one pixel size at a
// time.
type Face interface {
	// SetPixelSize selects the pixel size (ppem) used by LoadGlyph and
	// LineHeight.
	SetPixelSize(px int) error

	// CharIndex maps a code point to a glyph index, 0 when missing.
	CharIndex(r rune) GlyphIndex

	// LoadGlyph rasterizes a glyph at the current pixel size.
	LoadGlyph(idx GlyphIndex) (Glyph, error)

	// LineHeight returns the recommended baseline-to-baseline distance in
	// pixels at the current pixel size.
	LineHeight() int

	// Close releases backend resources held by the face.
	Close() error
}

// Backend parses font data into faces.
type Backend interface {
	LoadFace(data []byte) (Face, error)
}

// Initializer is implemented by backends that need process setup before
// the first LoadFace.
type Initializer interface {
	Init() error
}

// Finalizer is implemented by backends that need teardown.
type Finalizer interface {
	Done()
}

// DefaultBackendName is the name of the default backend.
const DefaultBackendName = "ximage"

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{
		"ximage":   ximageBackend{},
		"freetype": freetypeBackend{},
	}
)

// RegisterBackend registers a backend under name, replacing any previous
// registration.
func RegisterBackend(name string, b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = b
}

// Lookup returns the backend registered under name. An empty name selects
// the default backend.
func Lookup(name string) (Backend, error) {
	if name == "" {
		name = DefaultBackendName
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return b, nil
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
