package typeface

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/textmesh/internal/logging"
)

// Typeface is a parsed font bound to one backend face.
//
// The face tracks a single active pixel size. SetPixelSize skips the
// backend call when the requested size is already active.
//
// Typeface is not safe for concurrent use.
type Typeface struct {
	data     []byte
	face     Face
	size     int
	switches int
	name     string
	mono     bool
	closed   bool
}

// New parses data with backend b. The data slice is retained and must not
// be modified afterwards.
func New(b Backend, data []byte) (*Typeface, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := b.LoadFace(data)
	if err != nil {
		return nil, err
	}

	tf := &Typeface{data: data, face: face}
	tf.describe()
	return tf, nil
}

// Load parses data with the backend registered under name.
func Load(name string, data []byte) (*Typeface, error) {
	b, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(b, data)
}

// describe reads the family name and monospace flag. Fonts the metadata
// parser cannot read keep an empty description.
func (t *Typeface) describe() {
	face, err := font.ParseTTF(bytes.NewReader(t.data))
	if err != nil {
		logging.Logger().Debug("typeface: no description", "err", err)
		return
	}
	t.name = face.Describe().Family
	t.mono = face.IsMonospace()
}

// Name returns the font family name, or "" when unknown.
func (t *Typeface) Name() string {
	return t.name
}

// IsMonospace reports whether every glyph in the font has the same
// advance.
func (t *Typeface) IsMonospace() bool {
	return t.mono
}

// Data returns the font bytes.
func (t *Typeface) Data() []byte {
	return t.data
}

// SetPixelSize selects px on the underlying face unless it is already
// active.
func (t *Typeface) SetPixelSize(px int) error {
	if t.closed {
		return ErrClosed
	}
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelSize, px)
	}
	if px == t.size {
		return nil
	}
	if err := t.face.SetPixelSize(px); err != nil {
		return err
	}
	logging.Logger().Debug("typeface: pixel size switch", "family", t.name, "from", t.size, "to", px)
	t.size = px
	t.switches++
	return nil
}

// PixelSize returns the active pixel size, 0 before the first switch.
func (t *Typeface) PixelSize() int {
	return t.size
}

// SizeSwitches returns how many times the backend pixel size changed.
func (t *Typeface) SizeSwitches() int {
	return t.switches
}

// CharIndex maps a code point to a glyph index, 0 when missing.
func (t *Typeface) CharIndex(r rune) GlyphIndex {
	if t.closed {
		return 0
	}
	return t.face.CharIndex(r)
}

// Glyph selects px and rasterizes idx.
func (t *Typeface) Glyph(idx GlyphIndex, px int) (Glyph, error) {
	if err := t.SetPixelSize(px); err != nil {
		return Glyph{}, err
	}
	g, err := t.face.LoadGlyph(idx)
	if err != nil {
		return Glyph{}, fmt.Errorf("typeface: %dpx: %w", px, err)
	}
	return g, nil
}

// LineHeight selects px and returns the line height at that size.
func (t *Typeface) LineHeight(px int) (int, error) {
	if err := t.SetPixelSize(px); err != nil {
		return 0, err
	}
	return t.face.LineHeight(), nil
}

// Close releases the face. Further calls fail with ErrClosed.
func (t *Typeface) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.face.Close()
}
