// Package fakeface provides a deterministic typeface backend for tests.
//
// Font data has the form "FAKE:" followed by the covered code points, for
// example "FAKE:abc". Glyph index i+1 maps to the i-th covered rune and
// index 0 is the missing-glyph box. Glyph boxes are solid and their size
// derives from the pixel size, so layouts are easy to predict.
package fakeface

import (
	"errors"
	"image"
	"strings"

	"github.com/gogpu/textmesh/typeface"
)

// Prefix starts every font accepted by Backend.
const Prefix = "FAKE:"

// ErrNoGlyph is returned by LoadGlyph for indices outside the font.
var ErrNoGlyph = errors.New("fakeface: no such glyph")

// Metrics describes a glyph at a pixel size.
type Metrics struct {
	Width, Height int
	BearingLeft   int
	BearingTop    int
	Advance       float32
}

// DefaultMetrics is the metrics function used when Backend.Metrics is nil.
//
// Visible glyphs are size/2 wide and size tall, placed one pixel right of
// the pen with the top at 3/4 of the size. Space has no pixels and advances
// size/4; '_' advances size/2 and every other rune 0.6 × size.
func DefaultMetrics(r rune, size int) Metrics {
	switch r {
	case ' ':
		return Metrics{Advance: float32(size) / 4}
	case '_':
		return Metrics{Width: size / 2, Height: 1, BearingLeft: 0, BearingTop: 0, Advance: float32(size) / 2}
	}
	return Metrics{
		Width:       size / 2,
		Height:      size,
		BearingLeft: 1,
		BearingTop:  size * 3 / 4,
		Advance:     float32(size) * 0.6,
	}
}

// Font builds font data covering runes.
func Font(runes string) []byte {
	return []byte(Prefix + runes)
}

// Backend is a typeface.Backend producing fake faces.
type Backend struct {
	// Metrics overrides DefaultMetrics. The missing glyph is reported as
	// rune 0.
	Metrics func(r rune, size int) Metrics

	// LineHeight overrides the default line height of 5/4 × size.
	LineHeight func(size int) int

	// InitErr is returned by Init.
	InitErr error

	// Inited and Done record lifecycle calls.
	Inited bool
	Dones  int

	// Faces lists every face loaded through this backend.
	Faces []*Face
}

// Init implements typeface.Initializer.
func (b *Backend) Init() error {
	if b.InitErr != nil {
		return b.InitErr
	}
	b.Inited = true
	return nil
}

// Done implements typeface.Finalizer.
func (b *Backend) Done() {
	b.Dones++
}

// LoadFace implements typeface.Backend.
func (b *Backend) LoadFace(data []byte) (typeface.Face, error) {
	s := string(data)
	if !strings.HasPrefix(s, Prefix) {
		return nil, typeface.ErrInvalidFontData
	}
	f := &Face{backend: b, runes: []rune(strings.TrimPrefix(s, Prefix))}
	b.Faces = append(b.Faces, f)
	return f, nil
}

// Face is a fake typeface.Face.
type Face struct {
	backend *Backend
	runes   []rune
	size    int

	// SizeCalls counts SetPixelSize calls reaching the face.
	SizeCalls int

	// Loads counts LoadGlyph calls per glyph index.
	Loads map[typeface.GlyphIndex]int

	// FailGlyph makes LoadGlyph fail for the given index when non-zero.
	FailGlyph typeface.GlyphIndex

	Closed bool
}

// SetPixelSize implements typeface.Face.
func (f *Face) SetPixelSize(px int) error {
	if px <= 0 {
		return typeface.ErrInvalidPixelSize
	}
	f.SizeCalls++
	f.size = px
	return nil
}

// CharIndex implements typeface.Face.
func (f *Face) CharIndex(r rune) typeface.GlyphIndex {
	for i, c := range f.runes {
		if c == r {
			return typeface.GlyphIndex(i + 1)
		}
	}
	return 0
}

// LoadGlyph implements typeface.Face.
func (f *Face) LoadGlyph(idx typeface.GlyphIndex) (typeface.Glyph, error) {
	if int(idx) > len(f.runes) || (f.FailGlyph != 0 && idx == f.FailGlyph) {
		return typeface.Glyph{}, ErrNoGlyph
	}
	if f.Loads == nil {
		f.Loads = make(map[typeface.GlyphIndex]int)
	}
	f.Loads[idx]++

	var r rune
	if idx > 0 {
		r = f.runes[idx-1]
	}
	metrics := DefaultMetrics
	if f.backend.Metrics != nil {
		metrics = f.backend.Metrics
	}
	m := metrics(r, f.size)

	g := typeface.Glyph{
		BearingLeft: m.BearingLeft,
		BearingTop:  m.BearingTop,
		Advance:     m.Advance,
	}
	if m.Width > 0 && m.Height > 0 {
		g.Mask = image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
		for i := range g.Mask.Pix {
			g.Mask.Pix[i] = 0xff
		}
	}
	return g, nil
}

// LineHeight implements typeface.Face.
func (f *Face) LineHeight() int {
	if f.backend.LineHeight != nil {
		return f.backend.LineHeight(f.size)
	}
	return f.size * 5 / 4
}

// Close implements typeface.Face.
func (f *Face) Close() error {
	f.Closed = true
	return nil
}
