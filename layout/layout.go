// Package layout turns a string into a textured triangle list.
//
// Layout walks the string one code point at a time with a pen starting at
// (0, 0), y down. Each visible glyph becomes a quad of six vertices placed
// at pen + (bearingLeft, size - bearingTop), with UVs equal to the glyph's
// atlas rectangle in atlas pixels. A newline moves the pen to the start of
// the next line and a tab advances it by three spaces.
package layout

import (
	"math"

	"github.com/gogpu/textmesh/glyphcache"
)

// tabSpaces is the width of a tab in spaces.
const tabSpaces = 3

// monospaceRune sets the advance of every glyph in monospace mode.
const monospaceRune = '_'

// GlyphSource resolves glyphs at a fixed pixel size.
// *glyphcache.Cache implements GlyphSource.
type GlyphSource interface {
	Glyph(r rune) glyphcache.Record
	LineHeight() int
}

// Options configures layout.
type Options struct {
	// Monospace gives every glyph the advance of '_' and centers it in
	// that cell.
	Monospace bool
}

// Vertex is one text mesh vertex: position in pixels and UV in atlas
// pixels.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Result is the output of Layout.
type Result struct {
	// Vertices holds six vertices per visible glyph, in the order
	// top-left, top-right, bottom-left, top-right, bottom-right,
	// bottom-left.
	Vertices []Vertex

	// Width is the largest pen x reached.
	Width float32

	// Height is the y of the last line plus one line height.
	Height float32

	// Quads is the number of emitted glyph quads.
	Quads int
}

// Floats returns the vertices as interleaved float32 values.
func (r Result) Floats() []float32 {
	out := make([]float32, 0, len(r.Vertices)*4)
	for _, v := range r.Vertices {
		out = append(out, v.X, v.Y, v.U, v.V)
	}
	return out
}

// Layout lays out text with glyphs from src at the given pixel size.
func Layout(text string, src GlyphSource, size int, opts Options) Result {
	return run(text, src, size, opts, true)
}

// Measure returns the size Layout would report, without building vertices.
// Glyphs are still resolved through src.
func Measure(text string, src GlyphSource, size int, opts Options) (width, height float32) {
	res := run(text, src, size, opts, false)
	return res.Width, res.Height
}

func run(text string, src GlyphSource, size int, opts Options, emit bool) Result {
	var res Result
	lineHeight := float32(src.LineHeight())

	var monoAdvance float32
	if opts.Monospace {
		monoAdvance = src.Glyph(monospaceRune).Advance
	}

	var penX, penY, height float32
	for _, r := range text {
		switch r {
		case '\n':
			penX = 0
			penY += lineHeight
			height = penY
			continue
		case '\t':
			penX += tabSpaces * src.Glyph(' ').Advance
			res.Width = max(res.Width, penX)
			continue
		}

		g := src.Glyph(r)
		if g.Visible() {
			penX = float32(math.Floor(float64(penX)))
			penY = float32(math.Floor(float64(penY)))

			w := float32(g.Rect.Dx())
			x := penX + float32(g.BearingLeft)
			if opts.Monospace {
				x = penX + (monoAdvance-w)/2
			}
			y := penY + float32(size-g.BearingTop)

			if emit {
				res.Vertices = appendQuad(res.Vertices, x, y, w, float32(g.Rect.Dy()), g)
			}
			res.Quads++
		}

		if opts.Monospace {
			penX += monoAdvance
		} else {
			penX += g.Advance
		}
		res.Width = max(res.Width, penX)
	}

	res.Height = height + lineHeight
	return res
}

func appendQuad(dst []Vertex, x, y, w, h float32, g glyphcache.Record) []Vertex {
	u0, v0 := float32(g.Rect.Min.X), float32(g.Rect.Min.Y)
	u1, v1 := float32(g.Rect.Max.X), float32(g.Rect.Max.Y)

	tl := Vertex{X: x, Y: y, U: u0, V: v0}
	tr := Vertex{X: x + w, Y: y, U: u1, V: v0}
	bl := Vertex{X: x, Y: y + h, U: u0, V: v1}
	br := Vertex{X: x + w, Y: y + h, U: u1, V: v1}
	return append(dst, tl, tr, bl, tr, br, bl)
}
