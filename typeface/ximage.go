package typeface

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ximageBackend implements Backend using golang.org/x/image.
type ximageBackend struct{}

// LoadFace implements Backend.LoadFace.
func (ximageBackend) LoadFace(data []byte) (Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, parseError(err)
	}
	return &ximageFace{font: f}, nil
}

// ximageFace implements Face on an sfnt.Font.
type ximageFace struct {
	font       *sfnt.Font
	buf        sfnt.Buffer
	ppem       fixed.Int26_6
	lineHeight int
}

// SetPixelSize implements Face.SetPixelSize.
func (f *ximageFace) SetPixelSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelSize, px)
	}
	ppem := fixed.I(px)
	m, err := f.font.Metrics(&f.buf, ppem, font.HintingNone)
	if err != nil {
		return fmt.Errorf("typeface: metrics at %dpx: %w", px, err)
	}
	f.ppem = ppem
	f.lineHeight = m.Height.Ceil()
	return nil
}

// CharIndex implements Face.CharIndex.
func (f *ximageFace) CharIndex(r rune) GlyphIndex {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphIndex(idx)
}

// LoadGlyph implements Face.LoadGlyph.
func (f *ximageFace) LoadGlyph(idx GlyphIndex) (Glyph, error) {
	if f.ppem == 0 {
		return Glyph{}, ErrInvalidPixelSize
	}
	gid := sfnt.GlyphIndex(idx)

	advance, err := f.font.GlyphAdvance(&f.buf, gid, f.ppem, font.HintingNone)
	if err != nil {
		return Glyph{}, fmt.Errorf("typeface: advance of glyph %d: %w", idx, err)
	}

	segments, err := f.font.LoadGlyph(&f.buf, gid, f.ppem, nil)
	if err != nil {
		return Glyph{}, fmt.Errorf("typeface: load glyph %d: %w", idx, err)
	}

	g := Glyph{Advance: fixedToFloat32(advance)}
	if len(segments) == 0 {
		return g, nil
	}

	bounds := segmentBounds(segments)
	if bounds.Empty() {
		return g, nil
	}

	g.Mask = rasterizeSegments(segments, bounds)
	g.BearingLeft = bounds.Min.X
	g.BearingTop = -bounds.Min.Y
	return g, nil
}

// LineHeight implements Face.LineHeight.
func (f *ximageFace) LineHeight() int {
	return f.lineHeight
}

// Close implements Face.Close.
func (f *ximageFace) Close() error {
	return nil
}

// segmentBounds returns the pixel bounds of the glyph outline, rounded
// outwards. Control points are included, which may add a pixel of slack.
func segmentBounds(segments sfnt.Segments) image.Rectangle {
	minX, minY := fixed.Int26_6(math.MaxInt32), fixed.Int26_6(math.MaxInt32)
	maxX, maxY := fixed.Int26_6(math.MinInt32), fixed.Int26_6(math.MinInt32)

	for _, seg := range segments {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX.Floor(), minY.Floor(), maxX.Ceil(), maxY.Ceil())
}

// rasterizeSegments fills the outline into a mask covering bounds.
func rasterizeSegments(segments sfnt.Segments, bounds image.Rectangle) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src

	pt := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat32(p.X) - ox, fixedToFloat32(p.Y) - oy
	}

	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			x, y := pt(seg.Args[0])
			r.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			r.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
