package typeface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// flagOnCurve marks a TrueType outline point that lies on the curve.
const flagOnCurve = 0x01

// freetypeBackend implements Backend using github.com/golang/freetype.
// Outlines are filled with rasterx.
type freetypeBackend struct{}

// LoadFace implements Backend.LoadFace.
func (freetypeBackend) LoadFace(data []byte) (Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, parseError(err)
	}
	return &freetypeFace{font: f}, nil
}

// freetypeFace implements Face on a truetype.Font.
type freetypeFace struct {
	font       *truetype.Font
	buf        truetype.GlyphBuf
	scale      fixed.Int26_6
	lineHeight int
}

// SetPixelSize implements Face.SetPixelSize.
func (f *freetypeFace) SetPixelSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelSize, px)
	}
	// At 72 DPI one point is one pixel.
	face := truetype.NewFace(f.font, &truetype.Options{Size: float64(px), DPI: 72})
	m := face.Metrics()
	_ = face.Close()
	// truetype reports the em size as Height; hhea ascent and descent
	// give the baseline-to-baseline distance.
	f.lineHeight = (m.Ascent + m.Descent).Ceil()
	if f.lineHeight <= 0 {
		f.lineHeight = m.Height.Ceil()
	}
	f.scale = fixed.I(px)
	return nil
}

// CharIndex implements Face.CharIndex.
func (f *freetypeFace) CharIndex(r rune) GlyphIndex {
	return GlyphIndex(f.font.Index(r))
}

// LoadGlyph implements Face.LoadGlyph.
func (f *freetypeFace) LoadGlyph(idx GlyphIndex) (Glyph, error) {
	if f.scale == 0 {
		return Glyph{}, ErrInvalidPixelSize
	}
	if err := f.buf.Load(f.font, f.scale, truetype.Index(idx), font.HintingNone); err != nil {
		return Glyph{}, fmt.Errorf("typeface: load glyph %d: %w", idx, err)
	}

	g := Glyph{Advance: fixedToFloat32(f.buf.AdvanceWidth)}
	if len(f.buf.Points) == 0 {
		return g, nil
	}

	// Glyph bounds are y-up; masks are y-down.
	b := f.buf.Bounds
	xmin, xmax := b.Min.X.Floor(), b.Max.X.Ceil()
	ymin, ymax := (-b.Max.Y).Floor(), (-b.Min.Y).Ceil()
	w, h := xmax-xmin, ymax-ymin
	if w <= 0 || h <= 0 {
		return g, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.White)

	dx, dy := -fixed.I(xmin), -fixed.I(ymin)
	start := 0
	for _, end := range f.buf.Ends {
		drawContour(filler, f.buf.Points[start:end], dx, dy)
		start = end
	}
	filler.Draw()

	g.Mask = mask
	g.BearingLeft = xmin
	g.BearingTop = -ymin
	return g, nil
}

// LineHeight implements Face.LineHeight.
func (f *freetypeFace) LineHeight() int {
	return f.lineHeight
}

// Close implements Face.Close.
func (f *freetypeFace) Close() error {
	return nil
}

// drawContour adds one closed TrueType contour to the filler. Consecutive
// off-curve points imply an on-curve point at their midpoint.
func drawContour(filler *rasterx.Filler, ps []truetype.Point, dx, dy fixed.Int26_6) {
	if len(ps) == 0 {
		return
	}

	pt := func(p truetype.Point) fixed.Point26_6 {
		return fixed.Point26_6{X: dx + p.X, Y: dy - p.Y}
	}

	var others []truetype.Point
	start := pt(ps[0])
	if ps[0].Flags&flagOnCurve != 0 {
		others = ps[1:]
	} else {
		last := pt(ps[len(ps)-1])
		if ps[len(ps)-1].Flags&flagOnCurve != 0 {
			start = last
			others = ps[:len(ps)-1]
		} else {
			start = fixed.Point26_6{X: (start.X + last.X) / 2, Y: (start.Y + last.Y) / 2}
			others = ps
		}
	}

	filler.Start(start)
	q0, on0 := start, true
	for _, p := range others {
		q := pt(p)
		on := p.Flags&flagOnCurve != 0
		switch {
		case on && on0:
			filler.Line(q)
		case on:
			filler.QuadBezier(q0, q)
		case !on0:
			mid := fixed.Point26_6{X: (q0.X + q.X) / 2, Y: (q0.Y + q.Y) / 2}
			filler.QuadBezier(q0, mid)
		}
		q0, on0 = q, on
	}
	if on0 {
		filler.Line(start)
	} else {
		filler.QuadBezier(q0, start)
	}
	filler.Stop(true)
}
