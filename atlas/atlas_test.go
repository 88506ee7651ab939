package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		field   string
	}{
		{"default", DefaultConfig(), false, ""},
		{"too small", Config{InitialSize: 8, MaxSize: 64}, true, "InitialSize"},
		{"initial not pow2", Config{InitialSize: 100, MaxSize: 1024}, true, "InitialSize"},
		{"max below initial", Config{InitialSize: 256, MaxSize: 128}, true, "MaxSize"},
		{"max not pow2", Config{InitialSize: 256, MaxSize: 1000}, true, "MaxSize"},
		{"negative padding", Config{InitialSize: 16, MaxSize: 16, Padding: -1}, true, "Padding"},
		{"fixed size", Config{InitialSize: 64, MaxSize: 64}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error %T is not *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{InitialSize: 3}); err == nil {
		t.Error("New should reject an invalid config")
	}
}

func TestPacker_AddCopiesPixels(t *testing.T) {
	p, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{R: 255, A: 255}
	id, err := p.Add(solid(8, 12, red))
	if err != nil {
		t.Fatal(err)
	}

	r := p.Coords(id)
	if r.Dx() != 8 || r.Dy() != 12 {
		t.Fatalf("Coords = %v, want 8x12", r)
	}
	if got := p.Image().RGBAAt(r.Min.X+3, r.Min.Y+5); got != red {
		t.Errorf("pixel = %v, want %v", got, red)
	}
	if !p.Dirty() {
		t.Error("Add should mark the bitmap dirty")
	}
	p.ClearDirty()
	if p.Dirty() {
		t.Error("ClearDirty should reset the flag")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPacker_AddSubImage(t *testing.T) {
	p, _ := New(DefaultConfig())
	src := solid(20, 20, color.RGBA{A: 255})
	sub := src.SubImage(image.Rect(5, 5, 9, 11)).(*image.RGBA)

	id, err := p.Add(sub)
	if err != nil {
		t.Fatal(err)
	}
	if r := p.Coords(id); r.Dx() != 4 || r.Dy() != 6 {
		t.Errorf("Coords = %v, want 4x6", r)
	}
}

func TestPacker_EmptySegment(t *testing.T) {
	p, _ := New(DefaultConfig())
	id, err := p.Add(image.NewRGBA(image.Rectangle{}))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Coords(id).Empty() {
		t.Errorf("Coords = %v, want empty", p.Coords(id))
	}
	if p.Dirty() {
		t.Error("empty segment should not dirty the bitmap")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPacker_CoordsUnknownID(t *testing.T) {
	p, _ := New(DefaultConfig())
	if r := p.Coords(7); !r.Empty() {
		t.Errorf("Coords(7) = %v, want empty", r)
	}
	if r := p.Coords(-1); !r.Empty() {
		t.Errorf("Coords(-1) = %v, want empty", r)
	}
}

func TestPacker_GrowPreservesSegments(t *testing.T) {
	p, err := New(Config{InitialSize: 16, MaxSize: 256, Padding: 1})
	if err != nil {
		t.Fatal(err)
	}

	colors := make([]color.RGBA, 12)
	ids := make([]SegmentID, len(colors))
	rects := make([]image.Rectangle, len(colors))
	for i := range colors {
		colors[i] = color.RGBA{R: uint8(20 * i), G: 100, B: uint8(255 - 20*i), A: 255}
		id, err := p.Add(solid(10, 10, colors[i]))
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids[i] = id
		rects[i] = p.Coords(id)
	}

	if p.Grows() == 0 {
		t.Fatal("expected the bitmap to grow")
	}
	w, h := p.Size()
	if w != h || w&(w-1) != 0 {
		t.Errorf("Size() = %dx%d, want square power of two", w, h)
	}

	for i, id := range ids {
		if got := p.Coords(id); got != rects[i] {
			t.Errorf("segment %d moved from %v to %v", i, rects[i], got)
		}
		r := rects[i]
		if got := p.Image().RGBAAt(r.Min.X, r.Min.Y); got != colors[i] {
			t.Errorf("segment %d pixel = %v, want %v", i, got, colors[i])
		}
	}
}

func TestPacker_GrowsOnlyWhenFull(t *testing.T) {
	p, err := New(Config{InitialSize: 16, MaxSize: 256, Padding: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Four 7x7 segments (8x8 with padding) fill the 16x16 bitmap exactly.
	for i := 0; i < 4; i++ {
		if _, err := p.Add(solid(7, 7, color.RGBA{A: 255})); err != nil {
			t.Fatal(err)
		}
	}
	if p.Grows() != 0 {
		t.Fatalf("Grows() = %d with room left, want 0", p.Grows())
	}

	id, err := p.Add(solid(7, 7, color.RGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if p.Grows() != 1 {
		t.Errorf("Grows() = %d, want 1", p.Grows())
	}
	if w, _ := p.Size(); w != 32 {
		t.Errorf("Size() width = %d, want 32", w)
	}
	if r := p.Coords(id); !r.In(image.Rect(0, 0, 32, 32)) || r.Dx() != 7 {
		t.Errorf("Coords = %v, want a 7x7 rect inside 32x32", r)
	}
}

func TestPacker_NoOverlap(t *testing.T) {
	p, _ := New(Config{InitialSize: 32, MaxSize: 1024, Padding: 1})

	var rects []image.Rectangle
	for i := 0; i < 200; i++ {
		w := 3 + (i*7)%17
		h := 4 + (i*5)%13
		id, err := p.Add(solid(w, h, color.RGBA{A: 255}))
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		rects = append(rects, p.Coords(id))
	}

	bounds := p.Image().Bounds()
	for i, a := range rects {
		if !a.In(bounds) {
			t.Errorf("rect %d %v outside %v", i, a, bounds)
		}
		for j := i + 1; j < len(rects); j++ {
			if a.Overlaps(rects[j]) {
				t.Fatalf("rect %d %v overlaps rect %d %v", i, a, j, rects[j])
			}
		}
	}
	if u := p.Utilization(); u <= 0 || u > 1 {
		t.Errorf("Utilization() = %f, want (0,1]", u)
	}
}

func TestPacker_TooLarge(t *testing.T) {
	p, _ := New(Config{InitialSize: 16, MaxSize: 32, Padding: 1})

	_, err := p.Add(solid(40, 4, color.RGBA{A: 255}))
	if !errors.Is(err, ErrAtlasTooLarge) {
		t.Errorf("err = %v, want ErrAtlasTooLarge", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failed Add", p.Len())
	}
}
