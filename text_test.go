package textmesh

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/gpucore"
)

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestText_Draw(t *testing.T) {
	canvas := newCanvas(64, 32)
	dev := gpucore.NewSoftwareDevice(canvas)
	fs, _ := newFakeService(t, "a", "", WithDevice(dev))

	txt, err := fs.CreateText("a", 16)
	if err != nil {
		t.Fatal(err)
	}
	defer txt.Release()

	if err := txt.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if dev.Stats.Draws != 1 || dev.Stats.Quads != 1 {
		t.Errorf("stats = %+v, want one draw of one quad", dev.Stats)
	}

	// 'a' is 8x16 at pen + (1, 16-12).
	black := color.RGBA{A: 255}
	if got := canvas.RGBAAt(5, 10); got != black {
		t.Errorf("inside glyph = %v, want %v", got, black)
	}
	if got := canvas.RGBAAt(0, 10); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("left of glyph = %v, want white", got)
	}
	if got := canvas.RGBAAt(5, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("above glyph = %v, want white", got)
	}

	// Drawing again reuses the texture and the mesh.
	if err := txt.Draw(); err != nil {
		t.Fatal(err)
	}
	if dev.Stats.TexturesCreated != 1 || dev.Stats.MeshesCreated != 1 {
		t.Errorf("stats = %+v, want one texture and one mesh", dev.Stats)
	}
}

func TestText_DrawAfterAtlasGrowth(t *testing.T) {
	dev := gpucore.NewSoftwareDevice(newCanvas(64, 32))
	fs, _ := newFakeService(t, "abcdefgh", "",
		WithDevice(dev),
		WithAtlasConfig(atlas.Config{InitialSize: 16, MaxSize: 1024, Padding: 1}),
	)

	first, _ := fs.CreateText("a", 16)
	defer first.Release()
	if err := first.Draw(); err != nil {
		t.Fatal(err)
	}

	gc := first.GlyphCache()
	w0, _ := gc.AtlasSize()
	more, _ := fs.CreateText("bcdefgh", 16)
	defer more.Release()
	w1, _ := gc.AtlasSize()
	if w1 <= w0 {
		t.Fatalf("atlas did not grow: %d then %d", w0, w1)
	}

	// The old mesh still addresses 'a' after the texture was recreated.
	canvas := newCanvas(64, 32)
	dev.Target = canvas
	if err := first.Draw(); err != nil {
		t.Fatalf("Draw after growth: %v", err)
	}
	if dev.Stats.TexturesCreated != 2 {
		t.Errorf("TexturesCreated = %d, want 2", dev.Stats.TexturesCreated)
	}
	if got := canvas.RGBAAt(5, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("glyph pixel after growth = %v, want black", got)
	}
}

func TestText_RefcountDestroysMesh(t *testing.T) {
	clock := newFakeClock()
	dev := gpucore.NewSoftwareDevice(newCanvas(32, 32))
	fs, _ := newFakeService(t, "ab", "", WithDevice(dev), WithClock(clock.Now))

	txt, _ := fs.CreateText("ab", 16)
	mesh, err := txt.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	if mesh == gpucore.InvalidID || dev.LiveMeshes() != 1 {
		t.Fatalf("mesh = %d, live = %d", mesh, dev.LiveMeshes())
	}
	again, _ := txt.Mesh()
	if again != mesh {
		t.Error("Mesh() created a second mesh")
	}

	txt.Release()
	if dev.LiveMeshes() != 1 {
		t.Fatal("mesh destroyed while the cache still holds the text")
	}

	// Expiry drops the cache reference on the next insert.
	clock.Advance(2 * time.Second)
	other, _ := fs.CreateText("ba", 16)
	defer other.Release()

	if txt.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", txt.Refs())
	}
	if dev.LiveMeshes() != 0 {
		t.Errorf("LiveMeshes() = %d, want 0", dev.LiveMeshes())
	}
	if _, err := txt.Mesh(); !errors.Is(err, ErrReleased) {
		t.Errorf("Mesh() after release = %v, want ErrReleased", err)
	}
	if err := txt.Draw(); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw() after release = %v, want ErrReleased", err)
	}

	txt.Release()
	if txt.Refs() != 0 {
		t.Errorf("extra Release changed Refs() to %d", txt.Refs())
	}
}

func TestText_Empty(t *testing.T) {
	dev := gpucore.NewSoftwareDevice(newCanvas(8, 8))
	fs, _ := newFakeService(t, "a", "", WithDevice(dev))

	txt, _ := fs.CreateText("", 16)
	defer txt.Release()

	mesh, err := txt.Mesh()
	if err != nil || mesh != gpucore.InvalidID {
		t.Errorf("Mesh() = (%d, %v), want (InvalidID, nil)", mesh, err)
	}
	if err := txt.Draw(); err != nil {
		t.Errorf("Draw() = %v, want nil", err)
	}
	if dev.Stats.MeshesCreated != 0 || dev.Stats.Draws != 0 {
		t.Errorf("stats = %+v, want no GPU work", dev.Stats)
	}
}

func TestText_NoDevice(t *testing.T) {
	fs, _ := newFakeService(t, "a", "")

	txt, _ := fs.CreateText("a", 16)
	defer txt.Release()

	if _, err := txt.Mesh(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Mesh() = %v, want ErrNoDevice", err)
	}
	if _, err := txt.Texture(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Texture() = %v, want ErrNoDevice", err)
	}
	if err := txt.Draw(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Draw() = %v, want ErrNoDevice", err)
	}
	if len(txt.Vertices()) != 6 {
		t.Errorf("Vertices() len = %d, want 6", len(txt.Vertices()))
	}
}

func TestText_OutlivesService(t *testing.T) {
	dev := gpucore.NewSoftwareDevice(newCanvas(8, 8))
	fs, _ := newFakeService(t, "a", "", WithDevice(dev))

	txt, _ := fs.CreateText("a", 16)
	if _, err := txt.Mesh(); err != nil {
		t.Fatal(err)
	}
	fs.Close()

	if txt.Refs() != 1 {
		t.Errorf("Refs() after Close = %d, want 1", txt.Refs())
	}
	if dev.LiveTextures() != 0 {
		t.Errorf("LiveTextures() after Close = %d, want 0", dev.LiveTextures())
	}
	if w, _ := txt.Size(); w == 0 {
		t.Error("Size() unavailable after Close")
	}
	txt.Release()
	if dev.LiveMeshes() != 0 {
		t.Errorf("LiveMeshes() = %d, want 0", dev.LiveMeshes())
	}
}
