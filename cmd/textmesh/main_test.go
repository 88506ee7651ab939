package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestRun_WritesImages(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	o := options{
		font:    font,
		assets:  dir,
		size:    20,
		text:    "Hi\tthere",
		backend: "ximage",
		atlas:   filepath.Join(dir, "atlas.png"),
		render:  filepath.Join(dir, "render.png"),
	}
	if err := run(o); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, path := range []string{o.atlas, o.render} {
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestRun_MissingFont(t *testing.T) {
	o := options{font: filepath.Join(t.TempDir(), "nope.ttf"), assets: ".", size: 12, backend: "ximage"}
	if err := run(o); err == nil {
		t.Error("run succeeded without a font")
	}
}

func TestTextOptions(t *testing.T) {
	if n := len(textOptions(options{})); n != 0 {
		t.Errorf("default options = %d, want 0", n)
	}
	if n := len(textOptions(options{mono: true, nfc: true})); n != 2 {
		t.Errorf("mono+nfc options = %d, want 2", n)
	}
}
