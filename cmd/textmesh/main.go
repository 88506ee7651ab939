// Command textmesh builds text meshes from a font and renders them with the
// software device.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/gpucore"
	"github.com/gogpu/textmesh/typeface"
)

const margin = 8

type options struct {
	font    string
	assets  string
	size    int
	text    string
	mono    bool
	nfc     bool
	backend string
	atlas   string
	render  string
	spirv   string
	repl    bool
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.font, "font", "", "font file (TTF or OTF)")
	flag.StringVar(&o.assets, "assets", ".", "asset root holding "+textmesh.FallbackFontPath)
	flag.IntVar(&o.size, "size", 24, "pixel size")
	flag.StringVar(&o.text, "text", "Hello, textmesh!", "text to build")
	flag.BoolVar(&o.mono, "mono", false, "monospace layout")
	flag.BoolVar(&o.nfc, "nfc", false, "normalize text to NFC")
	flag.StringVar(&o.backend, "backend", typeface.DefaultBackendName, "rasterizer backend")
	flag.StringVar(&o.atlas, "atlas", "", "write the glyph atlas to this PNG file")
	flag.StringVar(&o.render, "render", "", "write the rendered text to this PNG file")
	flag.StringVar(&o.spirv, "spirv", "", "write the compiled text shader to this SPIR-V file")
	flag.BoolVar(&o.repl, "repl", false, "read lines interactively and render each one")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	if o.font == "" {
		flag.Usage()
		os.Exit(2)
	}
	if o.verbose {
		textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(o); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(o options) error {
	lib, err := textmesh.NewLibrary(
		textmesh.WithAssetRoot(o.assets),
		textmesh.WithBackend(o.backend),
	)
	if err != nil {
		return err
	}
	defer lib.Close()

	dev := gpucore.NewSoftwareDevice(nil)
	dev.Origin = image.Pt(margin, margin)

	fs := textmesh.NewFontService(lib, textmesh.WithDevice(dev))
	defer fs.Close()
	if err := fs.Init(o.font); err != nil {
		return err
	}
	pterm.Info.Printfln("%s (%s backend, monospace=%t, fallback=%t)",
		fs.Name(), lib.BackendName(), fs.IsMonospace(), lib.Fallback() != nil)

	if o.spirv != "" {
		if err := writeSPIRV(o.spirv); err != nil {
			return err
		}
	}

	if o.repl {
		return repl(fs, dev, o)
	}

	txt, err := fs.CreateText(o.text, o.size, textOptions(o)...)
	if err != nil {
		return err
	}
	defer txt.Release()

	if err := summary(fs, txt, o.size); err != nil {
		return err
	}
	if o.render != "" {
		if err := render(dev, txt, o.render); err != nil {
			return err
		}
	}
	if o.atlas != "" {
		if err := dumpAtlas(fs, o.size, o.atlas); err != nil {
			return err
		}
	}
	return nil
}

func textOptions(o options) []textmesh.TextOption {
	var opts []textmesh.TextOption
	if o.mono {
		opts = append(opts, textmesh.Monospace())
	}
	if o.nfc {
		opts = append(opts, textmesh.Normalize())
	}
	return opts
}

func summary(fs *textmesh.FontService, txt *textmesh.Text, size int) error {
	gc, err := fs.GlyphCache(size)
	if err != nil {
		return err
	}
	w, h := txt.Size()
	aw, ah := gc.AtlasSize()
	data := pterm.TableData{
		{"Property", "Value"},
		{"size", fmt.Sprintf("%.1f x %.1f", w, h)},
		{"vertices", strconv.Itoa(txt.VertexCount())},
		{"line height", strconv.Itoa(gc.LineHeight())},
		{"glyphs", strconv.Itoa(gc.Len())},
		{"atlas", fmt.Sprintf("%dx%d (%.1f%% used)", aw, ah, gc.Utilization()*100)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// render draws txt onto a white canvas sized to the text.
func render(dev *gpucore.SoftwareDevice, txt *textmesh.Text, path string) error {
	w, h := txt.Size()
	canvas := image.NewRGBA(image.Rect(0, 0, int(w)+2*margin, int(h)+2*margin))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	dev.Target = canvas
	if err := txt.Draw(); err != nil {
		return err
	}
	if err := savePNG(path, canvas); err != nil {
		return err
	}
	pterm.Success.Printfln("rendered %s", path)
	return nil
}

// dumpAtlas writes the atlas bitmap. Atlas pixels are white with straight
// coverage alpha, so they are encoded as NRGBA.
func dumpAtlas(fs *textmesh.FontService, size int, path string) error {
	gc, err := fs.GlyphCache(size)
	if err != nil {
		return err
	}
	src := gc.Image()
	img := &image.NRGBA{Pix: src.Pix, Stride: src.Stride, Rect: src.Rect}
	if err := savePNG(path, img); err != nil {
		return err
	}
	pterm.Success.Printfln("atlas %s", path)
	return nil
}

func writeSPIRV(path string) error {
	words, err := gpucore.CompileTextShader()
	if err != nil {
		return err
	}
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return err
	}
	pterm.Success.Printfln("text shader: %d SPIR-V words in %s", len(words), path)
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
