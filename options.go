package textmesh

import (
	"time"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/gpucore"
	"github.com/gogpu/textmesh/meshcache"
	"github.com/gogpu/textmesh/typeface"
)

// ServiceOption configures a FontService during creation.
//
// Example:
//
//	fs := textmesh.NewFontService(lib,
//	    textmesh.WithDevice(device),
//	    textmesh.WithTextTTL(2*time.Second),
//	)
type ServiceOption func(*serviceOptions)

// serviceOptions holds optional configuration for FontService creation.
type serviceOptions struct {
	device         gpucore.Device
	textTTL        time.Duration
	clock          func() time.Time
	atlas          atlas.Config
	maxCachedTexts int
}

// defaultServiceOptions returns the default service options.
func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		textTTL:        meshcache.DefaultTTL,
		clock:          time.Now,
		atlas:          atlas.DefaultConfig(),
		maxCachedTexts: meshcache.DefaultMaxEntries,
	}
}

// WithDevice sets the GPU device used for atlas textures and text meshes.
// Without a device, texts can be built and measured but not drawn.
func WithDevice(d gpucore.Device) ServiceOption {
	return func(o *serviceOptions) {
		o.device = d
	}
}

// WithTextTTL sets how long an unused text stays cached.
func WithTextTTL(d time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		if d > 0 {
			o.textTTL = d
		}
	}
}

// WithClock sets the time source for text expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithAtlasConfig sets the configuration of every glyph atlas.
func WithAtlasConfig(cfg atlas.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.atlas = cfg
	}
}

// WithMaxCachedTexts bounds the number of cached texts per pixel size.
func WithMaxCachedTexts(n int) ServiceOption {
	return func(o *serviceOptions) {
		if n > 0 {
			o.maxCachedTexts = n
		}
	}
}

// TextOption configures a single CreateText call.
type TextOption func(*textOptions)

type textOptions struct {
	monospace bool
	normalize bool
}

// Monospace lays the text out with a fixed advance equal to the advance
// of '_', centering each glyph in its cell.
func Monospace() TextOption {
	return func(o *textOptions) {
		o.monospace = true
	}
}

// Normalize converts the text to Unicode NFC before layout, so that
// decomposed sequences use precomposed glyphs where the font has them.
func Normalize() TextOption {
	return func(o *textOptions) {
		o.normalize = true
	}
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	assetRoot    string
	backendName  string
	backend      typeface.Backend
	fallbackData []byte
}

func defaultLibraryOptions() libraryOptions {
	return libraryOptions{
		assetRoot:   ".",
		backendName: typeface.DefaultBackendName,
	}
}

// WithAssetRoot sets the directory the fallback font path is resolved
// against. Default: the working directory.
func WithAssetRoot(dir string) LibraryOption {
	return func(o *libraryOptions) {
		o.assetRoot = dir
	}
}

// WithBackend selects a registered rasterization backend by name.
func WithBackend(name string) LibraryOption {
	return func(o *libraryOptions) {
		o.backendName = name
	}
}

// WithBackendImpl uses b instead of a registered backend.
func WithBackendImpl(b typeface.Backend) LibraryOption {
	return func(o *libraryOptions) {
		o.backend = b
	}
}

// WithFallbackData uses data as the fallback font instead of reading it
// from the asset root.
func WithFallbackData(data []byte) LibraryOption {
	return func(o *libraryOptions) {
		o.fallbackData = data
	}
}
