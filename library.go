package textmesh

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/typeface"
)

// FallbackFontPath is the fallback font location relative to the asset
// root.
const FallbackFontPath = "fonts/NotoSansCJKjp-Regular.otf"

// Library holds the rasterization backend and the fallback typeface shared
// by every FontService created on it.
type Library struct {
	backend  typeface.Backend
	name     string
	fallback *typeface.Typeface
	closed   bool
}

// NewLibrary initializes the backend and loads the fallback typeface.
//
// A backend that fails to initialize makes NewLibrary fail. A fallback
// typeface that cannot be loaded is logged and skipped; glyphs missing
// from primary fonts then render as the missing-glyph box.
func NewLibrary(opts ...LibraryOption) (*Library, error) {
	o := defaultLibraryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b, name := o.backend, o.backendName
	if b == nil {
		var err error
		if b, err = typeface.Lookup(name); err != nil {
			return nil, err
		}
	} else {
		name = fmt.Sprintf("%T", b)
	}

	if initer, ok := b.(typeface.Initializer); ok {
		if err := initer.Init(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBackendInit, name, err)
		}
	}

	lib := &Library{backend: b, name: name}
	lib.loadFallback(o)

	logging.Logger().Info("textmesh: library initialized", "backend", name, "fallback", lib.fallback != nil)
	return lib, nil
}

func (l *Library) loadFallback(o libraryOptions) {
	log := logging.Logger()

	data, source := o.fallbackData, "inline data"
	if data == nil {
		path := filepath.Join(o.assetRoot, FallbackFontPath)
		source = path

		var err error
		if data, err = os.ReadFile(path); err != nil {
			log.Warn("textmesh: fallback font unavailable", "path", path, "err", err)
			return
		}
	}

	tf, err := typeface.New(l.backend, data)
	if err != nil {
		log.Warn("textmesh: fallback font rejected", "source", source, "err", err)
		return
	}
	l.fallback = tf
}

// Backend returns the rasterization backend.
func (l *Library) Backend() typeface.Backend {
	return l.backend
}

// BackendName returns the registry name of the backend, or its type for
// backends passed with WithBackendImpl.
func (l *Library) BackendName() string {
	return l.name
}

// Fallback returns the fallback typeface, or nil when none was loaded.
func (l *Library) Fallback() *typeface.Typeface {
	if l == nil {
		return nil
	}
	return l.fallback
}

// Close releases the fallback typeface and shuts the backend down.
// FontServices created on the library must be closed first.
func (l *Library) Close() {
	if l == nil || l.closed {
		return
	}
	l.closed = true

	if l.fallback != nil {
		_ = l.fallback.Close()
		l.fallback = nil
	}
	if fin, ok := l.backend.(typeface.Finalizer); ok {
		fin.Done()
	}
	logging.Logger().Info("textmesh: library closed", "backend", l.name)
}

var (
	defaultMu  sync.Mutex
	defaultLib *Library
)

// InitLibrary creates the process-wide default library used by
// FontServices created with a nil library. Calling it again while a
// default library exists is a no-op.
func InitLibrary(opts ...LibraryOption) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLib != nil {
		return nil
	}
	lib, err := NewLibrary(opts...)
	if err != nil {
		return err
	}
	defaultLib = lib
	return nil
}

// FreeLibrary closes the default library.
func FreeLibrary() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLib.Close()
	defaultLib = nil
}

// DefaultLibrary returns the default library, or nil before InitLibrary.
func DefaultLibrary() *Library {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLib
}
