package textmesh

import (
	"errors"

	"github.com/gogpu/textmesh/glyphcache"
	"github.com/gogpu/textmesh/typeface"
)

// Sentinel errors for the textmesh package.
var (
	// ErrFontUnreadable is returned by Init when the font file cannot be
	// read.
	ErrFontUnreadable = errors.New("textmesh: font file unreadable")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = typeface.ErrEmptyFontData

	// ErrNotInitialized is returned when a FontService has no typeface.
	ErrNotInitialized = errors.New("textmesh: font service not initialized")

	// ErrClosed is returned by operations on a closed FontService.
	ErrClosed = errors.New("textmesh: font service closed")

	// ErrInvalidSize is returned for non-positive pixel sizes.
	ErrInvalidSize = errors.New("textmesh: invalid pixel size")

	// ErrBackendInit is returned when the rasterization backend fails to
	// initialize.
	ErrBackendInit = errors.New("textmesh: backend initialization failed")

	// ErrNoDevice is returned when a GPU operation is requested without a
	// device.
	ErrNoDevice = glyphcache.ErrNoDevice

	// ErrReleased is returned by Text methods after the last reference was
	// released.
	ErrReleased = errors.New("textmesh: text released")
)
