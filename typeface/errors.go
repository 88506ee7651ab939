package typeface

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the typeface package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("typeface: empty font data")

	// ErrInvalidFontData is returned when a backend rejects font data.
	ErrInvalidFontData = errors.New("typeface: invalid font data")

	// ErrNoUnicodeCharmap is returned when a font has no Unicode
	// character map.
	ErrNoUnicodeCharmap = errors.New("typeface: no unicode character map")

	// ErrInvalidPixelSize is returned for non-positive pixel sizes.
	ErrInvalidPixelSize = errors.New("typeface: invalid pixel size")

	// ErrUnknownBackend is returned when no backend is registered under
	// the requested name.
	ErrUnknownBackend = errors.New("typeface: unknown backend")

	// ErrClosed is returned by operations on a closed Typeface.
	ErrClosed = errors.New("typeface: closed")
)

// parseError classifies a parser error. Both sfnt and truetype report a
// missing or unsupported character map with "cmap" in the message.
func parseError(err error) error {
	if strings.Contains(err.Error(), "cmap") {
		return fmt.Errorf("%w: %w", ErrNoUnicodeCharmap, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidFontData, err)
}
