// Package typeface loads font data through a pluggable rasterization
// backend and turns glyphs into 8-bit coverage masks.
//
// A Backend parses font bytes into a Face. Two backends are registered by
// default:
//
//   - "ximage" (default): golang.org/x/image/font/sfnt outlines filled with
//     golang.org/x/image/vector. Handles TrueType and CFF based OpenType.
//   - "freetype": github.com/golang/freetype/truetype outlines filled with
//     github.com/srwiley/rasterx. TrueType only.
//
// Typeface wraps a Face together with the font bytes it was parsed from and
// the pixel size currently selected on it. Selecting the size that is
// already active is a no-op, so callers sharing a Typeface across several
// sizes only pay for real switches.
//
// Masks use y-down pixel coordinates. BearingLeft is the offset from the
// pen to the left edge of the mask and BearingTop the distance from the
// baseline up to its top edge.
package typeface
