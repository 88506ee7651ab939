// Package glyphcache rasterizes glyphs on demand for one typeface at one
// pixel size and packs them into a growable atlas texture.
//
// A Cache never evicts glyphs. The first lookup of a code point selects
// the pixel size on the typefaces (redundant switches are skipped by
// typeface.Typeface), resolves the glyph on the primary typeface, then on
// the fallback, and finally uses the primary's missing-glyph box. The
// coverage mask is stored as white RGBA with alpha equal to coverage.
//
// Texture uploads are lazy. Texture rewrites the existing texture when the
// atlas kept its size and creates a new texture when it grew; the replaced
// texture is destroyed on the following regeneration so that a frame which
// already bound it can finish.
package glyphcache
