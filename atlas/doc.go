// Package atlas packs glyph bitmaps into a single growable RGBA bitmap.
//
// Segments are placed with a shelf allocator: rectangles are laid out
// left-to-right on horizontal shelves whose height is set by the tallest
// segment placed so far. When no shelf has room the bitmap doubles in both
// dimensions and existing pixels are copied to the same coordinates, so a
// rectangle returned by [Packer.Coords] stays valid for the lifetime of the
// packer.
//
// The packer records whether its bitmap changed since the last
// [Packer.ClearDirty] call, which lets callers batch texture uploads.
package atlas
