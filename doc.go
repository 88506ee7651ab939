// Package textmesh builds drawable text meshes backed by cached glyph
// atlases.
//
// A [Library] selects the rasterization backend and loads the shared
// fallback typeface. A [FontService] owns one primary typeface and, per
// requested pixel size, a glyph cache (see package glyphcache) and a
// short-lived cache of built texts (see package meshcache).
//
//	lib, err := textmesh.NewLibrary(textmesh.WithAssetRoot("assets"))
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	fs := textmesh.NewFontService(lib, textmesh.WithDevice(device))
//	if err := fs.Init("assets/fonts/Inter-Regular.ttf"); err != nil {
//	    return err
//	}
//	defer fs.Close()
//
//	t, err := fs.CreateText("Hello, 世界", 24)
//	if err != nil {
//	    return err
//	}
//	defer t.Release()
//	w, h := t.Size()
//	err = t.Draw()
//
// Requesting the same string at the same size and options again within the
// text TTL (one second by default) returns the same *Text. Texts stay
// valid after they leave the cache until their last reference is released.
//
// # Threading
//
// FontService, Text and the caches are not safe for concurrent use;
// callers serialize all calls. The default library and the logger are
// safe for concurrent use.
package textmesh
