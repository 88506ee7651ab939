// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuctx connects glyph atlases to a gogpu host window.
//
// Device implements gpucore.TextureDevice on top of the texture interfaces
// of gpucontext, so a glyphcache.Cache can upload its atlas through the
// host renderer:
//
//	dev, err := gpuctx.New(dc.AsTextureDrawer())
//	if err != nil {
//	    return err
//	}
//	fs := textmesh.NewFontService(lib,
//	    textmesh.WithDevice(gpucore.Combine(dev, meshes)),
//	)
//
// The host renderer only draws whole textures, so mesh submission is left
// to a separate gpucore.MeshDevice. DrawTexture blits an atlas texture and
// is useful to inspect the atlas on screen.
//
// # Thread Safety
//
// Device is NOT safe for concurrent use.
//
// # Integration Without Circular Imports
//
// This package uses interfaces to avoid importing gogpu directly:
//
//   - gpucontext.TextureDrawer and gpucontext.TextureCreator for creation
//     and drawing
//   - gpucontext.TextureUpdater or gpucontext.TextureRegionUpdater for
//     uploads
//   - a local Destroy() interface for release
package gpuctx
