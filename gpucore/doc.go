// Package gpucore defines the GPU capability used by text meshes.
//
// GPU resources are referred to by opaque IDs ([TextureID], [MeshID]).
// A [TextureDevice] creates, updates and destroys RGBA8 textures, and a
// [MeshDevice] uploads vertex data and draws it with a bound texture.
// Hosts implement these interfaces on top of their renderer; the package
// ships a CPU implementation, [SoftwareDevice], used by tools and tests.
//
// # Vertex format
//
// Text meshes are triangle lists of interleaved float32 vertices:
//
//	offset 0: position (x, y) in pixels, y down, location 0
//	offset 8: uv (u, v) in atlas pixels,            location 1
//
// UVs are not normalized. The vertex shader divides them by the size of
// the bound texture, so a mesh stays valid when the atlas texture is
// recreated at a larger size. See [TextVertexLayout] and [TextShaderWGSL].
package gpucore
