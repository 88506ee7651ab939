package textmesh

import (
	"github.com/gogpu/textmesh/glyphcache"
	"github.com/gogpu/textmesh/gpucore"
	"github.com/gogpu/textmesh/layout"
)

// Text is a laid out string: an immutable vertex list, its measured size
// and a lazily created GPU mesh.
//
// Text is reference counted. The text cache holds one reference and every
// CreateText result holds one more. The GPU mesh is destroyed when the
// last reference is released.
type Text struct {
	vertices []layout.Vertex
	floats   []float32
	width    float32
	height   float32
	glyphs   *glyphcache.Cache
	device   gpucore.Device
	mesh     gpucore.MeshID
	refs     int
}

func newText(res layout.Result, glyphs *glyphcache.Cache, device gpucore.Device) *Text {
	return &Text{
		vertices: res.Vertices,
		floats:   res.Floats(),
		width:    res.Width,
		height:   res.Height,
		glyphs:   glyphs,
		device:   device,
		refs:     1,
	}
}

// Size returns the measured width and height in pixels.
func (t *Text) Size() (width, height float32) {
	return t.width, t.height
}

// Vertices returns the vertex list. It must not be modified.
func (t *Text) Vertices() []layout.Vertex {
	return t.vertices
}

// VertexCount returns the number of vertices, six per visible glyph.
func (t *Text) VertexCount() int {
	return len(t.vertices)
}

// GlyphCache returns the glyph cache the text was built from.
func (t *Text) GlyphCache() *glyphcache.Cache {
	return t.glyphs
}

// Texture returns the atlas texture, uploading new glyphs first.
func (t *Text) Texture() (gpucore.TextureID, error) {
	if t.refs <= 0 {
		return gpucore.InvalidID, ErrReleased
	}
	return t.glyphs.Texture()
}

// Mesh returns the GPU mesh, creating it on first use. An empty text has
// no mesh and returns InvalidID.
func (t *Text) Mesh() (gpucore.MeshID, error) {
	if t.refs <= 0 {
		return gpucore.InvalidID, ErrReleased
	}
	if t.mesh != gpucore.InvalidID || len(t.vertices) == 0 {
		return t.mesh, nil
	}
	if t.device == nil {
		return gpucore.InvalidID, ErrNoDevice
	}

	id, err := t.device.CreateMesh(gpucore.TextMeshDesc("text", len(t.vertices)), t.floats)
	if err != nil {
		return gpucore.InvalidID, err
	}
	t.mesh = id
	return id, nil
}

// Draw binds the atlas texture and submits the mesh. Empty texts draw
// nothing.
func (t *Text) Draw() error {
	if t.refs <= 0 {
		return ErrReleased
	}
	if len(t.vertices) == 0 {
		return nil
	}
	tex, err := t.Texture()
	if err != nil {
		return err
	}
	mesh, err := t.Mesh()
	if err != nil {
		return err
	}
	return t.device.DrawMesh(tex, mesh)
}

// Retain adds a reference.
func (t *Text) Retain() {
	t.refs++
}

// Release drops a reference and destroys the mesh when none remain.
func (t *Text) Release() {
	if t.refs <= 0 {
		return
	}
	t.refs--
	if t.refs == 0 && t.mesh != gpucore.InvalidID {
		t.device.DestroyMesh(t.mesh)
		t.mesh = gpucore.InvalidID
	}
}

// Refs returns the current reference count.
func (t *Text) Refs() int {
	return t.refs
}
