package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// MeshID is an opaque handle to an uploaded vertex buffer.
type MeshID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// TextureDesc describes a 2D texture.
type TextureDesc struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the texture dimensions in pixels.
	Width  int
	Height int

	// Format is the pixel format. Text atlases use RGBA8Unorm.
	Format gputypes.TextureFormat
}

// MeshDesc describes a vertex buffer and how to draw it.
type MeshDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout describes the interleaved vertex format.
	Layout gputypes.VertexBufferLayout

	// Topology is the primitive type.
	Topology gputypes.PrimitiveTopology

	// VertexCount is the number of vertices in the buffer.
	VertexCount int
}
