package gpucore

import "errors"

// Sentinel errors for device implementations.
var (
	// ErrUnknownTexture is returned for IDs a device did not create or has
	// already destroyed.
	ErrUnknownTexture = errors.New("gpucore: unknown texture")

	// ErrUnknownMesh is returned for unknown mesh IDs.
	ErrUnknownMesh = errors.New("gpucore: unknown mesh")

	// ErrSizeMismatch is returned when pixel or vertex data does not match
	// the described resource size.
	ErrSizeMismatch = errors.New("gpucore: data size mismatch")
)

// TextureDevice manages RGBA8 textures.
type TextureDevice interface {
	// CreateTexture creates a texture initialized with pixels, which hold
	// desc.Width*desc.Height*4 bytes in row-major RGBA order.
	CreateTexture(desc TextureDesc, pixels []byte) (TextureID, error)

	// WriteTexture replaces the whole content of a texture. The pixel
	// data must match the size the texture was created with.
	WriteTexture(id TextureID, pixels []byte) error

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)
}

// MeshDevice manages vertex buffers and draws them.
type MeshDevice interface {
	// CreateMesh uploads interleaved vertex data described by desc.
	CreateMesh(desc MeshDesc, vertices []float32) (MeshID, error)

	// DestroyMesh releases a mesh. Unknown IDs are ignored.
	DestroyMesh(id MeshID)

	// DrawMesh draws a mesh sampling from tex.
	DrawMesh(tex TextureID, mesh MeshID) error
}

// Device provides both texture and mesh capabilities.
type Device interface {
	TextureDevice
	MeshDevice
}

// Combine joins separate texture and mesh implementations into a Device.
func Combine(textures TextureDevice, meshes MeshDevice) Device {
	return combined{textures, meshes}
}

type combined struct {
	TextureDevice
	MeshDevice
}
