package gpucore

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// ErrNoTarget is returned by SoftwareDevice.DrawMesh without a target.
var ErrNoTarget = errors.New("gpucore: software device has no target")

// SoftwareStats counts operations performed by a SoftwareDevice.
type SoftwareStats struct {
	TexturesCreated   int
	TextureWrites     int
	TexturesDestroyed int
	MeshesCreated     int
	MeshesDestroyed   int
	Draws             int
	Quads             int
}

// SoftwareDevice is a CPU Device drawing text meshes into an image.
//
// Each group of six vertices is drawn as one axis-aligned quad: the atlas
// region between the first and fifth vertex UVs is used as a coverage mask
// for Color. Regions whose on-screen size differs from the atlas size are
// scaled with nearest-neighbor sampling.
//
// SoftwareDevice is not safe for concurrent use.
type SoftwareDevice struct {
	// Target receives draws. May be nil when only textures are used.
	Target draw.Image

	// Origin is added to every vertex position.
	Origin image.Point

	// Color tints the coverage. Defaults to opaque black.
	Color color.Color

	Stats SoftwareStats

	textures map[TextureID]*image.RGBA
	meshes   map[MeshID][]float32
	nextID   uint64
}

// NewSoftwareDevice creates a device drawing into target.
func NewSoftwareDevice(target draw.Image) *SoftwareDevice {
	return &SoftwareDevice{
		Target:   target,
		Color:    color.Black,
		textures: make(map[TextureID]*image.RGBA),
		meshes:   make(map[MeshID][]float32),
	}
}

func (d *SoftwareDevice) newID() uint64 {
	d.nextID++
	return d.nextID
}

// CreateTexture implements TextureDevice.
func (d *SoftwareDevice) CreateTexture(desc TextureDesc, pixels []byte) (TextureID, error) {
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		return InvalidID, fmt.Errorf("gpucore: unsupported texture format %v", desc.Format)
	}
	if desc.Width <= 0 || desc.Height <= 0 || len(pixels) != desc.Width*desc.Height*4 {
		return InvalidID, fmt.Errorf("%w: %dx%d with %d bytes", ErrSizeMismatch, desc.Width, desc.Height, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	copy(img.Pix, pixels)

	id := TextureID(d.newID())
	d.textures[id] = img
	d.Stats.TexturesCreated++
	return id, nil
}

// WriteTexture implements TextureDevice.
func (d *SoftwareDevice) WriteTexture(id TextureID, pixels []byte) error {
	img, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	if len(pixels) != len(img.Pix) {
		return fmt.Errorf("%w: texture %d holds %d bytes, got %d", ErrSizeMismatch, id, len(img.Pix), len(pixels))
	}
	copy(img.Pix, pixels)
	d.Stats.TextureWrites++
	return nil
}

// DestroyTexture implements TextureDevice.
func (d *SoftwareDevice) DestroyTexture(id TextureID) {
	if _, ok := d.textures[id]; !ok {
		return
	}
	delete(d.textures, id)
	d.Stats.TexturesDestroyed++
}

// Texture returns the pixels of a live texture, or nil.
func (d *SoftwareDevice) Texture(id TextureID) *image.RGBA {
	return d.textures[id]
}

// LiveTextures returns the number of textures not yet destroyed.
func (d *SoftwareDevice) LiveTextures() int {
	return len(d.textures)
}

// CreateMesh implements MeshDevice. Only the text vertex layout with a
// triangle-list topology is supported.
func (d *SoftwareDevice) CreateMesh(desc MeshDesc, vertices []float32) (MeshID, error) {
	if desc.Layout.ArrayStride != TextVertexStride || desc.Topology != TextTopology {
		return InvalidID, errors.New("gpucore: software device supports only text meshes")
	}
	if len(vertices) != desc.VertexCount*TextVertexFloats {
		return InvalidID, fmt.Errorf("%w: %d vertices with %d floats", ErrSizeMismatch, desc.VertexCount, len(vertices))
	}

	id := MeshID(d.newID())
	d.meshes[id] = append([]float32(nil), vertices...)
	d.Stats.MeshesCreated++
	return id, nil
}

// DestroyMesh implements MeshDevice.
func (d *SoftwareDevice) DestroyMesh(id MeshID) {
	if _, ok := d.meshes[id]; !ok {
		return
	}
	delete(d.meshes, id)
	d.Stats.MeshesDestroyed++
}

// LiveMeshes returns the number of meshes not yet destroyed.
func (d *SoftwareDevice) LiveMeshes() int {
	return len(d.meshes)
}

// DrawMesh implements MeshDevice.
func (d *SoftwareDevice) DrawMesh(tex TextureID, mesh MeshID) error {
	if d.Target == nil {
		return ErrNoTarget
	}
	atlas, ok := d.textures[tex]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, tex)
	}
	vertices, ok := d.meshes[mesh]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownMesh, mesh)
	}

	src := image.NewUniform(d.Color)
	const quadFloats = 6 * TextVertexFloats
	for i := 0; i+quadFloats <= len(vertices); i += quadFloats {
		tl := vertices[i : i+TextVertexFloats]
		br := vertices[i+4*TextVertexFloats : i+5*TextVertexFloats]

		dr := image.Rect(round(tl[0]), round(tl[1]), round(br[0]), round(br[1])).Add(d.Origin)
		sr := image.Rect(round(tl[2]), round(tl[3]), round(br[2]), round(br[3]))
		if dr.Empty() || sr.Empty() {
			continue
		}

		if dr.Size() == sr.Size() {
			draw.DrawMask(d.Target, dr, src, image.Point{}, atlas, sr.Min, draw.Over)
		} else {
			scaled := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), atlas, sr, draw.Src, nil)
			draw.DrawMask(d.Target, dr, src, image.Point{}, scaled, image.Point{}, draw.Over)
		}
		d.Stats.Quads++
	}
	d.Stats.Draws++
	return nil
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
