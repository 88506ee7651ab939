// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuctx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/gpucore"
	"github.com/gogpu/textmesh/internal/logging"
)

// Common errors returned by Device operations.
var (
	// ErrInvalidDrawContext is returned when New receives a nil drawer.
	ErrInvalidDrawContext = errors.New("gpuctx: nil gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the drawer has no texture creator.
	ErrInvalidRenderer = errors.New("gpuctx: drawer has no gpucontext.TextureCreator")

	// ErrUnsupportedFormat is returned for texture formats other than RGBA8.
	ErrUnsupportedFormat = errors.New("gpuctx: unsupported texture format")

	// ErrNotUpdatable is returned by WriteTexture when the host texture
	// supports neither UpdateData nor UpdateRegion.
	ErrNotUpdatable = errors.New("gpuctx: texture cannot be updated")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Device is a gpucore.TextureDevice backed by a gpucontext host.
type Device struct {
	drawer   gpucontext.TextureDrawer
	creator  gpucontext.TextureCreator
	textures map[gpucore.TextureID]gpucontext.Texture
	nextID   uint64
}

var _ gpucore.TextureDevice = (*Device)(nil)

// New creates a Device drawing through drawer.
func New(drawer gpucontext.TextureDrawer) (*Device, error) {
	if drawer == nil {
		return nil, ErrInvalidDrawContext
	}
	creator := drawer.TextureCreator()
	if creator == nil {
		return nil, ErrInvalidRenderer
	}
	return &Device{
		drawer:   drawer,
		creator:  creator,
		textures: make(map[gpucore.TextureID]gpucontext.Texture),
	}, nil
}

// CreateTexture implements gpucore.TextureDevice.
func (d *Device) CreateTexture(desc gpucore.TextureDesc, pixels []byte) (gpucore.TextureID, error) {
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		return gpucore.InvalidID, fmt.Errorf("%w: %s", ErrUnsupportedFormat, desc.Format)
	}
	if len(pixels) != desc.Width*desc.Height*4 {
		return gpucore.InvalidID, fmt.Errorf("%w: %d bytes for %dx%d", gpucore.ErrSizeMismatch, len(pixels), desc.Width, desc.Height)
	}

	tex, err := d.creator.NewTextureFromRGBA(desc.Width, desc.Height, pixels)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("gpuctx: NewTextureFromRGBA failed: %w", err)
	}

	// Atlas pixels carry straight alpha.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(false)
	}

	d.nextID++
	id := gpucore.TextureID(d.nextID)
	d.textures[id] = tex
	logging.Logger().Debug("gpuctx: texture created", "label", desc.Label, "id", id, "width", desc.Width, "height", desc.Height)
	return id, nil
}

// WriteTexture implements gpucore.TextureDevice.
func (d *Device) WriteTexture(id gpucore.TextureID, pixels []byte) error {
	tex, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", gpucore.ErrUnknownTexture, id)
	}
	w, h := tex.Width(), tex.Height()
	if len(pixels) != w*h*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", gpucore.ErrSizeMismatch, len(pixels), w, h)
	}

	switch u := tex.(type) {
	case gpucontext.TextureUpdater:
		return u.UpdateData(pixels)
	case gpucontext.TextureRegionUpdater:
		return u.UpdateRegion(0, 0, w, h, pixels)
	}
	return ErrNotUpdatable
}

// DestroyTexture implements gpucore.TextureDevice.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	tex, ok := d.textures[id]
	if !ok {
		return
	}
	if destroyer, ok := tex.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	delete(d.textures, id)
}

// Texture returns the host texture for id.
func (d *Device) Texture(id gpucore.TextureID) (gpucontext.Texture, bool) {
	tex, ok := d.textures[id]
	return tex, ok
}

// DrawTexture draws the whole texture id with its top-left corner at
// (x, y) in window pixels.
func (d *Device) DrawTexture(id gpucore.TextureID, x, y float32) error {
	tex, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", gpucore.ErrUnknownTexture, id)
	}
	return d.drawer.DrawTexture(tex, x, y)
}

// Len returns the number of live textures.
func (d *Device) Len() int {
	return len(d.textures)
}

// Close destroys every texture still alive.
func (d *Device) Close() {
	for id := range d.textures {
		d.DestroyTexture(id)
	}
}
