// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"

	"cogentcore.org/xr/base/iox/imagex"
)

// TextureFormats are the pixel formats of a [Texture].
type TextureFormats int32

const (
	// TextureRGBA8 is 8 bit per channel RGBA.
	TextureRGBA8 TextureFormats = iota

	// TextureRGB8 is 8 bit per channel RGB.
	TextureRGB8

	// TextureRGBA32F is 32 bit float per channel RGBA, used for HDR panoramas.
	TextureRGBA32F
)

// BytesPerPixel returns the size of one pixel in bytes.
func (tf TextureFormats) BytesPerPixel() int {
	switch tf {
	case TextureRGB8:
		return 3
	case TextureRGBA32F:
		return 16
	default:
		return 4
	}
}

// Texture is image data sampled by materials and image lights.
// Changing its data increments its version, which invalidates
// the GPU copy and anything derived from it.
type Texture struct {
	ObjectBase `copier:"-"`
	hostList

	// Width is the width in pixels.
	Width int

	// Height is the height in pixels.
	Height int

	// Format is the pixel format.
	Format TextureFormats

	// MipMaps requests mip map generation on upload.
	MipMaps bool

	data []byte
}

// NewTexture returns a new texture with the given size, format and pixels.
func NewTexture(name string, width, height int, format TextureFormats, data []byte) *Texture {
	tx := &Texture{Width: width, Height: height, Format: format, data: data}
	tx.InitObject(tx)
	tx.Name = name
	return tx
}

// NewTextureFromImage returns a new RGBA8 texture with the pixels
// of the image.
func NewTextureFromImage(name string, im image.Image) *Texture {
	rgba := imagex.AsRGBA(im)
	b := rgba.Bounds()
	return NewTexture(name, b.Dx(), b.Dy(), TextureRGBA8, rgba.Pix)
}

// OpenTexture returns a new texture with the image in the given file,
// in any format supported by [imagex.Open].
func OpenTexture(name, filename string) (*Texture, error) {
	im, _, err := imagex.Open(filename)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(name, im), nil
}

// Data returns the pixel data.
func (tx *Texture) Data() []byte {
	return tx.data
}

// SetData replaces the pixel data and size.
func (tx *Texture) SetData(width, height int, data []byte) {
	tx.Width = width
	tx.Height = height
	tx.data = data
	tx.NotifyChanged(Change(ChangeRender))
}

// OnChanged forwards the change to the materials and lights using the texture.
func (tx *Texture) OnChanged(change ObjectChange) {
	tx.ObjectBase.OnChanged(change)
	tx.notifyHosts(tx, change)
}
