// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/base/iox/imagex"
)

func TestTextureFromImage(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 3, 2))
	im.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	tx := NewTextureFromImage("img", im)
	assert.Equal(t, 3, tx.Width)
	assert.Equal(t, 2, tx.Height)
	assert.Equal(t, TextureRGBA8, tx.Format)
	require.Len(t, tx.Data(), 3*2*TextureRGBA8.BytesPerPixel())
	assert.Equal(t, []byte{10, 20, 30, 255}, tx.Data()[20:24])

	fn := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, imagex.Save(im, fn))
	otx, err := OpenTexture("file", fn)
	require.NoError(t, err)
	assert.Equal(t, tx.Data(), otx.Data())

	_, err = OpenTexture("missing", filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}

func TestTextureVersion(t *testing.T) {
	tx := NewTexture("tx", 1, 1, TextureRGBA8, []byte{0, 0, 0, 255})
	mt := NewMaterial("mt", nil).SetTexture(0, tx)
	v, mv := tx.Version(), mt.Version()
	tx.SetData(1, 1, []byte{255, 255, 255, 255})
	assert.Greater(t, tx.Version(), v)
	assert.Greater(t, mt.Version(), mv)
}
