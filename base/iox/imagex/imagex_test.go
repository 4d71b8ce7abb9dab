// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			im.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 200), 10, 255})
		}
	}
	return im
}

func TestFormatFromExt(t *testing.T) {
	for ext, f := range map[string]Formats{".png": PNG, "JPG": JPEG, ".tif": TIFF, "webp": WebP} {
		got, err := FormatFromExt(ext)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := FormatFromExt(".txt")
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, "png", PNG.String())
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.bmp", "a.tiff"} {
		fn := filepath.Join(dir, name)
		require.NoError(t, Save(testImage(), fn))
		im, f, err := Open(fn)
		require.NoError(t, err, name)
		assert.Equal(t, filepath.Ext(name)[1:], f.String())
		rgba := AsRGBA(im)
		assert.Equal(t, 4, rgba.Bounds().Dx())
		assert.Equal(t, color.RGBA{180, 200, 10, 255}, rgba.RGBAAt(3, 1))
	}
	assert.ErrorIs(t, Write(testImage(), &bytes.Buffer{}, WebP), ErrFormat)
}

func TestAsRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, rgba, AsRGBA(rgba))
	sub := rgba.SubImage(image.Rect(1, 1, 3, 3))
	packed := AsRGBA(sub)
	assert.NotSame(t, rgba, packed)
	assert.Equal(t, image.Rect(0, 0, 2, 2), packed.Bounds())
	assert.Equal(t, 8, packed.Stride)
	assert.Nil(t, AsRGBA(nil))
}
