// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/xyz"
)

// AverageColor returns the mean RGB color of the texture, with
// components in 0..1 for 8 bit formats. Devices without a cube map
// convolution use it as the diffuse irradiance of an image light.
func AverageColor(tx *xyz.Texture) (mgl32.Vec3, error) {
	bpp := tx.Format.BytesPerPixel()
	n := tx.Width * tx.Height
	data := tx.Data()
	if n == 0 || len(data) < n*bpp {
		return mgl32.Vec3{}, errors.Errorf("render: texture %q has no pixel data", tx.Name)
	}
	var sum [3]float64
	for i := range n {
		px := data[i*bpp : (i+1)*bpp]
		for c := range 3 {
			switch tx.Format {
			case xyz.TextureRGBA32F:
				sum[c] += float64(math.Float32frombits(binary.LittleEndian.Uint32(px[c*4:])))
			default:
				sum[c] += float64(px[c]) / 255
			}
		}
	}
	return mgl32.Vec3{float32(sum[0] / float64(n)), float32(sum[1] / float64(n)), float32(sum[2] / float64(n))}, nil
}
