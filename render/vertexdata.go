// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/xyz"
)

// VertexArrays are the attributes of a geometry in separate arrays,
// for backends that do not take interleaved data. Missing attributes
// are nil.
type VertexArrays struct {
	Positions []float32
	Normals   []float32
	UV0       []float32
	Colors    []uint8
	Indices   []uint16
}

// SplitVertices returns the attributes of the interleaved geometry data.
// Colors are converted to 8 bit RGBA. Indices must fit in 16 bits.
func SplitVertices(gm *xyz.Geometry) (*VertexArrays, error) {
	ly := gm.Layout()
	st := ly.Stride()
	n := gm.VertexCount()
	va := &VertexArrays{}
	vs := gm.Vertices()
	attr := func(c xyz.VertexComponents, size int) []float32 {
		off, ok := ly.Offset(c)
		if !ok {
			return nil
		}
		out := make([]float32, 0, n*size)
		for i := range n {
			b := i*st + off
			out = append(out, vs[b:b+size]...)
		}
		return out
	}
	va.Positions = attr(xyz.VertexPosition, 3)
	va.Normals = attr(xyz.VertexNormal, 3)
	va.UV0 = attr(xyz.VertexUV0, 2)
	if cs := attr(xyz.VertexColor, 4); cs != nil {
		va.Colors = make([]uint8, len(cs))
		for i, c := range cs {
			va.Colors[i] = uint8(min(max(c, 0), 1)*255 + 0.5)
		}
	}
	if n > math.MaxUint16+1 {
		return nil, errors.Errorf("render: geometry %q has %d vertices, more than 16 bit indices can address", gm.Name, n)
	}
	if idx := gm.Indices(); len(idx) > 0 {
		va.Indices = make([]uint16, len(idx))
		for i, x := range idx {
			if int(x) >= n {
				return nil, errors.Errorf("render: geometry %q index %d out of range", gm.Name, x)
			}
			va.Indices[i] = uint16(x)
		}
	}
	return va, nil
}
