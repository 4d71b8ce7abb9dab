// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/go-gl/mathgl/mgl32"

// ComposeMatrix returns the matrix that applies scale, then rotation,
// then translation, for column vectors.
func ComposeMatrix(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	m := rot.Mat4()
	for c := 0; c < 3; c++ {
		s := scale[c]
		m[c*4] *= s
		m[c*4+1] *= s
		m[c*4+2] *= s
	}
	m[12], m[13], m[14] = pos[0], pos[1], pos[2]
	return m
}

// Decompose splits an affine matrix into its position, rotation and scale.
// A negative determinant is folded into the X scale.
func Decompose(m mgl32.Mat4) (pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	pos = mgl32.Vec3{m[12], m[13], m[14]}
	scale = mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
	if m.Det() < 0 {
		scale[0] = -scale[0]
	}
	r := m
	for c := 0; c < 3; c++ {
		if scale[c] == 0 {
			continue
		}
		inv := 1 / scale[c]
		r[c*4] *= inv
		r[c*4+1] *= inv
		r[c*4+2] *= inv
	}
	r[12], r[13], r[14] = 0, 0, 0
	rot = mgl32.Mat4ToQuat(r).Normalize()
	return
}

// MatrixPosition returns the translation part of the matrix.
func MatrixPosition(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}
