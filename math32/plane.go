// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/go-gl/mathgl/mgl32"

// Plane represents a plane in 3D space by its normal vector and a constant
// offset. When the normal vector is the unit vector the constant is
// the distance from the origin.
type Plane struct {
	Norm mgl32.Vec3
	Off  float32
}

// NewPlane creates and returns a new plane from a normal vector and a offset.
func NewPlane(normal mgl32.Vec3, offset float32) Plane {
	return Plane{Norm: normal, Off: offset}
}

// SetFromVector4 sets this plane normal from the first three
// components of v and the offset from the fourth.
func (p *Plane) SetFromVector4(v mgl32.Vec4) {
	p.Norm = v.Vec3()
	p.Off = v[3]
}

// Normalize normalizes this plane normal vector and adjusts the offset.
// Note: will lead to a divide by zero if the plane is invalid.
func (p *Plane) Normalize() {
	inv := 1 / p.Norm.Len()
	p.Norm = p.Norm.Mul(inv)
	p.Off *= inv
}

// DistanceToPoint returns the signed distance from this plane to the
// specified point; positive on the side the normal points to.
func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Norm.Dot(point) + p.Off
}
