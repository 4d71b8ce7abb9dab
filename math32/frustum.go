// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "github.com/go-gl/mathgl/mgl32"

// Frustum represents a frustum
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix creates and returns a Frustum based on the provided
// projection * view matrix, with all plane normals pointing inward.
func NewFrustumFromMatrix(m *mgl32.Mat4) *Frustum {
	f := &Frustum{}
	f.SetFromMatrix(m)
	return f
}

// SetFromMatrix sets the frustum's planes based on the specified
// projection * view matrix (column vector convention).
func (f *Frustum) SetFromMatrix(m *mgl32.Mat4) {
	r0 := m.Row(0)
	r1 := m.Row(1)
	r2 := m.Row(2)
	r3 := m.Row(3)

	f.Planes[0].SetFromVector4(r3.Add(r0)) // left
	f.Planes[1].SetFromVector4(r3.Sub(r0)) // right
	f.Planes[2].SetFromVector4(r3.Add(r1)) // bottom
	f.Planes[3].SetFromVector4(r3.Sub(r1)) // top
	f.Planes[4].SetFromVector4(r3.Add(r2)) // near
	f.Planes[5].SetFromVector4(r3.Sub(r2)) // far
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
}

// ContainsPoint determines whether the frustum contains the specified point.
func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox determines whether the specified box is intersecting the frustum.
// An empty box never intersects.
func (f *Frustum) IntersectsBox(box Box3) bool {
	if box.IsEmpty() {
		return false
	}
	for i := range f.Planes {
		p := &f.Planes[i]
		var pos mgl32.Vec3
		for k := 0; k < 3; k++ {
			if p.Norm[k] > 0 {
				pos[k] = box.Max[k]
			} else {
				pos[k] = box.Min[k]
			}
		}
		// the corner furthest along the normal is still behind the plane
		if p.DistanceToPoint(pos) < 0 {
			return false
		}
	}
	return true
}
