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

// Box3 represents a 3D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// B3 returns a new [Box3] from the given minimum and maximum x, y, and z coordinates.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x1, y1, z1}}
}

// B3Empty returns a new [Box3] with empty minimum and maximum values.
func B3Empty() Box3 {
	bx := Box3{}
	bx.SetEmpty()
	return bx
}

// B3FromPoints returns a new [Box3] spanning the given points.
func B3FromPoints(points ...mgl32.Vec3) Box3 {
	bx := B3Empty()
	bx.ExpandByPoints(points)
	return bx
}

// SetEmpty set this bounding box to empty (min / max +/- Infinity)
func (b *Box3) SetEmpty() {
	b.Min = mgl32.Vec3{Infinity, Infinity, Infinity}
	b.Max = b.Min.Mul(-1)
}

// IsEmpty returns true if this bounding box is empty (max < min on any coord).
func (b Box3) IsEmpty() bool {
	return (b.Max[0] < b.Min[0]) || (b.Max[1] < b.Min[1]) || (b.Max[2] < b.Min[2])
}

// ExpandByPoints may expand this bounding box from the specified array of points.
func (b *Box3) ExpandByPoints(points []mgl32.Vec3) {
	for _, p := range points {
		b.ExpandByPoint(p)
	}
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box3) ExpandByPoint(point mgl32.Vec3) {
	b.Min = Vec3Min(b.Min, point)
	b.Max = Vec3Max(b.Max, point)
}

// ExpandByBox may expand this bounding box to include the specified box
func (b *Box3) ExpandByBox(box Box3) {
	if box.IsEmpty() {
		return
	}
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// Center returns the center of the bounding box.
func (b Box3) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
func (b Box3) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint returns if this bounding box contains the specified point.
func (b Box3) ContainsPoint(point mgl32.Vec3) bool {
	if point[0] < b.Min[0] || point[0] > b.Max[0] ||
		point[1] < b.Min[1] || point[1] > b.Max[1] ||
		point[2] < b.Min[2] || point[2] > b.Max[2] {
		return false
	}
	return true
}

// IntersectsBox returns if other box intersects this one.
func (b Box3) IntersectsBox(other Box3) bool {
	// using 6 splitting planes to rule out intersections.
	if other.Max[0] < b.Min[0] || other.Min[0] > b.Max[0] ||
		other.Max[1] < b.Min[1] || other.Min[1] > b.Max[1] ||
		other.Max[2] < b.Min[2] || other.Min[2] > b.Max[2] {
		return false
	}
	return true
}

// ClampPoint returns a new point which is the specified point clamped inside this box.
func (b Box3) ClampPoint(point mgl32.Vec3) mgl32.Vec3 {
	return Vec3Clamp(point, b.Min, b.Max)
}

// DistanceToPoint returns the distance from this box to the specified point.
// It is zero for points inside the box.
func (b Box3) DistanceToPoint(point mgl32.Vec3) float32 {
	if b.IsEmpty() {
		return Infinity
	}
	clamp := b.ClampPoint(point)
	return clamp.Sub(point).Len()
}

// Union returns the union with other box.
func (b Box3) Union(other Box3) Box3 {
	other.Min = Vec3Min(other.Min, b.Min)
	other.Max = Vec3Max(other.Max, b.Max)
	return other
}

// MulMatrix4 multiplies the specified matrix to the vertices of this bounding box
// and computes the resulting spanning Box3 of the transformed points
func (b Box3) MulMatrix4(m *mgl32.Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	xax := m[0] * b.Min[0]
	xay := m[1] * b.Min[0]
	xaz := m[2] * b.Min[0]
	xbx := m[0] * b.Max[0]
	xby := m[1] * b.Max[0]
	xbz := m[2] * b.Max[0]
	yax := m[4] * b.Min[1]
	yay := m[5] * b.Min[1]
	yaz := m[6] * b.Min[1]
	ybx := m[4] * b.Max[1]
	yby := m[5] * b.Max[1]
	ybz := m[6] * b.Max[1]
	zax := m[8] * b.Min[2]
	zay := m[9] * b.Min[2]
	zaz := m[10] * b.Min[2]
	zbx := m[8] * b.Max[2]
	zby := m[9] * b.Max[2]
	zbz := m[10] * b.Max[2]

	nb := Box3{}
	nb.Min[0] = Min(xax, xbx) + Min(yax, ybx) + Min(zax, zbx) + m[12]
	nb.Min[1] = Min(xay, xby) + Min(yay, yby) + Min(zay, zby) + m[13]
	nb.Min[2] = Min(xaz, xbz) + Min(yaz, ybz) + Min(zaz, zbz) + m[14]
	nb.Max[0] = Max(xax, xbx) + Max(yax, ybx) + Max(zax, zbx) + m[12]
	nb.Max[1] = Max(xay, xby) + Max(yay, yby) + Max(zay, zby) + m[13]
	nb.Max[2] = Max(xaz, xbz) + Max(yaz, ybz) + Max(zaz, zbz) + m[14]
	return nb
}

// Translate returns translated position of this box by offset.
func (b Box3) Translate(offset mgl32.Vec3) Box3 {
	return Box3{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}
