// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"strings"

	"cogentcore.org/xr/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexComponents is a bit set of the per-vertex attributes in a layout.
type VertexComponents uint32

const (
	VertexPosition VertexComponents = 1 << iota
	VertexNormal
	VertexUV0
	VertexUV1
	VertexColor
	VertexTangent
	VertexJoints
	VertexWeights
)

var vertexComponentNames = []string{"Position", "Normal", "UV0", "UV1", "Color", "Tangent", "Joints", "Weights"}

func (vc VertexComponents) String() string {
	var names []string
	for i, nm := range vertexComponentNames {
		if vc&(1<<i) != 0 {
			names = append(names, nm)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// VertexAttribute is one attribute of an interleaved vertex.
type VertexAttribute struct {

	// Component is the single component this attribute holds.
	Component VertexComponents

	// Size is the number of float32 values.
	Size int
}

// VertexLayout is the ordered list of attributes of an interleaved vertex.
type VertexLayout struct {
	Attributes []VertexAttribute
}

// Standard layouts.
var (
	LayoutPosition          = VertexLayout{[]VertexAttribute{{VertexPosition, 3}}}
	LayoutPositionNormal    = VertexLayout{[]VertexAttribute{{VertexPosition, 3}, {VertexNormal, 3}}}
	LayoutPositionNormalUV0 = VertexLayout{[]VertexAttribute{{VertexPosition, 3}, {VertexNormal, 3}, {VertexUV0, 2}}}
)

// Stride returns the number of float32 values per vertex.
func (vl VertexLayout) Stride() int {
	n := 0
	for _, a := range vl.Attributes {
		n += a.Size
	}
	return n
}

// Components returns the set of components in the layout.
func (vl VertexLayout) Components() VertexComponents {
	var vc VertexComponents
	for _, a := range vl.Attributes {
		vc |= a.Component
	}
	return vc
}

// Offset returns the float offset of the component within a vertex,
// and false if the layout does not have it.
func (vl VertexLayout) Offset(c VertexComponents) (int, bool) {
	off := 0
	for _, a := range vl.Attributes {
		if a.Component == c {
			return off, true
		}
		off += a.Size
	}
	return 0, false
}

// Equal returns whether two layouts have the same attributes in order.
func (vl VertexLayout) Equal(o VertexLayout) bool {
	if len(vl.Attributes) != len(o.Attributes) {
		return false
	}
	for i, a := range vl.Attributes {
		if a != o.Attributes[i] {
			return false
		}
	}
	return true
}

// Primitives are the kinds of primitive drawn from vertex data.
type Primitives int32

const (
	Triangles Primitives = iota
	TriangleStrip
	Lines
	Points
)

// Geometry is interleaved vertex data with optional indices.
// A geometry is the identity that groups meshes into shared vertex
// buffers when rendering, so meshes with the same geometry share them.
type Geometry struct {
	ObjectBase `copier:"-"`
	hostList

	layout      VertexLayout
	vertices    []float32
	indices     []uint32
	primitive   Primitives
	bounds      math32.Box3
	boundsDirty bool
	dataVersion int64
}

// NewGeometry returns an empty geometry with the given layout.
func NewGeometry(name string, layout VertexLayout) *Geometry {
	gm := &Geometry{layout: layout, boundsDirty: true}
	gm.InitObject(gm)
	gm.Name = name
	return gm
}

func (gm *Geometry) Layout() VertexLayout  { return gm.layout }
func (gm *Geometry) Vertices() []float32   { return gm.vertices }
func (gm *Geometry) Indices() []uint32     { return gm.indices }
func (gm *Geometry) Primitive() Primitives { return gm.primitive }

// DataVersion is incremented every time the vertex or index data changes.
func (gm *Geometry) DataVersion() int64 {
	return gm.dataVersion
}

// VertexCount returns the number of vertices.
func (gm *Geometry) VertexCount() int {
	st := gm.layout.Stride()
	if st == 0 {
		return 0
	}
	return len(gm.vertices) / st
}

// IndexCount returns the number of indices.
func (gm *Geometry) IndexCount() int {
	return len(gm.indices)
}

// SetLayout changes the vertex layout. The GPU buffers for the geometry
// must be recreated, so this is a render change.
func (gm *Geometry) SetLayout(layout VertexLayout) {
	gm.layout = layout
	gm.boundsDirty = true
	gm.dataVersion++
	gm.NotifyChanged(Change(ChangeRender | ChangeGeometry))
}

// SetPrimitive sets the primitive type.
func (gm *Geometry) SetPrimitive(p Primitives) {
	gm.primitive = p
	gm.NotifyChanged(Change(ChangeRender | ChangeGeometry))
}

// SetData replaces the vertex and index data. The buffers are
// updated in place on the next render.
func (gm *Geometry) SetData(vertices []float32, indices []uint32) {
	gm.vertices = vertices
	gm.indices = indices
	gm.boundsDirty = true
	gm.dataVersion++
	gm.NotifyChanged(Change(ChangeGeometry))
}

// Bounds returns the bounding box of the vertex positions.
func (gm *Geometry) Bounds() math32.Box3 {
	if !gm.boundsDirty {
		return gm.bounds
	}
	gm.boundsDirty = false
	gm.bounds = math32.B3Empty()
	off, ok := gm.layout.Offset(VertexPosition)
	st := gm.layout.Stride()
	if !ok || st == 0 {
		return gm.bounds
	}
	for i := off; i+2 < len(gm.vertices); i += st {
		gm.bounds.ExpandByPoint(mgl32.Vec3{gm.vertices[i], gm.vertices[i+1], gm.vertices[i+2]})
	}
	return gm.bounds
}

// OnChanged forwards the change to the meshes using the geometry.
func (gm *Geometry) OnChanged(change ObjectChange) {
	gm.ObjectBase.OnChanged(change)
	gm.notifyHosts(gm, change)
}

// NewBox returns a box geometry centered at the origin with the given
// size, with positions and normals.
func NewBox(name string, size mgl32.Vec3) *Geometry {
	h := size.Mul(0.5)
	faces := []struct {
		n    mgl32.Vec3
		u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	mul := func(a, b mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }
	verts := make([]float32, 0, 6*4*6)
	idxs := make([]uint32, 0, 6*6)
	for fi, f := range faces {
		c := mul(f.n, h)
		u := mul(f.u, h)
		v := mul(f.v, h)
		corners := [4]mgl32.Vec3{c.Sub(u).Sub(v), c.Add(u).Sub(v), c.Add(u).Add(v), c.Sub(u).Add(v)}
		for _, p := range corners {
			verts = append(verts, p[0], p[1], p[2], f.n[0], f.n[1], f.n[2])
		}
		b := uint32(fi * 4)
		idxs = append(idxs, b, b+1, b+2, b, b+2, b+3)
	}
	gm := NewGeometry(name, LayoutPositionNormal)
	gm.vertices = verts
	gm.indices = idxs
	return gm
}
