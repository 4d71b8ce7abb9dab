// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"cogentcore.org/xr/math32"
)

// VertexSource is something that can be drawn: geometry plus the
// materials to draw it with. A [Mesh] is its own vertex source;
// other nodes can get one by attaching a component implementing it.
type VertexSource interface {

	// Geometry returns the vertex data. Sources returning the same
	// geometry share GPU vertex buffers.
	Geometry() *Geometry

	// Materials returns the materials, each drawn separately.
	Materials() []*Material

	// RenderPriority orders draws sharing a shader; lower draws first.
	RenderPriority() int
}

// Mesh is a node drawing a [Geometry] with one or more materials.
type Mesh struct {
	NodeBase

	// Priority is the [VertexSource.RenderPriority].
	Priority int

	geometry  *Geometry
	materials []*Material
}

// NewMesh returns a new mesh with the given geometry and materials.
func NewMesh(name string, geom *Geometry, mats ...*Material) *Mesh {
	ms := &Mesh{}
	ms.InitNode(ms)
	ms.Name = name
	ms.source = ms
	if geom != nil {
		ms.geometry = geom
		geom.addHost(ms)
	}
	for _, mt := range mats {
		ms.materials = append(ms.materials, mt)
		mt.addHost(ms)
	}
	return ms
}

func (ms *Mesh) Geometry() *Geometry {
	return ms.geometry
}

func (ms *Mesh) Materials() []*Material {
	return ms.materials
}

func (ms *Mesh) RenderPriority() int {
	return ms.Priority
}

// Material returns the first material, or nil.
func (ms *Mesh) Material() *Material {
	if len(ms.materials) == 0 {
		return nil
	}
	return ms.materials[0]
}

// SetGeometry replaces the geometry.
func (ms *Mesh) SetGeometry(geom *Geometry) {
	if ms.geometry == geom {
		return
	}
	if ms.geometry != nil {
		ms.geometry.removeHost(ms)
	}
	ms.geometry = geom
	if geom != nil {
		geom.addHost(ms)
	}
	ms.NotifyChanged(ObjectChange{Type: ChangeRender | ChangeGeometry, Target: geom})
}

// AddMaterial appends a material.
func (ms *Mesh) AddMaterial(mt *Material) {
	ms.materials = append(ms.materials, mt)
	mt.addHost(ms)
	ms.NotifyChanged(ObjectChange{Type: ChangeRender, Target: mt})
}

// RemoveMaterial removes a material, returning whether it was used.
func (ms *Mesh) RemoveMaterial(mt *Material) bool {
	i := slices.Index(ms.materials, mt)
	if i < 0 {
		return false
	}
	ms.materials = slices.Delete(ms.materials, i, i+1)
	if !slices.Contains(ms.materials, mt) {
		mt.removeHost(ms)
	}
	ms.NotifyChanged(ObjectChange{Type: ChangeRender, Target: mt})
	return true
}

// SetMaterial replaces all materials with the given one.
func (ms *Mesh) SetMaterial(mt *Material) {
	for _, old := range ms.materials {
		old.removeHost(ms)
	}
	ms.materials = []*Material{mt}
	mt.addHost(ms)
	ms.NotifyChanged(ObjectChange{Type: ChangeRender, Target: mt})
}

// LocalBounds returns the bounds of the geometry.
func (ms *Mesh) LocalBounds() math32.Box3 {
	if ms.geometry == nil {
		return math32.B3Empty()
	}
	return ms.geometry.Bounds()
}

// Dispose detaches the mesh from its geometry and materials.
func (ms *Mesh) Dispose() {
	if ms.disposed {
		return
	}
	if ms.geometry != nil {
		ms.geometry.removeHost(ms)
	}
	for _, mt := range ms.materials {
		mt.removeHost(ms)
	}
	ms.NodeBase.Dispose()
}

var _ VertexSource = &Mesh{}
