// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"slices"

	"cogentcore.org/xr/xyz"
)

// DrawContent is one draw of a node with one of its materials.
type DrawContent struct {

	// Node is the drawn node.
	Node xyz.Node

	// Source provides the geometry and materials of the node.
	Source xyz.VertexSource

	// Material is the material of this draw.
	Material *xyz.Material

	// DrawID is the index of the draw within its [VertexContent].
	DrawID int

	// Hidden is set by [Layer.Prepare] when the material is disabled,
	// the node is invisible, or the node is outside the view frustum.
	Hidden bool

	// Distance is the distance of the node to the camera, set by
	// [Layer.Prepare] for visible draws.
	Distance float32
}

// VertexContent holds the draws sharing one geometry within a shader.
type VertexContent struct {

	// Geometry is the shared geometry.
	Geometry *xyz.Geometry

	// ActiveComponents are the vertex components of the geometry layout.
	ActiveComponents xyz.VertexComponents

	// Draws are in insertion order.
	Draws []*DrawContent

	// Hidden is set when every draw is hidden.
	Hidden bool

	// Distance is the average camera distance of the visible draws.
	Distance float32

	handler VertexHandler
}

// Handler returns the vertex handler, nil until first prepared.
func (vc *VertexContent) Handler() VertexHandler {
	return vc.handler
}

// Priority returns the lowest render priority of the draws.
func (vc *VertexContent) Priority() int {
	pri := 0
	for i, dc := range vc.Draws {
		if p := dc.Source.RenderPriority(); i == 0 || p < pri {
			pri = p
		}
	}
	return pri
}

func (vc *VertexContent) add(dc *DrawContent) {
	dc.DrawID = len(vc.Draws)
	vc.Draws = append(vc.Draws, dc)
}

// removeNode removes the draws of n, renumbering the rest.
func (vc *VertexContent) removeNode(n xyz.Node) bool {
	ln := len(vc.Draws)
	vc.Draws = slices.DeleteFunc(vc.Draws, func(dc *DrawContent) bool { return dc.Node == n })
	if len(vc.Draws) == ln {
		return false
	}
	for i, dc := range vc.Draws {
		dc.DrawID = i
	}
	return true
}

// ShaderContent holds the vertex buckets drawn with one shader.
type ShaderContent struct {

	// Shader is the shared shader.
	Shader *xyz.Shader

	// Vertices are the buckets in insertion order.
	Vertices []*VertexContent

	index   map[xyz.ObjectID]*VertexContent
	program Program
}

// Program returns the program, nil until first prepared.
func (sc *ShaderContent) Program() Program {
	return sc.program
}

// Vertex returns the bucket of the geometry, or nil.
func (sc *ShaderContent) Vertex(gm *xyz.Geometry) *VertexContent {
	return sc.index[gm.ID()]
}

// NumDraws returns the number of draws in all buckets.
func (sc *ShaderContent) NumDraws() int {
	n := 0
	for _, vc := range sc.Vertices {
		n += len(vc.Draws)
	}
	return n
}

func (sc *ShaderContent) vertex(gm *xyz.Geometry) *VertexContent {
	if vc := sc.index[gm.ID()]; vc != nil {
		return vc
	}
	vc := &VertexContent{Geometry: gm}
	sc.index[gm.ID()] = vc
	sc.Vertices = append(sc.Vertices, vc)
	return vc
}

func (sc *ShaderContent) removeNode(n xyz.Node) bool {
	removed := false
	for _, vc := range sc.Vertices {
		if vc.removeNode(n) {
			removed = true
		}
	}
	if !removed {
		return false
	}
	sc.Vertices = slices.DeleteFunc(sc.Vertices, func(vc *VertexContent) bool {
		if len(vc.Draws) > 0 {
			return false
		}
		delete(sc.index, vc.Geometry.ID())
		return true
	})
	return true
}

// LightsContent holds the visible lights of a frame.
type LightsContent struct {
	Ambient []*xyz.AmbientLight
	Dir     []*xyz.DirLight
	Point   []*xyz.PointLight
	Spot    []*xyz.SpotLight

	// Image is the image light used for image based lighting, if any.
	Image *xyz.ImageLight

	// IBL is the image based lighting resource computed for Image.
	IBL Resource

	// ImageLightVersion is the panorama version IBL was computed for.
	ImageLightVersion int64

	// IBLComputes counts image based lighting computations.
	IBLComputes int64
}

// Len returns the number of collected lights.
func (lc *LightsContent) Len() int {
	n := len(lc.Ambient) + len(lc.Dir) + len(lc.Point) + len(lc.Spot)
	if lc.Image != nil {
		n++
	}
	return n
}

func (lc *LightsContent) reset() {
	lc.Ambient = lc.Ambient[:0]
	lc.Dir = lc.Dir[:0]
	lc.Point = lc.Point[:0]
	lc.Spot = lc.Spot[:0]
}

func (lc *LightsContent) releaseIBL() {
	if lc.IBL != nil {
		lc.IBL.Release()
		lc.IBL = nil
	}
	lc.Image = nil
	lc.ImageLightVersion = 0
}

// Content is the batch plan of a [Layer]: draws grouped by shader,
// then by geometry.
type Content struct {

	// Shaders are in order of shader priority, then insertion.
	Shaders []*ShaderContent

	// Lights are collected when the layer has lights.
	Lights LightsContent

	index map[xyz.ObjectID]*ShaderContent
}

// Shader returns the content of the shader, or nil.
func (ct *Content) Shader(sh *xyz.Shader) *ShaderContent {
	return ct.index[sh.ID()]
}

// NumDraws returns the number of draws.
func (ct *Content) NumDraws() int {
	n := 0
	for _, sc := range ct.Shaders {
		n += sc.NumDraws()
	}
	return n
}

// NumBuckets returns the number of vertex buckets.
func (ct *Content) NumBuckets() int {
	n := 0
	for _, sc := range ct.Shaders {
		n += len(sc.Vertices)
	}
	return n
}

func (ct *Content) clear() {
	ct.Shaders = nil
	ct.index = map[xyz.ObjectID]*ShaderContent{}
}

func (ct *Content) shader(sh *xyz.Shader) *ShaderContent {
	if sc := ct.index[sh.ID()]; sc != nil {
		return sc
	}
	sc := &ShaderContent{Shader: sh, index: map[xyz.ObjectID]*VertexContent{}}
	ct.index[sh.ID()] = sc
	ct.Shaders = append(ct.Shaders, sc)
	return sc
}

// add adds a draw of n with the material.
func (ct *Content) add(n xyz.Node, vs xyz.VertexSource, mt *xyz.Material) {
	gm := vs.Geometry()
	vc := ct.shader(mt.Shader).vertex(gm)
	vc.ActiveComponents |= gm.Layout().Components()
	vc.add(&DrawContent{Node: n, Source: vs, Material: mt})
}

// removeNode removes every draw of n, dropping empty buckets and shaders.
func (ct *Content) removeNode(n xyz.Node) bool {
	removed := false
	for _, sc := range ct.Shaders {
		if sc.removeNode(n) {
			removed = true
		}
	}
	if !removed {
		return false
	}
	ct.Shaders = slices.DeleteFunc(ct.Shaders, func(sc *ShaderContent) bool {
		if len(sc.Vertices) > 0 {
			return false
		}
		delete(ct.index, sc.Shader.ID())
		return true
	})
	return true
}

// sort orders shaders by priority and the buckets of each shader by
// render priority, keeping insertion order for ties.
func (ct *Content) sort() {
	slices.SortStableFunc(ct.Shaders, func(a, b *ShaderContent) int {
		return a.Shader.Priority - b.Shader.Priority
	})
	for _, sc := range ct.Shaders {
		slices.SortStableFunc(sc.Vertices, func(a, b *VertexContent) int {
			return a.Priority() - b.Priority()
		})
	}
}
