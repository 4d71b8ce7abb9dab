// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render turns the scenes of package xyz into draw calls.
//
// A [Layer] keeps a batch plan of a scene, grouping draws by shader
// and then by geometry so that program and vertex buffer binds are
// shared, and rebuilds it only when the scene version advances.
// The [Engine] renders the layers of a scene through a [Device],
// which is the only part that talks to a graphics API.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/xyz"
)

// Viewport is the pixel rectangle rendered into.
type Viewport struct {
	X, Y, Width, Height int
}

// Aspect returns the width over height ratio, 1 for an empty viewport.
func (vp Viewport) Aspect() float32 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// DrawState is the fixed function state of a draw.
type DrawState struct {
	DepthTest  bool
	DepthWrite bool
	Blend      bool
	CullBack   bool
}

// Resource is a GPU side resource owned by a [ResourceCache].
type Resource interface {

	// Release frees the GPU memory of the resource.
	Release()
}

// Program is a compiled shader program.
type Program interface {
	Resource
}

// TextureHandle is an uploaded texture.
type TextureHandle interface {
	Resource
}

// VertexHandler holds the vertex and index buffers of a geometry.
type VertexHandler interface {
	Resource

	// NeedUpdate returns whether the geometry data changed since the
	// last upload.
	NeedUpdate() bool

	// Update uploads the current geometry data.
	Update() error
}

// DrawParams are everything a device needs for one draw.
type DrawParams struct {
	Draw       *DrawContent
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	State      DrawState
	Textures   []TextureHandle
	Lights     *LightsContent
}

// Device is a graphics backend. All methods are called from the
// render thread.
type Device interface {

	// NewProgram compiles the shader.
	NewProgram(sh *xyz.Shader) (Program, error)

	// NewVertexHandler creates buffers for the geometry. The data is
	// uploaded by the first [VertexHandler.Update].
	NewVertexHandler(gm *xyz.Geometry) (VertexHandler, error)

	// NewTexture uploads the texture.
	NewTexture(tx *xyz.Texture) (TextureHandle, error)

	// ComputeIBL derives the image based lighting maps of the light.
	ComputeIBL(il *xyz.ImageLight) (Resource, error)

	// BeginFrame starts a frame, clearing the viewport to the color.
	BeginFrame(vp Viewport, clear mgl32.Vec4) error

	// Draw draws the geometry of vh with the program.
	Draw(prog Program, vh VertexHandler, params *DrawParams) error

	// EndFrame finishes the frame, waiting for the GPU if flush is set.
	EndFrame(flush bool) error
}
