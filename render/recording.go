// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/xyz"
)

// DrawRecord is one draw seen by a [RecordingDevice].
type DrawRecord struct {
	Shader   *xyz.Shader
	Geometry *xyz.Geometry
	Node     xyz.Node
	Material *xyz.Material
	DrawID   int
	State    DrawState
	Textures int
}

// RecordingDevice is a [Device] that records what it is asked to do
// without drawing anything. It is used for headless runs and tests.
type RecordingDevice struct {

	// Programs is the number of programs created.
	Programs int

	// VertexHandlers is the number of vertex handlers created.
	VertexHandlers int

	// Uploads is the number of vertex data uploads.
	Uploads int

	// Textures is the number of textures created.
	Textures int

	// IBLComputes is the number of image based lighting computations.
	IBLComputes int

	// Released is the number of released resources.
	Released int

	// Frames is the number of finished frames.
	Frames int

	// Draws are the draws of the current or last frame.
	Draws []DrawRecord

	// Viewport and Clear are from the last BeginFrame.
	Viewport Viewport
	Clear    mgl32.Vec4

	// FailShader makes NewProgram fail for shaders with this name.
	FailShader string

	inFrame bool
}

// NewRecordingDevice returns a new recording device.
func NewRecordingDevice() *RecordingDevice {
	return &RecordingDevice{}
}

type recordedResource struct {
	dev *RecordingDevice
}

func (rr *recordedResource) Release() {
	rr.dev.Released++
}

type recordedProgram struct {
	recordedResource
	shader *xyz.Shader
}

type recordedVertexHandler struct {
	recordedResource
	geometry *xyz.Geometry
	uploaded int64
}

func (vh *recordedVertexHandler) NeedUpdate() bool {
	return vh.uploaded != vh.geometry.DataVersion()
}

func (vh *recordedVertexHandler) Update() error {
	vh.uploaded = vh.geometry.DataVersion()
	vh.dev.Uploads++
	return nil
}

func (rd *RecordingDevice) NewProgram(sh *xyz.Shader) (Program, error) {
	if rd.FailShader != "" && sh.Name == rd.FailShader {
		return nil, errors.Errorf("compiling %q: syntax error", sh.Name)
	}
	rd.Programs++
	return &recordedProgram{recordedResource{rd}, sh}, nil
}

func (rd *RecordingDevice) NewVertexHandler(gm *xyz.Geometry) (VertexHandler, error) {
	rd.VertexHandlers++
	return &recordedVertexHandler{recordedResource: recordedResource{rd}, geometry: gm, uploaded: -1}, nil
}

func (rd *RecordingDevice) NewTexture(tx *xyz.Texture) (TextureHandle, error) {
	rd.Textures++
	return &recordedResource{rd}, nil
}

func (rd *RecordingDevice) ComputeIBL(il *xyz.ImageLight) (Resource, error) {
	rd.IBLComputes++
	return &recordedResource{rd}, nil
}

func (rd *RecordingDevice) BeginFrame(vp Viewport, clear mgl32.Vec4) error {
	if rd.inFrame {
		return errors.New("render: BeginFrame called twice")
	}
	rd.inFrame = true
	rd.Viewport = vp
	rd.Clear = clear
	rd.Draws = rd.Draws[:0]
	return nil
}

func (rd *RecordingDevice) Draw(prog Program, vh VertexHandler, params *DrawParams) error {
	rp, ok := prog.(*recordedProgram)
	if !ok {
		return errors.New("render: draw without a program")
	}
	rv, ok := vh.(*recordedVertexHandler)
	if !ok {
		return errors.New("render: draw without a vertex handler")
	}
	dc := params.Draw
	rd.Draws = append(rd.Draws, DrawRecord{
		Shader:   rp.shader,
		Geometry: rv.geometry,
		Node:     dc.Node,
		Material: dc.Material,
		DrawID:   dc.DrawID,
		State:    params.State,
		Textures: len(params.Textures),
	})
	return nil
}

func (rd *RecordingDevice) EndFrame(flush bool) error {
	rd.inFrame = false
	rd.Frames++
	return nil
}

var _ Device = &RecordingDevice{}
