// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rlgl provides a [render.Device] drawing with raylib.
// The raylib window must be open before the device is used, and all
// calls must happen on the thread that opened it.
package rlgl

import (
	"image/color"
	"log/slog"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/render"
	"cogentcore.org/xr/xyz"
)

// Device is a raylib [render.Device].
type Device struct {

	// Frames is the number of finished frames.
	Frames int64

	material   rl.Material
	defaultTex rl.Texture2D
	scissor    bool
}

// NewDevice returns a new device. The raylib window must be open.
func NewDevice() *Device {
	dv := &Device{material: rl.LoadMaterialDefault()}
	dv.defaultTex = dv.material.Maps.Texture
	return dv
}

// ToMatrix converts a matrix to raylib, which uses the same
// column-major layout under named fields.
func ToMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// ToColor converts a color with components in 0..1 to 8 bit RGBA.
func ToColor(c mgl32.Vec4) color.RGBA {
	cv := func(f float32) uint8 {
		return uint8(min(max(f, 0), 1)*255 + 0.5)
	}
	return rl.NewColor(cv(c[0]), cv(c[1]), cv(c[2]), cv(c[3]))
}

type program struct {
	shader rl.Shader
	locs   map[string]int32
}

func (pr *program) Release() {
	rl.UnloadShader(pr.shader)
}

// loc returns the location of the uniform, -1 when the shader lacks it.
func (pr *program) loc(name string) int32 {
	if l, ok := pr.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(pr.shader, name)
	pr.locs[name] = l
	return l
}

func (pr *program) setVec3(name string, v mgl32.Vec3) {
	if l := pr.loc(name); l >= 0 {
		rl.SetShaderValue(pr.shader, l, v[:], rl.ShaderUniformVec3)
	}
}

func (pr *program) setVec4(name string, v mgl32.Vec4) {
	if l := pr.loc(name); l >= 0 {
		rl.SetShaderValue(pr.shader, l, v[:], rl.ShaderUniformVec4)
	}
}

func (pr *program) setFloat(name string, v float32) {
	if l := pr.loc(name); l >= 0 {
		rl.SetShaderValue(pr.shader, l, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (dv *Device) NewProgram(sh *xyz.Shader) (render.Program, error) {
	s := rl.LoadShaderFromMemory(sh.Vertex, sh.Fragment)
	if s.ID == 0 || s.Locs == nil {
		return nil, errors.Errorf("rlgl: shader %q failed to compile", sh.Name)
	}
	slog.Debug("rlgl: loaded shader", "shader", sh.Name, "id", s.ID)
	return &program{shader: s, locs: map[string]int32{}}, nil
}

type vertexHandler struct {
	geometry *xyz.Geometry
	mesh     rl.Mesh
	arrays   *render.VertexArrays
	uploaded int64
	loaded   bool
}

func (dv *Device) NewVertexHandler(gm *xyz.Geometry) (render.VertexHandler, error) {
	return &vertexHandler{geometry: gm, uploaded: -1}, nil
}

func (vh *vertexHandler) NeedUpdate() bool {
	return vh.uploaded != vh.geometry.DataVersion()
}

// Update uploads the geometry. The mesh arrays stay owned by Go and
// are pinned only for the duration of the upload.
func (vh *vertexHandler) Update() error {
	va, err := render.SplitVertices(vh.geometry)
	if err != nil {
		return err
	}
	vh.Release()
	vh.arrays = va
	n := len(va.Positions) / 3
	if n == 0 {
		vh.uploaded = vh.geometry.DataVersion()
		return nil
	}
	var pin runtime.Pinner
	defer pin.Unpin()
	m := rl.Mesh{VertexCount: int32(n)}
	m.Vertices = &va.Positions[0]
	pin.Pin(m.Vertices)
	if len(va.Normals) > 0 {
		m.Normals = &va.Normals[0]
		pin.Pin(m.Normals)
	}
	if len(va.UV0) > 0 {
		m.Texcoords = &va.UV0[0]
		pin.Pin(m.Texcoords)
	}
	if len(va.Colors) > 0 {
		m.Colors = &va.Colors[0]
		pin.Pin(m.Colors)
	}
	if len(va.Indices) > 0 {
		m.Indices = &va.Indices[0]
		pin.Pin(m.Indices)
		m.TriangleCount = int32(len(va.Indices) / 3)
	} else {
		m.TriangleCount = int32(n / 3)
	}
	rl.UploadMesh(&m, false)
	vh.mesh = m
	vh.loaded = true
	vh.uploaded = vh.geometry.DataVersion()
	return nil
}

// Release frees the GPU buffers. The CPU arrays belong to Go, so they
// are detached before raylib frees the mesh.
func (vh *vertexHandler) Release() {
	if !vh.loaded {
		return
	}
	vh.mesh.Vertices = nil
	vh.mesh.Normals = nil
	vh.mesh.Texcoords = nil
	vh.mesh.Colors = nil
	vh.mesh.Indices = nil
	rl.UnloadMesh(&vh.mesh)
	vh.loaded = false
}

type texture struct {
	tex rl.Texture2D
}

func (tx *texture) Release() {
	rl.UnloadTexture(tx.tex)
}

func pixelFormat(f xyz.TextureFormats) rl.PixelFormat {
	switch f {
	case xyz.TextureRGB8:
		return rl.UncompressedR8g8b8
	case xyz.TextureRGBA32F:
		return rl.UncompressedR32g32b32a32
	default:
		return rl.UncompressedR8g8b8a8
	}
}

func (dv *Device) NewTexture(tx *xyz.Texture) (render.TextureHandle, error) {
	if len(tx.Data()) < tx.Width*tx.Height*tx.Format.BytesPerPixel() {
		return nil, errors.Errorf("rlgl: texture %q has too little data for %dx%d", tx.Name, tx.Width, tx.Height)
	}
	img := rl.NewImage(tx.Data(), int32(tx.Width), int32(tx.Height), 1, pixelFormat(tx.Format))
	t := rl.LoadTextureFromImage(img)
	if tx.MipMaps {
		rl.GenTextureMipmaps(&t)
	}
	return &texture{tex: t}, nil
}

// ibl is the image based lighting of a panorama, reduced to the
// average radiance used as ambient light.
type ibl struct {
	irradiance mgl32.Vec3
}

func (ib *ibl) Release() {}

func (dv *Device) ComputeIBL(il *xyz.ImageLight) (render.Resource, error) {
	tx := il.Panorama()
	if tx == nil {
		return nil, errors.New("rlgl: image light without panorama")
	}
	irr, err := render.AverageColor(tx)
	if err != nil {
		return nil, err
	}
	return &ibl{irradiance: irr.Mul(il.Lumens)}, nil
}

func (dv *Device) BeginFrame(vp render.Viewport, clear mgl32.Vec4) error {
	rl.BeginDrawing()
	dv.scissor = vp.X != 0 || vp.Y != 0
	if dv.scissor {
		rl.BeginScissorMode(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	}
	rl.ClearBackground(ToColor(clear))
	return nil
}

func (dv *Device) setState(st render.DrawState) {
	if st.DepthTest {
		rl.EnableDepthTest()
	} else {
		rl.DisableDepthTest()
	}
	if st.DepthWrite {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
	if st.CullBack {
		rl.EnableBackfaceCulling()
	} else {
		rl.DisableBackfaceCulling()
	}
}

func (dv *Device) setLights(pr *program, lc *render.LightsContent) {
	var amb mgl32.Vec3
	for _, al := range lc.Ambient {
		amb = amb.Add(al.Radiance())
	}
	if ib, ok := lc.IBL.(*ibl); ok {
		amb = amb.Add(ib.irradiance)
	}
	pr.setVec4("ambient", amb.Vec4(1))
	if len(lc.Dir) > 0 {
		dl := lc.Dir[0]
		pr.setVec3("lightDir", dl.Direction())
		pr.setVec3("lightColor", dl.Radiance())
	}
}

func (dv *Device) Draw(prog render.Program, vh render.VertexHandler, p *render.DrawParams) error {
	pr, ok := prog.(*program)
	if !ok {
		return errors.New("rlgl: program from another device")
	}
	vx, ok := vh.(*vertexHandler)
	if !ok {
		return errors.New("rlgl: vertex handler from another device")
	}
	if !vx.loaded {
		return nil
	}
	mt := p.Draw.Material
	dv.setState(p.State)
	if p.State.Blend {
		rl.BeginBlendMode(rl.BlendAlpha)
		defer rl.EndBlendMode()
	}
	rl.SetMatrixProjection(ToMatrix(p.Projection))
	rl.SetMatrixModelview(ToMatrix(p.View))
	pr.setVec3("viewPos", p.CameraPos)
	pr.setFloat("shiny", mt.Shiny)
	pr.setVec4("emissive", mt.Emissive)
	if p.Lights != nil {
		dv.setLights(pr, p.Lights)
	}
	dv.material.Shader = pr.shader
	dv.material.Maps.Color = ToColor(mt.Color)
	diffuse := dv.defaultTex
	if len(p.Textures) > 0 {
		if tx, ok := p.Textures[0].(*texture); ok {
			diffuse = tx.tex
		}
	}
	rl.SetMaterialTexture(&dv.material, rl.MapDiffuse, diffuse)
	rl.DrawMesh(vx.mesh, dv.material, ToMatrix(p.Model))
	return nil
}

func (dv *Device) EndFrame(flush bool) error {
	if dv.scissor {
		rl.EndScissorMode()
	}
	rl.EndDrawing()
	dv.Frames++
	return nil
}

var _ render.Device = &Device{}
