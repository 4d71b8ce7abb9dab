// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"cogentcore.org/xr/base/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Shader is the source of a GPU program. Materials sharing a shader
// are drawn with the same compiled program.
type Shader struct {
	ObjectBase `copier:"-"`

	// Vertex is the vertex stage source.
	Vertex string

	// Fragment is the fragment stage source.
	Fragment string

	// Priority orders shaders within a render layer; lower draws first.
	Priority int
}

// NewShader returns a new shader with the given sources.
func NewShader(name, vertex, fragment string) *Shader {
	sh := &Shader{Vertex: vertex, Fragment: fragment}
	sh.InitObject(sh)
	sh.Name = name
	return sh
}

// SetSource replaces the sources, which forces the program to be rebuilt.
func (sh *Shader) SetSource(vertex, fragment string) {
	sh.Vertex = vertex
	sh.Fragment = fragment
	sh.NotifyChanged(Change(ChangeRender))
}

// AlphaModes are the ways a material handles transparency.
type AlphaModes int32

const (
	// AlphaOpaque ignores alpha.
	AlphaOpaque AlphaModes = iota

	// AlphaMask discards fragments below the alpha cutoff.
	AlphaMask

	// AlphaBlend blends with what is behind, which requires the material
	// to be drawn back to front after all opaque materials.
	AlphaBlend
)

func (am AlphaModes) String() string {
	switch am {
	case AlphaMask:
		return "Mask"
	case AlphaBlend:
		return "Blend"
	}
	return "Opaque"
}

// Tiling are the texture tiling parameters.
type Tiling struct {

	// Repeat is how often to repeat the texture in each direction.
	Repeat mgl32.Vec2

	// Offset is where to start the texture in each direction.
	Offset mgl32.Vec2
}

// Material describes the surface properties used to draw a mesh
// with a given shader. Fields may be set directly before the material
// is in use; afterwards use the setters, or call [Material.Changed].
type Material struct {
	ObjectBase `copier:"-"`
	hostList

	// Shader is the program that draws the material.
	Shader *Shader

	// Color is the main color; its alpha is the opacity.
	Color mgl32.Vec4

	// Emissive is the color emitted independent of lighting.
	Emissive mgl32.Vec4

	// Shiny is the specular exponent.
	Shiny float32

	// Reflective is the specular reflectiveness factor.
	Reflective float32

	// Alpha is the transparency mode.
	Alpha AlphaModes

	// AlphaCutoff is the threshold for [AlphaMask].
	AlphaCutoff float32

	// DoubleSided disables back face culling.
	DoubleSided bool

	// UseDepth enables the depth test.
	UseDepth bool

	// WriteDepth enables depth writes.
	WriteDepth bool

	// Tiling is the texture tiling.
	Tiling Tiling

	// Textures are the textures bound to consecutive texture slots.
	Textures []*Texture

	disabled bool
}

// NewMaterial returns a new enabled opaque material using the given shader.
func NewMaterial(name string, shader *Shader) *Material {
	mt := &Material{Shader: shader}
	mt.InitObject(mt)
	mt.Name = name
	mt.Defaults()
	return mt
}

// Defaults sets default surface parameters.
func (mt *Material) Defaults() {
	mt.Color = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	mt.Shiny = 30
	mt.Reflective = 1
	mt.AlphaCutoff = 0.5
	mt.UseDepth = true
	mt.WriteDepth = true
	mt.Tiling.Repeat = mgl32.Vec2{1, 1}
}

// IsEnabled returns whether the material is drawn at all.
func (mt *Material) IsEnabled() bool {
	return !mt.disabled
}

// SetEnabled enables or disables drawing with the material.
func (mt *Material) SetEnabled(enabled bool) {
	if enabled == !mt.disabled {
		return
	}
	mt.disabled = !enabled
	mt.NotifyChanged(Change(ChangeMaterialEnabled))
}

// IsTransparent returns whether the material must be blended.
func (mt *Material) IsTransparent() bool {
	return mt.Alpha == AlphaBlend
}

// Changed reports that fields were modified directly.
func (mt *Material) Changed() {
	mt.NotifyChanged(Change(ChangeRender))
}

// SetColor sets the main color.
func (mt *Material) SetColor(c mgl32.Vec4) *Material {
	mt.Color = c
	mt.Changed()
	return mt
}

// SetAlpha sets the transparency mode.
func (mt *Material) SetAlpha(am AlphaModes) *Material {
	mt.Alpha = am
	mt.Changed()
	return mt
}

// SetShader sets the shader.
func (mt *Material) SetShader(sh *Shader) *Material {
	mt.Shader = sh
	mt.Changed()
	return mt
}

// SetTexture sets the texture of the given slot, growing the
// slot list as needed.
func (mt *Material) SetTexture(slot int, tx *Texture) *Material {
	for len(mt.Textures) <= slot {
		mt.Textures = append(mt.Textures, nil)
	}
	if old := mt.Textures[slot]; old != nil && !slices.Contains(mt.Textures[:slot], old) && !slices.Contains(mt.Textures[slot+1:], old) {
		old.removeHost(mt)
	}
	mt.Textures[slot] = tx
	if tx != nil {
		tx.addHost(mt)
	}
	mt.Changed()
	return mt
}

// Clone returns a copy of the material with a new identity,
// sharing the shader and textures.
func (mt *Material) Clone() *Material {
	nm := &Material{}
	nm.InitObject(nm)
	errors.Log(copier.Copy(nm, mt))
	nm.hostList = hostList{}
	nm.Name = mt.Name
	nm.disabled = mt.disabled
	nm.Textures = slices.Clone(mt.Textures)
	for _, tx := range nm.Textures {
		if tx != nil {
			tx.addHost(nm)
		}
	}
	return nm
}

// OnChanged forwards the change to the meshes using the material.
func (mt *Material) OnChanged(change ObjectChange) {
	mt.ObjectBase.OnChanged(change)
	mt.notifyHosts(mt, change)
}
