// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Light is a node that illuminates the scene. Lights are collected
// in the [LayerLights] layer of their scene.
type Light interface {
	Node

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
// Any render change on a light increments its version, so content
// derived from a light is rebuilt when the light changes.
type LightBase struct {
	NodeBase

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness of the light in normalized 0-1 units.
	// It is multiplied by the color.
	Lumens float32

	// Color is the color of the light at full intensity.
	Color mgl32.Vec3

	// CastShadows enables shadow casting for lights that support it.
	CastShadows bool
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

func (lb *LightBase) IsLight() bool {
	return true
}

// Radiance returns the color multiplied by the lumens,
// or black when the light is off.
func (lb *LightBase) Radiance() mgl32.Vec3 {
	if !lb.On {
		return mgl32.Vec3{}
	}
	return lb.Color.Mul(lb.Lumens)
}

// Changed reports that fields were modified directly.
func (lb *LightBase) Changed() {
	lb.NotifyChanged(Change(ChangeRender))
}

func (lb *LightBase) init(this Light, name string, lumens float32, color LightColors) {
	lb.InitNode(this)
	lb.Name = name
	lb.On = true
	lb.Lumens = lumens
	lb.Color = LightColorMap[color]
}

// AmbientLight provides diffuse uniform lighting;
// typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight returns an ambient light with the given standard color and lumens.
func NewAmbientLight(name string, lumens float32, color LightColors) *AmbientLight {
	lt := &AmbientLight{}
	lt.init(lt, name, lumens, color)
	return lt
}

// DirLight is a directional light with no attenuation, like the Sun.
// It shines along the -Z axis of its world transform.
type DirLight struct {
	LightBase
}

// NewDirLight returns a directional light pointing down and
// away from the default camera position.
func NewDirLight(name string, lumens float32, color LightColors) *DirLight {
	lt := &DirLight{}
	lt.init(lt, name, lumens, color)
	lt.transform.SetPos(0, 1, 1)
	lt.transform.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return lt
}

// Direction returns the world direction the light shines in.
func (dl *DirLight) Direction() mgl32.Vec3 {
	wm := dl.WorldMatrix()
	return mgl32.TransformNormal(mgl32.Vec3{0, 0, -1}, wm).Normalize()
}

// PointLight is an omnidirectional light at the node position,
// whose intensity decays with linear and quadratic distance factors.
type PointLight struct {
	LightBase

	// LinDecay is the linear distance decay factor.
	LinDecay float32

	// QuadDecay is the quadratic distance decay factor,
	// which dominates at longer distances.
	QuadDecay float32
}

// NewPointLight returns a point light at 0,5,5.
func NewPointLight(name string, lumens float32, color LightColors) *PointLight {
	lt := &PointLight{LinDecay: .1, QuadDecay: .01}
	lt.init(lt, name, lumens, color)
	lt.transform.SetPos(0, 5, 5)
	return lt
}

// SpotLight is a point light shining along the -Z axis of its
// world transform within a cone.
type SpotLight struct {
	PointLight

	// AngDecay is the angular decay factor.
	AngDecay float32

	// CutoffAngle is the cone half angle in degrees.
	CutoffAngle float32
}

// NewSpotLight returns a spot light at 0,2,5 pointing at the origin.
func NewSpotLight(name string, lumens float32, color LightColors) *SpotLight {
	lt := &SpotLight{AngDecay: 15, CutoffAngle: 45}
	lt.LinDecay = .01
	lt.QuadDecay = .001
	lt.init(lt, name, lumens, color)
	lt.transform.SetPos(0, 2, 5)
	lt.transform.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return lt
}

// Direction returns the world direction the light shines in.
func (sl *SpotLight) Direction() mgl32.Vec3 {
	wm := sl.WorldMatrix()
	return mgl32.TransformNormal(mgl32.Vec3{0, 0, -1}, wm).Normalize()
}

// ImageLight is image based lighting from an equirectangular panorama.
// Renderers derive irradiance and reflection maps from the panorama,
// which is expensive, so they recompute only when the panorama
// version changes.
type ImageLight struct {
	LightBase

	// Rotation is the rotation of the panorama around the Y axis in degrees.
	Rotation float32

	panorama *Texture
}

// NewImageLight returns an image light for the given panorama.
func NewImageLight(name string, lumens float32, panorama *Texture) *ImageLight {
	lt := &ImageLight{}
	lt.init(lt, name, lumens, DirectSun)
	lt.SetPanorama(panorama)
	return lt
}

// Panorama returns the panorama texture.
func (il *ImageLight) Panorama() *Texture {
	return il.panorama
}

// SetPanorama sets the panorama texture.
func (il *ImageLight) SetPanorama(tx *Texture) {
	if il.panorama == tx {
		return
	}
	if il.panorama != nil {
		il.panorama.removeHost(il)
	}
	il.panorama = tx
	if tx != nil {
		tx.addHost(il)
	}
	il.Changed()
}

// PanoramaVersion returns the version of the panorama texture,
// or -1 without one.
func (il *ImageLight) PanoramaVersion() int64 {
	if il.panorama == nil {
		return -1
	}
	return il.panorama.Version()
}

// LightColors are standard light colors for different light sources.
// See http://planetpixelemporium.com/tutorialpages/light.html
type LightColors int32

const (
	DirectSun LightColors = iota
	CarbonArc
	Halogen
	Tungsten100W
	Tungsten40W
	Candle
	Overcast
	FluorWarm
	FluorStd
	FluorCool
	FluorFull
	FluorGrow
	MercuryVapor
	SodiumVapor
	MetalHalide
)

func rgb(r, g, b float32) mgl32.Vec3 {
	return mgl32.Vec3{r / 255, g / 255, b / 255}
}

// LightColorMap provides a map of named light colors.
var LightColorMap = map[LightColors]mgl32.Vec3{
	DirectSun:    rgb(255, 255, 255),
	CarbonArc:    rgb(255, 250, 244),
	Halogen:      rgb(255, 241, 224),
	Tungsten100W: rgb(255, 214, 170),
	Tungsten40W:  rgb(255, 197, 143),
	Candle:       rgb(255, 147, 41),
	Overcast:     rgb(201, 226, 255),
	FluorWarm:    rgb(255, 244, 229),
	FluorStd:     rgb(244, 255, 250),
	FluorCool:    rgb(212, 235, 255),
	FluorFull:    rgb(255, 244, 242),
	FluorGrow:    rgb(255, 239, 247),
	MercuryVapor: rgb(216, 247, 255),
	SodiumVapor:  rgb(255, 209, 178),
	MetalHalide:  rgb(242, 252, 255),
}

var (
	_ Light = &AmbientLight{}
	_ Light = &DirLight{}
	_ Light = &PointLight{}
	_ Light = &SpotLight{}
	_ Light = &ImageLight{}
)
