// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/xyz"
)

// spinRate is the rotation of the cubes in degrees per second.
const spinRate = 45

// NewDemoScene returns a scene with a row of lit spinning cubes
// behind a transparent pane, under a sky image light. A generated
// gradient is used if sky is nil.
func NewDemoScene(sky *xyz.Texture) *xyz.Scene {
	if sky == nil {
		sky = skyPanorama(16, 8)
	}
	sc := xyz.NewScene("demo")
	cam := xyz.NewCamera("camera")
	cam.Transform().SetPos(0, 3, 12)
	cam.LookAtOrigin()
	cam.Background = mgl32.Vec4{0.1, 0.12, 0.16, 1}
	sc.AddChild(cam)
	sc.SetActiveCamera(cam)

	sun := xyz.NewDirLight("sun", 1, xyz.DirectSun)
	sun.Transform().SetPos(2, 5, 3)
	sc.AddChildren(
		xyz.NewAmbientLight("ambient", 0.2, xyz.Overcast),
		sun,
		xyz.NewImageLight("sky", 0.3, sky),
	)

	phong := xyz.NewShader("phong", phongVertex, phongFragment)
	box := xyz.NewBox("box", mgl32.Vec3{1, 1, 1})
	colors := []mgl32.Vec4{{0.9, 0.2, 0.2, 1}, {0.2, 0.8, 0.3, 1}, {0.2, 0.4, 0.9, 1}}
	cubes := xyz.NewGroup("cubes")
	for i, clr := range colors {
		mt := xyz.NewMaterial("cube", phong).SetColor(clr)
		cube := xyz.NewMesh("cube", box, mt)
		cube.Transform().SetPos(float32(i-1)*2.5, 0, 0)
		cube.AddComponent(xyz.NewUpdateFunc(spin))
		cubes.AddChild(cube)
	}
	sc.AddChild(cubes)

	glass := xyz.NewMaterial("glass", phong).SetColor(mgl32.Vec4{0.6, 0.8, 1, 0.4}).SetAlpha(xyz.AlphaBlend)
	glass.DoubleSided = true
	pane := xyz.NewMesh("pane", xyz.NewBox("pane", mgl32.Vec3{8, 3, 0.1}), glass)
	pane.Transform().SetPos(0, 0, 2)
	sc.AddChild(pane)
	return sc
}

// spin rotates the host node around +Y by the elapsed time.
func spin(host xyz.Object, ctx *xyz.RenderContext) {
	n, ok := host.(xyz.Node)
	if !ok {
		return
	}
	n.AsNode().Transform().SetAxisRotation(0, 1, 0, float32(ctx.Time)*spinRate)
}

// skyPanorama returns a vertical gradient from a blue zenith to
// a pale horizon.
func skyPanorama(width, height int) *xyz.Texture {
	data := make([]byte, 0, width*height*4)
	for y := range height {
		t := float32(y) / float32(max(height-1, 1))
		top := mgl32.Vec3{0.25, 0.45, 0.85}
		bottom := mgl32.Vec3{0.85, 0.88, 0.9}
		c := top.Mul(1 - t).Add(bottom.Mul(t))
		for range width {
			data = append(data, byte(c[0]*255), byte(c[1]*255), byte(c[2]*255), 255)
		}
	}
	return xyz.NewTexture("sky", width, height, xyz.TextureRGBA8, data)
}
