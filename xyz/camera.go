// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/xr/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a node defining a view onto the scene. In its unrotated
// state it looks down the -Z axis with +Y up. The view matrix is the
// inverse of its world matrix.
type Camera struct {
	NodeBase

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width / height).
	Aspect float32

	// Near is the distance to the near clipping plane.
	Near float32

	// Far is the distance to the far clipping plane.
	Far float32

	// Ortho selects an orthographic instead of a perspective projection,
	// covering the volume the perspective frustum has at the far plane.
	Ortho bool

	// Background is the color the render target is cleared to.
	Background mgl32.Vec4
}

// NewCamera returns a camera with default parameters,
// located at 0,0,10 looking at the origin.
func NewCamera(name string) *Camera {
	cm := &Camera{}
	cm.InitNode(cm)
	cm.Name = name
	cm.Defaults()
	return cm
}

// Defaults sets the default projection parameters and pose.
func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.Background = mgl32.Vec4{0, 0, 0, 1}
	cm.transform.SetPos(0, 0, 10)
	cm.LookAtOrigin()
}

// SetViewport sets the aspect ratio from the viewport size in pixels.
func (cm *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cm.Aspect = float32(width) / float32(height)
}

// LookAt orients the camera toward the target, given in the
// coordinates of the camera's parent.
func (cm *Camera) LookAt(target, up mgl32.Vec3) {
	cm.transform.LookAt(target, up)
}

// LookAtOrigin points the camera at the origin with +Y up.
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection returns the projection matrix.
func (cm *Camera) Projection() mgl32.Mat4 {
	if cm.Ortho {
		h := 2 * cm.Far * math32.Tan(math32.DegToRad(cm.FOV*0.5))
		w := cm.Aspect * h
		return mgl32.Ortho(-w/2, w/2, -h/2, h/2, cm.Near, cm.Far)
	}
	return mgl32.Perspective(math32.DegToRad(cm.FOV), cm.Aspect, cm.Near, cm.Far)
}

// View returns the view matrix.
func (cm *Camera) View() mgl32.Mat4 {
	return cm.WorldInverse()
}

// ViewProjection returns Projection * View.
func (cm *Camera) ViewProjection() mgl32.Mat4 {
	return cm.Projection().Mul4(cm.View())
}

// Frustum returns the world-space view frustum.
func (cm *Camera) Frustum() *math32.Frustum {
	vp := cm.ViewProjection()
	return math32.NewFrustumFromMatrix(&vp)
}
