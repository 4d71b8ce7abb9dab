// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the float32 geometry used by the scene graph and
// renderer: bounding boxes, planes and view frustums, built on the vector and
// matrix types of [mgl32].
package math32

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// These are mostly just wrappers around chewxy/math32, which has
// some optimized implementations.

const (
	// Pi is the float32 value of pi.
	Pi = math32.Pi

	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180

	// RadToDegFactor is the number of degrees per radian.
	RadToDegFactor = 180 / Pi
)

// Infinity is positive infinity.
var Infinity = math32.Inf(1)

// DegToRad converts a number from degrees to radians
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Min returns the smaller of x or y.
func Min(x, y float32) float32 {
	return math32.Min(x, y)
}

// Max returns the larger of x or y.
func Max(x, y float32) float32 {
	return math32.Max(x, y)
}

// IsNaN reports whether f is an IEEE 754 “not-a-number” value.
func IsNaN(x float32) bool {
	return math32.IsNaN(x)
}

// Vec3Min returns the component-wise minimum of a and b.
func Vec3Min(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Min(a[0], b[0]), Min(a[1], b[1]), Min(a[2], b[2])}
}

// Vec3Max returns the component-wise maximum of a and b.
func Vec3Max(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Max(a[0], b[0]), Max(a[1], b[1]), Max(a[2], b[2])}
}

// Vec3Clamp returns v with each component clamped to [lo, hi].
func Vec3Clamp(v, lo, hi mgl32.Vec3) mgl32.Vec3 {
	return Vec3Min(Vec3Max(v, lo), hi)
}

// MatrixApproxEqual returns whether each element of a and b differ
// by no more than tol.
func MatrixApproxEqual(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return math32.Tan(x)
}
