// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBox3Expand(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(mgl32.Vec3{1, 2, 3})
	b.ExpandByPoint(mgl32.Vec3{-1, 0, 5})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{-1, 0, 3}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 5}, b.Max)
	assert.Equal(t, mgl32.Vec3{0, 1, 4}, b.Center())
	assert.True(t, b.ContainsPoint(mgl32.Vec3{0, 1, 4}))
	assert.False(t, b.ContainsPoint(mgl32.Vec3{0, 3, 4}))
}

func TestBox3Distance(t *testing.T) {
	b := B3(-1, -1, -1, 1, 1, 1)
	assert.Equal(t, float32(0), b.DistanceToPoint(mgl32.Vec3{0.5, 0, 0}))
	assert.InDelta(t, 2, b.DistanceToPoint(mgl32.Vec3{3, 0, 0}), 1e-6)
	assert.Equal(t, Infinity, B3Empty().DistanceToPoint(mgl32.Vec3{}))
}

func TestBox3MulMatrix4(t *testing.T) {
	b := B3(-1, -1, -1, 1, 1, 1)
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	nb := b.MulMatrix4(&m)
	assert.InDelta(t, 8, nb.Min[0], 1e-5)
	assert.InDelta(t, 12, nb.Max[0], 1e-5)
	assert.InDelta(t, -2, nb.Min[1], 1e-5)
	assert.InDelta(t, 2, nb.Max[2], 1e-5)

	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	rb := B3(0, 0, 0, 2, 1, 1).MulMatrix4(&rot)
	assert.InDelta(t, -2, rb.Min[2], 1e-5)
	assert.InDelta(t, 0, rb.Max[2], 1e-5)
}

func TestFrustum(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	pv := proj.Mul4(view)
	f := NewFrustumFromMatrix(&pv)

	assert.True(t, f.ContainsPoint(mgl32.Vec3{}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 20}))

	assert.True(t, f.IntersectsBox(B3(-1, -1, -1, 1, 1, 1)))
	assert.False(t, f.IntersectsBox(B3(-1, -1, 11, 1, 1, 12)))
	assert.False(t, f.IntersectsBox(B3(100, 0, 0, 101, 1, 1)))
	assert.False(t, f.IntersectsBox(B3Empty()))
	// partly inside counts as intersecting
	assert.True(t, f.IntersectsBox(B3(-50, -1, -1, 0, 1, 1)))
}
