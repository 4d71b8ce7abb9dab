// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/xr/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// changeNotifier is implemented by objects that receive change notifications.
type changeNotifier interface {
	NotifyChanged(change ObjectChange)

	// transformDirty is called on every mutation before the
	// notification, which may be deferred by a batch.
	transformDirty()
}

// Transform is the local position, rotation, scale and pivot of a node,
// always relative to its parent. The local matrix is recomputed lazily:
// every setter marks the transform dirty, and [Transform.Update] rebuilds
// the matrix at most once per mutation.
//
// The local matrix is T(Position) * R(Rotation) * S(Scale) * T(-Pivot)
// for column vectors, so the pivot is the point that stays fixed under
// rotation and scale.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	pivot    mgl32.Vec3
	matrix   mgl32.Mat4
	dirty    bool
	version  int64
	host     changeNotifier
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	tr := &Transform{}
	tr.Defaults()
	return tr
}

// Defaults resets to the identity transform and marks it clean.
func (tr *Transform) Defaults() {
	tr.position = mgl32.Vec3{}
	tr.rotation = mgl32.QuatIdent()
	tr.scale = mgl32.Vec3{1, 1, 1}
	tr.pivot = mgl32.Vec3{}
	tr.matrix = mgl32.Ident4()
	tr.dirty = false
}

// setHost sets the object notified with [ChangeTransform] on mutation.
func (tr *Transform) setHost(h changeNotifier) {
	tr.host = h
}

// markDirty flags the matrix for recompute and notifies the host.
// It is called by every setter, even when the value did not change.
func (tr *Transform) markDirty() {
	tr.dirty = true
	if tr.host != nil {
		tr.host.transformDirty()
		tr.host.NotifyChanged(Change(ChangeTransform))
	}
}

// IsDirty returns whether a setter was called since the last [Transform.Update].
func (tr *Transform) IsDirty() bool {
	return tr.dirty
}

// Version is incremented each time the local matrix is recomputed.
func (tr *Transform) Version() int64 {
	return tr.version
}

// Update recomputes the local matrix if dirty, returning whether it did.
// Calling Update again without an intervening mutation returns false.
func (tr *Transform) Update() bool {
	if !tr.dirty {
		return false
	}
	m := math32.ComposeMatrix(tr.position, tr.rotation, tr.scale)
	if tr.pivot != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.Translate3D(-tr.pivot[0], -tr.pivot[1], -tr.pivot[2]))
	}
	tr.matrix = m
	tr.dirty = false
	tr.version++
	return true
}

// Matrix returns the local matrix, updating it first if needed.
func (tr *Transform) Matrix() mgl32.Mat4 {
	tr.Update()
	return tr.matrix
}

func (tr *Transform) Position() mgl32.Vec3 { return tr.position }
func (tr *Transform) Rotation() mgl32.Quat { return tr.rotation }
func (tr *Transform) Scale() mgl32.Vec3    { return tr.scale }
func (tr *Transform) Pivot() mgl32.Vec3    { return tr.pivot }

// SetPosition sets the position relative to the parent.
func (tr *Transform) SetPosition(pos mgl32.Vec3) *Transform {
	tr.position = pos
	tr.markDirty()
	return tr
}

// SetPos sets the position from components.
func (tr *Transform) SetPos(x, y, z float32) *Transform {
	return tr.SetPosition(mgl32.Vec3{x, y, z})
}

// SetRotation sets the rotation quaternion, which is normalized.
func (tr *Transform) SetRotation(q mgl32.Quat) *Transform {
	tr.rotation = q.Normalize()
	tr.markDirty()
	return tr
}

// SetEulerRotation sets the rotation from Euler angles in degrees,
// applied in X, Y, Z order.
func (tr *Transform) SetEulerRotation(x, y, z float32) *Transform {
	return tr.SetRotation(mgl32.AnglesToQuat(mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z), mgl32.XYZ))
}

// SetAxisRotation sets the rotation from an axis and an angle in degrees.
func (tr *Transform) SetAxisRotation(x, y, z, angle float32) *Transform {
	return tr.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(angle), mgl32.Vec3{x, y, z}.Normalize()))
}

// RotateOnAxis rotates around the given local axis by an angle in degrees.
func (tr *Transform) RotateOnAxis(x, y, z, angle float32) *Transform {
	return tr.SetRotation(tr.rotation.Mul(mgl32.QuatRotate(mgl32.DegToRad(angle), mgl32.Vec3{x, y, z}.Normalize())))
}

// SetScale sets the scale relative to the parent.
func (tr *Transform) SetScale(sc mgl32.Vec3) *Transform {
	tr.scale = sc
	tr.markDirty()
	return tr
}

// SetUniformScale sets the same scale on all three axes.
func (tr *Transform) SetUniformScale(s float32) *Transform {
	return tr.SetScale(mgl32.Vec3{s, s, s})
}

// SetPivot sets the local point that rotation and scale are applied around.
func (tr *Transform) SetPivot(pv mgl32.Vec3) *Transform {
	tr.pivot = pv
	tr.markDirty()
	return tr
}

// MoveOnAxis translates by dist along the given local axis,
// relative to the current rotation.
func (tr *Transform) MoveOnAxis(x, y, z, dist float32) *Transform {
	d := tr.rotation.Rotate(mgl32.Vec3{x, y, z}.Normalize()).Mul(dist)
	return tr.SetPosition(tr.position.Add(d))
}

// LookAt orients the transform so its -Z axis points from its position
// to the given target, with the given up direction.
func (tr *Transform) LookAt(target, up mgl32.Vec3) *Transform {
	if target.Sub(tr.position).LenSqr() == 0 {
		return tr
	}
	return tr.SetRotation(mgl32.QuatLookAtV(tr.position, target, up).Inverse())
}

// SetMatrix sets position, rotation and scale from the given matrix.
// The pivot is reset to the origin.
func (tr *Transform) SetMatrix(m mgl32.Mat4) *Transform {
	tr.position, tr.rotation, tr.scale = math32.Decompose(m)
	tr.pivot = mgl32.Vec3{}
	tr.markDirty()
	return tr
}

// CopyFrom copies the values of another transform, keeping the host.
func (tr *Transform) CopyFrom(o *Transform) {
	tr.position = o.position
	tr.rotation = o.rotation
	tr.scale = o.scale
	tr.pivot = o.pivot
	tr.markDirty()
}
