// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/xr/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is the interface for all nodes of the scene graph.
// Concrete types embed [NodeBase] (or [Group] for containers)
// and call [NodeBase.InitNode] in their constructor.
type Node interface {
	Object

	// AsNode returns the embedded [NodeBase].
	AsNode() *NodeBase

	// AsGroup returns the embedded [Group] for container nodes,
	// and nil for leaves.
	AsGroup() *Group

	// UpdateWorldMatrix brings the cached world matrix up to date,
	// returning whether it was recomputed. With updateParent, the
	// ancestors are brought up to date first. With updateChildren,
	// the descendants that need it are updated as well.
	UpdateWorldMatrix(updateChildren, updateParent bool) bool

	// InvalidateWorld marks the world matrix, and those of any
	// descendants, for recompute.
	InvalidateWorld()

	// LocalBounds returns the bounding box in local coordinates.
	LocalBounds() math32.Box3

	// IsLight returns whether the node is a light.
	IsLight() bool
}

// NodeBase is the base implementation of [Node]. It holds the local
// [Transform], the cached world matrix and bounds, the parent link
// and the owning scene.
//
// The world matrix is Parent.WorldMatrix * Transform.Matrix and is
// recomputed only when the transform was mutated, an ancestor was
// recomputed, or the node was explicitly invalidated.
type NodeBase struct {
	ObjectBase `copier:"-"`

	thisNode Node
	parent   *Group
	scene    *Scene
	hidden   bool

	transform    Transform
	worldMatrix  mgl32.Mat4
	worldInverse mgl32.Mat4
	worldBounds  math32.Box3

	worldDirty   bool
	inverseDirty bool
	boundsDirty  bool

	// childDirty is set on ancestors of a node whose world matrix
	// needs recompute, so that a recursive update can skip clean subtrees.
	childDirty bool

	// concurrent is set while the node is updated on another
	// goroutine, when only the node itself may be written.
	concurrent bool

	worldUpdates int64
	started      bool
	createdTime  float64
	updatedTime  float64
}

// InitNode initializes the node with its outermost type.
// It must be called by every constructor before use.
func (nb *NodeBase) InitNode(this Node) {
	nb.InitObject(this)
	nb.thisNode = this
	nb.transform.Defaults()
	nb.transform.setHost(nb)
	nb.worldMatrix = mgl32.Ident4()
	nb.worldInverse = mgl32.Ident4()
	nb.worldBounds = math32.B3Empty()
	nb.worldDirty = true
	nb.inverseDirty = true
	nb.boundsDirty = true
}

func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

func (nb *NodeBase) AsGroup() *Group {
	return nil
}

func (nb *NodeBase) IsLight() bool {
	return false
}

// Transform returns the local transform. Mutating it invalidates
// the world matrix of the node and its descendants.
func (nb *NodeBase) Transform() *Transform {
	return &nb.transform
}

// Parent returns the parent group, or nil for a root.
func (nb *NodeBase) Parent() *Group {
	return nb.parent
}

// Scene returns the scene the node is reachable from, or nil.
func (nb *NodeBase) Scene() *Scene {
	return nb.scene
}

// Visible returns the node's own visible flag.
func (nb *NodeBase) Visible() bool {
	return !nb.hidden
}

// SetVisible sets the node's own visible flag.
func (nb *NodeBase) SetVisible(visible bool) {
	if visible == !nb.hidden {
		return
	}
	nb.hidden = !visible
	nb.NotifyChanged(Change(ChangeVisibility))
}

// IsVisible returns whether the node and all of its ancestors are visible.
func (nb *NodeBase) IsVisible() bool {
	for n := nb; n != nil; {
		if n.hidden {
			return false
		}
		if n.parent == nil {
			break
		}
		n = &n.parent.NodeBase
	}
	return true
}

// WorldUpdates returns the number of times the world matrix was recomputed.
func (nb *NodeBase) WorldUpdates() int64 {
	return nb.worldUpdates
}

// needsWorldUpdate returns whether this node or a descendant
// has a stale world matrix.
func (nb *NodeBase) needsWorldUpdate() bool {
	return nb.worldDirty || nb.transform.IsDirty() || nb.childDirty
}

func (nb *NodeBase) UpdateWorldMatrix(updateChildren, updateParent bool) bool {
	parentChanged := false
	if updateParent && nb.parent != nil {
		parentChanged = nb.parent.thisNode.UpdateWorldMatrix(false, true)
	}
	local := nb.transform.Update()
	if !local && !parentChanged && !nb.worldDirty {
		return false
	}
	if nb.parent != nil {
		nb.worldMatrix = nb.parent.worldMatrix.Mul4(nb.transform.matrix)
	} else {
		nb.worldMatrix = nb.transform.matrix
	}
	nb.worldDirty = false
	nb.inverseDirty = true
	nb.boundsDirty = true
	nb.worldUpdates++
	return true
}

// invalidateSelf marks only this node's world matrix stale.
func (nb *NodeBase) invalidateSelf() {
	nb.worldDirty = true
	nb.inverseDirty = true
	nb.boundsDirty = true
}

// transformDirty invalidates the world matrices right away inside a
// batch, where the [ChangeTransform] notification that normally does
// it is deferred. Concurrent updates leave it to the notification.
func (nb *NodeBase) transformDirty() {
	if nb.updateCount > 0 && !nb.concurrent {
		nb.thisNode.InvalidateWorld()
	}
}

// markAncestors flags every ancestor as having a stale descendant.
func (nb *NodeBase) markAncestors() {
	for p := nb.parent; p != nil && !p.childDirty; p = p.parent {
		p.childDirty = true
	}
}

func (nb *NodeBase) InvalidateWorld() {
	nb.invalidateSelf()
	nb.markAncestors()
}

// WorldMatrix returns the world matrix, bringing it and the
// matrices of its ancestors up to date first.
func (nb *NodeBase) WorldMatrix() mgl32.Mat4 {
	nb.thisNode.UpdateWorldMatrix(false, true)
	return nb.worldMatrix
}

// WorldInverse returns the inverse of [NodeBase.WorldMatrix].
func (nb *NodeBase) WorldInverse() mgl32.Mat4 {
	wm := nb.WorldMatrix()
	if nb.inverseDirty {
		nb.worldInverse = wm.Inv()
		nb.inverseDirty = false
	}
	return nb.worldInverse
}

// WorldPosition returns the origin of the node in world coordinates.
func (nb *NodeBase) WorldPosition() mgl32.Vec3 {
	return math32.MatrixPosition(nb.WorldMatrix())
}

func (nb *NodeBase) LocalBounds() math32.Box3 {
	return math32.B3Empty()
}

// WorldBounds returns the local bounds transformed to world coordinates.
func (nb *NodeBase) WorldBounds() math32.Box3 {
	wm := nb.WorldMatrix()
	if nb.boundsDirty {
		nb.worldBounds = nb.thisNode.LocalBounds().MulMatrix4(&wm)
		nb.boundsDirty = false
	}
	return nb.worldBounds
}

// DistanceTo returns the distance from the world bounds to the point,
// or from the world position when the node has no bounds.
func (nb *NodeBase) DistanceTo(p mgl32.Vec3) float32 {
	wb := nb.WorldBounds()
	if wb.IsEmpty() {
		return nb.WorldPosition().Sub(p).Len()
	}
	return wb.DistanceToPoint(p)
}

// CreatedTime returns the frame time of the first update of the node.
func (nb *NodeBase) CreatedTime() float64 {
	return nb.createdTime
}

// UpdatedTime returns the frame time of the last update of the node.
func (nb *NodeBase) UpdatedTime() float64 {
	return nb.updatedTime
}

// OnChanged invalidates cached state and forwards the change to the scene.
func (nb *NodeBase) OnChanged(change ObjectChange) {
	if change.IsAny(ChangeTransform) {
		nb.thisNode.InvalidateWorld()
	}
	if change.IsAny(ChangeGeometry) {
		nb.boundsDirty = true
	}
	nb.ObjectBase.OnChanged(change)
	if nb.scene != nil {
		nb.scene.NotifyObjectChanged(nb.thisNode, change)
	}
}

func (nb *NodeBase) Update(ctx *RenderContext) {
	if !nb.started {
		nb.started = true
		nb.createdTime = ctx.Time
	}
	nb.updatedTime = ctx.Time
	nb.ObjectBase.Update(ctx)
}

// Reset forgets the update times of the node, so the next update
// counts as its first, and resets the components implementing [Resetter].
func (nb *NodeBase) Reset() {
	nb.started = false
	nb.createdTime = 0
	nb.updatedTime = 0
	for _, c := range nb.components {
		if r, ok := c.(Resetter); ok {
			r.Reset()
		}
	}
}

// Detach removes the node from its parent, if any.
func (nb *NodeBase) Detach() {
	if nb.parent != nil {
		nb.parent.RemoveChild(nb.thisNode)
	}
}

// Dispose detaches the node and disposes its components.
func (nb *NodeBase) Dispose() {
	if nb.disposed {
		return
	}
	nb.Detach()
	nb.ObjectBase.Dispose()
}

// setParent links the node to a new parent (or none), and moves
// the node and its descendants into the parent's scene.
func (nb *NodeBase) setParent(gp *Group) {
	nb.parent = gp
	var sc *Scene
	if gp != nil {
		sc = gp.scene
	}
	nb.thisNode.InvalidateWorld()
	nb.moveToScene(sc, ChangeParent|ChangeTransform)
	if g := nb.thisNode.AsGroup(); g != nil {
		g.WalkDown(func(n Node) bool {
			if n != nb.thisNode {
				n.AsNode().moveToScene(sc, ChangeNone)
			}
			return Continue
		})
	}
}

// moveToScene updates the scene link and sends the given change,
// plus [ChangeSceneAdd] and [ChangeSceneRemove] when the scene changed.
// The previous scene is notified as well, so it can drop the node.
func (nb *NodeBase) moveToScene(sc *Scene, ct ChangeTypes) {
	old := nb.scene
	if old != sc {
		if old != nil {
			ct |= ChangeSceneRemove
		}
		if sc != nil {
			ct |= ChangeSceneAdd
		}
	}
	nb.scene = sc
	if ct == ChangeNone {
		return
	}
	change := Change(ct)
	nb.NotifyChanged(change)
	if old != nil && old != sc {
		old.NotifyObjectChanged(nb.thisNode, change)
	}
}

// FindAncestor returns the closest ancestor of n of type T.
func FindAncestor[T Node](n Node) (T, bool) {
	for p := n.AsNode().parent; p != nil; p = p.parent {
		if t, ok := p.thisNode.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
