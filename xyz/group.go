// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"cogentcore.org/xr/math32"
)

const (
	// Continue is returned from a WalkDown func to keep going
	// into the children of the current node.
	Continue = true

	// Break is returned from a WalkDown func to skip the
	// children of the current node.
	Break = false
)

// Group collects child nodes. It has no geometry of its own, but its
// transform applies to all nodes under it. A node has at most one parent.
type Group struct {
	NodeBase

	children []Node
}

// NewGroup returns a new empty group with the given name.
func NewGroup(name string) *Group {
	gp := &Group{}
	gp.InitNode(gp)
	gp.Name = name
	return gp
}

func (gp *Group) AsGroup() *Group {
	return gp
}

// Children returns the children in order. The slice must not be modified.
func (gp *Group) Children() []Node {
	return gp.children
}

// NumChildren returns the number of children.
func (gp *Group) NumChildren() int {
	return len(gp.children)
}

// Child returns the child at the given index.
func (gp *Group) Child(i int) Node {
	return gp.children[i]
}

// ChildByName returns the first child with the given name, or nil.
func (gp *Group) ChildByName(name string) Node {
	for _, c := range gp.children {
		if c.AsObject().Name == name {
			return c
		}
	}
	return nil
}

// checkMutation panics when called during a change notification
// of the scene the group belongs to.
func (gp *Group) checkMutation() {
	if gp.scene != nil && gp.scene.notifying > 0 {
		panic(ErrReentrantMutation)
	}
}

// AddChild appends n to the children, detaching it from its previous
// parent first. Adding a node that is already a child does nothing.
// It panics with [ErrCycle] if n is gp or one of its ancestors.
func (gp *Group) AddChild(n Node) {
	nb := n.AsNode()
	if nb.parent == gp {
		return
	}
	for p := &gp.NodeBase; p != nil; {
		if p == nb {
			panic(ErrCycle)
		}
		if p.parent == nil {
			break
		}
		p = &p.parent.NodeBase
	}
	gp.checkMutation()
	if old := nb.parent; old != nil {
		old.checkMutation()
		old.removeChild(n)
		old.NotifyChanged(ObjectChange{Type: ChangeChildRemove, Target: n})
	}
	nb.EnsureID()
	gp.children = append(gp.children, n)
	nb.setParent(gp)
	gp.NotifyChanged(ObjectChange{Type: ChangeChildAdd, Target: n})
}

// AddChildren adds each of the given nodes.
func (gp *Group) AddChildren(ns ...Node) {
	for _, n := range ns {
		gp.AddChild(n)
	}
}

// RemoveChild removes n from the children, returning false
// if n is not a child of gp.
func (gp *Group) RemoveChild(n Node) bool {
	if n.AsNode().parent != gp {
		return false
	}
	gp.checkMutation()
	gp.removeChild(n)
	n.AsNode().setParent(nil)
	gp.NotifyChanged(ObjectChange{Type: ChangeChildRemove, Target: n})
	return true
}

func (gp *Group) removeChild(n Node) {
	if i := slices.Index(gp.children, n); i >= 0 {
		gp.children = slices.Delete(gp.children, i, i+1)
	}
}

// DeleteChildren removes all children.
func (gp *Group) DeleteChildren() {
	for len(gp.children) > 0 {
		gp.RemoveChild(gp.children[len(gp.children)-1])
	}
}

// WalkDown calls fn on gp and then on every descendant, depth first
// in child order. If fn returns [Break] the children of that node
// are skipped.
func (gp *Group) WalkDown(fn func(n Node) bool) {
	gp.walkDown(gp.thisNode, fn)
}

func (gp *Group) walkDown(self Node, fn func(n Node) bool) {
	if !fn(self) {
		return
	}
	for _, c := range gp.children {
		if cg := c.AsGroup(); cg != nil {
			cg.walkDown(c, fn)
		} else {
			fn(c)
		}
	}
}

// Descendants returns all nodes below gp, depth first.
func (gp *Group) Descendants() []Node {
	var res []Node
	gp.WalkDown(func(n Node) bool {
		if n != gp.thisNode {
			res = append(res, n)
		}
		return Continue
	})
	return res
}

// UpdateWorldMatrix updates the group and, with updateChildren, the
// children that need it: all of them when the group itself changed,
// otherwise only those with a stale matrix somewhere below them.
func (gp *Group) UpdateWorldMatrix(updateChildren, updateParent bool) bool {
	changed := gp.NodeBase.UpdateWorldMatrix(false, updateParent)
	if !updateChildren || (!changed && !gp.childDirty) {
		return changed
	}
	gp.childDirty = false
	for _, c := range gp.children {
		cb := c.AsNode()
		if changed {
			cb.worldDirty = true
		} else if !cb.needsWorldUpdate() {
			continue
		}
		c.UpdateWorldMatrix(true, false)
	}
	return changed
}

func (gp *Group) InvalidateWorld() {
	gp.invalidateSubtree()
	gp.markAncestors()
}

func (gp *Group) invalidateSubtree() {
	gp.invalidateSelf()
	for _, c := range gp.children {
		if cg := c.AsGroup(); cg != nil {
			cg.invalidateSubtree()
		} else {
			c.AsNode().invalidateSelf()
		}
	}
}

// LocalBounds returns the union of the children's bounds
// in the group's local coordinates.
func (gp *Group) LocalBounds() math32.Box3 {
	bb := math32.B3Empty()
	for _, c := range gp.children {
		cb := c.AsNode()
		m := cb.transform.Matrix()
		bb.ExpandByBox(c.LocalBounds().MulMatrix4(&m))
	}
	return bb
}

// OnChanged invalidates the cached bounds when a descendant moves,
// and then behaves as [NodeBase.OnChanged].
func (gp *Group) OnChanged(change ObjectChange) {
	if change.IsAny(ChangeChildAdd | ChangeChildRemove) {
		gp.boundsDirty = true
	}
	gp.NodeBase.OnChanged(change)
}

// Update updates the group and then, unless ctx.UpdateOnlySelf
// is set, each of its children.
func (gp *Group) Update(ctx *RenderContext) {
	gp.NodeBase.Update(ctx)
	if ctx.UpdateOnlySelf {
		return
	}
	for _, c := range slices.Clone(gp.children) {
		c.Update(ctx)
	}
}

// Dispose disposes all children and then the group itself.
func (gp *Group) Dispose() {
	if gp.disposed {
		return
	}
	for _, c := range slices.Clone(gp.children) {
		c.Dispose()
	}
	gp.NodeBase.Dispose()
}

var _ Node = &Group{}
