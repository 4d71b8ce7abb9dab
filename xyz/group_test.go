// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math/rand"
	"testing"

	"cogentcore.org/xr/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChildSingleParent(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	n := NewGroup("n")

	a.AddChild(n)
	assert.Equal(t, a, n.Parent())
	assert.Equal(t, 1, a.NumChildren())

	a.AddChild(n)
	assert.Equal(t, 1, a.NumChildren())

	b.AddChild(n)
	assert.Equal(t, b, n.Parent())
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, 1, b.NumChildren())

	assert.False(t, a.RemoveChild(n))
	assert.True(t, b.RemoveChild(n))
	assert.Nil(t, n.Parent())
	assert.Equal(t, 0, b.NumChildren())
}

func TestAddChildRandomSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	groups := []*Group{NewGroup("g0"), NewGroup("g1"), NewGroup("g2")}
	var nodes []Node
	for i := 0; i < 8; i++ {
		nodes = append(nodes, NewMesh("m", nil))
	}
	for i := 0; i < 500; i++ {
		g := groups[rnd.Intn(len(groups))]
		n := nodes[rnd.Intn(len(nodes))]
		if rnd.Intn(3) == 0 {
			g.RemoveChild(n)
		} else {
			g.AddChild(n)
		}
		for _, n := range nodes {
			count := 0
			for _, g := range groups {
				for _, c := range g.Children() {
					if c == n {
						count++
					}
				}
			}
			if p := n.AsNode().Parent(); p != nil {
				require.Equal(t, 1, count)
			} else {
				require.Equal(t, 0, count)
			}
		}
	}
}

func TestAddChildCycle(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	a.AddChild(b)
	assert.PanicsWithValue(t, ErrCycle, func() { b.AddChild(a) })
	assert.PanicsWithValue(t, ErrCycle, func() { a.AddChild(a) })
}

func TestSceneBackReference(t *testing.T) {
	sc := NewScene("sc")
	gp := NewGroup("g")
	leaf := NewMesh("leaf", nil)
	gp.AddChild(leaf)
	assert.Nil(t, leaf.Scene())

	var changes []ObjectChange
	var nodes []Node
	sc.AddListener(ChangeListenerFunc(func(n Node, change ObjectChange) {
		nodes = append(nodes, n)
		changes = append(changes, change)
	}))

	sc.AddChild(gp)
	assert.Equal(t, sc, gp.Scene())
	assert.Equal(t, sc, leaf.Scene())

	var added []Node
	for i, c := range changes {
		if c.Has(ChangeSceneAdd) {
			added = append(added, nodes[i])
			assert.True(t, c.Has(ChangeParent))
		}
	}
	assert.ElementsMatch(t, []Node{gp, leaf}, added)

	changes = nil
	nodes = nil
	sc.RemoveChild(gp)
	assert.Nil(t, gp.Scene())
	assert.Nil(t, leaf.Scene())
	removed := 0
	for _, c := range changes {
		if c.Has(ChangeSceneRemove) {
			removed++
		}
	}
	assert.Equal(t, 2, removed)
}

func TestWorldMatrixConsistency(t *testing.T) {
	root := NewGroup("root")
	gp := NewGroup("g")
	leaf := NewMesh("leaf", nil)
	root.AddChild(gp)
	gp.AddChild(leaf)

	root.Transform().SetPos(1, 2, 3).SetEulerRotation(0, 45, 0)
	gp.Transform().SetPos(0, 1, 0).SetUniformScale(2)
	leaf.Transform().SetPos(3, 0, -1).SetAxisRotation(1, 0, 0, 30)
	leaf.Transform().SetPivot(leaf.Transform().Position().Mul(0.5))

	root.UpdateWorldMatrix(true, false)
	want := root.Transform().Matrix().Mul4(gp.Transform().Matrix()).Mul4(leaf.Transform().Matrix())
	assert.True(t, math32.MatrixApproxEqual(want, leaf.worldMatrix, 1e-4))
	assert.True(t, math32.MatrixApproxEqual(want, leaf.WorldMatrix(), 1e-4))

	// a parent change is picked up by a query on the leaf alone
	root.Transform().SetPos(-1, 0, 0)
	want = root.Transform().Matrix().Mul4(gp.Transform().Matrix()).Mul4(leaf.Transform().Matrix())
	assert.True(t, math32.MatrixApproxEqual(want, leaf.WorldMatrix(), 1e-4))
}

func TestWorldMatrixShortCircuit(t *testing.T) {
	root := NewGroup("root")
	g1 := NewGroup("g1")
	g2 := NewGroup("g2")
	l1 := NewMesh("l1", nil)
	l2 := NewMesh("l2", nil)
	root.AddChildren(g1, g2)
	g1.AddChild(l1)
	g2.AddChild(l2)

	root.UpdateWorldMatrix(true, false)
	all := []*NodeBase{root.AsNode(), g1.AsNode(), g2.AsNode(), l1.AsNode(), l2.AsNode()}
	before := make([]int64, len(all))
	for i, nb := range all {
		assert.Equal(t, int64(1), nb.WorldUpdates(), nb.Name)
		before[i] = nb.WorldUpdates()
	}

	// nothing dirty: nothing recomputed
	assert.False(t, root.UpdateWorldMatrix(true, false))
	for i, nb := range all {
		assert.Equal(t, before[i], nb.WorldUpdates(), nb.Name)
	}

	l1.Transform().SetPos(1, 0, 0)
	root.UpdateWorldMatrix(true, false)
	assert.Equal(t, before[0], root.WorldUpdates())
	assert.Equal(t, before[1], g1.WorldUpdates())
	assert.Equal(t, before[2], g2.WorldUpdates())
	assert.Equal(t, before[3]+1, l1.WorldUpdates())
	assert.Equal(t, before[4], l2.WorldUpdates())

	// a group change recomputes its whole subtree only
	g2.Transform().SetPos(0, 1, 0)
	root.UpdateWorldMatrix(true, false)
	assert.Equal(t, before[3]+1, l1.WorldUpdates())
	assert.Equal(t, before[2]+1, g2.WorldUpdates())
	assert.Equal(t, before[4]+1, l2.WorldUpdates())
	assert.Equal(t, float32(1), l2.WorldPosition()[1])
}

func TestUpdateWorldMatrixNoChildren(t *testing.T) {
	root := NewGroup("root")
	leaf := NewMesh("leaf", nil)
	root.AddChild(leaf)
	root.UpdateWorldMatrix(false, false)
	assert.Equal(t, int64(1), root.WorldUpdates())
	assert.Equal(t, int64(0), leaf.WorldUpdates())
}

func TestVisibilityInherited(t *testing.T) {
	root := NewGroup("root")
	gp := NewGroup("g")
	leaf := NewMesh("leaf", nil)
	root.AddChild(gp)
	gp.AddChild(leaf)
	assert.True(t, leaf.IsVisible())
	gp.SetVisible(false)
	assert.True(t, leaf.Visible())
	assert.False(t, leaf.IsVisible())
	gp.SetVisible(true)
	assert.True(t, leaf.IsVisible())
}

func TestWalkDown(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	a1 := NewMesh("a1", nil)
	b1 := NewMesh("b1", nil)
	root.AddChildren(a, b)
	a.AddChild(a1)
	b.AddChild(b1)

	var names []string
	root.WalkDown(func(n Node) bool {
		names = append(names, n.AsObject().Name)
		if n == Node(a) {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "b1"}, names)
	assert.Len(t, root.Descendants(), 4)

	gp, ok := FindAncestor[*Group](b1)
	assert.True(t, ok)
	assert.Equal(t, b, gp)
}
