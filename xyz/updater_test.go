// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateManagerGroups(t *testing.T) {
	sc := NewScene("sc")
	gp := NewGroup("g")
	sc.AddChild(gp)
	var order []string
	for i, pri := range []int{5, -3} {
		ms := NewMesh("m", nil)
		gp.AddChild(ms)
		uf := NewUpdateFunc(func(host Object, ctx *RenderContext) {
			order = append(order, host.AsObject().Name)
		})
		uf.Priority = pri
		ms.Name = []string{"late", "early"}[i]
		ms.AddComponent(uf)
	}
	um := NewUpdateManager(sc)
	ctx := &RenderContext{Time: 2}
	sc.Update(ctx)

	grps := um.Groups()
	require.Len(t, grps, 4)
	assert.Equal(t, "objects", grps[0].Name)
	assert.Equal(t, 2, grps[0].Len())
	assert.Equal(t, 2, grps[1].Len())
	assert.Equal(t, ComponentPriorityOffset-3, grps[2].Priority)
	assert.Equal(t, ComponentPriorityOffset+5, grps[3].Priority)
	assert.Equal(t, []string{"early", "late"}, order)
	assert.False(t, ctx.UpdateOnlySelf)
	assert.Equal(t, 2.0, gp.UpdatedTime())

	// structure change regroups
	sc.AddChild(NewMesh("x", nil))
	sc.Update(ctx)
	assert.Equal(t, 3, um.Groups()[1].Len())
}

func TestUpdateManagerParallel(t *testing.T) {
	sc := NewScene("sc")
	var count atomic.Int64
	for i := 0; i < 50; i++ {
		ms := NewMesh("m", nil)
		ms.AddComponent(NewUpdateFunc(func(host Object, ctx *RenderContext) {
			count.Add(1)
		}))
		sc.AddChild(ms)
	}
	um := NewUpdateManager(sc)
	um.Parallel = true
	um.MaxWorkers = 4
	ctx := &RenderContext{}
	for i := 0; i < 3; i++ {
		ctx.Frame++
		sc.Update(ctx)
	}
	assert.Equal(t, int64(150), count.Load())
}

func TestUpdateManagerNegativePriority(t *testing.T) {
	sc := NewScene("sc")
	ms := NewMesh("m", nil)
	sc.AddChild(ms)
	var seen float64
	uf := NewUpdateFunc(func(host Object, ctx *RenderContext) {
		seen = host.(Node).AsNode().UpdatedTime()
	})
	uf.Priority = -3
	ms.AddComponent(uf)
	um := NewUpdateManager(sc)
	sc.Update(&RenderContext{Time: 4})

	grps := um.Groups()
	require.Len(t, grps, 3)
	assert.Equal(t, "components", grps[2].Name)
	// the node itself is updated before its components
	assert.Equal(t, 4.0, seen)
}

func TestUpdateManagerParallelChanges(t *testing.T) {
	sc := NewScene("sc")
	gp := NewGroup("g")
	sc.AddChild(gp)
	gp.Transform().SetPos(0, 10, 0)
	const n = 64
	meshes := make([]*Mesh, n)
	for i := range meshes {
		ms := NewMesh("m", nil)
		ms.AddComponent(NewUpdateFunc(func(host Object, ctx *RenderContext) {
			host.(Node).AsNode().Transform().SetPos(float32(ctx.Frame), 0, 0)
		}))
		gp.AddChild(ms)
		meshes[i] = ms
	}
	var changes int
	sc.AddListener(ChangeListenerFunc(func(n Node, change ObjectChange) {
		if change.IsAny(ChangeTransform) {
			changes++
		}
	}))
	um := NewUpdateManager(sc)
	um.Parallel = true
	um.MaxWorkers = 8
	ctx := &RenderContext{}
	for i := 0; i < 20; i++ {
		ctx.Frame++
		changes = 0
		sc.Update(ctx)
		assert.Equal(t, n, changes)
		for _, ms := range meshes {
			assert.Equal(t, mgl32.Vec3{float32(ctx.Frame), 10, 0}, ms.WorldPosition())
		}
	}
	for _, ms := range meshes {
		assert.Equal(t, 0, ms.updateCount)
		assert.False(t, ms.concurrent)
	}
}
