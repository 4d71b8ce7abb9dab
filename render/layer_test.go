// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/xyz"
)

// testScene has a group with two meshes sharing a box and a material.
type testScene struct {
	sc     *xyz.Scene
	cam    *xyz.Camera
	gp     *xyz.Group
	shader *xyz.Shader
	mat    *xyz.Material
	box    *xyz.Geometry
	m1, m2 *xyz.Mesh
	frame  int64
}

func newTestScene() *testScene {
	ts := &testScene{}
	ts.sc = xyz.NewScene("scene")
	ts.cam = xyz.NewCamera("camera")
	ts.sc.SetActiveCamera(ts.cam)
	ts.gp = xyz.NewGroup("group")
	ts.sc.AddChild(ts.gp)
	ts.shader = xyz.NewShader("phong", "vertex", "fragment")
	ts.mat = xyz.NewMaterial("red", ts.shader)
	ts.box = xyz.NewBox("box", mgl32.Vec3{1, 1, 1})
	ts.m1 = xyz.NewMesh("m1", ts.box, ts.mat)
	ts.m2 = xyz.NewMesh("m2", ts.box, ts.mat)
	ts.gp.AddChildren(ts.m1, ts.m2)
	return ts
}

// ctx returns the context of a new frame.
func (ts *testScene) ctx() *xyz.RenderContext {
	ts.frame++
	return &xyz.RenderContext{Frame: ts.frame, Scene: ts.sc, Camera: ts.cam}
}

func TestLayerSharedBuckets(t *testing.T) {
	ts := newTestScene()
	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())

	require.Len(t, l.Content.Shaders, 1)
	sc := l.Content.Shaders[0]
	assert.Equal(t, ts.shader, sc.Shader)
	require.Len(t, sc.Vertices, 1)
	vc := sc.Vertices[0]
	assert.Equal(t, ts.box, vc.Geometry)
	assert.Equal(t, vc, sc.Vertex(ts.box))
	assert.Equal(t, xyz.VertexPosition|xyz.VertexNormal, vc.ActiveComponents)
	require.Len(t, vc.Draws, 2)
	assert.Equal(t, 0, vc.Draws[0].DrawID)
	assert.Equal(t, 1, vc.Draws[1].DrawID)
	assert.Equal(t, xyz.Node(ts.m1), vc.Draws[0].Node)
	assert.Equal(t, xyz.Node(ts.m2), vc.Draws[1].Node)
	assert.Equal(t, 2, l.Content.NumDraws())
	assert.Equal(t, 1, l.Content.NumBuckets())
}

func TestLayerSkipsIncompatible(t *testing.T) {
	ts := newTestScene()
	noShader := xyz.NewMaterial("none", nil)
	glass := xyz.NewMaterial("glass", ts.shader).SetAlpha(xyz.AlphaBlend)
	other := xyz.NewBox("other", mgl32.Vec3{2, 2, 2})
	ts.sc.AddChildren(
		xyz.NewMesh("bare", other, noShader),
		xyz.NewMesh("glass", other, glass),
		xyz.NewMesh("empty", nil, ts.mat),
		xyz.NewPointLight("point", 1, xyz.DirectSun),
	)

	opaque := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, opaque.Update())
	assert.Equal(t, 2, opaque.Content.NumDraws())

	blend := NewLayer("blend", LayerBlend, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, blend.Update())
	require.Equal(t, 1, blend.Content.NumDraws())
	assert.Equal(t, glass, blend.Content.Shaders[0].Vertices[0].Draws[0].Material)
}

func TestLayerNeedUpdate(t *testing.T) {
	ts := newTestScene()
	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.False(t, l.NeedUpdate())
	assert.EqualValues(t, 1, l.Builds())

	// moving things does not change the batch plan
	ts.m1.Transform().SetPos(1, 2, 3)
	ts.gp.Transform().SetUniformScale(2)
	assert.False(t, l.NeedUpdate())

	ts.mat.SetColor(mgl32.Vec4{0, 1, 0, 1})
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.False(t, l.NeedUpdate())

	ts.m2.SetVisible(false)
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.False(t, l.NeedUpdate())

	ts.gp.AddChild(xyz.NewMesh("m3", ts.box, ts.mat))
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.False(t, l.NeedUpdate())
	assert.Equal(t, 3, l.Content.NumDraws())
	assert.EqualValues(t, 4, l.Builds())
}

func TestLayerVisibilityBuckets(t *testing.T) {
	ts := newTestScene()
	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())
	vc := l.Content.Shaders[0].Vertices[0]

	require.NoError(t, l.Prepare(ts.ctx()))
	assert.False(t, vc.Hidden)

	ts.m1.SetVisible(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Draws[0].Hidden)
	assert.False(t, vc.Draws[1].Hidden)
	assert.False(t, vc.Hidden)

	ts.m2.SetVisible(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Hidden)

	ts.m2.SetVisible(true)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.False(t, vc.Hidden)

	// a hidden parent hides both
	ts.m1.SetVisible(true)
	ts.gp.SetVisible(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Hidden)

	ts.gp.SetVisible(true)
	ts.mat.SetEnabled(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Hidden)
}

func TestLayerFrustumCulling(t *testing.T) {
	ts := newTestScene()
	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())
	vc := l.Content.Shaders[0].Vertices[0]
	ts.m2.Transform().SetPos(1000, 0, 0)

	require.NoError(t, l.Prepare(ts.ctx()))
	assert.False(t, vc.Draws[1].Hidden)

	l.FrustumCulling = true
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.False(t, vc.Draws[0].Hidden)
	assert.True(t, vc.Draws[1].Hidden)
	assert.False(t, vc.Hidden)

	ts.m1.Transform().SetPos(0, -1000, 0)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Hidden)
}

func TestLayerDistance(t *testing.T) {
	ts := newTestScene()
	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())
	vc := l.Content.Shaders[0].Vertices[0]
	ts.m2.Transform().SetPos(0, 0, -10)

	// the camera is at z = 10 and the boxes are one unit wide
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.InDelta(t, 9.5, vc.Draws[0].Distance, 1e-4)
	assert.InDelta(t, 19.5, vc.Draws[1].Distance, 1e-4)
	assert.InDelta(t, 14.5, vc.Distance, 1e-4)

	ts.m2.SetVisible(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.InDelta(t, 9.5, vc.Distance, 1e-4)
}

func TestLayerPrepareOncePerFrame(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	l := NewLayer("main", LayerOpaque, ts.sc, dev, NewResourceCache())
	require.NoError(t, l.Update())

	ctx := ts.ctx()
	require.NoError(t, l.Prepare(ctx))
	assert.Equal(t, 1, dev.Programs)
	assert.Equal(t, 1, dev.VertexHandlers)
	assert.Equal(t, 1, dev.Uploads)
	vc := l.Content.Shaders[0].Vertices[0]
	assert.NotNil(t, vc.Handler())
	assert.NotNil(t, l.Content.Shaders[0].Program())

	ts.m1.SetVisible(false)
	ts.m2.SetVisible(false)
	require.NoError(t, l.Prepare(ctx))
	assert.False(t, vc.Hidden)

	require.NoError(t, l.Prepare(ts.ctx()))
	assert.True(t, vc.Hidden)
}

func TestLayerResources(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	l := NewLayer("main", LayerOpaque, ts.sc, dev, NewResourceCache())
	require.NoError(t, l.Update())
	require.NoError(t, l.Prepare(ts.ctx()))
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Equal(t, 1, dev.Uploads)
	assert.EqualValues(t, 1, l.Builds())

	// new data is a scene change: the content is rebuilt and the
	// cached handler re-uploads
	ts.box.SetData(ts.box.Vertices(), ts.box.Indices())
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.EqualValues(t, 2, l.Builds())
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Equal(t, 2, dev.Uploads)
	assert.Equal(t, 1, dev.VertexHandlers)

	ts.shader.SetSource("vertex2", "fragment2")
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Equal(t, 2, dev.Programs)
	assert.Equal(t, 1, dev.Released)

	// hidden buckets are not uploaded
	ts.m1.SetVisible(false)
	ts.m2.SetVisible(false)
	ts.box.SetData(ts.box.Vertices(), ts.box.Indices())
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Equal(t, 2, dev.Uploads)
}

func TestLayerProgramError(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	dev.FailShader = "phong"
	l := NewLayer("main", LayerOpaque, ts.sc, dev, NewResourceCache())
	require.NoError(t, l.Update())
	err := l.Prepare(ts.ctx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phong")
}

func TestLayerLights(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	l := NewLayer("main", LayerOpaque, ts.sc, dev, NewResourceCache())
	l.HasLights = true
	pano := xyz.NewTexture("sky", 2, 1, xyz.TextureRGBA8, make([]byte, 8))
	il := xyz.NewImageLight("sky", 1, pano)
	dir := xyz.NewDirLight("sun", 1, xyz.DirectSun)
	off := xyz.NewPointLight("off", 1, xyz.Candle)
	off.On = false
	ts.sc.AddChildren(il, dir, off)
	require.NoError(t, l.Update())

	for range 3 {
		require.NoError(t, l.Prepare(ts.ctx()))
	}
	lc := &l.Content.Lights
	assert.Equal(t, []*xyz.DirLight{dir}, lc.Dir)
	assert.Empty(t, lc.Point)
	assert.Equal(t, il, lc.Image)
	assert.Equal(t, 2, lc.Len())
	assert.Equal(t, 1, dev.IBLComputes)
	assert.EqualValues(t, 1, lc.IBLComputes)

	pano.SetData(2, 1, make([]byte, 8))
	require.NoError(t, l.Prepare(ts.ctx()))
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Equal(t, 2, dev.IBLComputes)
	assert.Equal(t, pano.Version(), lc.ImageLightVersion)
	assert.Equal(t, 1, dev.Released)

	il.SetVisible(false)
	require.NoError(t, l.Prepare(ts.ctx()))
	assert.Nil(t, lc.Image)
	assert.Nil(t, lc.IBL)
	assert.Equal(t, 2, dev.Released)
}

func TestSubLayerIncremental(t *testing.T) {
	ts := newTestScene()
	meshes := ts.sc.Layers().Add("meshes", func(n xyz.Node) bool {
		_, ok := n.(*xyz.Mesh)
		return ok
	})
	l := NewSubLayer("meshes", LayerOpaque, meshes, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())
	assert.Equal(t, 2, l.Content.NumDraws())

	m3 := xyz.NewMesh("m3", ts.box, ts.mat)
	ts.sc.AddChild(m3)
	assert.False(t, l.NeedUpdate())
	assert.EqualValues(t, 1, l.IncrementalUpdates())
	vc := l.Content.Shaders[0].Vertices[0]
	require.Len(t, vc.Draws, 3)
	assert.Equal(t, 2, vc.Draws[2].DrawID)

	ts.gp.RemoveChild(ts.m1)
	assert.False(t, l.NeedUpdate())
	require.Len(t, vc.Draws, 2)
	assert.Equal(t, xyz.Node(ts.m2), vc.Draws[0].Node)
	assert.Equal(t, 0, vc.Draws[0].DrawID)
	assert.Equal(t, 1, vc.Draws[1].DrawID)

	// a mesh with its own geometry and shader gets its own buckets,
	// which go away with it
	sh := xyz.NewShader("unlit", "v", "f")
	solo := xyz.NewMesh("solo", xyz.NewBox("small", mgl32.Vec3{.1, .1, .1}), xyz.NewMaterial("solo", sh))
	ts.sc.AddChild(solo)
	assert.Len(t, l.Content.Shaders, 2)
	ts.sc.RemoveChild(solo)
	assert.Len(t, l.Content.Shaders, 1)
	assert.Nil(t, l.Content.Shader(sh))
	assert.EqualValues(t, 1, l.Builds())

	// other changes of members need a rebuild
	ts.m2.SetVisible(false)
	assert.True(t, l.NeedUpdate())
	require.NoError(t, l.Update())
	assert.EqualValues(t, 2, l.Builds())
}

// mutatingSource is a vertex source that changes the scene while it
// is being read.
type mutatingSource struct {
	xyz.ComponentBase
	geom   *xyz.Geometry
	mat    *xyz.Material
	victim *xyz.Material
}

func (ms *mutatingSource) Geometry() *xyz.Geometry { return ms.geom }
func (ms *mutatingSource) RenderPriority() int     { return 0 }
func (ms *mutatingSource) Materials() []*xyz.Material {
	ms.victim.SetColor(mgl32.Vec4{1, 1, 1, 1})
	return []*xyz.Material{ms.mat}
}

func TestLayerSceneChanged(t *testing.T) {
	ts := newTestScene()
	ms := &mutatingSource{geom: ts.box, mat: ts.mat, victim: ts.mat}
	ms.InitObject(ms)
	holder := xyz.NewGroup("holder")
	holder.AddComponent(ms)
	ts.sc.AddChild(holder)

	l := NewLayer("main", LayerOpaque, ts.sc, NewRecordingDevice(), NewResourceCache())
	err := l.Update()
	assert.True(t, errors.Is(err, ErrSceneChanged))
	assert.True(t, l.NeedUpdate())
}

func TestLayerDispose(t *testing.T) {
	ts := newTestScene()
	meshes := ts.sc.Layers().Add("meshes", func(n xyz.Node) bool {
		_, ok := n.(*xyz.Mesh)
		return ok
	})
	l := NewSubLayer("meshes", LayerOpaque, meshes, NewRecordingDevice(), NewResourceCache())
	require.NoError(t, l.Update())
	l.Dispose()
	assert.Zero(t, l.Content.NumDraws())
	ts.sc.AddChild(xyz.NewMesh("m3", ts.box, ts.mat))
	assert.Zero(t, l.IncrementalUpdates())
	assert.True(t, l.NeedUpdate())
}
