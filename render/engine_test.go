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

var testViewport = Viewport{Width: 640, Height: 480}

func TestEngineRender(t *testing.T) {
	ts := newTestScene()
	ts.m2.Transform().SetPos(2, 0, 0)
	glass := xyz.NewMaterial("glass", ts.shader).SetAlpha(xyz.AlphaBlend)
	near := xyz.NewMesh("near", xyz.NewBox("near", mgl32.Vec3{1, 1, 1}), glass)
	near.Transform().SetPos(0, 0, 5)
	far := xyz.NewMesh("far", xyz.NewBox("far", mgl32.Vec3{1, 1, 1}), glass)
	far.Transform().SetPos(0, 0, -5)
	ts.sc.AddChildren(near, far)

	dev := NewRecordingDevice()
	e := NewEngine(dev, nil)
	require.NoError(t, e.Render(ts.ctx(), testViewport, true))
	assert.Equal(t, 1, dev.Frames)
	assert.Equal(t, testViewport, dev.Viewport)
	assert.InDelta(t, 640.0/480.0, ts.cam.Aspect, 1e-6)

	require.Len(t, dev.Draws, 4)
	assert.Equal(t, xyz.Node(ts.m1), dev.Draws[0].Node)
	assert.Equal(t, xyz.Node(ts.m2), dev.Draws[1].Node)
	assert.Equal(t, 1, dev.Draws[1].DrawID)
	assert.False(t, dev.Draws[0].State.Blend)
	assert.True(t, dev.Draws[0].State.DepthWrite)
	// blended content is drawn far to near
	assert.Equal(t, xyz.Node(far), dev.Draws[2].Node)
	assert.Equal(t, xyz.Node(near), dev.Draws[3].Node)
	assert.True(t, dev.Draws[3].State.Blend)
	assert.False(t, dev.Draws[3].State.DepthWrite)

	st := e.Stats()
	assert.EqualValues(t, 1, st.Frames)
	assert.Equal(t, 4, st.Draws)
	assert.Equal(t, 3, st.Buckets)
	assert.EqualValues(t, 2, st.Builds)

	// nothing changed, nothing is rebuilt
	require.NoError(t, e.Render(ts.ctx(), testViewport, false))
	assert.EqualValues(t, 2, e.Stats().Builds)
	assert.Equal(t, 1, dev.Programs)
	assert.Equal(t, 3, dev.VertexHandlers)

	ts.m1.SetVisible(false)
	require.NoError(t, e.Render(ts.ctx(), testViewport, false))
	st = e.Stats()
	assert.EqualValues(t, 4, st.Builds)
	assert.Equal(t, 3, st.Draws)
	assert.Equal(t, 1, st.Hidden)
	assert.Len(t, dev.Draws, 3)
}

func TestEngineNoCamera(t *testing.T) {
	dev := NewRecordingDevice()
	e := NewEngine(dev, nil)
	require.NoError(t, e.Render(&xyz.RenderContext{}, testViewport, false))
	require.NoError(t, e.Render(&xyz.RenderContext{Scene: xyz.NewScene("empty")}, testViewport, false))
	assert.Zero(t, dev.Frames)
}

func TestEngineLights(t *testing.T) {
	ts := newTestScene()
	ts.sc.AddChildren(xyz.NewAmbientLight("ambient", 1, xyz.DirectSun), xyz.NewDirLight("sun", 1, xyz.DirectSun))
	e := NewEngine(NewRecordingDevice(), nil)
	require.NoError(t, e.Render(ts.ctx(), testViewport, false))
	assert.Equal(t, 2, e.Stats().Lights)
	main := e.Layers(ts.sc)[0]
	assert.True(t, main.HasLights)
	assert.Len(t, main.Content.Lights.Ambient, 1)
}

func TestEngineTextures(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	opts := &Options{}
	opts.Defaults()
	opts.MaxTextureSlots = 2
	e := NewEngine(dev, opts)

	tx := xyz.NewTexture("wood", 1, 1, xyz.TextureRGBA8, make([]byte, 4))
	ts.mat.SetTexture(1, tx)
	require.NoError(t, e.Render(ts.ctx(), testViewport, false))
	assert.Equal(t, 1, dev.Textures)
	assert.Equal(t, 2, dev.Draws[0].Textures)

	ts.mat.SetTexture(2, tx)
	err := e.Render(ts.ctx(), testViewport, false)
	assert.True(t, errors.Is(err, ErrSlotRange))
	// the frame is still finished
	assert.Equal(t, 2, dev.Frames)
}

func TestEngineProgramError(t *testing.T) {
	ts := newTestScene()
	dev := NewRecordingDevice()
	dev.FailShader = "phong"
	e := NewEngine(dev, nil)
	err := e.Render(ts.ctx(), testViewport, false)
	require.Error(t, err)
	assert.Equal(t, 1, dev.Frames)

	dev.FailShader = ""
	require.NoError(t, e.Render(ts.ctx(), testViewport, false))
	assert.Len(t, dev.Draws, 2)
}

func TestEngineSubLayer(t *testing.T) {
	ts := newTestScene()
	ts.sc.Layers().Add("overlay", func(n xyz.Node) bool { return n.AsObject().Name == "m1" })
	e := NewEngine(NewRecordingDevice(), nil)
	_, err := e.AddSubLayer(ts.sc, "missing", LayerOpaque)
	assert.Error(t, err)

	ov, err := e.AddSubLayer(ts.sc, "overlay", LayerBlend)
	require.NoError(t, err)
	ls := e.Layers(ts.sc)
	require.Len(t, ls, 3)
	assert.Equal(t, LayerOpaque, ls[0].Type)
	assert.Equal(t, ov, ls[2])

	e.Close()
	assert.Zero(t, e.Cache().Len())
}

func TestEngineSetOptions(t *testing.T) {
	ts := newTestScene()
	ts.sc.Layers().Add("overlay", func(n xyz.Node) bool { return true })
	e := NewEngine(NewRecordingDevice(), nil)
	_, err := e.AddSubLayer(ts.sc, "overlay", LayerBlend)
	require.NoError(t, err)
	for _, l := range e.Layers(ts.sc) {
		assert.True(t, l.FrustumCulling)
	}

	opts := e.Options
	opts.FrustumCulling = false
	opts.MaxTextureSlots = 2
	e.SetOptions(opts)
	assert.False(t, e.Options.FrustumCulling)
	assert.Equal(t, 16, e.Options.MaxTextureSlots)
	for _, l := range e.Layers(ts.sc) {
		assert.False(t, l.FrustumCulling, l.Name)
	}
}

func TestTextureSlots(t *testing.T) {
	ts := NewTextureSlots(2)
	assert.Equal(t, 2, ts.Len())
	assert.Empty(t, ts.Bound())
	th := &recordedResource{}
	require.NoError(t, ts.Bind(1, th))
	assert.Len(t, ts.Bound(), 2)
	got, err := ts.Get(1)
	require.NoError(t, err)
	assert.Equal(t, TextureHandle(th), got)

	assert.ErrorIs(t, ts.Bind(2, th), ErrSlotRange)
	assert.ErrorIs(t, ts.Bind(-1, th), ErrSlotRange)
	_, err = ts.Get(5)
	assert.ErrorIs(t, err, ErrSlotRange)

	ts.Reset()
	assert.Empty(t, ts.Bound())
	got, _ = ts.Get(1)
	assert.Nil(t, got)
}

func TestResourceCache(t *testing.T) {
	dev := NewRecordingDevice()
	rc := NewResourceCache()
	sh := xyz.NewShader("s", "v", "f")
	create := func() (Program, error) { return dev.NewProgram(sh) }

	p1, err := GetResource(rc, sh, create)
	require.NoError(t, err)
	p2, err := GetResource(rc, sh, create)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Equal(t, 1, dev.Programs)
	assert.True(t, rc.Has(sh.ID()))

	sh.SetSource("v2", "f2")
	p3, err := GetResource(rc, sh, create)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
	assert.Equal(t, 1, dev.Released)
	assert.Equal(t, 1, rc.Len())

	dev.FailShader = "s"
	sh.SetSource("bad", "bad")
	_, err = GetResource(rc, sh, create)
	assert.Error(t, err)
	assert.False(t, rc.Has(sh.ID()))

	rc.Release(sh.ID())
	assert.Zero(t, rc.Len())
}
