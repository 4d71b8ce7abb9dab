// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/base/iox/imagex"
	"cogentcore.org/xr/config"
	"cogentcore.org/xr/render"
	"cogentcore.org/xr/xyz"
)

func TestDemoScene(t *testing.T) {
	sc := NewDemoScene(nil)
	require.NotNil(t, sc.ActiveCamera())
	assert.Len(t, sc.Lights(), 3)
	cubes, ok := sc.ChildByName("cubes").(*xyz.Group)
	require.True(t, ok)
	assert.Equal(t, 3, cubes.NumChildren())

	ctx := &xyz.RenderContext{Frame: 1, Time: 2, Scene: sc, Camera: sc.ActiveCamera()}
	sc.Update(ctx)
	cube := cubes.Child(0).AsNode()
	assert.NotEqual(t, float32(1), cube.Transform().Rotation().W)
}

func TestRunHeadless(t *testing.T) {
	cfg := config.New()
	cfg.Frames = 3
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, nil, &out))
	assert.Contains(t, out.String(), "frames: 3")
	assert.Contains(t, out.String(), "lights: 3")
}

func TestRunSky(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sky.png")
	im := image.NewRGBA(image.Rect(0, 0, 4, 2))
	require.NoError(t, imagex.Save(im, fn))
	cfg := config.New()
	cfg.Frames = 1
	cfg.Sky = fn
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, nil, &out))
	assert.Contains(t, out.String(), "frames: 1")

	cfg.Sky = filepath.Join(t.TempDir(), "missing.png")
	assert.Error(t, run(context.Background(), cfg, nil, &out))
}

func TestApplyConfig(t *testing.T) {
	eng := render.NewEngine(render.NewRecordingDevice(), nil)
	ls := eng.Layers(NewDemoScene(nil))
	c := config.New()
	c.Render.FrustumCulling = false
	c.Render.MaxTextureSlots = 2
	applyConfig(eng, c)
	assert.False(t, eng.Options.FrustumCulling)
	assert.Equal(t, 16, eng.Options.MaxTextureSlots)
	for _, l := range ls {
		assert.False(t, l.FrustumCulling)
	}
}

func TestConfigCmd(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "xr.toml")
	root := newRootCmd()
	root.SetArgs([]string{"config", "--save", fn})
	require.NoError(t, root.Execute())
	c, err := config.Load(fn)
	require.NoError(t, err)
	assert.Equal(t, config.New().Width, c.Width)

	root = newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", "--config", fn, "-n", "2", "-q"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "frames: 2")

	root = newRootCmd()
	root.SetArgs([]string{"run", "--watch"})
	assert.Error(t, root.Execute())
}
