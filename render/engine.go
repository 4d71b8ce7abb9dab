// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/xyz"
)

// Stats are counts about the last rendered frame, plus running totals.
type Stats struct {

	// Frames is the number of rendered frames.
	Frames int64

	// Shaders is the number of shaders with visible draws.
	Shaders int

	// Buckets is the number of vertex buckets drawn.
	Buckets int

	// Draws is the number of draw calls.
	Draws int

	// Hidden is the number of hidden draws.
	Hidden int

	// Lights is the number of lights collected.
	Lights int

	// Builds is the total number of content rebuilds.
	Builds int64

	// Resources is the number of cached GPU resources.
	Resources int
}

// Engine renders scenes through a [Device]. Each scene gets an opaque
// layer collecting the lights and a blend layer; more layers over
// scene layers can be added with [Engine.AddSubLayer]. Opaque layers
// are drawn before blend layers.
type Engine struct {

	// Options are the engine settings.
	Options Options

	device Device
	cache  *ResourceCache
	slots  *TextureSlots
	scenes map[*xyz.Scene][]*Layer
	stats  Stats
}

// NewEngine returns an engine drawing to the device.
func NewEngine(dev Device, opts *Options) *Engine {
	e := &Engine{device: dev, cache: NewResourceCache(), scenes: map[*xyz.Scene][]*Layer{}}
	if opts != nil {
		e.Options = *opts
	} else {
		e.Options.Defaults()
	}
	e.slots = NewTextureSlots(e.Options.MaxTextureSlots)
	return e
}

// Device returns the device.
func (e *Engine) Device() Device {
	return e.device
}

// Cache returns the resource cache.
func (e *Engine) Cache() *ResourceCache {
	return e.cache
}

// Stats returns the stats of the last frame.
func (e *Engine) Stats() Stats {
	return e.stats
}

// SetOptions replaces the engine settings and applies them to the
// existing layers. The texture slot count is fixed at creation and
// is kept.
func (e *Engine) SetOptions(opts Options) {
	opts.MaxTextureSlots = e.Options.MaxTextureSlots
	e.Options = opts
	for _, ls := range e.scenes {
		for _, l := range ls {
			l.FrustumCulling = opts.FrustumCulling
		}
	}
}

// Layers returns the layers of the scene, creating the default ones
// on first use.
func (e *Engine) Layers(sc *xyz.Scene) []*Layer {
	if ls, ok := e.scenes[sc]; ok {
		return ls
	}
	main := NewLayer("main", LayerOpaque, sc, e.device, e.cache)
	main.HasLights = true
	main.FrustumCulling = e.Options.FrustumCulling
	blend := NewLayer("blend", LayerBlend, sc, e.device, e.cache)
	blend.FrustumCulling = e.Options.FrustumCulling
	ls := []*Layer{main, blend}
	e.scenes[sc] = ls
	return ls
}

// AddSubLayer adds a layer over the named layer of the scene.
func (e *Engine) AddSubLayer(sc *xyz.Scene, name string, typ LayerTypes) (*Layer, error) {
	src := sc.Layers().Layer(name)
	if src == nil {
		return nil, errors.Errorf("render: scene %q has no layer %q", sc.Name, name)
	}
	l := NewSubLayer(name, typ, src, e.device, e.cache)
	l.FrustumCulling = e.Options.FrustumCulling
	ls := append(e.Layers(sc), l)
	slices.SortStableFunc(ls, func(a, b *Layer) int { return cmp.Compare(a.Type, b.Type) })
	e.scenes[sc] = ls
	return l, nil
}

// RemoveScene disposes the layers of the scene.
func (e *Engine) RemoveScene(sc *xyz.Scene) {
	for _, l := range e.scenes[sc] {
		l.Dispose()
	}
	delete(e.scenes, sc)
}

// Close disposes all layers and releases all resources.
func (e *Engine) Close() {
	for sc := range e.scenes {
		e.RemoveScene(sc)
	}
	e.cache.Clear()
}

// Render draws the scene of the context as seen by its camera.
// Layers are rebuilt when stale and prepared before drawing. Nothing
// is drawn without a scene or camera.
func (e *Engine) Render(ctx *xyz.RenderContext, vp Viewport, flush bool) error {
	sc, cam := ctx.Scene, ctx.Camera
	if sc == nil || cam == nil {
		return nil
	}
	cam.SetViewport(vp.Width, vp.Height)
	if err := e.device.BeginFrame(vp, cam.Background); err != nil {
		return err
	}
	err := e.renderLayers(ctx, e.Layers(sc))
	return errors.Join(err, e.device.EndFrame(flush))
}

func (e *Engine) renderLayers(ctx *xyz.RenderContext, ls []*Layer) error {
	st := Stats{Frames: e.stats.Frames + 1, Builds: e.stats.Builds}
	defer func() {
		st.Resources = e.cache.Len()
		e.stats = st
	}()
	cam := ctx.Camera
	fr := frame{
		view:   cam.View(),
		proj:   cam.Projection(),
		camPos: cam.WorldPosition(),
		stats:  &st,
	}
	for _, l := range ls {
		if l.NeedUpdate() {
			if err := l.Update(); err != nil {
				return err
			}
			st.Builds++
		}
		if err := l.Prepare(ctx); err != nil {
			return err
		}
		if l.HasLights {
			fr.lights = &l.Content.Lights
			st.Lights = fr.lights.Len()
		}
	}
	for _, l := range ls {
		if err := e.drawLayer(l, &fr); err != nil {
			return err
		}
	}
	return nil
}

// frame is the per frame state shared by the draws.
type frame struct {
	view, proj mgl32.Mat4
	camPos     mgl32.Vec3
	lights     *LightsContent
	stats      *Stats
}

type bucket struct {
	sc *ShaderContent
	vc *VertexContent
}

func (e *Engine) drawLayer(l *Layer, fr *frame) error {
	var bks []bucket
	for _, sc := range l.Content.Shaders {
		shown := false
		for _, vc := range sc.Vertices {
			if vc.Hidden {
				fr.stats.Hidden += len(vc.Draws)
				continue
			}
			shown = true
			bks = append(bks, bucket{sc, vc})
		}
		if shown {
			fr.stats.Shaders++
		}
	}
	if l.Type == LayerBlend && e.Options.SortBlend {
		slices.SortStableFunc(bks, func(a, b bucket) int {
			return cmp.Compare(b.vc.Distance, a.vc.Distance)
		})
	}
	for _, bk := range bks {
		fr.stats.Buckets++
		for _, dc := range bk.vc.Draws {
			if dc.Hidden {
				fr.stats.Hidden++
				continue
			}
			if err := e.draw(l, bk, dc, fr); err != nil {
				return err
			}
			fr.stats.Draws++
		}
	}
	return nil
}

func (e *Engine) draw(l *Layer, bk bucket, dc *DrawContent, fr *frame) error {
	mt := dc.Material
	e.slots.Reset()
	for slot, tx := range mt.Textures {
		if tx == nil {
			continue
		}
		th, err := GetResource(e.cache, tx, func() (TextureHandle, error) {
			return e.device.NewTexture(tx)
		})
		if err != nil {
			return errors.Errorf("render: texture %q: %w", tx.Name, err)
		}
		if err := e.slots.Bind(slot, th); err != nil {
			return errors.Errorf("render: material %q: %w", mt.Name, err)
		}
	}
	p := &DrawParams{
		Draw:       dc,
		Model:      dc.Node.AsNode().WorldMatrix(),
		View:       fr.view,
		Projection: fr.proj,
		CameraPos:  fr.camPos,
		State: DrawState{
			DepthTest:  mt.UseDepth,
			DepthWrite: mt.WriteDepth && l.Type != LayerBlend,
			Blend:      l.Type == LayerBlend,
			CullBack:   !mt.DoubleSided,
		},
		Textures: e.slots.Bound(),
		Lights:   fr.lights,
	}
	if err := e.device.Draw(bk.sc.program, bk.vc.handler, p); err != nil {
		return errors.Errorf("render: draw %q in layer %q: %w", dc.Node.AsObject().Name, l.Name, err)
	}
	return nil
}
